package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/iliyamo/booth-data/internal/config"
)

// Re-exported so callers can match configuration failures without importing
// the config package.
var (
	ErrMissingBucket      = config.ErrMissingBucket
	ErrMissingCredentials = config.ErrMissingCredentials
)

// Upload describes one object that was written.
type Upload struct {
	LocalPath string
	Bucket    string
	Key       string
	SizeBytes int64
}

// FolderOptions controls UploadFolder.
type FolderOptions struct {
	// DryRun enumerates and reads every file and logs the key it would be
	// written to, without writing anything.
	DryRun bool
}

// FolderReport lists the keys handled by UploadFolder.
type FolderReport struct {
	DryRun   bool
	Uploaded []Upload
	Failed   []string // local paths
}

// Uploader sends local files to one bucket.
type Uploader struct {
	cfg    config.StorageConfig
	store  ObjectStore
	logger *log.Logger
}

// NewUploader returns an Uploader writing through store with the bucket and
// credentials in cfg.  A nil logger logs through the standard logger.
func NewUploader(cfg config.StorageConfig, store ObjectStore, logger *log.Logger) *Uploader {
	if logger == nil {
		logger = log.Default()
	}
	return &Uploader{cfg: cfg, store: store, logger: logger}
}

// Bucket is the configured bucket name.
func (u *Uploader) Bucket() string { return u.cfg.Bucket }

// UploadFile writes the file at filePath under key.  The configuration is
// checked before anything else so a missing bucket or credential never
// reaches the network.  Any failure is returned to the caller.
func (u *Uploader) UploadFile(ctx context.Context, filePath, key string) (Upload, error) {
	if err := u.cfg.Validate(); err != nil {
		u.logger.Printf("storage: %v", err)
		return Upload{}, err
	}
	u.logger.Printf("storage: starting upload of file %q to bucket %q with key %q", filePath, u.cfg.Bucket, key)

	body, err := os.ReadFile(filePath)
	if err != nil {
		return Upload{}, fmt.Errorf("read %s: %w", filePath, err)
	}
	if err := u.store.PutObject(ctx, u.cfg.Bucket, key, body, ContentType(filePath)); err != nil {
		u.logger.Printf("storage: error uploading %s: %v", filePath, err)
		return Upload{}, fmt.Errorf("upload %s: %w", filePath, err)
	}
	u.logger.Printf("storage: uploaded %s to s3://%s/%s", filePath, u.cfg.Bucket, key)
	return Upload{LocalPath: filePath, Bucket: u.cfg.Bucket, Key: key, SizeBytes: int64(len(body))}, nil
}

// UploadFolder writes every file under localDir, keyed by prefix plus the
// file's path relative to localDir.  Only configuration and listing errors
// are returned; a file that cannot be read or written is logged, recorded in
// the report and skipped.
func (u *Uploader) UploadFolder(ctx context.Context, localDir, prefix string, opts FolderOptions) (FolderReport, error) {
	report := FolderReport{DryRun: opts.DryRun}
	if err := u.cfg.Validate(); err != nil {
		u.logger.Printf("storage: %v", err)
		return report, err
	}
	u.logger.Printf("storage: starting upload of folder %q to bucket %q (dry run: %t)", localDir, u.cfg.Bucket, opts.DryRun)

	files, err := ListFiles(localDir)
	if err != nil {
		return report, fmt.Errorf("list %s: %w", localDir, err)
	}

	for _, filePath := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		rel, err := filepath.Rel(localDir, filePath)
		if err != nil {
			u.logger.Printf("storage: error uploading %s: %v", filePath, err)
			report.Failed = append(report.Failed, filePath)
			continue
		}
		key := FolderKey(prefix, rel)

		body, err := os.ReadFile(filePath)
		if err != nil {
			u.logger.Printf("storage: error uploading %s: %v", filePath, err)
			report.Failed = append(report.Failed, filePath)
			continue
		}
		up := Upload{LocalPath: filePath, Bucket: u.cfg.Bucket, Key: key, SizeBytes: int64(len(body))}

		if opts.DryRun {
			u.logger.Printf("storage: dry run: would upload %s to s3://%s/%s", filePath, u.cfg.Bucket, key)
			report.Uploaded = append(report.Uploaded, up)
			continue
		}
		if err := u.store.PutObject(ctx, u.cfg.Bucket, key, body, ContentType(filePath)); err != nil {
			u.logger.Printf("storage: error uploading %s: %v", filePath, err)
			report.Failed = append(report.Failed, filePath)
			continue
		}
		u.logger.Printf("storage: uploaded %s to s3://%s/%s", filePath, u.cfg.Bucket, key)
		report.Uploaded = append(report.Uploaded, up)
	}
	u.logger.Printf("storage: folder upload complete (%d ok, %d failed)", len(report.Uploaded), len(report.Failed))
	return report, nil
}
