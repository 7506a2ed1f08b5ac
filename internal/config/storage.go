package config

import (
	"errors"
	"os"
	"strings"
)

var (
	// ErrMissingBucket is returned when AWS_S3_BUCKET_NAME is not set.
	ErrMissingBucket = errors.New("AWS_S3_BUCKET_NAME is not defined")
	// ErrMissingCredentials is returned when the key pair or region is not set.
	ErrMissingCredentials = errors.New("AWS credentials or region is not defined")
)

// StorageConfig holds everything the uploader needs to reach the bucket.
// It is loaded once at startup and passed to the storage package.
type StorageConfig struct {
	Region          string // AWS_REGION
	Bucket          string // AWS_S3_BUCKET_NAME
	AccessKeyID     string // AWS_ACCESS_KEY_ID
	SecretAccessKey string // AWS_SECRET_ACCESS_KEY
	Endpoint        string // AWS_S3_ENDPOINT, optional (S3-compatible stores)
	UsePathStyle    bool   // AWS_S3_USE_PATH_STYLE, optional
}

// LoadStorageConfig reads the storage settings from the environment.  It
// never fails; call Validate before using the result.
func LoadStorageConfig() StorageConfig {
	return StorageConfig{
		Region:          strings.TrimSpace(os.Getenv("AWS_REGION")),
		Bucket:          strings.TrimSpace(os.Getenv("AWS_S3_BUCKET_NAME")),
		AccessKeyID:     strings.TrimSpace(os.Getenv("AWS_ACCESS_KEY_ID")),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		Endpoint:        strings.TrimSpace(os.Getenv("AWS_S3_ENDPOINT")),
		UsePathStyle:    envBool("AWS_S3_USE_PATH_STYLE", false),
	}
}

// Validate checks the bucket first and then the credentials and region.
func (c StorageConfig) Validate() error {
	if c.Bucket == "" {
		return ErrMissingBucket
	}
	if c.AccessKeyID == "" || c.SecretAccessKey == "" || c.Region == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Redacted returns the access key id with all but its last four characters
// masked, for logging.
func (c StorageConfig) Redacted() string {
	k := c.AccessKeyID
	if len(k) <= 4 {
		return strings.Repeat("*", len(k))
	}
	return strings.Repeat("*", len(k)-4) + k[len(k)-4:]
}
