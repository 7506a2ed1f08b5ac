package repository

import (
	"context"
	"database/sql"
	"time"
)

// Upload mirrors the 'artifact_uploads' table.
type Upload struct {
	ID         uint64
	EventID    string
	LocalPath  string
	ObjectKey  string
	Bucket     string
	SizeBytes  int64
	UploadedAt time.Time
}

// UploadsSchema creates the ledger table.
const UploadsSchema = `CREATE TABLE IF NOT EXISTS artifact_uploads (
	id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	event_id    VARCHAR(191) NOT NULL,
	local_path  VARCHAR(1024) NOT NULL,
	object_key  VARCHAR(1024) NOT NULL,
	bucket      VARCHAR(255) NOT NULL,
	size_bytes  BIGINT NOT NULL,
	uploaded_at DATETIME NOT NULL,
	KEY idx_artifact_uploads_event (event_id, uploaded_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// UploadRepo records which artifacts were pushed to the bucket and when.
type UploadRepo struct{ DB *sql.DB }

func NewUploadRepo(db *sql.DB) *UploadRepo { return &UploadRepo{DB: db} }

// EnsureSchema creates the ledger table if it does not exist.
func (r *UploadRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, UploadsSchema)
	return err
}

// Record inserts u and returns its ID.  A zero UploadedAt is stamped with
// the current UTC time.
func (r *UploadRepo) Record(ctx context.Context, u Upload) (uint64, error) {
	if u.EventID == "" || u.ObjectKey == "" {
		return 0, ErrInvalidUpload
	}
	if u.UploadedAt.IsZero() {
		u.UploadedAt = time.Now().UTC()
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO artifact_uploads (event_id, local_path, object_key, bucket, size_bytes, uploaded_at) VALUES (?,?,?,?,?,?)",
		u.EventID, u.LocalPath, u.ObjectKey, u.Bucket, u.SizeBytes, u.UploadedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByEvent returns the uploads of one event, newest first.
func (r *UploadRepo) ListByEvent(ctx context.Context, eventID string, limit int) ([]Upload, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,event_id,local_path,object_key,bucket,size_bytes,uploaded_at FROM artifact_uploads WHERE event_id=? ORDER BY uploaded_at DESC, id DESC LIMIT ?",
		eventID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Upload
	for rows.Next() {
		var u Upload
		if err := rows.Scan(&u.ID, &u.EventID, &u.LocalPath, &u.ObjectKey, &u.Bucket, &u.SizeBytes, &u.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
