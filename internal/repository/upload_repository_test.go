package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUploadRepo_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	at := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO artifact_uploads")).
		WithArgs("c104", "data/events/c104/booths.json", "events/c104/booths.json", "booth-artifacts", int64(512), at).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := NewUploadRepo(db).Record(context.Background(), Upload{
		EventID:    "c104",
		LocalPath:  "data/events/c104/booths.json",
		ObjectKey:  "events/c104/booths.json",
		Bucket:     "booth-artifacts",
		SizeBytes:  512,
		UploadedAt: at,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUploadRepo_RecordRejectsIncompleteRows(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	if _, err := NewUploadRepo(db).Record(context.Background(), Upload{EventID: "c104"}); !errors.Is(err, ErrInvalidUpload) {
		t.Fatalf("expected ErrInvalidUpload, got %v", err)
	}
}

func TestUploadRepo_ListByEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	newer := time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "event_id", "local_path", "object_key", "bucket", "size_bytes", "uploaded_at"}).
		AddRow(2, "c104", "data/events/c104/booths.json", "events/c104/booths.json", "b", 600, newer).
		AddRow(1, "c104", "data/events/c104/booths.json", "events/c104/booths.json", "b", 512, older)
	mock.ExpectQuery(regexp.QuoteMeta("FROM artifact_uploads WHERE event_id=?")).
		WithArgs("c104", 50).
		WillReturnRows(rows)

	got, err := NewUploadRepo(db).ListByEvent(context.Background(), "c104", 0)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || !got[0].UploadedAt.Equal(newer) || got[1].SizeBytes != 512 {
		t.Fatalf("unexpected uploads %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUploadRepo_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS artifact_uploads")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := NewUploadRepo(db).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
