package artifact

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/booth-data/internal/layout"
	"github.com/iliyamo/booth-data/internal/queue"
	"github.com/iliyamo/booth-data/internal/repository"
	"github.com/iliyamo/booth-data/internal/storage"
)

// FileUploader is the part of storage.Uploader that Publish needs.
type FileUploader interface {
	UploadFile(ctx context.Context, filePath, key string) (storage.Upload, error)
}

// Ledger records completed uploads.
type Ledger interface {
	Record(ctx context.Context, u repository.Upload) (uint64, error)
}

// Notifier announces completed uploads.
type Notifier func(ctx context.Context, ev queue.ArtifactUploadedEvent) error

// Publisher checks an event and uploads its artifacts.  Ledger and Notify
// are optional; their failures are logged and never fail the publish.
type Publisher struct {
	Layout   layout.Layout
	Uploader FileUploader
	Ledger   Ledger
	Notify   Notifier
	Now      func() time.Time
}

// Publish runs Check and then uploads the index and the event's booths file
// one after the other.  The first upload error stops the publish, so the
// booths file is never sent if the index failed.
func (p *Publisher) Publish(ctx context.Context, eventID string) (Event, error) {
	ev, err := Check(p.Layout, eventID)
	if err != nil {
		return Event{}, err
	}
	log.Printf("artifact: event %s data is valid", eventID)

	for _, f := range ev.Files() {
		up, err := p.Uploader.UploadFile(ctx, f.Path, f.Key)
		if err != nil {
			return ev, fmt.Errorf("upload %s: %w", f.Key, err)
		}
		p.after(ctx, eventID, up)
	}
	log.Printf("artifact: uploaded data for event %s", eventID)
	return ev, nil
}

func (p *Publisher) after(ctx context.Context, eventID string, up storage.Upload) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	at := now().UTC()

	if p.Ledger != nil {
		if _, err := p.Ledger.Record(ctx, repository.Upload{
			EventID:    eventID,
			LocalPath:  up.LocalPath,
			ObjectKey:  up.Key,
			Bucket:     up.Bucket,
			SizeBytes:  up.SizeBytes,
			UploadedAt: at,
		}); err != nil {
			log.Printf("artifact: ledger record for %s failed: %v", up.Key, err)
		}
	}
	if p.Notify != nil {
		if err := p.Notify(ctx, queue.ArtifactUploadedEvent{
			EventID:    eventID,
			Bucket:     up.Bucket,
			Key:        up.Key,
			LocalPath:  up.LocalPath,
			SizeBytes:  up.SizeBytes,
			UploadedAt: at.Format(time.RFC3339),
		}); err != nil {
			log.Printf("artifact: notify for %s failed: %v", up.Key, err)
		}
	}
}
