// Package queue defines message payloads exchanged over the message broker.
package queue

// UploadQueueName is the durable queue that carries ArtifactUploadedEvent.
const UploadQueueName = "artifact.uploaded"

// ArtifactUploadedEvent is published after an event artifact has been
// written to the bucket.  It carries enough for a consumer to log the upload
// or purge a CDN path without reading the bucket.
type ArtifactUploadedEvent struct {
	EventID    string `json:"event_id"`
	Bucket     string `json:"bucket"`
	Key        string `json:"key"`
	LocalPath  string `json:"local_path"`
	SizeBytes  int64  `json:"size_bytes"`
	UploadedAt string `json:"uploaded_at"`
}
