package usecase

import (
	"context"
	"io"
	"time"
)

// BlobStore is the object-storage collaborator holding asset bytes.
// Delete is idempotent: releasing an already-released key is not an error.
type BlobStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
}

// NotificationSink receives fire-and-forget events on membership and
// assignment changes. Publish failures never fail the triggering operation.
type NotificationSink interface {
	Publish(ctx context.Context, channel string, payload interface{}) error
}
