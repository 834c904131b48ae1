package storage

import (
	"context"
	"io"
	"time"
)

// Service stores avatar images in remote object storage and hands out
// short-lived URLs for reading them back.
type Service interface {
	UploadObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}
