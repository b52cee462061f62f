package storage

import (
	"context"
	"io"
)

// ObjectStore moves run artifacts between scratch storage and buckets.
// Every failure is a *models.StorageError.
type ObjectStore interface {
	Download(ctx context.Context, bucket, key, localPath string) (int64, error)
	Upload(ctx context.Context, bucket, key, contentType string, r io.Reader) error
	UploadFile(ctx context.Context, bucket, key, contentType, localPath string) error
}

// URI returns the gs:// address of an object
func URI(bucket, key string) string {
	return "gs://" + bucket + "/" + key
}
