package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	gcs "cloud.google.com/go/storage"

	"github.com/nguyentantai21042004/video-insight/internal/models"
)

// Download copies gs://bucket/key to localPath and returns the byte count
func (s *implStore) Download(ctx context.Context, bucket, key, localPath string) (int64, error) {
	fail := func(err error) (int64, error) {
		return 0, &models.StorageError{Op: models.OpDownload, Bucket: bucket, Key: key, Err: err}
	}

	s.logger.Info(ctx, "Downloading %s to %s", URI(bucket, key), localPath)

	r, err := s.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return fail(fmt.Errorf("object does not exist: %w", err))
		}
		return fail(err)
	}
	defer r.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return fail(fmt.Errorf("create local file: %w", err))
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fail(fmt.Errorf("write local file: %w", err))
	}

	s.logger.Info(ctx, "Downloaded %s (%d bytes)", key, n)
	return n, nil
}

// Upload writes r to gs://bucket/key with the given content type.
// A failed read aborts the upload, so no partial object is committed.
func (s *implStore) Upload(ctx context.Context, bucket, key, contentType string, r io.Reader) error {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := s.client.Bucket(bucket).Object(key).NewWriter(wctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		cancel()
		return &models.StorageError{Op: models.OpUpload, Bucket: bucket, Key: key, Err: err}
	}
	// Close commits the object; its error is the upload result.
	if err := w.Close(); err != nil {
		return &models.StorageError{Op: models.OpUpload, Bucket: bucket, Key: key, Err: err}
	}

	s.logger.Info(ctx, "Uploaded %s", URI(bucket, key))
	return nil
}

// UploadFile uploads the file at localPath
func (s *implStore) UploadFile(ctx context.Context, bucket, key, contentType, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return &models.StorageError{Op: models.OpUpload, Bucket: bucket, Key: key, Err: fmt.Errorf("open local file: %w", err)}
	}
	defer f.Close()

	return s.Upload(ctx, bucket, key, contentType, f)
}
