package watcher

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/models"
	"github.com/nguyentantai21042004/video-insight/internal/processor"
	"github.com/nguyentantai21042004/video-insight/internal/storage"
)

// UploadHandler returns an EventHandler that uploads a dropped video to
// the input bucket and runs the pipeline on the resulting upload event,
// as the storage trigger would.
func UploadHandler(store storage.ObjectStore, bucket string, proc processor.Processor, log logger.Logger) EventHandler {
	return func(ctx context.Context, filePath string) error {
		event := models.UploadEvent{
			Bucket:      bucket,
			Name:        filepath.Base(filePath),
			ContentType: ContentType(filePath),
		}

		if err := store.UploadFile(ctx, event.Bucket, event.Name, event.ContentType, filePath); err != nil {
			return fmt.Errorf("upload dropped file: %w", err)
		}
		log.Info(ctx, "Uploaded %s to %s", filePath, storage.URI(event.Bucket, event.Name))

		res, err := proc.Process(ctx, event)
		if err != nil {
			return err
		}
		log.Info(ctx, "Run %s for %s finished in state %s", res.RunID, event.Name, res.State)
		return nil
	}
}
