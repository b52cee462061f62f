package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
)

// videoContentTypes maps supported extensions to the content type the
// upload is tagged with
var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".m4v":  "video/x-m4v",
	".flv":  "video/x-flv",
}

var errChannelClosed = errors.New("watcher channel closed")

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	slots         *semaphore
	settleDelay   time.Duration
	wg            sync.WaitGroup
}

// Start begins monitoring the input directory for new video files.
// It returns when ctx is done, after in-flight runs have finished.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	defer w.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errChannelClosed
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !IsVideoFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-video file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New video detected: %s", event.Name)
			if err := w.dispatch(ctx, event.Name); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errChannelClosed
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// dispatch waits for a free slot and hands the file to the handler
func (w *implWatcher) dispatch(ctx context.Context, filePath string) error {
	if err := w.slots.acquire(ctx); err != nil {
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.slots.release()

		select {
		case <-time.After(w.settleDelay):
		case <-ctx.Done():
			return
		}

		if err := w.handler(ctx, filePath); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
		}
	}()
	return nil
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// IsVideoFile checks if the file has a supported video extension
func IsVideoFile(path string) bool {
	_, ok := videoContentTypes[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ContentType returns the video content type for path, or "" when the
// extension is not supported
func ContentType(path string) string {
	return videoContentTypes[strings.ToLower(filepath.Ext(path))]
}
