package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
)

const (
	defaultMaxConcurrent = 2
	defaultSettleDelay   = 500 * time.Millisecond
)

// Option tweaks a Watcher
type Option func(*implWatcher)

// WithSettleDelay sets how long to wait after a create event before the
// file is handed over, so that copies can finish writing.
func WithSettleDelay(d time.Duration) Option {
	return func(w *implWatcher) { w.settleDelay = d }
}

// New creates a new Watcher instance with concurrency control
func New(inputDir string, handler EventHandler, log logger.Logger, maxConcurrent int, opts ...Option) (Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fw.Add(inputDir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	w := &implWatcher{
		inputDir:      inputDir,
		handler:       handler,
		logger:        log,
		watcher:       fw,
		maxConcurrent: maxConcurrent,
		slots:         newSemaphore(maxConcurrent),
		settleDelay:   defaultSettleDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}
