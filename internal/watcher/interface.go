package watcher

import "context"

// Watcher monitors a local drop folder and runs the pipeline for new videos
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles file events
type EventHandler func(ctx context.Context, filePath string) error
