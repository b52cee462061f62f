package storage

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
)

type implStore struct {
	client *gcs.Client
	logger logger.Logger
}

// New creates a Cloud Storage backed ObjectStore.
// The client is meant to live for the whole process and be shared by runs.
func New(ctx context.Context, log logger.Logger) (ObjectStore, func() error, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("create storage client: %w", err)
	}
	return newWithClient(client, log), client.Close, nil
}

func newWithClient(client *gcs.Client, log logger.Logger) *implStore {
	return &implStore{client: client, logger: log}
}
