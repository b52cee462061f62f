// Package videoinsight is the Cloud Functions entry point. Deploy the module
// root with --entry-point=TranscribeVideo; cmd/function serves the same
// function locally or in a container.
package videoinsight

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/video-insight/internal/app"
	"github.com/nguyentantai21042004/video-insight/internal/config"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/trigger"
)

// EntryPoint is the registered function name
const EntryPoint = "TranscribeVideo"

var (
	setupOnce sync.Once
	handle    func(context.Context, event.Event) error
	setupErr  error
)

func init() {
	functions.CloudEvent(EntryPoint, transcribeVideo)
}

// transcribeVideo builds the clients on the first invocation and reuses
// them for every later one on the same instance
func transcribeVideo(ctx context.Context, e event.Event) error {
	setupOnce.Do(func() {
		handle, setupErr = setup(context.Background())
	})
	if setupErr != nil {
		return setupErr
	}
	return handle(ctx, e)
}

func setup(ctx context.Context) (func(context.Context, event.Event) error, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize: %v", err)
		return nil, err
	}
	log.Info(ctx, "%s ready (input %s, output %s)", EntryPoint, cfg.Storage.InputBucket, cfg.Storage.OutputBucket)

	h := trigger.Handler(a.Processor, log)
	return func(ctx context.Context, e event.Event) error {
		defer a.PushMetrics(ctx)
		return h(ctx, e)
	}, nil
}
