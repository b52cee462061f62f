package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/video-insight/internal/app"
	"github.com/nguyentantai21042004/video-insight/internal/config"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/models"
	"github.com/nguyentantai21042004/video-insight/internal/processor"
	"github.com/nguyentantai21042004/video-insight/internal/watcher"
)

// CLI flags
var (
	configFlag      string
	bucketFlag      string
	nameFlag        string
	contentTypeFlag string
	dirFlag         string
)

var rootCmd = &cobra.Command{
	Use:   "video-insight",
	Short: "Transcribe uploaded sales-call videos and analyze them with Gemini",
	Long: `video-insight runs the upload pipeline outside the Cloud Functions runtime.

Examples:
  video-insight run --bucket my-input --name calls/clip1.mp4 --content-type video/mp4
  video-insight watch --dir ./drop`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process one object already uploaded to the input bucket",
	RunE:  runOnce,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Upload and process videos dropped into a local directory",
	RunE:  runWatch,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Optional YAML config file")

	runCmd.Flags().StringVar(&bucketFlag, "bucket", "", "Bucket of the uploaded object (default: configured input bucket)")
	runCmd.Flags().StringVar(&nameFlag, "name", "", "Object name of the uploaded video")
	runCmd.Flags().StringVar(&contentTypeFlag, "content-type", "video/mp4", "Content type of the uploaded object")
	_ = runCmd.MarkFlagRequired("name")

	watchCmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Drop folder to watch (default: watch.dir from config)")

	rootCmd.AddCommand(runCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads .env, the config and the logger, then wires the app
func setup(ctx context.Context) (*app.App, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize: %v", err)
		return nil, err
	}
	return a, nil
}

func runOnce(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.PushMetrics(ctx)

	bucket := bucketFlag
	if bucket == "" {
		bucket = a.Config.Storage.InputBucket
	}

	res, err := a.Processor.Process(ctx, models.UploadEvent{
		Bucket:      bucket,
		Name:        nameFlag,
		ContentType: contentTypeFlag,
	})
	if err != nil {
		return err
	}

	if res.State == processor.StateSkipped {
		fmt.Printf("Skipped %s: %s\n", nameFlag, res.SkipReason)
		return nil
	}
	fmt.Printf("Run %s done\n", res.RunID)
	fmt.Printf("  transcript: %s\n", res.Paths.TranscriptKey)
	fmt.Printf("  analysis:   %s\n", res.Paths.AnalysisKey)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	dir := dirFlag
	if dir == "" {
		dir = a.Config.Watch.Dir
	}
	if dir == "" {
		return errors.New("no drop folder: pass --dir or set watch.dir")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create drop folder %s: %w", dir, err)
	}

	handler := watcher.UploadHandler(a.Store, a.Config.Storage.InputBucket, a.Processor, a.Logger)
	w, err := watcher.New(dir, func(ctx context.Context, filePath string) error {
		defer a.PushMetrics(ctx)
		return handler(ctx, filePath)
	}, a.Logger, a.Config.Watch.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	a.Logger.Info(ctx, "Drop videos into %s. Press Ctrl+C to stop", dir)
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.Logger.Info(ctx, "Watcher stopped")
	return nil
}
