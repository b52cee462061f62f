// Package app wires the long-lived clients and the processor from config.
package app

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nguyentantai21042004/video-insight/internal/analyzer"
	"github.com/nguyentantai21042004/video-insight/internal/config"
	"github.com/nguyentantai21042004/video-insight/internal/extractor"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/metrics"
	"github.com/nguyentantai21042004/video-insight/internal/processor"
	"github.com/nguyentantai21042004/video-insight/internal/recognizer"
	"github.com/nguyentantai21042004/video-insight/internal/storage"
	"github.com/nguyentantai21042004/video-insight/pkg/executor"
)

// App holds everything a runner needs for the lifetime of the process
type App struct {
	Config    *config.Config
	Logger    logger.Logger
	Store     storage.ObjectStore
	Processor processor.Processor
	Metrics   *metrics.Metrics

	closers []func() error
}

// New builds the storage and speech clients once and wires the processor.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: log}

	store, closeStore, err := storage.New(ctx, log)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeStore)

	rec, closeRec, err := recognizer.New(ctx, recognizer.Config{
		LanguageCode:    cfg.Speech.LanguageCode,
		SampleRateHertz: cfg.Speech.SampleRateHertz,
		MinSpeakers:     cfg.Speech.MinSpeakers,
		MaxSpeakers:     cfg.Speech.MaxSpeakers,
		Timeout:         cfg.Speech.Timeout,
	}, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, closeRec)

	a.Store = store
	a.Metrics = metrics.New(prometheus.NewRegistry())
	a.Processor = processor.New(cfg, processor.Deps{
		Store:      store,
		Extractor:  extractor.New(cfg.FFmpeg.BinaryPath, executor.New(), log),
		Recognizer: rec,
		Analyzer:   analyzer.New(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.PromptSoftLimit, log),
		Metrics:    a.Metrics,
	}, log)

	return a, nil
}

// PushMetrics sends the run metrics to the configured Pushgateway, if any.
// Failures are logged only.
func (a *App) PushMetrics(ctx context.Context) {
	if err := a.Metrics.Push(a.Config.Metrics.PushgatewayURL, a.Config.Metrics.Job); err != nil {
		a.Logger.Warn(ctx, "Failed to push metrics: %v", err)
	}
}

// Close releases the clients
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
