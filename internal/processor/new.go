package processor

import (
	"github.com/nguyentantai21042004/video-insight/internal/analyzer"
	"github.com/nguyentantai21042004/video-insight/internal/config"
	"github.com/nguyentantai21042004/video-insight/internal/extractor"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/metrics"
	"github.com/nguyentantai21042004/video-insight/internal/recognizer"
	"github.com/nguyentantai21042004/video-insight/internal/storage"
)

// Deps are the long-lived collaborators shared by every run
type Deps struct {
	Store      storage.ObjectStore
	Extractor  extractor.Extractor
	Recognizer recognizer.Recognizer
	Analyzer   analyzer.Analyzer
	Metrics    *metrics.Metrics
}

type implProcessor struct {
	cfg        *config.Config
	store      storage.ObjectStore
	extractor  extractor.Extractor
	recognizer recognizer.Recognizer
	analyzer   analyzer.Analyzer
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	return &implProcessor{
		cfg:        cfg,
		store:      deps.Store,
		extractor:  deps.Extractor,
		recognizer: deps.Recognizer,
		analyzer:   deps.Analyzer,
		metrics:    deps.Metrics,
		logger:     log,
	}
}
