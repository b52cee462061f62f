package extractor

import (
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/pkg/executor"
)

type implExtractor struct {
	binary   string
	executor executor.Executor
	logger   logger.Logger
}

// New creates an ffmpeg-backed Extractor. binary defaults to "ffmpeg".
func New(binary string, exec executor.Executor, log logger.Logger) Extractor {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &implExtractor{
		binary:   binary,
		executor: exec,
		logger:   log,
	}
}
