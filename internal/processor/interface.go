package processor

import (
	"context"

	"github.com/nguyentantai21042004/video-insight/internal/models"
)

// Processor runs the video → transcript → analysis pipeline for one upload event
type Processor interface {
	Process(ctx context.Context, event models.UploadEvent) (Result, error)
}

// Result describes how far a run got
type Result struct {
	RunID string
	State State
	// Reached is the last state completed before the run ended
	Reached    State
	SkipReason string
	Paths      models.ArtifactPaths
	Transcript models.TranscriptDocument
	Analysis   models.AnalysisDocument
}
