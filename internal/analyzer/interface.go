package analyzer

import (
	"context"

	"github.com/nguyentantai21042004/video-insight/internal/models"
)

// Analyzer asks an LLM for a qualitative review of a sales-call transcript.
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) (models.AnalysisDocument, error)
}
