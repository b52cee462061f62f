package analyzer

import (
	"context"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
)

// contentGenerator is the subset of *genai.Models the analyzer needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type implAnalyzer struct {
	apiKey    string
	model     string
	softLimit int
	logger    logger.Logger

	newGenerator func(ctx context.Context, apiKey string) (contentGenerator, error)
}

// New creates an Analyzer backed by the Gemini API.
// softLimit is the prompt length above which a warning is logged.
func New(apiKey, model string, softLimit int, log logger.Logger) Analyzer {
	return &implAnalyzer{
		apiKey:       apiKey,
		model:        model,
		softLimit:    softLimit,
		logger:       log,
		newGenerator: newGeminiGenerator,
	}
}

func newGeminiGenerator(ctx context.Context, apiKey string) (contentGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}
