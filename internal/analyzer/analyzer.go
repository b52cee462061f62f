package analyzer

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/models"
)

const (
	shortPromptChars = 500
	previewChars     = 1000
)

// Analyze sends the transcript to Gemini and returns the response text
// unchanged. There are no retries; any failure is returned to the caller.
func (a *implAnalyzer) Analyze(ctx context.Context, transcript string) (models.AnalysisDocument, error) {
	if a.apiKey == "" {
		return models.AnalysisDocument{}, &models.ValidationError{Field: "GEMINI_API_KEY", Reason: "is required"}
	}

	prompt := BuildPrompt(transcript)
	a.logPrompt(ctx, prompt)

	gen, err := a.newGenerator(ctx, a.apiKey)
	if err != nil {
		return models.AnalysisDocument{}, &models.AnalysisError{Model: a.model, Err: fmt.Errorf("create client: %w", err)}
	}

	a.logger.Info(ctx, "Sending prompt to %s for analysis", a.model)
	result, err := gen.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		return models.AnalysisDocument{}, &models.AnalysisError{Model: a.model, Err: fmt.Errorf("generate content: %w", err)}
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return models.AnalysisDocument{}, &models.AnalysisError{Model: a.model, Err: models.ErrEmptyResponse}
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text += part.Text
		}
	}

	a.logger.Info(ctx, "Gemini analysis complete: %d characters", len(text))
	a.logger.Debug(ctx, "Partial analysis: %s", logger.Preview(text, 200))

	return models.AnalysisDocument{
		Text:        text,
		Model:       a.model,
		PromptChars: len(prompt),
	}, nil
}

// logPrompt reports prompt size. The soft limit only warns; oversized
// prompts are still sent in full.
func (a *implAnalyzer) logPrompt(ctx context.Context, prompt string) {
	a.logger.Info(ctx, "Prompt length: %d characters", len(prompt))

	switch {
	case a.softLimit > 0 && len(prompt) > a.softLimit:
		a.logger.Warn(ctx, "Prompt exceeds soft limit of %d characters; sending it unchanged", a.softLimit)
		a.logger.Info(ctx, "Prompt preview: %s", logger.Preview(prompt, previewChars))
	case len(prompt) < shortPromptChars:
		a.logger.Info(ctx, "Prompt preview: %s", logger.Preview(prompt, previewChars))
	}
}
