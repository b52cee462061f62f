package recognizer

import (
	"context"
	"fmt"
	"time"

	speech "cloud.google.com/go/speech/apiv1"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
)

// Config holds the recognition settings sent with every request
type Config struct {
	LanguageCode    string
	SampleRateHertz int
	MinSpeakers     int
	MaxSpeakers     int
	Timeout         time.Duration
}

type implRecognizer struct {
	client *speech.Client
	cfg    Config
	logger logger.Logger
}

// New creates a Google Cloud Speech-to-Text recognizer and returns the
// function releasing its client. Credentials come from the environment (ADC).
func New(ctx context.Context, cfg Config, log logger.Logger) (Recognizer, func() error, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("create speech client: %w", err)
	}
	return &implRecognizer{client: c, cfg: cfg, logger: log}, c.Close, nil
}
