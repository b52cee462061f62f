package recognizer

import (
	"context"

	"github.com/nguyentantai21042004/video-insight/internal/models"
)

// Recognizer transcribes an audio object already uploaded to storage
type Recognizer interface {
	Recognize(ctx context.Context, uri string) ([]models.RecognitionResult, error)
}
