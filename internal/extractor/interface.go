package extractor

import "context"

// Extractor produces a recognizer-ready audio track from a video file
type Extractor interface {
	// Extract writes the audio for videoPath to audioPath and returns its size in bytes
	Extract(ctx context.Context, videoPath, audioPath string) (int64, error)
}
