package processor

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/storage"
	"github.com/nguyentantai21042004/video-insight/internal/transcript"
)

// transcribe runs recognition on the uploaded audio and rebuilds the
// speaker-labelled transcript from the results
func (p *implProcessor) transcribe(ctx context.Context, r *run) error {
	uri := storage.URI(p.cfg.Storage.OutputBucket, r.result.Paths.AudioKey)

	results, err := p.recognizer.Recognize(ctx, uri)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		p.metrics.EmptyRecognition.Inc()
	}

	doc := transcript.Reconstruct(ctx, r.log, results)
	p.metrics.TranscriptChars.Observe(float64(len(doc.Text)))
	r.result.Transcript = doc

	if doc.Text == "" {
		r.log.Warn(ctx, "Transcript is empty; the analysis will receive an empty transcript")
	} else {
		r.log.Debug(ctx, "Partial transcript: %s", logger.Preview(doc.Text, 200))
	}
	return nil
}

func (p *implProcessor) uploadTranscript(ctx context.Context, r *run) error {
	return p.store.Upload(ctx, p.cfg.Storage.OutputBucket, r.result.Paths.TranscriptKey, textContentType,
		strings.NewReader(r.result.Transcript.Text))
}
