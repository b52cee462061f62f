package processor

import "context"

const (
	audioContentType = "audio/flac"
	textContentType  = "text/plain"
	docxContentType  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// download fetches the uploaded video into the scratch directory
func (p *implProcessor) download(ctx context.Context, r *run) error {
	size, err := p.store.Download(ctx, r.event.Bucket, r.event.Name, r.result.Paths.LocalVideo)
	if err != nil {
		return err
	}
	r.log.Info(ctx, "Downloaded %s (%d bytes)", r.event.Name, size)
	return nil
}

// extractAudio converts the video into mono 16kHz FLAC.
// A zero-byte result is kept: transcription still runs and comes back empty.
func (p *implProcessor) extractAudio(ctx context.Context, r *run) error {
	size, err := p.extractor.Extract(ctx, r.result.Paths.LocalVideo, r.result.Paths.LocalAudio)
	if err != nil {
		return err
	}
	if size == 0 {
		p.metrics.EmptyAudio.Inc()
		r.log.Warn(ctx, "Extracted audio is empty; the source video may be silent or corrupt")
	}
	return nil
}

func (p *implProcessor) uploadAudio(ctx context.Context, r *run) error {
	return p.store.UploadFile(ctx, p.cfg.Storage.OutputBucket, r.result.Paths.AudioKey, audioContentType, r.result.Paths.LocalAudio)
}
