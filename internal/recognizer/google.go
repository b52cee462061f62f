package recognizer

import (
	"context"
	"errors"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/nguyentantai21042004/video-insight/internal/models"
)

// Recognize submits a long-running diarized recognition job and blocks
// until it finishes or the configured timeout elapses.
func (r *implRecognizer) Recognize(ctx context.Context, uri string) ([]models.RecognitionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	r.logger.Info(ctx, "Sending %s to Speech-to-Text (timeout %s)", uri, r.cfg.Timeout)

	req := buildRequest(r.cfg, uri)
	r.logger.Debug(ctx, "Recognition config: %s", protojson.Format(req.GetConfig()))

	op, err := r.client.LongRunningRecognize(ctx, req)
	if err != nil {
		return nil, classify(uri, err)
	}

	resp, err := op.Wait(ctx)
	if err != nil {
		return nil, classify(uri, err)
	}

	return fromProto(resp), nil
}

func buildRequest(cfg Config, uri string) *speechpb.LongRunningRecognizeRequest {
	return &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_FLAC,
			SampleRateHertz:            int32(cfg.SampleRateHertz),
			LanguageCode:               cfg.LanguageCode,
			EnableAutomaticPunctuation: true,
			DiarizationConfig: &speechpb.SpeakerDiarizationConfig{
				EnableSpeakerDiarization: true,
				MinSpeakerCount:          int32(cfg.MinSpeakers),
				MaxSpeakerCount:          int32(cfg.MaxSpeakers),
			},
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: uri},
		},
	}
}

// classify wraps err, flagging both local and server-side deadlines as timeouts
func classify(uri string, err error) error {
	timeout := errors.Is(err, context.DeadlineExceeded)
	if st, ok := status.FromError(err); ok && st.Code() == codes.DeadlineExceeded {
		timeout = true
	}
	return &models.RecognitionError{URI: uri, Timeout: timeout, Err: err}
}

func fromProto(resp *speechpb.LongRunningRecognizeResponse) []models.RecognitionResult {
	if resp == nil {
		return nil
	}

	out := make([]models.RecognitionResult, 0, len(resp.GetResults()))
	for _, r := range resp.GetResults() {
		res := models.RecognitionResult{
			Alternatives: make([]models.Alternative, 0, len(r.GetAlternatives())),
		}
		for _, alt := range r.GetAlternatives() {
			a := models.Alternative{
				Transcript: alt.GetTranscript(),
				Confidence: alt.GetConfidence(),
			}
			for _, w := range alt.GetWords() {
				a.Words = append(a.Words, models.WordInfo{
					Word:       w.GetWord(),
					SpeakerTag: int(w.GetSpeakerTag()),
				})
			}
			res.Alternatives = append(res.Alternatives, a)
		}
		out = append(out, res)
	}
	return out
}
