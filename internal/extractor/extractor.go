package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/video-insight/internal/models"
)

// Args builds the ffmpeg arguments for a mono 16kHz FLAC track
// -vn: drop the video stream
// -acodec flac: lossless, accepted by Speech-to-Text without a header hint
// -ar 16000 / -ac 1: sample rate and channel count the recognizer is configured for
// -y: overwrite a leftover file from an earlier run
func Args(videoPath, audioPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-vn",
		"-acodec", "flac",
		"-ar", "16000",
		"-ac", "1",
		audioPath,
	}
}

// Extract runs ffmpeg and reports the size of the produced audio file.
// An empty output is returned without error so the pipeline can still
// surface an empty transcript.
func (e *implExtractor) Extract(ctx context.Context, videoPath, audioPath string) (int64, error) {
	args := Args(videoPath, audioPath)
	e.logger.Info(ctx, "Executing FFmpeg command: %s %s", e.binary, strings.Join(args, " "))

	res, err := e.executor.Execute(ctx, e.binary, args...)
	if res.Stdout != "" {
		e.logger.Debug(ctx, "FFmpeg stdout: %s", res.Stdout)
	}
	if res.Stderr != "" {
		e.logger.Debug(ctx, "FFmpeg stderr: %s", res.Stderr)
	}
	if err != nil {
		e.logger.Error(ctx, "FFmpeg command failed: %s", strings.TrimSpace(res.Stderr))
		return 0, &models.TranscodeError{Stderr: strings.TrimSpace(res.Stderr), Err: err}
	}

	info, err := os.Stat(audioPath)
	if err != nil {
		return 0, &models.TranscodeError{Err: fmt.Errorf("stat extracted audio: %w", err)}
	}

	if info.Size() == 0 {
		e.logger.Warn(ctx, "FFmpeg extracted an empty audio file; this will result in no transcription")
	} else {
		e.logger.Info(ctx, "Extracted audio to %s (%d bytes)", audioPath, info.Size())
	}

	return info.Size(), nil
}
