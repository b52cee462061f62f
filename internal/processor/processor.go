package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/metrics"
	"github.com/nguyentantai21042004/video-insight/internal/models"
	"github.com/nguyentantai21042004/video-insight/internal/paths"
	"github.com/nguyentantai21042004/video-insight/internal/storage"
)

// run is the state owned by a single invocation
type run struct {
	event  models.UploadEvent
	log    logger.Logger
	result *Result
}

// Process validates the event, runs every stage in order and removes the
// scratch files on the way out, whatever happened.
func (p *implProcessor) Process(ctx context.Context, event models.UploadEvent) (res Result, err error) {
	startTime := time.Now()
	res = Result{RunID: uuid.NewString(), State: StateReceived, Reached: StateReceived}

	r := &run{
		event:  event,
		log:    p.logger.With("runId", res.RunID).With("object", event.Name),
		result: &res,
	}

	r.log.Info(ctx, "Received upload event for %s in bucket %s (content type %q)", event.Name, event.Bucket, event.ContentType)

	defer func() {
		outcome := metrics.OutcomeDone
		switch res.State {
		case StateSkipped:
			outcome = metrics.OutcomeSkipped
		case StateFailed:
			outcome = metrics.OutcomeFailed
		}
		p.metrics.RecordRun(outcome)
	}()

	if p.cfg.Gemini.APIKey == "" {
		err = p.fail(ctx, r, "validate", &models.ValidationError{Field: "GEMINI_API_KEY", Reason: "is required"})
		return res, err
	}

	if event.Bucket != p.cfg.Storage.InputBucket {
		return p.skip(ctx, r, fmt.Sprintf("unexpected bucket %s, expected %s", event.Bucket, p.cfg.Storage.InputBucket)), nil
	}
	if !event.IsVideo() {
		return p.skip(ctx, r, fmt.Sprintf("non-video content type %q", event.ContentType)), nil
	}

	runDir, derr := p.makeRunDir(res.RunID)
	if derr != nil {
		err = p.fail(ctx, r, "prepare", derr)
		return res, err
	}
	defer p.cleanup(ctx, r.log, runDir)

	artifacts, rerr := paths.Resolve(event.Name, runDir)
	if rerr != nil {
		err = p.fail(ctx, r, "validate", rerr)
		return res, err
	}
	res.Paths = artifacts
	p.advance(ctx, r, StateValidated)

	if err = p.runStages(ctx, r); err != nil {
		return res, err
	}

	res.State = StateDone
	res.Reached = StateDone
	r.log.Info(ctx, "Processing completed in %s: %s, %s, %s",
		time.Since(startTime).Round(time.Millisecond),
		storage.URI(p.cfg.Storage.OutputBucket, artifacts.AudioKey),
		storage.URI(p.cfg.Storage.OutputBucket, artifacts.TranscriptKey),
		storage.URI(p.cfg.Storage.OutputBucket, artifacts.AnalysisKey))

	return res, nil
}

// runStages executes the stages after validation. The first error stops the run.
func (p *implProcessor) runStages(ctx context.Context, r *run) error {
	steps := []struct {
		name string
		next State
		fn   func(context.Context, *run) error
	}{
		{"download", StateDownloaded, p.download},
		{"extract_audio", StateAudioExtracted, p.extractAudio},
		{"upload_audio", StateAudioUploaded, p.uploadAudio},
		{"transcribe", StateTranscribed, p.transcribe},
		{"upload_transcript", StateTranscriptUploaded, p.uploadTranscript},
		{"analyze", StateAnalyzed, p.analyze},
		{"upload_analysis", StateAnalysisUploaded, p.uploadAnalysis},
	}

	for _, step := range steps {
		started := time.Now()
		err := step.fn(ctx, r)
		p.metrics.RecordStage(step.name, time.Since(started).Seconds(), err)
		if err != nil {
			return p.fail(ctx, r, step.name, err)
		}
		p.advance(ctx, r, step.next)
	}

	if p.cfg.Report.Docx {
		p.writeReport(ctx, r)
	}
	return nil
}

func (p *implProcessor) advance(ctx context.Context, r *run, next State) {
	r.result.State = next
	r.result.Reached = next
	r.log.Debug(ctx, "State -> %s", next)
}

func (p *implProcessor) skip(ctx context.Context, r *run, reason string) Result {
	r.log.Warn(ctx, "Skipping event: %s", reason)
	r.result.State = StateSkipped
	r.result.SkipReason = reason
	return *r.result
}

// fail marks the run failed, logs the full context and returns the
// error wrapped with the stage name for the invoking runtime.
func (p *implProcessor) fail(ctx context.Context, r *run, stage string, err error) error {
	r.result.State = StateFailed
	r.log.With("stage", stage).With("reached", string(r.result.Reached)).Error(ctx,
		"Run failed: bucket=%s object=%s content_type=%s paths=%+v: %v",
		r.event.Bucket, r.event.Name, r.event.ContentType, r.result.Paths, err)
	return fmt.Errorf("%s: %w", stage, err)
}
