// Package trigger adapts storage CloudEvents to pipeline runs.
package trigger

import (
	"context"
	"fmt"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/models"
	"github.com/nguyentantai21042004/video-insight/internal/processor"
)

// Handler returns the CloudEvent entry point. The processor's error is
// returned as is so the runtime marks the invocation as failed.
func Handler(proc processor.Processor, log logger.Logger) func(context.Context, event.Event) error {
	return func(ctx context.Context, e event.Event) error {
		upload, err := Decode(e)
		if err != nil {
			log.Error(ctx, "Rejecting event %s: %v", e.ID(), err)
			return err
		}

		log.Debug(ctx, "Event %s (%s) for gs://%s/%s", e.ID(), e.Type(), upload.Bucket, upload.Name)
		_, err = proc.Process(ctx, upload)
		return err
	}
}

// Decode extracts the upload notification carried by a storage event
func Decode(e event.Event) (models.UploadEvent, error) {
	var upload models.UploadEvent
	if len(e.Data()) == 0 {
		return upload, &models.ValidationError{Field: "data", Reason: "event has no payload"}
	}
	if err := e.DataAs(&upload); err != nil {
		return upload, &models.ValidationError{Field: "data", Reason: fmt.Sprintf("decode storage object: %v", err)}
	}
	return upload, nil
}
