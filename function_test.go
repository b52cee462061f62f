package videoinsight

import (
	"context"
	"strings"
	"testing"

	"github.com/cloudevents/sdk-go/v2/event"
)

func TestTranscribeVideo_ConfigErrorIsReturned(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("INPUT_VIDEO_BUCKET", "same-bucket")
	t.Setenv("TRANSCRIPTION_OUTPUT_BUCKET", "same-bucket")

	for i := 0; i < 2; i++ {
		err := transcribeVideo(context.Background(), event.New())
		if err == nil || !strings.Contains(err.Error(), "load config") {
			t.Fatalf("call %d: err = %v, want config error", i+1, err)
		}
	}
}
