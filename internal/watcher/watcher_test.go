package watcher

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/models"
	"github.com/nguyentantai21042004/video-insight/internal/processor"
)

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/in/call.mp4", true},
		{"/in/CALL.MOV", true},
		{"clip.webm", true},
		{"notes.txt", false},
		{"archive.mp4.part", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := IsVideoFile(tt.path); got != tt.want {
			t.Errorf("IsVideoFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"a.mp4":  "video/mp4",
		"a.MOV":  "video/quicktime",
		"a.mkv":  "video/x-matroska",
		"a.docx": "",
	}
	for path, want := range tests {
		if got := ContentType(path); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSemaphore(t *testing.T) {
	s := newSemaphore(1)
	ctx := context.Background()

	if err := s.acquire(ctx); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := s.acquire(blocked); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("second acquire err = %v, want deadline exceeded", err)
	}

	s.release()
	if err := s.acquire(ctx); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}

type recordingStore struct {
	mu      sync.Mutex
	uploads []models.UploadEvent
	err     error
}

func (s *recordingStore) Download(ctx context.Context, bucket, key, localPath string) (int64, error) {
	return 0, errors.New("not used")
}

func (s *recordingStore) Upload(ctx context.Context, bucket, key, contentType string, r io.Reader) error {
	return errors.New("not used")
}

func (s *recordingStore) UploadFile(ctx context.Context, bucket, key, contentType, localPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.uploads = append(s.uploads, models.UploadEvent{Bucket: bucket, Name: key, ContentType: contentType})
	return nil
}

type recordingProcessor struct {
	events chan models.UploadEvent
	err    error
}

func (p *recordingProcessor) Process(ctx context.Context, event models.UploadEvent) (processor.Result, error) {
	p.events <- event
	return processor.Result{RunID: "run-1", State: processor.StateDone}, p.err
}

func TestUploadHandler(t *testing.T) {
	store := &recordingStore{}
	proc := &recordingProcessor{events: make(chan models.UploadEvent, 1)}
	h := UploadHandler(store, "in-bucket", proc, logger.NewWithWriter("debug", io.Discard))

	if err := h(context.Background(), "/drop/calls/clip1.mov"); err != nil {
		t.Fatalf("handler: %v", err)
	}

	want := models.UploadEvent{Bucket: "in-bucket", Name: "clip1.mov", ContentType: "video/quicktime"}
	if len(store.uploads) != 1 || store.uploads[0] != want {
		t.Errorf("uploads = %+v, want %+v", store.uploads, want)
	}
	if got := <-proc.events; got != want {
		t.Errorf("processed event = %+v, want %+v", got, want)
	}
}

func TestUploadHandler_UploadFailureSkipsProcessing(t *testing.T) {
	store := &recordingStore{err: errors.New("denied")}
	proc := &recordingProcessor{events: make(chan models.UploadEvent, 1)}
	h := UploadHandler(store, "in-bucket", proc, logger.NewWithWriter("debug", io.Discard))

	if err := h(context.Background(), "/drop/clip1.mp4"); err == nil {
		t.Fatal("handler error = nil, want upload failure")
	}
	if len(proc.events) != 0 {
		t.Error("processor ran after failed upload")
	}
}

func TestWatcher_DispatchesNewVideos(t *testing.T) {
	dir := t.TempDir()
	handled := make(chan string, 4)
	handler := func(ctx context.Context, filePath string) error {
		handled <- filepath.Base(filePath)
		return nil
	}

	w, err := New(dir, handler, logger.NewWithWriter("debug", io.Discard), 1, WithSettleDelay(time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Give the event loop a moment before writing.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-handled:
		if name != "clip.mp4" {
			t.Errorf("handled %q, want clip.mp4", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("video was not dispatched")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() = %v, want context.Canceled", err)
	}
}
