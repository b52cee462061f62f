package processor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/nguyentantai21042004/video-insight/internal/config"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/metrics"
	"github.com/nguyentantai21042004/video-insight/internal/models"
)

type upload struct {
	bucket, key, contentType, body string
}

type fakeStore struct {
	mu           sync.Mutex
	downloads    int
	uploads      []upload
	failDownload error
	failKey      string
	failUpload   error
}

func (f *fakeStore) Download(ctx context.Context, bucket, key, localPath string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloads++
	if f.failDownload != nil {
		return 0, f.failDownload
	}
	data := []byte("video-bytes")
	if err := os.WriteFile(localPath, data, 0644); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func (f *fakeStore) Upload(ctx context.Context, bucket, key, contentType string, r io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failKey == key {
		return f.failUpload
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.uploads = append(f.uploads, upload{bucket, key, contentType, string(b)})
	return nil
}

func (f *fakeStore) UploadFile(ctx context.Context, bucket, key, contentType, localPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failKey == key {
		return f.failUpload
	}
	b, err := os.ReadFile(localPath)
	if err != nil {
		return err
	}
	f.uploads = append(f.uploads, upload{bucket, key, contentType, string(b)})
	return nil
}

type fakeExtractor struct {
	mu         sync.Mutex
	calls      int
	audio      string
	audioPaths []string
	err        error
}

func (f *fakeExtractor) Extract(ctx context.Context, videoPath, audioPath string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.audioPaths = append(f.audioPaths, audioPath)
	if f.err != nil {
		return 0, f.err
	}
	if err := os.WriteFile(audioPath, []byte(f.audio), 0644); err != nil {
		return 0, err
	}
	return int64(len(f.audio)), nil
}

type fakeRecognizer struct {
	mu      sync.Mutex
	calls   int
	uri     string
	results []models.RecognitionResult
	err     error
}

func (f *fakeRecognizer) Recognize(ctx context.Context, uri string) ([]models.RecognitionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.uri = uri
	return f.results, f.err
}

type fakeAnalyzer struct {
	mu         sync.Mutex
	calls      int
	transcript string
	text       string
	err        error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, transcript string) (models.AnalysisDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.transcript = transcript
	if f.err != nil {
		return models.AnalysisDocument{}, f.err
	}
	return models.AnalysisDocument{Text: f.text, Model: "test-model"}, nil
}

type fixture struct {
	cfg        *config.Config
	store      *fakeStore
	extractor  *fakeExtractor
	recognizer *fakeRecognizer
	analyzer   *fakeAnalyzer
	metrics    *metrics.Metrics
	logs       *bytes.Buffer
	proc       Processor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.InputBucket = "in-bucket"
	cfg.Storage.OutputBucket = "out-bucket"
	cfg.Gemini.APIKey = "key"
	cfg.Paths.Scratch = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	f := &fixture{
		cfg:       cfg,
		store:     &fakeStore{},
		extractor: &fakeExtractor{audio: "flac-bytes"},
		recognizer: &fakeRecognizer{results: []models.RecognitionResult{
			{Alternatives: []models.Alternative{{
				Transcript: "hello there hi",
				Words: []models.WordInfo{
					{Word: "hello", SpeakerTag: 1},
					{Word: "there", SpeakerTag: 1},
					{Word: "hi", SpeakerTag: 2},
				},
			}}},
		}},
		analyzer: &fakeAnalyzer{text: "## Pain\n- budget"},
		metrics:  metrics.New(prometheus.NewRegistry()),
		logs:     &bytes.Buffer{},
	}
	f.rebuild()
	return f
}

func (f *fixture) rebuild() {
	f.proc = New(f.cfg, Deps{
		Store:      f.store,
		Extractor:  f.extractor,
		Recognizer: f.recognizer,
		Analyzer:   f.analyzer,
		Metrics:    f.metrics,
	}, logger.NewWithWriter("debug", f.logs))
}

func videoEvent() models.UploadEvent {
	return models.UploadEvent{Bucket: "in-bucket", Name: "calls/clip1.mp4", ContentType: "video/mp4"}
}

func assertScratchEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("scratch dir not cleaned: %v", names)
	}
}

func TestProcess_HappyPath(t *testing.T) {
	f := newFixture(t)

	res, err := f.proc.Process(context.Background(), videoEvent())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.State != StateDone {
		t.Errorf("State = %s, want %s", res.State, StateDone)
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}

	want := []upload{
		{"out-bucket", "audio/clip1.flac", "audio/flac", "flac-bytes"},
		{"out-bucket", "transcripts/clip1.txt", "text/plain", "Speaker 1: hello there\nSpeaker 2: hi\n"},
		{"out-bucket", "analysis/clip1_analysis.txt", "text/plain", "## Pain\n- budget"},
	}
	if len(f.store.uploads) != len(want) {
		t.Fatalf("uploads = %+v, want %d", f.store.uploads, len(want))
	}
	for i, w := range want {
		if f.store.uploads[i] != w {
			t.Errorf("upload[%d] = %+v, want %+v", i, f.store.uploads[i], w)
		}
	}

	if f.recognizer.uri != "gs://out-bucket/audio/clip1.flac" {
		t.Errorf("recognizer uri = %q", f.recognizer.uri)
	}
	if f.analyzer.transcript != "Speaker 1: hello there\nSpeaker 2: hi\n" {
		t.Errorf("analyzer transcript = %q", f.analyzer.transcript)
	}
	if !res.Transcript.Diarized || res.Transcript.Speakers != 2 {
		t.Errorf("Transcript = %+v", res.Transcript)
	}

	assertScratchEmpty(t, f.cfg.Paths.Scratch)

	if got := testutil.ToFloat64(f.metrics.Runs.WithLabelValues(metrics.OutcomeDone)); got != 1 {
		t.Errorf("runs{done} = %v, want 1", got)
	}
	if !strings.Contains(f.logs.String(), res.RunID) {
		t.Error("run id missing from logs")
	}
}

func TestProcess_Skips(t *testing.T) {
	tests := []struct {
		name  string
		event models.UploadEvent
	}{
		{"bucket mismatch", models.UploadEvent{Bucket: "other", Name: "a.mp4", ContentType: "video/mp4"}},
		{"non-video", models.UploadEvent{Bucket: "in-bucket", Name: "notes.pdf", ContentType: "application/pdf"}},
		{"empty content type", models.UploadEvent{Bucket: "in-bucket", Name: "a.mp4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			res, err := f.proc.Process(context.Background(), tt.event)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if res.State != StateSkipped || res.SkipReason == "" {
				t.Errorf("res = %+v, want skipped with reason", res)
			}
			if f.store.downloads != 0 || len(f.store.uploads) != 0 || f.extractor.calls != 0 ||
				f.recognizer.calls != 0 || f.analyzer.calls != 0 {
				t.Error("skipped run touched a collaborator")
			}
			if got := testutil.ToFloat64(f.metrics.Runs.WithLabelValues(metrics.OutcomeSkipped)); got != 1 {
				t.Errorf("runs{skipped} = %v, want 1", got)
			}
		})
	}
}

func TestProcess_MissingAPIKey(t *testing.T) {
	f := newFixture(t)
	f.cfg.Gemini.APIKey = ""
	f.rebuild()

	res, err := f.proc.Process(context.Background(), videoEvent())

	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if res.State != StateFailed {
		t.Errorf("State = %s, want failed", res.State)
	}
	if f.store.downloads != 0 || f.recognizer.calls != 0 || f.analyzer.calls != 0 {
		t.Error("collaborators called without credential")
	}
}

func TestProcess_MalformedName(t *testing.T) {
	f := newFixture(t)

	_, err := f.proc.Process(context.Background(), models.UploadEvent{Bucket: "in-bucket", Name: "folder/", ContentType: "video/mp4"})

	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if f.store.downloads != 0 {
		t.Error("download attempted for malformed name")
	}
	assertScratchEmpty(t, f.cfg.Paths.Scratch)
}

func TestProcess_StageFailures(t *testing.T) {
	storageErr := &models.StorageError{Op: models.OpUpload, Bucket: "out-bucket", Err: errors.New("denied")}

	tests := []struct {
		name    string
		setup   func(f *fixture)
		stage   string
		reached State
		target  interface{}
		uploads int
	}{
		{
			name: "download",
			setup: func(f *fixture) {
				f.store.failDownload = &models.StorageError{Op: models.OpDownload, Bucket: "in-bucket", Key: "calls/clip1.mp4", Err: errors.New("404")}
			},
			stage:   "download",
			reached: StateValidated,
			target:  new(*models.StorageError),
		},
		{
			name:    "transcode",
			setup:   func(f *fixture) { f.extractor.err = &models.TranscodeError{Stderr: "bad input", Err: errors.New("exit 1")} },
			stage:   "extract_audio",
			reached: StateDownloaded,
			target:  new(*models.TranscodeError),
		},
		{
			name: "upload audio",
			setup: func(f *fixture) {
				f.store.failKey = "audio/clip1.flac"
				f.store.failUpload = storageErr
			},
			stage:   "upload_audio",
			reached: StateAudioExtracted,
			target:  new(*models.StorageError),
		},
		{
			name:    "recognition timeout",
			setup:   func(f *fixture) { f.recognizer.err = &models.RecognitionError{URI: "gs://x", Timeout: true, Err: context.DeadlineExceeded} },
			stage:   "transcribe",
			reached: StateAudioUploaded,
			target:  new(*models.RecognitionError),
			uploads: 1,
		},
		{
			name: "upload transcript",
			setup: func(f *fixture) {
				f.store.failKey = "transcripts/clip1.txt"
				f.store.failUpload = storageErr
			},
			stage:   "upload_transcript",
			reached: StateTranscribed,
			target:  new(*models.StorageError),
			uploads: 1,
		},
		{
			name:    "analysis",
			setup:   func(f *fixture) { f.analyzer.err = &models.AnalysisError{Model: "m", Err: models.ErrEmptyResponse} },
			stage:   "analyze",
			reached: StateTranscriptUploaded,
			target:  new(*models.AnalysisError),
			uploads: 2,
		},
		{
			name: "upload analysis",
			setup: func(f *fixture) {
				f.store.failKey = "analysis/clip1_analysis.txt"
				f.store.failUpload = storageErr
			},
			stage:   "upload_analysis",
			reached: StateAnalyzed,
			target:  new(*models.StorageError),
			uploads: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.proc.Process(context.Background(), videoEvent())
			if err == nil {
				t.Fatal("Process() error = nil, want failure")
			}
			if !strings.HasPrefix(err.Error(), tt.stage+": ") {
				t.Errorf("err = %q, want stage prefix %q", err, tt.stage)
			}
			if !errors.As(err, tt.target) {
				t.Errorf("err = %v, want %T", err, tt.target)
			}
			if res.State != StateFailed || res.Reached != tt.reached {
				t.Errorf("State/Reached = %s/%s, want failed/%s", res.State, res.Reached, tt.reached)
			}
			if len(f.store.uploads) != tt.uploads {
				t.Errorf("uploads = %d, want %d", len(f.store.uploads), tt.uploads)
			}

			assertScratchEmpty(t, f.cfg.Paths.Scratch)

			if got := testutil.ToFloat64(f.metrics.StageFailures.WithLabelValues(tt.stage)); got != 1 {
				t.Errorf("stage_failures{%s} = %v, want 1", tt.stage, got)
			}
			if got := testutil.ToFloat64(f.metrics.Runs.WithLabelValues(metrics.OutcomeFailed)); got != 1 {
				t.Errorf("runs{failed} = %v, want 1", got)
			}
			if !strings.Contains(f.logs.String(), `"stage":"`+tt.stage+`"`) {
				t.Errorf("failure log missing stage %s", tt.stage)
			}
		})
	}
}

func TestProcess_EmptyAudioStillRuns(t *testing.T) {
	f := newFixture(t)
	f.extractor.audio = ""
	f.recognizer.results = nil

	res, err := f.proc.Process(context.Background(), videoEvent())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.State != StateDone {
		t.Errorf("State = %s, want done", res.State)
	}
	if f.analyzer.calls != 1 || f.analyzer.transcript != "" {
		t.Errorf("analyzer calls=%d transcript=%q", f.analyzer.calls, f.analyzer.transcript)
	}
	if got := testutil.ToFloat64(f.metrics.EmptyAudio); got != 1 {
		t.Errorf("empty_audio = %v, want 1", got)
	}
	if got := testutil.ToFloat64(f.metrics.EmptyRecognition); got != 1 {
		t.Errorf("empty_recognition = %v, want 1", got)
	}
}

func TestProcess_DocxReport(t *testing.T) {
	f := newFixture(t)
	f.cfg.Report.Docx = true
	f.rebuild()

	if _, err := f.proc.Process(context.Background(), videoEvent()); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(f.store.uploads) != 4 {
		t.Fatalf("uploads = %d, want 4", len(f.store.uploads))
	}
	last := f.store.uploads[3]
	if last.key != "analysis/clip1_analysis.docx" || last.contentType != docxContentType {
		t.Errorf("report upload = %s (%s)", last.key, last.contentType)
	}
	assertScratchEmpty(t, f.cfg.Paths.Scratch)
}

func TestProcess_DocxReportFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.cfg.Report.Docx = true
	f.store.failKey = "analysis/clip1_analysis.docx"
	f.store.failUpload = errors.New("boom")
	f.rebuild()

	res, err := f.proc.Process(context.Background(), videoEvent())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.State != StateDone {
		t.Errorf("State = %s, want done", res.State)
	}
}

// gatedRecognizer holds the first call until release is closed
type gatedRecognizer struct {
	inner   *fakeRecognizer
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gatedRecognizer) Recognize(ctx context.Context, uri string) ([]models.RecognitionResult, error) {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.inner.Recognize(ctx, uri)
}

func TestProcess_OverlappingRunsKeepSeparateScratch(t *testing.T) {
	f := newFixture(t)
	gate := &gatedRecognizer{
		inner:   f.recognizer,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	f.proc = New(f.cfg, Deps{
		Store:      f.store,
		Extractor:  f.extractor,
		Recognizer: gate,
		Analyzer:   f.analyzer,
		Metrics:    f.metrics,
	}, logger.NewWithWriter("debug", io.Discard))

	type outcome struct {
		res Result
		err error
	}
	first := make(chan outcome, 1)
	go func() {
		res, err := f.proc.Process(context.Background(), models.UploadEvent{Bucket: "in-bucket", Name: "a/clip1.mp4", ContentType: "video/mp4"})
		first <- outcome{res, err}
	}()

	select {
	case <-gate.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first run never reached recognition")
	}

	second, err := f.proc.Process(context.Background(), models.UploadEvent{Bucket: "in-bucket", Name: "b/clip1.mov", ContentType: "video/quicktime"})
	if err != nil {
		t.Fatalf("second run error = %v", err)
	}

	f.extractor.mu.Lock()
	firstAudio := f.extractor.audioPaths[0]
	f.extractor.mu.Unlock()

	if _, err := os.Stat(firstAudio); err != nil {
		t.Errorf("in-flight audio %s removed by the other run: %v", firstAudio, err)
	}

	close(gate.release)
	got := <-first
	if got.err != nil {
		t.Fatalf("first run error = %v", got.err)
	}
	if got.res.State != StateDone || second.State != StateDone {
		t.Errorf("states = %s, %s; want done, done", got.res.State, second.State)
	}
	if got.res.Paths.RunDir == second.Paths.RunDir {
		t.Errorf("runs shared scratch dir %s", got.res.Paths.RunDir)
	}
	assertScratchEmpty(t, f.cfg.Paths.Scratch)
}

func TestCleanup(t *testing.T) {
	f := newFixture(t)
	impl := f.proc.(*implProcessor)
	log := logger.NewWithWriter("debug", io.Discard)

	dir, err := impl.makeRunDir("abc")
	if err != nil {
		t.Fatalf("makeRunDir: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(dir), "run-abc-") {
		t.Errorf("run dir = %s", dir)
	}
	if err := os.WriteFile(filepath.Join(dir, "clip1.flac"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	impl.cleanup(context.Background(), log, dir)
	impl.cleanup(context.Background(), log, dir)
	impl.cleanup(context.Background(), log, "")

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("run dir still present: %v", err)
	}
	assertScratchEmpty(t, f.cfg.Paths.Scratch)
}
