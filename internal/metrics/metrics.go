// Package metrics provides Prometheus metrics for pipeline runs.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "video_insight"

// Run outcomes
const (
	OutcomeDone    = "done"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Metrics holds all Prometheus metrics for the pipeline.
type Metrics struct {
	Runs             *prometheus.CounterVec
	StageDuration    *prometheus.HistogramVec
	StageFailures    *prometheus.CounterVec
	TranscriptChars  prometheus.Histogram
	EmptyRecognition prometheus.Counter
	EmptyAudio       prometheus.Counter

	gatherer prometheus.Gatherer
}

// New creates the metrics and registers them on reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total pipeline runs by outcome",
		}, []string{"outcome"}),
		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"stage"}),
		StageFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Total fatal failures by stage",
		}, []string{"stage"}),
		TranscriptChars: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcript_characters",
			Help:      "Length of reconstructed transcripts",
			Buckets:   prometheus.ExponentialBuckets(100, 4, 8),
		}),
		EmptyRecognition: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_recognition_total",
			Help:      "Runs where Speech-to-Text returned no results",
		}),
		EmptyAudio: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_audio_total",
			Help:      "Runs where ffmpeg produced a zero-byte audio file",
		}),
		gatherer: reg,
	}
}

// RecordRun records a finished run.
func (m *Metrics) RecordRun(outcome string) {
	m.Runs.WithLabelValues(outcome).Inc()
}

// RecordStage records how long a stage took and whether it failed.
func (m *Metrics) RecordStage(stage string, seconds float64, err error) {
	m.StageDuration.WithLabelValues(stage).Observe(seconds)
	if err != nil {
		m.StageFailures.WithLabelValues(stage).Inc()
	}
}

// Push sends the current values to a Pushgateway. No-op when url is empty.
func (m *Metrics) Push(url, job string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(m.gatherer).Push(); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
