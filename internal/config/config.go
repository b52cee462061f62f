package config

import (
	"fmt"
	"time"
)

// Config is the full pipeline configuration
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Speech  SpeechConfig  `yaml:"speech"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	FFmpeg  FFmpegConfig  `yaml:"ffmpeg"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
	Report  ReportConfig  `yaml:"report"`
	Watch   WatchConfig   `yaml:"watch"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// StorageConfig names the trigger bucket and the artifact bucket
type StorageConfig struct {
	InputBucket  string `yaml:"input_bucket"`
	OutputBucket string `yaml:"output_bucket"`
}

// SpeechConfig holds the Speech-to-Text recognition settings
type SpeechConfig struct {
	LanguageCode    string        `yaml:"language_code"`
	SampleRateHertz int           `yaml:"sample_rate_hertz"`
	MinSpeakers     int           `yaml:"min_speakers"`
	MaxSpeakers     int           `yaml:"max_speakers"`
	Timeout         time.Duration `yaml:"timeout"`
}

// GeminiConfig selects the analysis model and its credential
type GeminiConfig struct {
	APIKey          string `yaml:"api_key"`
	Model           string `yaml:"model"`
	PromptSoftLimit int    `yaml:"prompt_soft_limit"`
}

// FFmpegConfig locates the ffmpeg binary
type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

// PathsConfig holds the local scratch root; each run gets its own directory under it
type PathsConfig struct {
	Scratch string `yaml:"scratch"`
}

// LoggingConfig sets the log level and output format (json or console)
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ReportConfig toggles the optional .docx analysis report
type ReportConfig struct {
	Docx bool `yaml:"docx"`
}

// WatchConfig configures the local drop-folder runner
type WatchConfig struct {
	Dir           string `yaml:"dir"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

// MetricsConfig configures the optional Pushgateway push
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url"`
	Job            string `yaml:"job"`
}

// Defaults mirror the values the function was first deployed with.
const (
	DefaultInputBucket  = "your-input-video-bucket"
	DefaultOutputBucket = "your-transcription-output-bucket"
)

// Validate checks structural settings and fills in defaults.
// The Gemini API key is not checked here; the processor rejects each run
// that starts without one.
func (c *Config) Validate() error {
	if c.Storage.InputBucket == "" {
		c.Storage.InputBucket = DefaultInputBucket
	}
	if c.Storage.OutputBucket == "" {
		c.Storage.OutputBucket = DefaultOutputBucket
	}
	if c.Paths.Scratch == "" {
		c.Paths.Scratch = "/tmp"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Speech.LanguageCode == "" {
		c.Speech.LanguageCode = "en-IN"
	}
	if c.Speech.SampleRateHertz == 0 {
		c.Speech.SampleRateHertz = 16000
	}
	if c.Speech.MinSpeakers == 0 {
		c.Speech.MinSpeakers = 1
	}
	if c.Speech.MaxSpeakers == 0 {
		c.Speech.MaxSpeakers = 2
	}
	if c.Speech.Timeout == 0 {
		c.Speech.Timeout = 600 * time.Second
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-pro"
	}
	if c.Gemini.PromptSoftLimit == 0 {
		c.Gemini.PromptSoftLimit = 10000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 2
	}
	if c.Metrics.Job == "" {
		c.Metrics.Job = "video_insight"
	}

	if c.Speech.SampleRateHertz < 0 {
		return fmt.Errorf("speech.sample_rate_hertz must be positive")
	}
	if c.Speech.MinSpeakers < 0 || c.Speech.MaxSpeakers < c.Speech.MinSpeakers {
		return fmt.Errorf("speech speaker bounds invalid: min=%d max=%d", c.Speech.MinSpeakers, c.Speech.MaxSpeakers)
	}
	if c.Speech.Timeout < 0 {
		return fmt.Errorf("speech.timeout must be positive")
	}
	if c.Storage.InputBucket == c.Storage.OutputBucket {
		return fmt.Errorf("storage.input_bucket and storage.output_bucket must differ")
	}

	return nil
}
