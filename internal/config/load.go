package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path (skipped when path is empty),
// applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// applyEnv lets the execution environment override file values.
func applyEnv(c *Config) {
	c.Storage.InputBucket = envOrDefault("INPUT_VIDEO_BUCKET", c.Storage.InputBucket)
	c.Storage.OutputBucket = envOrDefault("TRANSCRIPTION_OUTPUT_BUCKET", c.Storage.OutputBucket)
	c.Gemini.APIKey = envOrDefault("GEMINI_API_KEY", c.Gemini.APIKey)
	c.Gemini.Model = envOrDefault("GEMINI_MODEL", c.Gemini.Model)
	c.Paths.Scratch = envOrDefault("SCRATCH_DIR", c.Paths.Scratch)
	c.Speech.LanguageCode = envOrDefault("SPEECH_LANGUAGE_CODE", c.Speech.LanguageCode)
	c.Speech.Timeout = envOrDefaultDuration("SPEECH_TIMEOUT", c.Speech.Timeout)
	c.FFmpeg.BinaryPath = envOrDefault("FFMPEG_PATH", c.FFmpeg.BinaryPath)
	c.Logging.Level = envOrDefault("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = envOrDefault("LOG_FORMAT", c.Logging.Format)
	c.Metrics.PushgatewayURL = envOrDefault("PUSHGATEWAY_URL", c.Metrics.PushgatewayURL)
	c.Report.Docx = envOrDefaultBool("REPORT_DOCX", c.Report.Docx)
	c.Watch.Dir = envOrDefault("WATCH_DIR", c.Watch.Dir)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def
	}
	return b
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
