package models

import (
	"errors"
	"fmt"
)

// ValidationError reports missing configuration or malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// TranscodeError reports a failed ffmpeg invocation.
type TranscodeError struct {
	Stderr string
	Err    error
}

func (e *TranscodeError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("transcode: %v\nstderr: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("transcode: %v", e.Err)
}

func (e *TranscodeError) Unwrap() error { return e.Err }

// Storage directions
const (
	OpDownload = "download"
	OpUpload   = "upload"
)

// StorageError reports a failed object transfer.
type StorageError struct {
	Op     string
	Bucket string
	Key    string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s gs://%s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// RecognitionError reports a failed or timed out speech recognition job.
type RecognitionError struct {
	URI     string
	Timeout bool
	Err     error
}

func (e *RecognitionError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("recognition %s: timed out: %v", e.URI, e.Err)
	}
	return fmt.Sprintf("recognition %s: %v", e.URI, e.Err)
}

func (e *RecognitionError) Unwrap() error { return e.Err }

// AnalysisError reports a failed LLM call.
type AnalysisError struct {
	Model string
	Err   error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis (%s): %v", e.Model, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// ErrEmptyResponse is returned when the LLM produced no candidates.
var ErrEmptyResponse = errors.New("empty response from model")
