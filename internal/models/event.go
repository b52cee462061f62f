// Package models holds the data passed between pipeline stages.
package models

import "strings"

// VideoContentTypePrefix is the MIME prefix an upload must carry to be processed.
const VideoContentTypePrefix = "video/"

// UploadEvent is the object-finalized notification that triggers a run.
type UploadEvent struct {
	Bucket      string `json:"bucket"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
}

// IsVideo reports whether the declared content type is a video type.
func (e UploadEvent) IsVideo() bool {
	return strings.HasPrefix(e.ContentType, VideoContentTypePrefix)
}

// ArtifactPaths are all local and remote locations for one run,
// derived once from the event's object name.
type ArtifactPaths struct {
	BaseName string

	// RunDir is the scratch directory owned by the run; every local file lives in it
	RunDir      string
	LocalVideo  string
	LocalAudio  string
	LocalReport string

	AudioKey      string
	TranscriptKey string
	AnalysisKey   string
	ReportKey     string
}
