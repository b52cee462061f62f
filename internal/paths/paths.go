// Package paths derives every local and remote artifact location from an
// uploaded object's name.
package paths

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/video-insight/internal/models"
)

// Remote namespaces in the output bucket
const (
	AudioPrefix      = "audio/"
	TranscriptPrefix = "transcripts/"
	AnalysisPrefix   = "analysis/"
)

// Resolve strips the directory prefix and extension from objectName and
// builds the artifact paths under runDir, the run's private scratch directory.
func Resolve(objectName, runDir string) (models.ArtifactPaths, error) {
	if strings.TrimSpace(objectName) == "" {
		return models.ArtifactPaths{}, &models.ValidationError{Field: "name", Reason: "object name is empty"}
	}
	if strings.HasSuffix(objectName, "/") {
		return models.ArtifactPaths{}, &models.ValidationError{Field: "name", Reason: "object name is a folder: " + objectName}
	}

	// Object names always use forward slashes regardless of OS.
	fileName := path.Base(objectName)
	base := strings.TrimSuffix(fileName, path.Ext(fileName))
	if base == "" || base == "." || base == ".." || fileName == ".." {
		return models.ArtifactPaths{}, &models.ValidationError{Field: "name", Reason: "object name has no base name: " + objectName}
	}

	return models.ArtifactPaths{
		BaseName:      base,
		RunDir:        runDir,
		LocalVideo:    filepath.Join(runDir, fileName),
		LocalAudio:    filepath.Join(runDir, base+".flac"),
		LocalReport:   filepath.Join(runDir, base+"_analysis.docx"),
		AudioKey:      AudioPrefix + base + ".flac",
		TranscriptKey: TranscriptPrefix + base + ".txt",
		AnalysisKey:   AnalysisPrefix + base + "_analysis.txt",
		ReportKey:     AnalysisPrefix + base + "_analysis.docx",
	}, nil
}
