// Package transcript rebuilds a speaker-labelled transcript from
// word-level diarized recognition results.
package transcript

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/models"
)

// UnattributedPrefix marks raw transcript lines emitted alongside speaker
// lines when some results carried no word-level tags.
const UnattributedPrefix = "Unattributed: "

// Reconstruct scans results in order and produces the transcript document.
//
// Words of each result's top alternative are bucketed by speaker tag and
// emitted one line per tag in ascending tag order. Results without words
// contribute their raw transcript instead. With no results at all the
// document is empty and an error-level line is logged.
func Reconstruct(ctx context.Context, log logger.Logger, results []models.RecognitionResult) models.TranscriptDocument {
	doc := models.TranscriptDocument{ResultCount: len(results)}

	if len(results) == 0 {
		log.Error(ctx, "Speech-to-Text returned no transcription results; the audio was likely silent, unintelligible or never received")
		return doc
	}
	log.Info(ctx, "Speech-to-Text returned %d transcription results", len(results))

	speakers := make(map[int][]string)
	var fallback []string

	for i, result := range results {
		if len(result.Alternatives) == 0 {
			log.Warn(ctx, "Result %d has no alternatives, skipping", i+1)
			continue
		}

		top := result.Alternatives[0]
		log.Debug(ctx, "Processing result %d: alternative 0 confidence %.3f", i+1, top.Confidence)

		if len(top.Words) == 0 {
			fallback = append(fallback, top.Transcript)
			continue
		}
		for _, w := range top.Words {
			speakers[w.SpeakerTag] = append(speakers[w.SpeakerTag], w.Word)
		}
	}

	var b strings.Builder

	if len(speakers) > 0 {
		tags := make([]int, 0, len(speakers))
		for tag := range speakers {
			tags = append(tags, tag)
		}
		sort.Ints(tags)

		for _, tag := range tags {
			fmt.Fprintf(&b, "Speaker %d: %s\n", tag, strings.Join(speakers[tag], " "))
		}

		if len(fallback) > 0 {
			log.Warn(ctx, "%d results had no word-level speaker info; appending them as unattributed lines", len(fallback))
			for _, line := range fallback {
				b.WriteString(UnattributedPrefix + line + "\n")
			}
		}

		doc.Diarized = true
		doc.Speakers = len(tags)
	} else if len(fallback) > 0 {
		log.Warn(ctx, "Diarization did not yield word-level info, falling back to full transcript from alternatives")
		for _, line := range fallback {
			b.WriteString(line + "\n")
		}
	}

	doc.Text = b.String()

	if doc.Text == "" {
		log.Warn(ctx, "Reconstructed transcript is empty")
	} else {
		log.Info(ctx, "Transcript reconstructed: %d characters, %d speakers", len(doc.Text), doc.Speakers)
	}

	return doc
}
