package models

// WordInfo is a single recognized word and the speaker it was attributed to.
type WordInfo struct {
	Word       string
	SpeakerTag int
}

// Alternative is one candidate transcription for a result group.
// Words is empty when the recognizer produced no word-level diarization.
type Alternative struct {
	Transcript string
	Confidence float32
	Words      []WordInfo
}

// RecognitionResult is one result group returned by the recognizer.
// Alternatives are ordered best first.
type RecognitionResult struct {
	Alternatives []Alternative
}

// TranscriptDocument is the reconstructed transcript artifact.
type TranscriptDocument struct {
	Text        string
	Diarized    bool
	Speakers    int
	ResultCount int
}

// AnalysisDocument is the LLM response for a transcript.
type AnalysisDocument struct {
	Text        string
	Model       string
	PromptChars int
}
