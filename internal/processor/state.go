package processor

// State is a step of a pipeline run
type State string

const (
	StateReceived           State = "received"
	StateValidated          State = "validated"
	StateDownloaded         State = "downloaded"
	StateAudioExtracted     State = "audio_extracted"
	StateAudioUploaded      State = "audio_uploaded"
	StateTranscribed        State = "transcribed"
	StateTranscriptUploaded State = "transcript_uploaded"
	StateAnalyzed           State = "analyzed"
	StateAnalysisUploaded   State = "analysis_uploaded"
	StateDone               State = "done"

	// Terminal states outside the happy path
	StateSkipped State = "skipped"
	StateFailed  State = "failed"
)
