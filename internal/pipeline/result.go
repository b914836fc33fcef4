package pipeline

// Progress is the ephemeral per-transition report. Consumers render
// the latest one only; nothing is retained.
type Progress struct {
	PercentComplete int    `json:"percent_complete"`
	PhaseLabel      string `json:"phase_label"`
}

// Result is the immutable output of one completed run.
type Result struct {
	ID                  string   `json:"id"`
	TranscriptText      string   `json:"transcript_text"`
	Summary             string   `json:"summary"`
	KeyInsights         []string `json:"key_insights"`
	Sentiment           string   `json:"sentiment"`
	Topics              []string `json:"topics"`
	ActionItems         []string `json:"action_items"`
	DurationLabel       string   `json:"duration_label"`
	WordCount           int      `json:"word_count"`
	SourceFileName      string   `json:"source_file_name,omitempty"`
	SourceFileSizeLabel string   `json:"source_file_size_label,omitempty"`
	SourceURL           string   `json:"source_url,omitempty"`
	ProcessedAt         string   `json:"processed_at"`
}
