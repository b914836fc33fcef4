package provider

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAnalysisWellFormed(t *testing.T) {
	raw := `{
		"summary": "A clear summary.",
		"key_insights": ["first insight", "second insight"],
		"sentiment": "Positive",
		"topics": ["technology", "ai"],
		"action_items": ["follow up"]
	}`

	a := parseAnalysis(raw)

	assert.Equal(t, "A clear summary.", a.Summary)
	assert.Equal(t, []string{"first insight", "second insight"}, a.KeyInsights)
	assert.Equal(t, SentimentPositive, a.Sentiment)
	assert.Equal(t, []string{"technology", "ai"}, a.Topics)
	assert.Equal(t, []string{"follow up"}, a.ActionItems)
}

func TestParseAnalysisMissingTopics(t *testing.T) {
	raw := `{
		"summary": "A clear summary.",
		"key_insights": ["insight"],
		"sentiment": "Negative",
		"action_items": ["act"]
	}`

	a := parseAnalysis(raw)

	// Missing field gets its named default, present fields pass
	// through unchanged.
	assert.Equal(t, []string{defaultTopic}, a.Topics)
	assert.Equal(t, "A clear summary.", a.Summary)
	assert.Equal(t, []string{"insight"}, a.KeyInsights)
	assert.Equal(t, SentimentNegative, a.Sentiment)
	assert.Equal(t, []string{"act"}, a.ActionItems)
}

func TestParseAnalysisAllFieldsMissing(t *testing.T) {
	a := parseAnalysis(`{}`)

	assert.Equal(t, defaultSummary, a.Summary)
	assert.Equal(t, []string{defaultInsight}, a.KeyInsights)
	assert.Equal(t, SentimentNeutral, a.Sentiment)
	assert.Equal(t, []string{defaultTopic}, a.Topics)
	assert.Equal(t, []string{defaultActionItem}, a.ActionItems)
}

func TestParseAnalysisMalformedReply(t *testing.T) {
	raw := "I could not produce JSON today. " + strings.Repeat("More text. ", 100)

	a := parseAnalysis(raw)

	assert.Equal(t, raw[:fallbackSummaryLimit]+"...", a.Summary)
	assert.Equal(t, SentimentNeutral, a.Sentiment)
	assert.Equal(t, []string{fallbackTopic}, a.Topics)
	assert.Len(t, a.KeyInsights, 1)
	assert.Len(t, a.ActionItems, 1)
}

func TestParseAnalysisShortMalformedReply(t *testing.T) {
	raw := "not json"

	a := parseAnalysis(raw)

	assert.Equal(t, raw+"...", a.Summary)
	assert.Equal(t, SentimentNeutral, a.Sentiment)
}

func TestParseAnalysisMarkdownFenced(t *testing.T) {
	raw := "```json\n{\"summary\": \"Fenced summary\", \"sentiment\": \"positive\"}\n```"

	a := parseAnalysis(raw)

	assert.Equal(t, "Fenced summary", a.Summary)
	assert.Equal(t, SentimentPositive, a.Sentiment)
}

func TestNormalizeSentiment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Positive", SentimentPositive},
		{"positive", SentimentPositive},
		{"NEGATIVE", SentimentNegative},
		{"Neutral", SentimentNeutral},
		{"mixed", SentimentNeutral},
		{"", SentimentNeutral},
	}

	for _, tt := range tests {
		if got := normalizeSentiment(tt.input); got != tt.expected {
			t.Errorf("normalizeSentiment(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
