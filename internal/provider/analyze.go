package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"clipinsight/internal/apperr"
)

// Sentiment labels the analysis may carry.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// Named defaults substituted for fields the model omitted.
const (
	defaultSummary    = "Analysis summary not available"
	defaultInsight    = "No key insights available"
	defaultTopic      = "General"
	defaultActionItem = "No action items identified"
)

// Fallback content when the model reply is not JSON at all.
const (
	fallbackSummaryLimit = 500
	fallbackInsight      = "Unable to extract structured insights from the analysis"
	fallbackTopic        = "General Content"
	fallbackActionItem   = "Unable to extract action items from the analysis"
)

// Analysis is the normalized language-model output for one transcript.
type Analysis struct {
	Summary     string   `json:"summary"`
	KeyInsights []string `json:"key_insights"`
	Sentiment   string   `json:"sentiment"`
	Topics      []string `json:"topics"`
	ActionItems []string `json:"action_items"`
}

const analysisSystemPrompt = `You are an assistant that analyzes media transcripts.
Respond with ONLY a valid JSON object, no prose, matching exactly this schema:
{
  "summary": "concise summary of the content",
  "key_insights": ["3-5 key insights"],
  "sentiment": "Positive, Negative or Neutral",
  "topics": ["main topics covered"],
  "action_items": ["concrete action items, may be empty"]
}
Every field is required. Use empty arrays when nothing applies.`

// Analyze posts a chat completion asking for the fixed JSON schema and
// normalizes the reply. Malformed model output never raises: the
// deterministic fallback is the terminal error boundary for it.
func (c *Client) Analyze(ctx context.Context, transcript string) (Analysis, error) {
	if strings.TrimSpace(c.keys.AnalysisKey) == "" {
		return Analysis{}, &apperr.ConfigError{Reason: "missing analysis credential"}
	}

	log.Printf("[Analysis] analyzing transcript (%d chars)", len(transcript))

	ctx, cancel := context.WithTimeout(ctx, AnalyzeTimeout)
	defer cancel()

	client := c.openaiClient(c.keys.AnalysisKey)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: analysisModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: analysisSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Analyze this transcript:\n\n%s", transcript),
			},
		},
		Temperature: 0.3, // low randomness favors stable JSON structure
		MaxTokens:   1000,
	})
	if err != nil {
		return Analysis{}, mapOpenAIError(err, "analysis", "analysis provider")
	}
	if len(resp.Choices) == 0 {
		return Analysis{}, &apperr.ProviderError{Provider: "analysis provider", Message: "no choices returned"}
	}

	return parseAnalysis(resp.Choices[0].Message.Content), nil
}

// parseAnalysis applies the parsing contract: strict JSON decode with
// per-field default substitution, degrading to a deterministic
// fallback built from the raw reply when decoding fails.
func parseAnalysis(raw string) Analysis {
	var a Analysis
	if err := json.Unmarshal([]byte(stripMarkdownFences(raw)), &a); err != nil {
		log.Printf("[Analysis] reply is not valid JSON, using raw-text fallback: %v", err)
		return fallbackAnalysis(raw)
	}

	if strings.TrimSpace(a.Summary) == "" {
		a.Summary = defaultSummary
	}
	if len(a.KeyInsights) == 0 {
		a.KeyInsights = []string{defaultInsight}
	}
	a.Sentiment = normalizeSentiment(a.Sentiment)
	if len(a.Topics) == 0 {
		a.Topics = []string{defaultTopic}
	}
	if len(a.ActionItems) == 0 {
		a.ActionItems = []string{defaultActionItem}
	}
	return a
}

func fallbackAnalysis(raw string) Analysis {
	summary := raw
	if len(summary) > fallbackSummaryLimit {
		summary = summary[:fallbackSummaryLimit]
	}
	return Analysis{
		Summary:     summary + "...",
		KeyInsights: []string{fallbackInsight},
		Sentiment:   SentimentNeutral,
		Topics:      []string{fallbackTopic},
		ActionItems: []string{fallbackActionItem},
	}
}

func normalizeSentiment(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return SentimentPositive
	case "negative":
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// stripMarkdownFences removes a ```json ... ``` wrapper some models
// put around their reply despite instructions.
func stripMarkdownFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
