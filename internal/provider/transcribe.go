package provider

import (
	"bytes"
	"context"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"clipinsight/internal/apperr"
	"clipinsight/internal/media"
)

// Transcribe posts the media payload to the speech-to-text endpoint
// and returns the transcript text. An empty or whitespace-only
// transcript is a failure, not a success.
func (c *Client) Transcribe(ctx context.Context, in media.Input) (string, error) {
	if strings.TrimSpace(c.keys.SpeechKey) == "" {
		return "", &apperr.ConfigError{Reason: "missing speech credential"}
	}

	fileName := in.Name
	if fileName == "" {
		fileName = "audio.mp3"
	}

	log.Printf("[Whisper] transcribing %s (%d bytes)", fileName, len(in.Data))
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, TranscribeTimeout)
	defer cancel()

	client := c.openaiClient(c.keys.SpeechKey)
	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    speechModel,
		Reader:   bytes.NewReader(in.Data),
		FilePath: fileName,
	})
	if err != nil {
		return "", mapOpenAIError(err, "transcription", "speech provider")
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", &apperr.EmptySpeechError{}
	}

	log.Printf("[Whisper] transcription successful: %d chars in %v", len(text), time.Since(start))
	return text, nil
}
