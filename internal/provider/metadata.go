package provider

import (
	"context"
	"errors"
	"log"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"

	"clipinsight/internal/apperr"
)

// VideoMetadata is the normalized metadata-lookup reply.
type VideoMetadata struct {
	Title        string
	Description  string
	Tags         []string
	ChannelTitle string
	DurationISO  string
	ViewCount    uint64
	PublishedAt  string
}

// LookupVideoMetadata fetches snippet, content details and statistics
// for one video. A zero-results reply is a NotFoundError, distinct
// from a generic provider failure.
func (c *Client) LookupVideoMetadata(ctx context.Context, videoID string) (VideoMetadata, error) {
	if strings.TrimSpace(c.keys.MetadataKey) == "" {
		return VideoMetadata{}, &apperr.ConfigError{Reason: "missing metadata credential"}
	}

	ctx, cancel := context.WithTimeout(ctx, MetadataTimeout)
	defer cancel()

	opts := []option.ClientOption{option.WithAPIKey(c.keys.MetadataKey)}
	if c.metadataBaseURL != "" {
		opts = append(opts, option.WithEndpoint(c.metadataBaseURL))
	}
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return VideoMetadata{}, &apperr.ProviderError{Provider: "metadata provider", Message: err.Error()}
	}

	resp, err := svc.Videos.
		List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return VideoMetadata{}, mapMetadataError(err)
	}
	if len(resp.Items) == 0 {
		return VideoMetadata{}, &apperr.NotFoundError{Resource: "video " + videoID}
	}

	item := resp.Items[0]
	meta := VideoMetadata{}
	if item.Snippet != nil {
		meta.Title = item.Snippet.Title
		meta.Description = item.Snippet.Description
		meta.Tags = item.Snippet.Tags
		meta.ChannelTitle = item.Snippet.ChannelTitle
		meta.PublishedAt = item.Snippet.PublishedAt
	}
	if item.ContentDetails != nil {
		meta.DurationISO = item.ContentDetails.Duration
	}
	if item.Statistics != nil {
		meta.ViewCount = item.Statistics.ViewCount
	}

	log.Printf("[Metadata] fetched %q (duration %s)", meta.Title, meta.DurationISO)
	return meta, nil
}

func mapMetadataError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &apperr.TimeoutError{Op: "metadata lookup"}
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 400, 401, 403:
			return &apperr.InvalidCredentialError{Provider: "metadata provider", Reason: gerr.Message}
		case 404:
			return &apperr.NotFoundError{Resource: "video"}
		case 429:
			return &apperr.RateLimitError{Provider: "metadata provider"}
		}
		return &apperr.ProviderError{Provider: "metadata provider", Message: gerr.Message}
	}
	return &apperr.ProviderError{Provider: "metadata provider", Message: err.Error()}
}
