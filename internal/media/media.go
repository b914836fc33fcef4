// Package media holds the input model for one processing run and the
// pure helpers around it: validation, URL parsing, duration and size
// formatting.
package media

import (
	"fmt"
	"strings"

	"clipinsight/internal/apperr"
)

// MaxFileBytes is the upload ceiling enforced before any network call.
const MaxFileBytes = 25 * 1024 * 1024

// Input kinds.
const (
	KindFile      = "file"
	KindRemoteURL = "remote_url"
)

// Input is the tagged union describing one submitted media source.
// Exactly one of the two shapes is populated depending on Kind.
type Input struct {
	Kind string

	// Kind == KindFile
	Data     []byte
	Name     string
	Size     int64
	MimeType string

	// Kind == KindRemoteURL
	URL string
}

// FileInput builds a file-backed input.
func FileInput(data []byte, name, mimeType string) Input {
	return Input{
		Kind:     KindFile,
		Data:     data,
		Name:     name,
		Size:     int64(len(data)),
		MimeType: mimeType,
	}
}

// URLInput builds a remote-URL input.
func URLInput(url string) Input {
	return Input{Kind: KindRemoteURL, URL: url}
}

// Validate checks the input shape before any network side effect.
func (in Input) Validate() error {
	switch in.Kind {
	case KindFile:
		return validateFile(in)
	case KindRemoteURL:
		if _, ok := ExtractVideoID(in.URL); !ok {
			return &apperr.ValidationError{Reason: "unrecognized video URL"}
		}
		return nil
	default:
		return &apperr.ValidationError{Reason: "unknown input kind: " + in.Kind}
	}
}

func validateFile(in Input) error {
	if len(in.Data) == 0 {
		return &apperr.ValidationError{Reason: "empty file"}
	}
	if in.Size > MaxFileBytes {
		return &apperr.ValidationError{
			Reason: fmt.Sprintf("file size %d exceeds %d byte limit", in.Size, MaxFileBytes),
		}
	}
	mime := strings.ToLower(in.MimeType)
	if !strings.HasPrefix(mime, "video/") && !strings.HasPrefix(mime, "audio/") {
		return &apperr.ValidationError{Reason: "unsupported media type: " + in.MimeType}
	}
	return nil
}

// CountWords returns the whitespace-delimited token count of s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// FormatFileSize renders a byte count as a human readable label,
// e.g. "2.5 MB".
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGT"[exp])
}
