package media

import (
	"errors"
	"testing"

	"clipinsight/internal/apperr"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{"canonical watch URL", "https://www.youtube.com/watch?v=ABC123xyz", "ABC123xyz", true},
		{"watch URL with extra params", "https://www.youtube.com/watch?list=PL1&v=dQw4w9WgXcQ&t=10s", "dQw4w9WgXcQ", true},
		{"short URL", "https://youtu.be/ABC123xyz", "ABC123xyz", true},
		{"embed URL", "https://www.youtube.com/embed/ABC123xyz", "ABC123xyz", true},
		{"unrelated URL", "https://example.com/no-video", "", false},
		{"empty string", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractVideoID(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("ExtractVideoID(%q) ok = %v, want %v", tt.url, ok, tt.wantOK)
			}
			if id != tt.wantID {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, id, tt.wantID)
			}
		})
	}
}

func TestExtractVideoIDIdempotent(t *testing.T) {
	url := "https://youtu.be/ABC123xyz"
	first, _ := ExtractVideoID(url)
	second, _ := ExtractVideoID(url)
	if first != second {
		t.Errorf("expected identical results, got %q then %q", first, second)
	}
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		wantErr bool
	}{
		{
			name:    "valid video file",
			input:   FileInput(make([]byte, 2*1024*1024), "clip.mp4", "video/mp4"),
			wantErr: false,
		},
		{
			name:    "valid audio file",
			input:   FileInput([]byte("audio-bytes"), "note.mp3", "audio/mpeg"),
			wantErr: false,
		},
		{
			name:    "unsupported mime type",
			input:   FileInput([]byte("%PDF-"), "doc.pdf", "application/pdf"),
			wantErr: true,
		},
		{
			name:    "empty file",
			input:   FileInput(nil, "empty.mp4", "video/mp4"),
			wantErr: true,
		},
		{
			name: "oversize file",
			input: Input{
				Kind:     KindFile,
				Data:     []byte("x"),
				Name:     "huge.mp4",
				Size:     MaxFileBytes + 1,
				MimeType: "video/mp4",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var verr *apperr.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	if err := URLInput("https://www.youtube.com/watch?v=ABC123xyz").Validate(); err != nil {
		t.Errorf("expected valid URL input, got %v", err)
	}
	err := URLInput("https://example.com/no-video").Validate()
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for unrecognized URL, got %v", err)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"empty", "", 0},
		{"single word", "hello", 1},
		{"two words", "hello world", 2},
		{"extra whitespace", "  hello   world \n", 2},
		{"with punctuation", "Hello, world! How are you?", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.input); got != tt.expected {
				t.Errorf("CountWords(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{2*1024*1024 + 512*1024, "2.5 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.bytes); got != tt.expected {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.bytes, got, tt.expected)
		}
	}
}
