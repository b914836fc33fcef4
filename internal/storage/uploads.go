package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SaveUpload stages an uploaded file on disk so the duration probe can
// read it. Returns the staged path.
func SaveUpload(dir string, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}
	dst := filepath.Join(dir, fmt.Sprintf("up_%d_%s", time.Now().UnixNano(), filepath.Base(name)))
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return dst, nil
}

// RemoveUpload deletes a staged file once the run is done.
func RemoveUpload(path string) {
	if path == "" {
		return
	}
	os.Remove(path)
}
