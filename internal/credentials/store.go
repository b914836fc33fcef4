// Package credentials persists the user-supplied provider keys as one
// flat JSON file. Keys are optional at rest; operations that need a
// missing key fail with a configuration error at the call site.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Keys is the flat credential record written to disk.
type Keys struct {
	SpeechKey   string `json:"speech_key"`
	AnalysisKey string `json:"analysis_key"`
	MetadataKey string `json:"metadata_key"`
}

// Store is a concurrency-safe credential holder backed by a JSON file.
// Updates are last-write-wins and persist immediately.
type Store struct {
	mu   sync.Mutex
	path string
	keys Keys
}

// NewStore loads credentials from path. A missing file is a first run,
// not an error.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	if err := json.Unmarshal(data, &s.keys); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	return s, nil
}

// Snapshot returns a copy of the current keys.
func (s *Store) Snapshot() Keys {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys
}

// Update overwrites the stored keys and persists them. Empty fields in
// the update clear the corresponding key.
func (s *Store) Update(keys Keys) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = keys
	return s.persist()
}

// SetSpeechKey updates only the speech credential.
func (s *Store) SetSpeechKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys.SpeechKey = key
	return s.persist()
}

// SetAnalysisKey updates only the analysis credential.
func (s *Store) SetAnalysisKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys.AnalysisKey = key
	return s.persist()
}

// SetMetadataKey updates only the metadata credential.
func (s *Store) SetMetadataKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys.MetadataKey = key
	return s.persist()
}

// Presence reports which keys are set without exposing their values.
func (s *Store) Presence() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]bool{
		"speech_key":   strings.TrimSpace(s.keys.SpeechKey) != "",
		"analysis_key": strings.TrimSpace(s.keys.AnalysisKey) != "",
		"metadata_key": strings.TrimSpace(s.keys.MetadataKey) != "",
	}
}

// persist writes the keys to disk. Caller holds the lock.
func (s *Store) persist() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create credentials directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(s.keys, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}
