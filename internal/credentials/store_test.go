package credentials

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s, err := NewStore(path)
	require.NoError(t, err)

	presence := s.Presence()
	assert.False(t, presence["speech_key"])
	assert.False(t, presence["analysis_key"])
	assert.False(t, presence["metadata_key"])
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Update(Keys{
		SpeechKey:   "sk-speech",
		AnalysisKey: "sk-analysis",
		MetadataKey: "AIza-meta",
	}))

	// A fresh store reading the same file sees the persisted keys.
	reloaded, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-speech", reloaded.Snapshot().SpeechKey)
	assert.Equal(t, "sk-analysis", reloaded.Snapshot().AnalysisKey)
	assert.Equal(t, "AIza-meta", reloaded.Snapshot().MetadataKey)
}

func TestStoreLastWriteWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetSpeechKey("first"))
	require.NoError(t, s.SetSpeechKey("second"))

	assert.Equal(t, "second", s.Snapshot().SpeechKey)

	reloaded, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, "second", reloaded.Snapshot().SpeechKey)
}

func TestPresenceIgnoresBlankKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Update(Keys{SpeechKey: "   "}))

	assert.False(t, s.Presence()["speech_key"])
}
