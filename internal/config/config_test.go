package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CONFIG_FILE", "EVENT_CHANNEL", "DEMO_MODE", "OPENAI_API_KEY", "SPEECH_API_KEY", "ANALYSIS_API_KEY", "YOUTUBE_API_KEY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ChannelMemory, cfg.EventChannel)
	assert.False(t, cfg.DemoMode)
	assert.Empty(t, cfg.SpeechKey)
}

func TestLoadDedicatedKeysWin(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "shared")
	t.Setenv("SPEECH_API_KEY", "speech-only")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "speech-only", cfg.SpeechKey)
	assert.Equal(t, "shared", cfg.AnalysisKey)
}

func TestLoadConfigFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9000\"\nevent_channel: \"off\"\ndemo_mode: true\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, ChannelOff, cfg.EventChannel)
	assert.True(t, cfg.DemoMode)
}

func TestLoadRejectsUnknownChannel(t *testing.T) {
	t.Setenv("EVENT_CHANNEL", "websocket")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EVENT_CHANNEL")
}
