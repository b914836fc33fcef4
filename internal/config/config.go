// Package config loads service configuration from environment
// variables, optionally overridden by a YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Event channel modes.
const (
	ChannelMemory = "memory"
	ChannelOff    = "off"
)

// Config is the full service configuration. Provider credentials live
// in the credential store, not here; the environment only seeds an
// empty store on first run.
type Config struct {
	Port            string `yaml:"port"`
	CredentialsPath string `yaml:"credentials_path"`
	DatabasePath    string `yaml:"database_path"`
	UploadsDir      string `yaml:"uploads_dir"`
	EventChannel    string `yaml:"event_channel"`
	DemoMode        bool   `yaml:"demo_mode"`

	SpeechKey   string `yaml:"-"`
	AnalysisKey string `yaml:"-"`
	MetadataKey string `yaml:"-"`
}

// Load reads configuration from environment variables and, when
// CONFIG_FILE points at a YAML file, merges that file on top.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		CredentialsPath: getEnv("CREDENTIALS_PATH", "data/credentials.json"),
		DatabasePath:    getEnv("DATABASE_PATH", "data/results.db"),
		UploadsDir:      getEnv("UPLOADS_DIR", "uploads"),
		EventChannel:    strings.ToLower(getEnv("EVENT_CHANNEL", ChannelMemory)),
		DemoMode:        os.Getenv("DEMO_MODE") == "true",
		SpeechKey:       os.Getenv("OPENAI_API_KEY"),
		AnalysisKey:     os.Getenv("OPENAI_API_KEY"),
		MetadataKey:     os.Getenv("YOUTUBE_API_KEY"),
	}

	// A dedicated key wins over the shared OpenAI key.
	if v := os.Getenv("SPEECH_API_KEY"); v != "" {
		cfg.SpeechKey = v
	}
	if v := os.Getenv("ANALYSIS_API_KEY"); v != "" {
		cfg.AnalysisKey = v
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := mergeFile(cfg, path); err != nil {
			return nil, err
		}
	}

	switch cfg.EventChannel {
	case ChannelMemory, ChannelOff:
	default:
		return nil, fmt.Errorf("unsupported EVENT_CHANNEL %q (supported: memory, off)", cfg.EventChannel)
	}

	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
