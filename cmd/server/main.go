package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"clipinsight/internal/api"
	"clipinsight/internal/config"
	"clipinsight/internal/credentials"
	"clipinsight/internal/events"
	"clipinsight/internal/storage"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	creds, err := credentials.NewStore(cfg.CredentialsPath)
	if err != nil {
		log.Fatalf("Failed to open credential store: %v", err)
	}
	seedCredentials(creds, cfg)

	results, err := storage.NewResultStore(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open result store: %v", err)
	}
	defer results.Close()

	channel := newChannel(cfg)
	defer channel.Close()

	r := gin.Default()

	// Allow the browser frontend from any origin
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Cache-Control"},
	}))

	// Register routes
	server := api.NewServer(cfg, creds, results, channel)
	server.RegisterRoutes(r)

	log.Printf("ClipInsight backend running on :%s (event channel: %s)", cfg.Port, cfg.EventChannel)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// seedCredentials copies environment-supplied keys into an empty
// store slot. Keys already persisted win over the environment.
func seedCredentials(creds *credentials.Store, cfg *config.Config) {
	keys := creds.Snapshot()
	changed := false
	if keys.SpeechKey == "" && cfg.SpeechKey != "" {
		keys.SpeechKey = cfg.SpeechKey
		changed = true
	}
	if keys.AnalysisKey == "" && cfg.AnalysisKey != "" {
		keys.AnalysisKey = cfg.AnalysisKey
		changed = true
	}
	if keys.MetadataKey == "" && cfg.MetadataKey != "" {
		keys.MetadataKey = cfg.MetadataKey
		changed = true
	}
	if !changed {
		return
	}
	if err := creds.Update(keys); err != nil {
		log.Printf("Warning: failed to seed credentials from environment: %v", err)
	}
}

// newChannel builds the configured event channel and connects it.
// Connection failure is not fatal; broadcasts are dropped until a
// later connect succeeds.
func newChannel(cfg *config.Config) events.Channel {
	if cfg.EventChannel == config.ChannelOff {
		log.Println("Event channel disabled")
		return events.Disabled{}
	}

	bus := events.NewBus()
	if err := bus.Connect(context.Background()); err != nil {
		log.Printf("Warning: event channel connect failed: %v", err)
	}
	return bus
}
