// Package api exposes the HTTP surface: media analysis, stored
// results, realtime status, and credential settings.
package api

import (
	"github.com/gin-gonic/gin"

	"clipinsight/internal/config"
	"clipinsight/internal/credentials"
	"clipinsight/internal/events"
	"clipinsight/internal/pipeline"
	"clipinsight/internal/provider"
	"clipinsight/internal/storage"
	"clipinsight/internal/utils"
)

// Server wires the HTTP handlers to their dependencies.
type Server struct {
	cfg     *config.Config
	creds   *credentials.Store
	results *storage.ResultStore
	channel events.Channel

	// newTransport builds a provider transport from the current
	// credential snapshot. Tests substitute fakes here.
	newTransport func(credentials.Keys) pipeline.Transport
}

func NewServer(cfg *config.Config, creds *credentials.Store, results *storage.ResultStore, channel events.Channel) *Server {
	return &Server{
		cfg:     cfg,
		creds:   creds,
		results: results,
		channel: channel,
		newTransport: func(keys credentials.Keys) pipeline.Transport {
			return provider.NewClient(keys)
		},
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	// Health check
	r.GET("/health", s.healthCheck)

	// API v1
	v1 := r.Group("/api/v1")
	{
		v1.POST("/analyze", s.analyzeUpload)
		v1.POST("/analyze/url", s.analyzeURL)
		v1.GET("/results", s.listResults)
		v1.GET("/results/:result_id", s.getResult)
		v1.DELETE("/results/:result_id", s.deleteResult)
		v1.GET("/events", s.streamEvents)
		v1.GET("/realtime/status", s.realtimeStatus)
		v1.GET("/settings/keys", s.getKeys)
		v1.PUT("/settings/keys", s.updateKeys)
	}
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "clipinsight-backend",
	})
}
