package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"clipinsight/internal/utils"
)

// getKeys reports which provider credentials are configured. Key
// values never leave the store through this surface.
func (s *Server) getKeys(c *gin.Context) {
	utils.Success(c, gin.H{"configured": s.creds.Presence()})
}

// UpdateKeysRequest carries new credential values. Omitted fields are
// left untouched; an empty string clears the key.
type UpdateKeysRequest struct {
	SpeechKey   *string `json:"speech_key"`
	AnalysisKey *string `json:"analysis_key"`
	MetadataKey *string `json:"metadata_key"`
}

// updateKeys persists new credential values and responds with the
// resulting presence flags only.
func (s *Server) updateKeys(c *gin.Context) {
	var req UpdateKeysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	keys := s.creds.Snapshot()
	if req.SpeechKey != nil {
		keys.SpeechKey = *req.SpeechKey
	}
	if req.AnalysisKey != nil {
		keys.AnalysisKey = *req.AnalysisKey
	}
	if req.MetadataKey != nil {
		keys.MetadataKey = *req.MetadataKey
	}

	if err := s.creds.Update(keys); err != nil {
		log.Printf("[Settings] failed to persist credentials: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to persist credentials")
		return
	}

	log.Printf("[Settings] credentials updated")
	utils.Success(c, gin.H{"configured": s.creds.Presence()})
}
