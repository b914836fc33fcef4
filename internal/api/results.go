package api

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"clipinsight/internal/utils"
)

const defaultListLimit = 50

// listResults returns stored result summaries, newest first.
func (s *Server) listResults(c *gin.Context) {
	limit := queryInt(c, "limit", defaultListLimit)
	offset := queryInt(c, "offset", 0)

	summaries, err := s.results.List(limit, offset)
	if err != nil {
		log.Printf("[Results] list failed: %v", err)
		utils.Fail(c, err)
		return
	}

	utils.Success(c, gin.H{
		"results": summaries,
		"count":   len(summaries),
	})
}

// getResult returns one stored result in full.
func (s *Server) getResult(c *gin.Context) {
	result, err := s.results.Get(c.Param("result_id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, result)
}

// deleteResult removes one stored result.
func (s *Server) deleteResult(c *gin.Context) {
	id := c.Param("result_id")
	if err := s.results.Delete(id); err != nil {
		utils.Fail(c, err)
		return
	}

	log.Printf("[Results] deleted result: %s", id)
	utils.Success(c, gin.H{"deleted": id})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
