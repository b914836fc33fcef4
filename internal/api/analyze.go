package api

import (
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"clipinsight/internal/media"
	"clipinsight/internal/pipeline"
	"clipinsight/internal/storage"
	"clipinsight/internal/utils"
)

// analyzeUpload runs the full pipeline on an uploaded media file and
// returns the stored result. Progress is broadcast on the event
// channel while the request is in flight.
func (s *Server) analyzeUpload(c *gin.Context) {
	file, err := c.FormFile("media_file")
	if err != nil {
		// Try alternative field names
		if file, err = c.FormFile("file"); err != nil {
			utils.Error(c, http.StatusBadRequest, "media_file is required")
			return
		}
	}

	data, err := readUpload(file)
	if err != nil {
		log.Printf("[Analyze] failed to read upload %s: %v", file.Filename, err)
		utils.Error(c, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}

	in := media.FileInput(data, file.Filename, file.Header.Get("Content-Type"))
	if err := in.Validate(); err != nil {
		utils.Fail(c, err)
		return
	}

	// Stage a copy on disk so the duration probe can reach it.
	staged, err := storage.SaveUpload(s.cfg.UploadsDir, file.Filename, data)
	if err != nil {
		log.Printf("[Analyze] failed to stage upload %s: %v", file.Filename, err)
		utils.Error(c, http.StatusInternalServerError, "failed to stage uploaded file")
		return
	}
	defer storage.RemoveUpload(staged)

	log.Printf("[Analyze] file upload: name=%s size=%d type=%s", in.Name, in.Size, in.MimeType)
	s.runPipeline(c, in, pipeline.WithFilePath(staged))
}

// AnalyzeURLRequest is the remote-video analysis request body.
type AnalyzeURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// analyzeURL runs the pipeline on a video URL.
func (s *Server) analyzeURL(c *gin.Context) {
	var req AnalyzeURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "url is required")
		return
	}

	log.Printf("[Analyze] video URL: %s", req.URL)
	s.runPipeline(c, media.URLInput(req.URL))
}

func (s *Server) runPipeline(c *gin.Context, in media.Input, extra ...pipeline.Option) {
	opts := append([]pipeline.Option{pipeline.WithChannel(s.channel)}, extra...)
	if s.cfg.DemoMode {
		opts = append(opts, pipeline.WithDemoMode())
	}

	orch := pipeline.NewOrchestrator(s.newTransport(s.creds.Snapshot()), opts...)
	result, err := orch.Run(c.Request.Context(), in, nil)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	if err := s.results.Save(result); err != nil {
		log.Printf("[Analyze] failed to persist result %s: %v", result.ID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to persist result")
		return
	}

	log.Printf("[Analyze] run complete: id=%s words=%d sentiment=%s", result.ID, result.WordCount, result.Sentiment)
	utils.Success(c, result)
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
