package api

import (
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"clipinsight/internal/events"
	"clipinsight/internal/utils"
)

// sseEvent pairs an event name with its payload for the stream.
type sseEvent struct {
	Name    string
	Payload any
}

// streamEvents bridges the event channel to an SSE response. Every
// broadcast the channel delivers while the client is connected is
// forwarded; a client that lags beyond the buffer loses events, same
// as a disconnected channel consumer would.
func (s *Server) streamEvents(c *gin.Context) {
	out := make(chan sseEvent, 16)
	forward := func(name string) events.Handler {
		return func(payload any) {
			select {
			case out <- sseEvent{Name: name, Payload: payload}:
			default:
				log.Printf("[Events] SSE client lagging, dropping event %q", name)
			}
		}
	}

	offs := []func(){
		s.channel.On(events.EventProcessingUpdate, forward(events.EventProcessingUpdate)),
		s.channel.On(events.EventAnalysisComplete, forward(events.EventAnalysisComplete)),
		s.channel.On(events.EventProcessingError, forward(events.EventProcessingError)),
	}
	defer func() {
		for _, off := range offs {
			off()
		}
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev := <-out:
			c.SSEvent(ev.Name, ev.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// realtimeStatus reports the event channel's connection state and a
// measured round-trip latency. Latency is -1 while disconnected.
func (s *Server) realtimeStatus(c *gin.Context) {
	latency := s.channel.Ping(c.Request.Context())
	latencyMs := int64(-1)
	if latency >= 0 {
		latencyMs = latency.Milliseconds()
	}

	utils.Success(c, gin.H{
		"connected":  s.channel.Connected(),
		"latency_ms": latencyMs,
	})
}
