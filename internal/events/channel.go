// Package events provides best-effort fan-out of named events to
// zero-or-more local listeners. The pipeline broadcasts progress and
// results through a Channel; consumers tolerate its absence entirely.
package events

import (
	"context"
	"time"
)

// Event names broadcast by the pipeline.
const (
	EventProcessingUpdate = "processing_update"
	EventAnalysisComplete = "analysis_complete"
	EventProcessingError  = "processing_error"
)

// Handler receives one event payload.
type Handler func(payload any)

// Channel is a publish/subscribe handle with a connect/disconnect
// lifecycle. Delivery is best effort: payloads emitted while
// disconnected are dropped, not queued.
type Channel interface {
	// Connect performs the handshake, retrying with bounded
	// exponential backoff. After the attempt ceiling it gives up
	// silently and the channel stays disconnected.
	Connect(ctx context.Context) error

	// Connected reports the current connection status.
	Connected() bool

	// Emit broadcasts payload to every handler registered for name.
	// A no-op (with a logged warning) when disconnected.
	Emit(name string, payload any)

	// On registers a handler for name. All handlers registered for a
	// name fire on emit. The returned func unregisters the handler.
	On(name string, fn Handler) (off func())

	// Ping measures a request/response round trip. Returns -1 when
	// disconnected.
	Ping(ctx context.Context) time.Duration

	// Close disconnects and drops all handlers.
	Close()
}

// Disabled is the no-op Channel used when the event layer is turned
// off in configuration.
type Disabled struct{}

func (Disabled) Connect(context.Context) error       { return nil }
func (Disabled) Connected() bool                     { return false }
func (Disabled) Emit(string, any)                    {}
func (Disabled) On(string, Handler) (off func())     { return func() {} }
func (Disabled) Ping(context.Context) time.Duration  { return -1 }
func (Disabled) Close()                              {}
