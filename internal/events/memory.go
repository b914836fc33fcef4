package events

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"
)

const (
	defaultHandshakeDelay = 50 * time.Millisecond
	maxConnectAttempts    = 5
	backoffBase           = 100 * time.Millisecond
)

type handlerEntry struct {
	id int64
	fn Handler
}

// Bus is the in-memory Channel implementation. It simulates the
// connection lifecycle of a remote pub/sub client: a handshake delay
// on connect, reconnect backoff, and a measurable ping round trip.
type Bus struct {
	mu        sync.Mutex
	connected bool
	nextID    int64
	handlers  map[string][]handlerEntry

	// handshake is swappable so tests can inject failures.
	handshake      func(ctx context.Context) error
	handshakeDelay time.Duration
}

// NewBus creates a disconnected Bus. Call Connect before emitting.
func NewBus() *Bus {
	b := &Bus{
		handlers:       make(map[string][]handlerEntry),
		handshakeDelay: defaultHandshakeDelay,
	}
	b.handshake = b.simulateHandshake
	return b
}

func (b *Bus) simulateHandshake(ctx context.Context) error {
	select {
	case <-time.After(b.handshakeDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Connect runs the handshake with bounded exponential backoff. After
// maxConnectAttempts failures it gives up silently: no error, status
// stays disconnected.
func (b *Bus) Connect(ctx context.Context) error {
	if b.Connected() {
		return nil
	}

	for attempt := 0; attempt < maxConnectAttempts; attempt++ {
		if attempt > 0 {
			backoff := backoffBase << (attempt - 1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := b.handshake(ctx)
		if err == nil {
			b.mu.Lock()
			b.connected = true
			b.mu.Unlock()
			log.Printf("[Events] channel connected (attempt %d)", attempt+1)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("[Events] handshake failed (attempt %d/%d): %v", attempt+1, maxConnectAttempts, err)
	}

	log.Printf("[Events] giving up after %d attempts, channel stays disconnected", maxConnectAttempts)
	return nil
}

// Connected reports the connection status.
func (b *Bus) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connected
}

// Emit dispatches payload to every handler registered for name. When
// disconnected the payload is dropped with a warning; this is a
// status-display channel, not a delivery-guaranteed bus.
func (b *Bus) Emit(name string, payload any) {
	b.mu.Lock()
	if !b.connected {
		b.mu.Unlock()
		log.Printf("[Events] not connected, dropping event %q", name)
		return
	}
	entries := make([]handlerEntry, len(b.handlers[name]))
	copy(entries, b.handlers[name])
	b.mu.Unlock()

	for _, e := range entries {
		e.fn(payload)
	}
}

// On registers fn for name and returns its unsubscribe func.
func (b *Bus) On(name string, fn Handler) (off func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.handlers[name] = append(b.handlers[name], handlerEntry{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		entries := b.handlers[name]
		for i, e := range entries {
			if e.id == id {
				b.handlers[name] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Ping measures a simulated round trip through the dispatch path.
// Returns -1 when disconnected.
func (b *Bus) Ping(ctx context.Context) time.Duration {
	if !b.Connected() {
		return -1
	}

	type pong struct{ id int64 }

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.mu.Unlock()

	done := make(chan struct{}, 1)
	off := b.On("pong", func(payload any) {
		if p, ok := payload.(pong); ok && p.id == id {
			select {
			case done <- struct{}{}:
			default:
			}
		}
	})
	defer off()

	// The bus acts as its own responder with a simulated latency,
	// mirroring a remote acknowledgment.
	start := time.Now()
	go func() {
		latency := time.Duration(20+rand.Intn(100)) * time.Millisecond
		select {
		case <-time.After(latency):
			b.Emit("pong", pong{id: id})
		case <-ctx.Done():
		}
	}()

	select {
	case <-done:
		return time.Since(start)
	case <-ctx.Done():
		return -1
	}
}

// Close disconnects and drops all handlers.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.connected = false
	b.handlers = make(map[string][]handlerEntry)
}
