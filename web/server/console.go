package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
	RenderID  string    `json:"renderId,omitempty"`
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to stdout for server logs
	fmt.Print(message)

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
			RenderID:  wl.renderID,
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}

// Console keeps the most recent messages logged by all renders
type Console struct {
	mu       sync.Mutex
	incoming chan ConsoleMessage
	messages []ConsoleMessage
	limit    int
}

// NewConsole creates a console that keeps at most limit messages
func NewConsole(limit int) *Console {
	return &Console{
		incoming: make(chan ConsoleMessage, 256),
		limit:    limit,
	}
}

// Logger returns a logger whose messages are recorded under renderID
func (c *Console) Logger(renderID string) core.Logger {
	return NewWebLogger(renderID, c.incoming)
}

// Messages returns a copy of the recorded messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.drainLocked()
	out := make([]ConsoleMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Record adds a message directly, bypassing the logger channel
func (c *Console) Record(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.drainLocked()
	c.appendLocked(msg)
}

// drainLocked moves pending messages into the ring, dropping the oldest past the limit
func (c *Console) drainLocked() {
	for {
		select {
		case msg := <-c.incoming:
			c.appendLocked(msg)
		default:
			return
		}
	}
}

func (c *Console) appendLocked(msg ConsoleMessage) {
	c.messages = append(c.messages, msg)
	if len(c.messages) > c.limit {
		c.messages = c.messages[len(c.messages)-c.limit:]
	}
}
