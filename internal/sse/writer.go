// Package sse writes the builder session event stream as Server-Sent Events.
package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

var (
	// ErrClosed is returned by writes after Close.
	ErrClosed = errors.New("SSE writer is closed")
	// ErrNoFlush is returned by Start when the response cannot be flushed.
	ErrNoFlush = errors.New("response writer does not support flushing")
	// ErrEventName is returned for event names that would break framing.
	ErrEventName = errors.New("SSE event name contains a line break")
)

// Writer emits frames on one event stream. Every frame is written whole and
// flushed, so a builder transition reaches the browser as soon as it happens.
// Writes are safe for concurrent use; the stream loop and keep-alive share it.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher

	mu      sync.Mutex
	started bool
	closed  bool
}

// NewWriter wraps w. Nothing is sent until Start.
func NewWriter(w http.ResponseWriter) *Writer {
	flusher, _ := w.(http.Flusher)
	return &Writer{w: w, flusher: flusher}
}

// CanFlush reports whether frames will reach the client as they are written.
// Handlers check it before subscribing so they can still answer with a JSON
// error.
func (s *Writer) CanFlush() bool {
	return s.flusher != nil
}

// Start commits the 200 response with event-stream headers, with proxy
// buffering switched off, and flushes it so the EventSource opens before the
// snapshot frame is ready. Calling it again is a no-op.
func (s *Writer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.started:
		return nil
	case s.flusher == nil:
		return ErrNoFlush
	}

	h := s.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Accel-Buffering", "no")
	s.w.WriteHeader(http.StatusOK)
	s.flusher.Flush()

	s.started = true
	return nil
}

// WriteEvent sends data as JSON under the given event name, or as an unnamed
// message when name is empty:
//
//	event: reveal
//	data: {"type":"reveal","epoch":2,"char":"x","length":7}
func (s *Writer) WriteEvent(name string, data any) error {
	if strings.ContainsAny(name, "\r\n") {
		return ErrEventName
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal SSE data: %w", err)
	}

	var b strings.Builder
	if name != "" {
		b.WriteString("event: ")
		b.WriteString(name)
		b.WriteByte('\n')
	}
	b.WriteString("data: ")
	b.Write(payload)
	b.WriteString("\n\n")
	return s.send(b.String())
}

// WriteData sends an unnamed message.
func (s *Writer) WriteData(data any) error {
	return s.WriteEvent("", data)
}

// WriteRetry sets the reconnect delay the EventSource uses after the stream
// drops, in milliseconds.
func (s *Writer) WriteRetry(ms int) error {
	return s.send("retry: " + strconv.Itoa(ms) + "\n\n")
}

// WriteComment sends a comment line. Browsers ignore it; it keeps idle
// connections open through proxies.
func (s *Writer) WriteComment(comment string) error {
	return s.send(": " + comment + "\n\n")
}

// Close refuses further frames. The handler returning ends the response.
func (s *Writer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Writer) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Writer) send(frame string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if _, err := io.WriteString(s.w, frame); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}
