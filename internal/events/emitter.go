package events

import (
	"fmt"
	"io"
	"sync"

	"github.com/mattjoyce/counter-contract/internal/protocol"
)

//go:generate mockgen -destination=mocks/mock_emitter.go -package=mocks github.com/mattjoyce/counter-contract/internal/events Emitter

// Emitter publishes contract events. Events are informational only; nothing
// in this process reads them back.
type Emitter interface {
	Emit(name string, data any) error
}

type flusher interface {
	Flush() error
}

// StreamEmitter writes each event as one JSON line and flushes immediately.
type StreamEmitter struct {
	w io.Writer
}

func NewStreamEmitter(w io.Writer) *StreamEmitter {
	return &StreamEmitter{w: w}
}

func (e *StreamEmitter) Emit(name string, data any) error {
	if err := protocol.EncodeEvent(e.w, protocol.Event{Name: name, Data: data}); err != nil {
		return fmt.Errorf("emit %s: %w", name, err)
	}
	if f, ok := e.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush %s: %w", name, err)
		}
	}
	return nil
}

// Recorder keeps emitted events in memory, oldest first.
type Recorder struct {
	mu     sync.Mutex
	events []protocol.Event
}

func (r *Recorder) Emit(name string, data any) error {
	r.mu.Lock()
	r.events = append(r.events, protocol.Event{Name: name, Data: data})
	r.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the recorded events.
func (r *Recorder) Snapshot() []protocol.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]protocol.Event, len(r.events))
	copy(out, r.events)
	return out
}
