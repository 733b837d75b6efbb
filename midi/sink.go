package midi

import (
	"sync"

	"go-isokeys/debug"
)

// Sink transmits one event or reports why it could not.
type Sink interface {
	Send(e Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(e Event) error

func (f SinkFunc) Send(e Event) error {
	return f(e)
}

// Recorder is a Sink that keeps every event instead of transmitting it.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Send(e Event) error {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	debug.Log("dry-run", "% X %s", []byte(e.Message()), e)
	return nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
