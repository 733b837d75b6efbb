package ports

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-isokeys/midi"
)

// PortSink transmits events to one output port.
type PortSink struct {
	port drivers.Out
	send func(msg gomidi.Message) error
}

// NewPortSink opens port for sending.
func NewPortSink(port drivers.Out) (*PortSink, error) {
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	return &PortSink{port: port, send: send}, nil
}

// Name is the port name.
func (s *PortSink) Name() string {
	return s.port.String()
}

// Send transmits e once; failures are returned, not retried.
func (s *PortSink) Send(e midi.Event) error {
	if err := s.send(e.Message()); err != nil {
		return fmt.Errorf("send %s to %q: %w", e, s.port.String(), err)
	}
	return nil
}

func (s *PortSink) Close() error {
	return s.port.Close()
}
