//go:build !linux

package input

import (
	"context"

	"go-isokeys/keys"
)

// Evdev is unavailable off Linux.
type Evdev struct{}

func FindKeyboard() (string, error) {
	return "", ErrUnsupported
}

func OpenEvdev(path string, grab bool) (*Evdev, error) {
	return nil, ErrUnsupported
}

func (e *Evdev) Name() string              { return "" }
func (e *Evdev) Events() <-chan keys.Event { return nil }
func (e *Evdev) Run(ctx context.Context)   {}
func (e *Evdev) Close() error              { return nil }
