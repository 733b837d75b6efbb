//go:build linux

package input

import (
	"context"
	"fmt"
	"strings"
	"sync"

	evdev "github.com/holoplot/go-evdev"

	"go-isokeys/debug"
	"go-isokeys/keys"
)

// device is the part of *evdev.InputDevice the reader uses.
type device interface {
	ReadOne() (*evdev.InputEvent, error)
	Ungrab() error
	Close() error
}

// Evdev reads key events from a Linux input device.
type Evdev struct {
	dev    device
	path   string
	name   string
	grab   bool
	events chan keys.Event

	closeOnce sync.Once
	closeErr  error
}

// FindKeyboard returns the path of the first device whose name looks
// like a keyboard.
func FindKeyboard() (string, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return "", fmt.Errorf("list input devices: %w", err)
	}
	for _, p := range paths {
		if isKeyboard(p.Name) {
			debug.Log("input", "found keyboard %q at %s", p.Name, p.Path)
			return p.Path, nil
		}
	}
	return "", ErrNoKeyboard
}

func isKeyboard(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "keyboard") && !strings.Contains(name, "consumer")
}

// OpenEvdev opens path. With grab set, other programs stop receiving the
// device's keys until Close.
func OpenEvdev(path string, grab bool) (*Evdev, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	name, _ := dev.Name()

	if grab {
		if err := dev.Grab(); err != nil {
			dev.Close()
			return nil, fmt.Errorf("grab %s: %w", path, err)
		}
	}

	return newEvdev(dev, path, name, grab), nil
}

func newEvdev(dev device, path, name string, grab bool) *Evdev {
	return &Evdev{
		dev:    dev,
		path:   path,
		name:   name,
		grab:   grab,
		events: make(chan keys.Event, 64),
	}
}

// Name is the device name reported by the kernel.
func (e *Evdev) Name() string {
	return e.name
}

// Events delivers key events until the device is closed.
func (e *Evdev) Events() <-chan keys.Event {
	return e.events
}

// Run reads events until ctx is done or the device fails (blocking - run
// in goroutine). The events channel is closed on return.
func (e *Evdev) Run(ctx context.Context) {
	defer close(e.events)

	go func() {
		<-ctx.Done()
		e.Close()
	}()

	debug.Log("input", "reading %s (%s)", e.path, e.name)
	for {
		ev, err := e.dev.ReadOne()
		if err != nil {
			if ctx.Err() == nil {
				debug.Log("input", "read %s: %v", e.path, err)
			}
			return
		}
		if ev.Type != evdev.EV_KEY {
			debug.LogEvery(500, "input", "skipped non-key events")
			continue
		}
		kev, ok := FromInputEvent(uint16(ev.Code), ev.Value)
		if !ok {
			continue
		}
		if kev.Action == keys.Repeat {
			debug.LogEvery(50, "input", "key repeat")
		}
		select {
		case e.events <- kev:
		case <-ctx.Done():
			return
		}
	}
}

// Close releases the device. Only the first call has an effect.
func (e *Evdev) Close() error {
	e.closeOnce.Do(func() {
		if e.grab {
			e.dev.Ungrab()
		}
		e.closeErr = e.dev.Close()
	})
	return e.closeErr
}
