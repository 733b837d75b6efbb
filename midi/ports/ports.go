// Package ports selects and opens a MIDI output destination.
//
// The driver is registered by the binary, e.g.
//
//	import _ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
package ports

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-isokeys/debug"
)

var (
	ErrNoPorts          = errors.New("no MIDI output ports available")
	ErrInvalidSelection = errors.New("invalid output port selection")
	ErrTimeout          = errors.New("timed out listing MIDI ports")
)

// DefaultVirtualName names the virtual port when none is given.
const DefaultVirtualName = "go-isokeys"

// listTimeout bounds port enumeration (CoreMIDI can hang)
const listTimeout = 3 * time.Second

// Selector chooses the output destination. Virtual wins, then Name, then
// Index; with none set the only port is used or the user is prompted.
type Selector struct {
	Name        string // substring of the port name
	Index       int    // port number, -1 for none
	Virtual     bool
	VirtualName string
}

// Lister abstracts port enumeration for selection.
type Lister interface {
	OutPorts() ([]drivers.Out, error)
}

// Driver lists ports from the registered gomidi driver.
type Driver struct{}

// OutPorts lists outputs with a timeout.
func (Driver) OutPorts() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		return outs, nil
	case <-time.After(listTimeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return nil, ErrTimeout
	}
}

// Names returns port names in port order.
func Names(outs []drivers.Out) []string {
	names := make([]string, 0, len(outs))
	for _, o := range outs {
		names = append(names, o.String())
	}
	return names
}

// Choose picks an existing port according to sel. in and out are used
// for the interactive prompt when several ports exist.
func Choose(l Lister, sel Selector, in io.Reader, out io.Writer) (drivers.Out, error) {
	outs, err := l.OutPorts()
	if err != nil {
		return nil, err
	}
	if len(outs) == 0 {
		return nil, ErrNoPorts
	}

	if sel.Name != "" {
		want := strings.ToLower(sel.Name)
		for _, o := range outs {
			if strings.Contains(strings.ToLower(o.String()), want) {
				return o, nil
			}
		}
		return nil, fmt.Errorf("%w: no port matching %q", ErrInvalidSelection, sel.Name)
	}

	if sel.Index >= 0 {
		if sel.Index >= len(outs) {
			return nil, fmt.Errorf("%w: port %d (have %d)", ErrInvalidSelection, sel.Index, len(outs))
		}
		return outs[sel.Index], nil
	}

	if len(outs) == 1 {
		fmt.Fprintf(out, "Choosing the only available output port: %s\n", outs[0].String())
		return outs[0], nil
	}

	return prompt(outs, in, out)
}

func prompt(outs []drivers.Out, in io.Reader, out io.Writer) (drivers.Out, error) {
	fmt.Fprintln(out, "\nAvailable output ports:")
	for i, name := range Names(outs) {
		fmt.Fprintf(out, "  %d: %s\n", i, name)
	}
	fmt.Fprint(out, "Please select output port: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("read selection: %w", err)
	}

	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || choice < 0 || choice >= len(outs) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSelection, strings.TrimSpace(line))
	}
	return outs[choice], nil
}

// virtualOuts is implemented by drivers that can create ports (rtmididrv).
type virtualOuts interface {
	OpenVirtualOut(name string) (drivers.Out, error)
}

// OpenVirtual creates a software-visible output port on the registered
// driver.
func OpenVirtual(name string) (drivers.Out, error) {
	if name == "" {
		name = DefaultVirtualName
	}
	drv, ok := drivers.Get().(virtualOuts)
	if !ok {
		return nil, errors.New("registered MIDI driver cannot create virtual ports")
	}
	return drv.OpenVirtualOut(name)
}

// Open selects a destination and returns a connected sink.
func Open(sel Selector, in io.Reader, out io.Writer) (*PortSink, error) {
	var (
		port drivers.Out
		err  error
	)
	if sel.Virtual {
		port, err = OpenVirtual(sel.VirtualName)
		if err != nil {
			return nil, fmt.Errorf("open virtual port: %w", err)
		}
	} else {
		port, err = Choose(Driver{}, sel, in, out)
		if err != nil {
			return nil, err
		}
	}
	debug.Log("ports", "using output %q", port.String())
	return NewPortSink(port)
}

// CloseDriver releases the MIDI driver.
func CloseDriver() {
	gomidi.CloseDriver()
}
