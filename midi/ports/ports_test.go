package ports

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-isokeys/midi"
)

type fakeOut struct {
	num  int
	name string
	open bool
	sent [][]byte
	err  error
}

func (f *fakeOut) Open() error             { f.open = true; return nil }
func (f *fakeOut) Close() error            { f.open = false; return nil }
func (f *fakeOut) IsOpen() bool            { return f.open }
func (f *fakeOut) Number() int             { return f.num }
func (f *fakeOut) String() string          { return f.name }
func (f *fakeOut) Underlying() interface{} { return nil }
func (f *fakeOut) Send(data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, append([]byte(nil), data...))
	return nil
}

type fakeLister []drivers.Out

func (l fakeLister) OutPorts() ([]drivers.Out, error) { return l, nil }

func outs(names ...string) fakeLister {
	l := make(fakeLister, 0, len(names))
	for i, n := range names {
		l = append(l, &fakeOut{num: i, name: n})
	}
	return l
}

func TestChooseNoPorts(t *testing.T) {
	_, err := Choose(outs(), Selector{Index: -1}, strings.NewReader(""), &strings.Builder{})
	assert.ErrorIs(t, err, ErrNoPorts)
}

func TestChooseOnlyPort(t *testing.T) {
	var buf strings.Builder
	o, err := Choose(outs("Synth"), Selector{Index: -1}, strings.NewReader(""), &buf)
	require.NoError(t, err)
	assert.Equal(t, "Synth", o.String())
	assert.Contains(t, buf.String(), "only available output port: Synth")
}

func TestChooseByName(t *testing.T) {
	o, err := Choose(outs("Midi Through", "FluidSynth:0"), Selector{Name: "fluid", Index: -1}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "FluidSynth:0", o.String())

	_, err = Choose(outs("Midi Through"), Selector{Name: "fluid", Index: -1}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestChooseByIndex(t *testing.T) {
	o, err := Choose(outs("a", "b", "c"), Selector{Index: 2}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "c", o.String())

	_, err = Choose(outs("a"), Selector{Index: 3}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestChoosePrompt(t *testing.T) {
	var buf strings.Builder
	o, err := Choose(outs("a", "b"), Selector{Index: -1}, strings.NewReader("1\n"), &buf)
	require.NoError(t, err)
	assert.Equal(t, "b", o.String())
	assert.Contains(t, buf.String(), "  0: a\n  1: b\n")

	_, err = Choose(outs("a", "b"), Selector{Index: -1}, strings.NewReader("7\n"), &buf)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = Choose(outs("a", "b"), Selector{Index: -1}, strings.NewReader("x"), &buf)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestPortSink(t *testing.T) {
	port := &fakeOut{name: "Synth"}
	s, err := NewPortSink(port)
	require.NoError(t, err)
	assert.Equal(t, "Synth", s.Name())

	require.NoError(t, s.Send(midi.NoteOnEvent(0, 60, 64)))
	require.NoError(t, s.Send(midi.SustainEvent(0, false)))
	assert.Equal(t, [][]byte{{0x90, 60, 64}, {0xB0, 64, 0}}, port.sent)

	port.err = errors.New("unplugged")
	err = s.Send(midi.NoteOffEvent(0, 60))
	assert.ErrorContains(t, err, "unplugged")
	assert.ErrorContains(t, err, `"Synth"`)

	require.NoError(t, s.Close())
	assert.False(t, port.open)
}
