package config

import (
	"flag"

	"go-isokeys/debug"
)

// ParseFlags registers flags on fs that default to c's current values,
// parses args and writes the results back into c. Callers may register
// their own flags on fs first.
func (c *Config) ParseFlags(fs *flag.FlagSet, args []string) error {
	fs.StringVar(&c.Preset, "preset", c.Preset, "layout preset name (see -list-presets)")
	fs.IntVar(&c.Upper, "upper", c.Upper, "literal basis: upper interval")
	fs.IntVar(&c.Lower, "lower", c.Lower, "literal basis: lower interval")
	fs.StringVar(&c.Orientation, "orientation", c.Orientation, "literal basis: vertical|horizontal (or rotation -90|0)")
	fs.IntVar(&c.Transpose, "transpose", c.Transpose, "semitones added to every note")
	fs.IntVar(&c.Channel, "channel", c.Channel, "MIDI channel 1-16")
	fs.IntVar(&c.Velocity, "velocity", c.Velocity, "note-on velocity 1-127")
	fs.StringVar(&c.Output.PortName, "output", c.Output.PortName, "MIDI output port name (substring)")
	fs.IntVar(&c.Output.PortIndex, "port", c.Output.PortIndex, "MIDI output port number (-1 to choose)")
	fs.BoolVar(&c.Output.Virtual, "virtual", c.Output.Virtual, "create a virtual output port")
	fs.StringVar(&c.Output.VirtualName, "virtual-name", c.Output.VirtualName, "name of the virtual output port")
	source := fs.String("source", string(c.Input.Source), "key source: terminal|evdev")
	fs.StringVar(&c.Input.Device, "device", c.Input.Device, "evdev device path (autodetect if empty)")
	fs.BoolVar(&c.Input.Grab, "grab", c.Input.Grab, "evdev: take exclusive access to the keyboard")
	fs.IntVar(&c.Input.GateMS, "gate", c.Input.GateMS, "terminal: note length in ms")
	fs.StringVar(&c.UI.Palette, "palette", c.UI.Palette, "GIMP palette for key colors")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "write "+debug.DefaultPath())

	if err := fs.Parse(args); err != nil {
		return err
	}
	c.Input.Source = SourceType(*source)

	// A literal basis on the command line replaces the configured preset.
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["preset"] && (set["upper"] || set["lower"] || set["orientation"]) {
		c.Preset = ""
	}
	return nil
}
