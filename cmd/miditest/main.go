package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-isokeys/keys"
	"go-isokeys/lattice"
	"go-isokeys/layout"
	imidi "go-isokeys/midi"
	"go-isokeys/midi/ports"
	"go-isokeys/translator"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = listPorts()
	case "ping":
		err = ping(os.Args[2:])
	case "chart":
		err = chart(os.Args[2:])
	case "poll":
		pollDevices()
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list             - List all MIDI ports")
	fmt.Println("  ping [flags]     - Play middle C on an output port")
	fmt.Println("  chart <preset>   - Print the key to note chart of a layout")
	fmt.Println("  poll             - Poll for device changes")
}

func listPorts() error {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ch := make(chan []drivers.In, 1)
	go func() { ch <- midi.GetInPorts() }()
	select {
	case ins := <-ch:
		for i, p := range ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		return ports.ErrTimeout
	}

	fmt.Println("\n=== MIDI Output Ports ===")
	outs, err := ports.Driver{}.OutPorts()
	if err != nil {
		return err
	}
	for i, name := range ports.Names(outs) {
		fmt.Printf("  %d: %s\n", i, name)
	}
	return nil
}

func ping(args []string) error {
	fs := flag.NewFlagSet("ping", flag.ContinueOnError)
	name := fs.String("output", "", "output port name (substring)")
	index := fs.Int("port", -1, "output port number")
	note := fs.Int("note", lattice.MiddleC, "note to play")
	channel := fs.Int("channel", 1, "MIDI channel 1-16")
	length := fs.Duration("length", 500*time.Millisecond, "note length")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *note < 0 || *note > translator.MaxNote {
		return fmt.Errorf("note %d: %w", *note, translator.ErrNoteOutOfRange)
	}
	if *channel < 1 || *channel > 16 {
		return fmt.Errorf("channel %d must be 1-16", *channel)
	}

	sink, err := ports.Open(ports.Selector{Name: *name, Index: *index}, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer ports.CloseDriver()
	defer sink.Close()

	ch, n := uint8(*channel-1), uint8(*note)
	fmt.Printf("Sending %s to %s\n", lattice.NoteName(n), sink.Name())
	if err := sink.Send(imidi.NoteOnEvent(ch, n, translator.DefaultVelocity)); err != nil {
		return err
	}
	time.Sleep(*length)
	return sink.Send(imidi.NoteOffEvent(ch, n))
}

func chart(args []string) error {
	fs := flag.NewFlagSet("chart", flag.ContinueOnError)
	transpose := fs.Int("transpose", 0, "semitones added to every note")
	if err := fs.Parse(args); err != nil {
		return err
	}
	presetName := layout.Default.Names()[0]
	if fs.NArg() > 0 {
		presetName = strings.Join(fs.Args(), " ")
	}
	preset, ok := layout.Default.Lookup(presetName)
	if !ok {
		return fmt.Errorf("%q: %w", presetName, layout.ErrUnknownPreset)
	}
	basis, err := preset.Basis()
	if err != nil {
		return err
	}

	tr := translator.New(translator.Config{Basis: basis, Transpose: *transpose})
	fmt.Printf("%s  basis %s  transpose %d\n\n", preset.Name, basis, *transpose)
	for i, row := range keys.Standard.Rows() {
		fmt.Print(strings.Repeat("   ", i))
		for _, k := range row.Keys {
			label := "--"
			if n, _, err := tr.Note(k); err == nil {
				label = lattice.ShortName(n)
			}
			fmt.Printf("%s:%-4s ", k, label)
		}
		fmt.Println()
	}
	return nil
}

func pollDevices() {
	fmt.Println("Polling for device changes every 2 seconds...")
	fmt.Println("Ctrl+C to exit.")

	last := ""
	for {
		outs, err := ports.Driver{}.OutPorts()
		if err != nil {
			fmt.Printf("  %v\n", err)
			time.Sleep(2 * time.Second)
			continue
		}
		names := ports.Names(outs)
		current := strings.Join(names, ",")
		if current != last {
			fmt.Printf("\n[%s] Device change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Outputs: %v\n", names)
			last = current
		}
		time.Sleep(2 * time.Second)
	}
}
