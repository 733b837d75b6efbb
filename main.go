package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-isokeys/config"
	"go-isokeys/debug"
	"go-isokeys/input"
	"go-isokeys/layout"
	"go-isokeys/midi"
	"go-isokeys/midi/ports"
	"go-isokeys/theme"
	"go-isokeys/translator"
	"go-isokeys/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	listPresets bool
	dryRun      bool
	save        bool
}

func parseFlags(args []string, cfg *config.Config) (options, error) {
	var opts options
	fs := flag.NewFlagSet("go-isokeys", flag.ContinueOnError)
	fs.BoolVar(&opts.listPresets, "list-presets", false, "print the layout presets and exit")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "log MIDI to the debug file instead of sending")
	fs.BoolVar(&opts.save, "save", false, "save the resulting settings as the default config")
	err := cfg.ParseFlags(fs, args)
	return opts, err
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts, err := parseFlags(args, cfg)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if opts.listPresets {
		return layout.Default.WriteTable(os.Stdout)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	orientation, err := layout.ParseOrientation(cfg.Orientation)
	if err != nil {
		return err
	}
	basis, err := layout.Resolve(cfg.Preset, cfg.Upper, cfg.Lower, orientation)
	if err != nil {
		return err
	}

	if cfg.Debug || opts.dryRun {
		if err := debug.Enable(""); err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		defer debug.Disable()
	}
	debug.Log("config", "preset=%q basis=%s transpose=%d", cfg.Preset, basis, cfg.Transpose)

	if opts.save {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}

	th := theme.Default()
	if cfg.UI.Palette != "" {
		palette, err := theme.LoadGPL(cfg.UI.Palette)
		if err != nil {
			return err
		}
		th = theme.New(palette)
	}

	// Output destination
	var (
		sink       midi.Sink
		outputName string
	)
	if opts.dryRun {
		sink = &midi.Recorder{}
		outputName = "dry-run"
	} else {
		ps, err := ports.Open(ports.Selector{
			Name:        cfg.Output.PortName,
			Index:       cfg.Output.PortIndex,
			Virtual:     cfg.Output.Virtual,
			VirtualName: cfg.Output.VirtualName,
		}, os.Stdin, os.Stdout)
		if err != nil {
			return fmt.Errorf("MIDI output: %w", err)
		}
		defer ports.CloseDriver()
		defer ps.Close()
		sink = ps
		outputName = ps.Name()
	}

	tr := translator.New(translator.Config{
		Basis:     basis,
		Transpose: cfg.Transpose,
		Channel:   uint8(cfg.Channel - 1),
		Velocity:  uint8(cfg.Velocity),
	})

	tuiOpts := tui.Options{Preset: cfg.Preset, OutputName: outputName}
	var m tui.Model

	switch cfg.Input.Source {
	case config.SourceEvdev:
		path := cfg.Input.Device
		if path == "" {
			path, err = input.FindKeyboard()
			if err != nil {
				return err
			}
		}
		ev, err := input.OpenEvdev(path, cfg.Input.Grab)
		if err != nil {
			return err
		}
		defer ev.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go ev.Run(ctx)

		tuiOpts.SourceName = ev.Name()
		m = tui.NewSourceModel(tr, sink, ev, th, tuiOpts)
	default:
		tuiOpts.SourceName = "terminal"
		m = tui.NewTerminalModel(tr, sink, input.NewTerminal(cfg.Gate()), th, tuiOpts)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(tui.Model); ok && fm.Err() != "" {
		fmt.Println(fm.Err())
	}
	return nil
}
