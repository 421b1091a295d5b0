// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/retroenv/chip8vm/internal/audio"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/font"
	"github.com/retroenv/chip8vm/internal/frontend/terminal"
	"github.com/retroenv/chip8vm/internal/frontend/window"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/render"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile loads the ROM file and either writes its listing or runs it
// in the selected frontend.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if !opts.Quiet {
		logger.Info("Processing CHIP-8 ROM",
			log.String("file", opts.Input),
			log.Int("size", len(program)),
		)
	}

	if opts.Disasm {
		return Disassemble(opts, program)
	}
	return Run(ctx, logger, opts, program)
}

// Disassemble writes the assembly listing of the program to the output file
// or to stdout if no output file was given.
func Disassemble(opts options.Program, program []byte) error {
	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	listing := disasm.NewWriter(writer, disasm.Options{OffsetComments: opts.Debug})
	if err := listing.Write(program); err != nil {
		_ = writer.Close()
		return fmt.Errorf("disassembling: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// Run executes the program in the frontend selected by the options.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, program []byte) error {
	engine, err := NewEngine(logger, opts)
	if err != nil {
		return err
	}
	if err := engine.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	hostOptions, err := hostOptions(opts)
	if err != nil {
		return err
	}

	var sound host.Sound
	if !opts.NoSound && opts.Frontend != options.FrontendHeadless {
		beeper, err := audio.NewBeeper()
		if err != nil {
			logger.Warn("Audio output not available", log.Err(err))
		} else {
			defer func() { _ = beeper.Close() }()
			sound = beeper
		}
	}

	switch opts.Frontend {
	case options.FrontendTerminal:
		return runTerminal(ctx, logger, engine, sound, hostOptions)
	case options.FrontendHeadless:
		out, err := createWriter(opts)
		if err != nil {
			return fmt.Errorf("creating writer: %w", err)
		}
		defer func() { _ = out.Close() }()
		return runHeadless(ctx, logger, engine, hostOptions, out)
	default:
		win := window.New("chip8vm - "+filepath.Base(opts.Input), opts.Scale)
		engine.SetKeypad(win)
		runner := host.New(logger, engine, win, sound, hostOptions)
		return win.Run(ctx, runner)
	}
}

// NewEngine creates an engine with the font, quirks and random seed
// selected by the options.
func NewEngine(logger *log.Logger, opts options.Program) (*vm.Engine, error) {
	fontID, err := font.ByName(opts.Font)
	if err != nil {
		return nil, fmt.Errorf("selecting font: %w", err)
	}
	quirks, err := config.Quirks(opts.Profile, opts.Quirks)
	if err != nil {
		return nil, fmt.Errorf("selecting quirks: %w", err)
	}

	seed := opts.Seed
	if !opts.SeedSet {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Debug("Random number generator", log.Hex("seed", seed))

	engine, err := vm.New(logger, vm.Config{
		Quirks: quirks,
		Font:   fontID,
		Random: rand.NewPCG(seed, seed),
	})
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	return engine, nil
}

func hostOptions(opts options.Program) (host.Options, error) {
	policy, err := config.FaultPolicy(opts.OnFault)
	if err != nil {
		return host.Options{}, fmt.Errorf("selecting fault policy: %w", err)
	}

	return host.Options{
		InstructionsPerSecond: opts.Speed,
		FaultPolicy:           policy,
		Trace:                 opts.Trace,
		MaxFrames:             opts.Frames,
	}, nil
}

func runTerminal(ctx context.Context, logger *log.Logger, engine *vm.Engine,
	sound host.Sound, hostOptions host.Options) error {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := terminal.New(render.DefaultOptions())
	if err := term.Start(ctx, cancel); err != nil {
		return fmt.Errorf("starting terminal: %w", err)
	}
	defer func() { _ = term.Close() }()

	engine.SetKeypad(term)
	runner := host.New(logger, engine, term, sound, hostOptions)
	return runner.Run(ctx)
}

// runHeadless executes the program without input and sound and writes
// the final display once the runner stopped.
func runHeadless(ctx context.Context, logger *log.Logger, engine *vm.Engine,
	hostOptions host.Options, out io.Writer) error {

	runner := host.New(logger, engine, nil, nil, hostOptions)
	runErr := runner.Run(ctx)

	logger.Debug("Execution stopped",
		log.Int("frames", runner.Frames()),
		log.Hex("pc", engine.PC()),
	)

	if err := render.NewWriter(out, render.DefaultOptions()).Render(engine.Display()); err != nil {
		return err
	}
	return runErr
}

func createWriter(opts options.Program) (io.WriteCloser, error) {
	if opts.Output == "" {
		return &nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("chip8vm - CHIP-8 virtual machine",
		log.String("version", buildinfo.Version(version, commit, date)))
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nc *nopCloser) Close() error {
	return nil
}
