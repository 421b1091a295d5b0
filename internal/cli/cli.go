// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		return opts, &UsageError{flags: flags, msg: msg}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.SeedSet = true
		}
	})

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <ROM file>\n\n")
	e.flags.SetOutput(os.Stdout)
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if opts.Frontend == "ebiten" {
		opts.Frontend = options.FrontendWindow
	}
	opts.Font = strings.ToLower(opts.Font)
	opts.Profile = strings.ToLower(opts.Profile)
	opts.OnFault = strings.ToLower(opts.OnFault)

	if opts.Speed <= 0 {
		return fmt.Errorf("invalid instructions per second: %d", opts.Speed)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame count: %d", opts.Frames)
	}

	// Validate frontend type
	validFrontends := []string{options.FrontendWindow, options.FrontendTerminal, options.FrontendHeadless}
	for _, valid := range validFrontends {
		if opts.Frontend == valid {
			return nil
		}
	}

	return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
		opts.Frontend, strings.Join(validFrontends, ", "))
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file for the -disasm listing or the final headless screen, printed on console if no name given")
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendWindow, "frontend to run the ROM in (window/terminal/headless)")
	flags.BoolVar(&opts.Disasm, "disasm", false, "write an assembly listing of the ROM instead of running it")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")

	flags.StringVar(&opts.Font, "font", "chip48", "font to load (chip48/cosmacvip/dream6800/eti660)")
	flags.StringVar(&opts.Profile, "profile", options.ProfileModern, "quirk profile (modern/legacy)")
	flags.StringVar(&opts.Quirks, "quirks", "", "comma separated quirks to enable on top of the profile, prefix with ! to disable one")
	flags.IntVar(&opts.Speed, "ips", host.DefaultInstructionsPerSecond, "instructions executed per second")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, the current time is used if not set")
	flags.StringVar(&opts.OnFault, "on-fault", options.OnFaultHalt, "handling of invalid or unsupported instructions (halt/skip)")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after this many frames, 0 runs until interrupted")
	flags.IntVar(&opts.Scale, "scale", 10, "size of a pixel in the window frontend")
	flags.BoolVar(&opts.NoSound, "nosound", false, "disable the audio output")
}
