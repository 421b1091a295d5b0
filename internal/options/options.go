// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Quirk profile names.
const (
	ProfileModern = "modern"
	ProfileLegacy = "legacy"
)

// Fault policy names.
const (
	OnFaultHalt = "halt"
	OnFaultSkip = "skip"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output file for the -disasm listing or the final headless screen (default: stdout)"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend string `flag:"frontend" usage:"frontend: window, terminal, headless" default:"window"`
	Disasm   bool   `flag:"disasm" usage:"write an assembly listing of the ROM instead of running it"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction, requires -debug"`
}

// Emulation contains options that control the machine.
type Emulation struct {
	Font    string `flag:"font" usage:"font: chip48, cosmacvip, dream6800, eti660" default:"chip48"`
	Profile string `flag:"profile" usage:"quirk profile: modern, legacy" default:"modern"`
	Quirks  string `flag:"quirks" usage:"comma separated quirk overrides, prefix with ! to disable"`
	Speed   int    `flag:"ips" usage:"instructions per second" default:"700"`
	Seed    uint64 `flag:"seed" usage:"random number generator seed (default: current time)"`
	OnFault string `flag:"on-fault" usage:"invalid instruction handling: halt, skip" default:"halt"`
	Frames  int    `flag:"frames" usage:"stop after this many frames, 0 runs until interrupted"`
	Scale   int    `flag:"scale" usage:"window pixel scale" default:"10"`
	NoSound bool   `flag:"nosound" usage:"disable the audio output"`
}

// Program options of the virtual machine.
type Program struct {
	Parameters
	Flags
	Emulation

	SeedSet bool // a seed was passed on the command line
}
