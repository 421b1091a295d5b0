package fileprocessor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func defaultOptions() options.Program {
	return options.Program{
		Flags: options.Flags{
			Frontend: options.FrontendHeadless,
		},
		Emulation: options.Emulation{
			Font:    "chip48",
			Profile: options.ProfileModern,
			Speed:   host.DefaultInstructionsPerSecond,
			OnFault: options.OnFaultHalt,
		},
	}
}

func TestProcessFileDisasm(t *testing.T) {
	logger := log.NewTestLogger(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "test.ch8")
	program := []byte{
		0x00, 0xE0, // cls
		0x12, 0x00, // jp label_200
	}
	assert.NoError(t, os.WriteFile(input, program, 0o600))

	opts := defaultOptions()
	opts.Input = input
	opts.Output = filepath.Join(dir, "test.asm")
	opts.Disasm = true

	assert.NoError(t, ProcessFile(context.Background(), logger, opts))

	listing, err := os.ReadFile(opts.Output)
	assert.NoError(t, err)
	assert.Contains(t, string(listing), "label_200:")
	assert.Contains(t, string(listing), "  cls\n")
	assert.Contains(t, string(listing), "  jp label_200\n")
}

func TestProcessFileHeadless(t *testing.T) {
	logger := log.NewTestLogger(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "glyph.ch8")
	program := []byte{
		0x60, 0x00, // ld V0, $00
		0xF0, 0x29, // ld F, V0
		0xD0, 0x05, // drw V0, V0, $5
		0x12, 0x06, // jp $206
	}
	assert.NoError(t, os.WriteFile(input, program, 0o600))

	opts := defaultOptions()
	opts.Input = input
	opts.Output = filepath.Join(dir, "screen.txt")
	opts.Frames = 1
	opts.Seed = 1
	opts.SeedSet = true

	assert.NoError(t, ProcessFile(context.Background(), logger, opts))

	screen, err := os.ReadFile(opts.Output)
	assert.NoError(t, err)
	lines := strings.Split(string(screen), "\n")
	assert.True(t, len(lines) > 6)
	// rows of the glyph 0 below the border line
	assert.True(t, strings.HasPrefix(lines[1], "|████████  "))
	assert.True(t, strings.HasPrefix(lines[2], "|██    ██  "))
	assert.True(t, strings.HasPrefix(lines[5], "|████████  "))
	assert.True(t, strings.HasPrefix(lines[6], "|          "))
}

func TestProcessFileMissing(t *testing.T) {
	logger := log.NewTestLogger(t)

	opts := defaultOptions()
	opts.Input = filepath.Join(t.TempDir(), "missing.ch8")

	err := ProcessFile(context.Background(), logger, opts)
	assert.ErrorContains(t, err, "loading ROM")
}

func TestNewEngine(t *testing.T) {
	logger := log.NewTestLogger(t)
	// ld V0, random & $FF
	program := []byte{0xC0, 0xFF}

	opts := defaultOptions()
	opts.Seed = 1234
	opts.SeedSet = true

	values := make([]uint8, 2)
	for i := range values {
		engine, err := NewEngine(logger, opts)
		assert.NoError(t, err)
		assert.NoError(t, engine.LoadProgram(program))
		assert.True(t, engine.Step().OK())
		values[i] = engine.Register(0)
	}
	assert.Equal(t, values[0], values[1])
}

func TestNewEngineErrors(t *testing.T) {
	logger := log.NewTestLogger(t)

	opts := defaultOptions()
	opts.Font = "schip"
	_, err := NewEngine(logger, opts)
	assert.ErrorContains(t, err, "selecting font")

	opts = defaultOptions()
	opts.Quirks = "wrap-sprites"
	_, err = NewEngine(logger, opts)
	assert.ErrorContains(t, err, "selecting quirks")
}

func TestRunInvalidFaultPolicy(t *testing.T) {
	logger := log.NewTestLogger(t)

	opts := defaultOptions()
	opts.OnFault = "ignore"
	err := Run(context.Background(), logger, opts, []byte{0x12, 0x00})
	assert.ErrorContains(t, err, "selecting fault policy")
}

func TestRunHeadless(t *testing.T) {
	logger := log.NewTestLogger(t)

	opts := defaultOptions()
	opts.Frames = 2
	program := []byte{
		0x60, 0x00, // ld V0, $00
		0xF0, 0x29, // ld F, V0
		0xD0, 0x05, // drw V0, V0, $5
		0x12, 0x06, // jp $206
	}

	engine, err := NewEngine(logger, opts)
	assert.NoError(t, err)
	assert.NoError(t, engine.LoadProgram(program))

	hostOptions, err := hostOptions(opts)
	assert.NoError(t, err)

	buf := &bytes.Buffer{}
	assert.NoError(t, runHeadless(context.Background(), logger, engine, hostOptions, buf))

	lines := strings.Split(buf.String(), "\n")
	// border line followed by the top row of the glyph 0
	assert.True(t, strings.HasPrefix(lines[1], "|████████  "))
}

func TestRunHeadlessHalt(t *testing.T) {
	logger := log.NewTestLogger(t)

	opts := defaultOptions()
	engine, err := NewEngine(logger, opts)
	assert.NoError(t, err)
	assert.NoError(t, engine.LoadProgram([]byte{0x00, 0xE0, 0xF0, 0xFF}))

	hostOptions, err := hostOptions(opts)
	assert.NoError(t, err)

	buf := &bytes.Buffer{}
	err = runHeadless(context.Background(), logger, engine, hostOptions, buf)
	assert.True(t, errors.Is(err, host.ErrHalted))
	assert.True(t, buf.Len() > 0)
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)

	opts := defaultOptions()
	PrintBanner(logger, opts, "1.0.0", "0123456789abcdef", "2026-01-01")

	opts.Quiet = true
	PrintBanner(logger, opts, "1.0.0", "", "")
}
