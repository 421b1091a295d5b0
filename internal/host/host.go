// Package host drives an execution engine in real time: it runs a fixed number
// of instructions per frame, ticks the timers once per frame, forwards display
// changes to a sink and switches the tone on and off with the sound timer.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// DefaultInstructionsPerSecond is the execution speed most programs are written for.
const DefaultInstructionsPerSecond = 700

// FrameDuration is the duration of a single frame.
const FrameDuration = time.Second / vm.TimerFrequency

// ErrHalted is returned once the runner stopped because of a fault.
var ErrHalted = errors.New("machine halted")

// FaultPolicy decides how instructions that are invalid or not implemented are handled.
type FaultPolicy int

const (
	// FaultHalt stops the machine on the first failing instruction.
	FaultHalt FaultPolicy = iota
	// FaultSkip logs every failing opcode once and continues with the next instruction.
	FaultSkip
)

// Display receives the pixel grid whenever it changed during a frame.
type Display interface {
	Render(display *vm.Display) error
}

// Sound plays a tone while the sound timer is running.
type Sound interface {
	Play()
	Pause()
}

// Options of the runner.
type Options struct {
	InstructionsPerSecond int
	FaultPolicy           FaultPolicy
	Trace                 bool // log every executed instruction
	MaxFrames             int  // stop after this many frames, 0 runs until cancelled
}

// FaultError describes the instruction that stopped the machine.
type FaultError struct {
	Address uint16 // address of the failing instruction
	Result  vm.Result
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s at $%04X: opcode $%04X", e.Result.Status, e.Address, e.Result.Opcode)
}

func (e *FaultError) Unwrap() error {
	return e.Result.Status.Err()
}

// Runner executes an engine frame by frame.
type Runner struct {
	logger  *log.Logger
	engine  *vm.Engine
	display Display
	sound   Sound
	options Options

	stepsPerFrame int
	reported      set.Set[uint16] // opcodes that were already logged as skipped
	frames        int
	playing       bool
	fault         *FaultError
}

// New returns a new runner. The display and sound can be nil.
func New(logger *log.Logger, engine *vm.Engine, display Display, sound Sound, options Options) *Runner {
	if options.InstructionsPerSecond <= 0 {
		options.InstructionsPerSecond = DefaultInstructionsPerSecond
	}

	return &Runner{
		logger:        logger,
		engine:        engine,
		display:       display,
		sound:         sound,
		options:       options,
		stepsPerFrame: max(1, options.InstructionsPerSecond/vm.TimerFrequency),
		reported:      set.New[uint16](),
	}
}

// Run executes frames at the timer frequency until the context is cancelled,
// the frame limit is reached or the machine halts.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(FrameDuration)
	defer ticker.Stop()

	for !r.Done() {
		select {
		case <-ctx.Done():
			r.stopSound()
			return fmt.Errorf("running: %w", ctx.Err())
		case <-ticker.C:
			if err := r.Frame(); err != nil {
				return err
			}
		}
	}

	r.stopSound()
	return nil
}

// Frame executes the instructions of a single frame and ticks the timers.
// The display is rendered if any instruction changed it.
func (r *Runner) Frame() error {
	if r.fault != nil {
		return r.haltError()
	}

	dirty, err := r.executeFrame()
	r.frames++

	if dirty && r.display != nil {
		if renderErr := r.display.Render(r.engine.Display()); renderErr != nil {
			return fmt.Errorf("rendering display: %w", renderErr)
		}
	}

	if err != nil {
		r.stopSound()
		return err
	}

	r.engine.TickTimers()
	r.updateSound()
	return nil
}

// Done returns whether the frame limit has been reached or the machine halted.
func (r *Runner) Done() bool {
	if r.fault != nil {
		return true
	}
	return r.options.MaxFrames > 0 && r.frames >= r.options.MaxFrames
}

// Frames returns the number of executed frames.
func (r *Runner) Frames() int {
	return r.frames
}

// SoundPlaying returns whether the tone is currently switched on.
func (r *Runner) SoundPlaying() bool {
	return r.playing
}

func (r *Runner) executeFrame() (bool, error) {
	var dirty bool

	for range r.stepsPerFrame {
		address := r.engine.PC()
		result := r.engine.Step()
		dirty = dirty || result.DisplayDirty

		if r.options.Trace {
			r.traceInstruction(address, result)
		}

		if result.WaitingForKey {
			break // the instruction repeats until a key is pressed
		}
		if result.OK() {
			continue
		}

		if err := r.handleFault(address, result); err != nil {
			return dirty, err
		}
	}

	return dirty, nil
}

func (r *Runner) handleFault(address uint16, result vm.Result) error {
	if r.options.FaultPolicy == FaultSkip && skippable(result.Status) {
		if !r.reported.Contains(result.Opcode) {
			r.reported.Add(result.Opcode)
			r.logger.Warn("Skipping instruction",
				log.Hex("address", address),
				log.Hex("opcode", result.Opcode),
				log.Stringer("status", result.Status))
		}
		return nil
	}

	r.fault = &FaultError{
		Address: address,
		Result:  result,
	}
	r.logger.Error("Machine halted",
		log.Hex("address", address),
		log.Hex("opcode", result.Opcode),
		log.Stringer("status", result.Status))
	return r.haltError()
}

func (r *Runner) haltError() error {
	return fmt.Errorf("%w: %w", ErrHalted, r.fault)
}

// skippable returns whether execution can continue after an instruction
// with the given status. Fetch, stack and memory faults leave the program
// in a state that it can not recover from.
func skippable(status vm.Status) bool {
	switch status {
	case vm.StatusInstructionInvalid, vm.StatusInstructionNotImplemented:
		return true
	default:
		return false
	}
}

func (r *Runner) traceInstruction(address uint16, result vm.Result) {
	ins, _ := disasm.Decode(result.Opcode)
	r.logger.Debug("Executed",
		log.Hex("address", address),
		log.String("instruction", ins.String()),
		log.Stringer("status", result.Status))
}

func (r *Runner) updateSound() {
	active := r.engine.SoundActive()
	switch {
	case active && !r.playing:
		r.playing = true
		if r.sound != nil {
			r.sound.Play()
		}
	case !active:
		r.stopSound()
	}
}

func (r *Runner) stopSound() {
	if !r.playing {
		return
	}
	r.playing = false
	if r.sound != nil {
		r.sound.Pause()
	}
}
