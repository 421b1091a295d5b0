// Package vm implements the CHIP-8 instruction execution engine.
//
// The engine owns memory, stack, timers and display. A host drives it by
// calling Step for every instruction and TickTimers at TimerFrequency, and
// redraws the display whenever a step reports it as dirty. The engine never
// blocks, sleeps or polls input on its own.
package vm

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/chip8vm/internal/font"
	"github.com/retroenv/retrogolib/log"
)

// RegisterCount is the number of general purpose registers V0-VF.
const RegisterCount = 16

// FlagRegister is the register that carry, borrow and collision flags are written to.
const FlagRegister = 0xF

var (
	ErrProgramEmpty    = errors.New("program is empty")
	ErrProgramTooLarge = errors.New("program too large")
	ErrFontTooLarge    = errors.New("font too large")
)

// Keypad supplies the state of the 16 keys, bit k set meaning key k is pressed.
type Keypad interface {
	Pressed() uint16
}

// FontSupplier returns the glyph set for a font id.
type FontSupplier func(id font.ID) (font.Set, error)

// Config contains the settings that are resolved once when creating an engine.
type Config struct {
	Quirks Quirks
	Font   font.ID

	Fonts      FontSupplier // defaults to font.Get
	StackDepth int          // defaults to StackDepth
	Random     rand.Source  // defaults to a PCG source seeded with zero
	Keypad     Keypad       // keypad opcodes are not implemented without one
}

// Engine is a CHIP-8 virtual machine.
type Engine struct {
	logger *log.Logger
	quirks Quirks
	fonts  FontSupplier
	random *rand.Rand
	keypad Keypad

	memory  Memory
	stack   *Stack
	timers  Timers
	display Display

	pc        uint16
	index     uint16
	registers [RegisterCount]uint8
	font      font.ID

	keyLatched bool  // LD Vx, K saw a key down and waits for its release
	latchedKey uint8
}

// New returns a new engine with the configured font loaded and the program
// counter at ProgramStart.
func New(logger *log.Logger, cfg Config) (*Engine, error) {
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}
	if cfg.Fonts == nil {
		cfg.Fonts = font.Get
	}
	if cfg.StackDepth <= 0 {
		cfg.StackDepth = StackDepth
	}
	if cfg.Random == nil {
		cfg.Random = rand.NewPCG(0, 0)
	}

	e := &Engine{
		logger: logger,
		quirks: cfg.Quirks,
		fonts:  cfg.Fonts,
		random: rand.New(cfg.Random),
		keypad: cfg.Keypad,
		stack:  NewStack(cfg.StackDepth),
		pc:     ProgramStart,
	}

	if err := e.LoadFont(cfg.Font); err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}
	return e, nil
}

// SetKeypad sets the keypad state provider, nil disables the keypad opcodes.
func (e *Engine) SetKeypad(keypad Keypad) {
	e.keypad = keypad
}

// LoadFont writes the glyphs of the given font into the font region.
// Nothing is changed if the font is unknown or does not fit.
func (e *Engine) LoadFont(id font.ID) error {
	region, err := e.fontRegion(id)
	if err != nil {
		return err
	}
	e.writeFont(id, region)
	return nil
}

// LoadProgram resets the engine and copies the program to ProgramStart.
// The active font is loaded again. A program that does not fit is rejected
// without changing any state.
func (e *Engine) LoadProgram(program []byte) error {
	if len(program) == 0 {
		return ErrProgramEmpty
	}
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	region, err := e.fontRegion(e.font)
	if err != nil {
		return fmt.Errorf("reloading font: %w", err)
	}

	e.reset()
	e.writeFont(e.font, region)
	_ = e.memory.WriteBytes(ProgramStart, program) // size checked above

	e.logger.Debug("Program loaded",
		log.Hex("address", uint16(ProgramStart)),
		log.Int("size", len(program)))
	return nil
}

// fontRegion returns the content of the whole font region for the given font.
func (e *Engine) fontRegion(id font.ID) ([]byte, error) {
	set, err := e.fonts(id)
	if err != nil {
		return nil, err
	}
	if len(set.Data) == 0 {
		return nil, fmt.Errorf("%w: font '%s' has no glyphs", font.ErrUnknownFont, id)
	}
	if len(set.Data) > MaxFontSize {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrFontTooLarge, len(set.Data), MaxFontSize)
	}

	region := make([]byte, MaxFontSize)
	copy(region, set.Data)
	return region, nil
}

func (e *Engine) writeFont(id font.ID, region []byte) {
	_ = e.memory.WriteBytes(FontStart, region) // region size is MaxFontSize
	e.font = id

	e.logger.Debug("Font loaded", log.String("font", id.String()))
}

func (e *Engine) reset() {
	e.memory.Reset()
	e.stack.Reset()
	e.timers.Reset()
	e.display.clear()
	e.registers = [RegisterCount]uint8{}
	e.index = 0
	e.pc = ProgramStart
	e.keyLatched = false
	e.latchedKey = 0
}

// Step runs a single fetch, decode and execute cycle.
// Failures are reported in the result status; the state from before the
// failing instruction remains valid, except that the program counter has
// already moved past the fetched opcode.
func (e *Engine) Step() Result {
	opcode, err := e.fetch()
	if err != nil {
		return Result{Status: StatusFetchFailed}
	}

	result := Result{Opcode: opcode}
	result.Status = e.execute(opcode, &result)
	return result
}

// fetch reads the big endian opcode at the program counter and advances it,
// even if the read fails.
func (e *Engine) fetch() (uint16, error) {
	address := e.pc
	e.pc += 2
	return e.memory.ReadWord(address)
}

// TickTimers decrements the delay and sound timers.
func (e *Engine) TickTimers() {
	e.timers.Tick()
}

// SoundActive returns whether the sound timer is running and a tone should play.
func (e *Engine) SoundActive() bool {
	return e.timers.Sound() > 0
}

// PC returns the address of the next instruction.
func (e *Engine) PC() uint16 { return e.pc }

// Index returns the index register I.
func (e *Engine) Index() uint16 { return e.index }

// Register returns the value of register Vn, n must be in [0, RegisterCount).
func (e *Engine) Register(n int) uint8 { return e.registers[n] }

// Registers returns a copy of all general purpose registers.
func (e *Engine) Registers() [RegisterCount]uint8 { return e.registers }

func (e *Engine) DelayTimer() uint8 { return e.timers.Delay() }

func (e *Engine) SoundTimer() uint8 { return e.timers.Sound() }

// StackDepth returns the number of return addresses on the stack.
func (e *Engine) StackDepth() int { return e.stack.Depth() }

// ActiveFont returns the font that is currently resident in memory.
func (e *Engine) ActiveFont() font.ID { return e.font }

// Quirks returns the compatibility behavior the engine was created with.
func (e *Engine) Quirks() Quirks { return e.quirks }

// Display returns a read only view of the pixel grid.
func (e *Engine) Display() *Display { return &e.display }

// ReadMemory returns the byte at the given address.
func (e *Engine) ReadMemory(address uint16) (byte, error) {
	return e.memory.Read(address)
}
