// Package terminal implements a text frontend that draws the display with
// goterm and reads the keypad from stdin in raw mode.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tm "github.com/buger/goterm"
	"github.com/retroenv/chip8vm/internal/render"
	"github.com/retroenv/chip8vm/internal/vm"
	"golang.org/x/term"
)

// KeyHold is how long a key counts as pressed after it was typed. Terminals
// do not report key releases, so a held key is seen through the key repeat.
const KeyHold = 150 * time.Millisecond

const (
	keyInterrupt = 0x03 // ctrl+c
	keyEscape    = 0x1B
)

// layout maps the hexadecimal keypad to the left side of a QWERTY keyboard,
// the index of a character is the key it presses.
const layout = "x123qweasdzc4rfv"

type deadlineReader interface {
	SetReadDeadline(deadline time.Time) error
}

// Terminal shows the display in the terminal and provides the keypad state.
type Terminal struct {
	options render.Options
	input   io.Reader
	now     func() time.Time

	fd       int
	oldState *term.State

	mutex     sync.Mutex
	pressedAt [16]time.Time
}

// New returns a new terminal frontend.
func New(options render.Options) *Terminal {
	return &Terminal{
		options: options,
		input:   os.Stdin,
		now:     time.Now,
		fd:      int(os.Stdin.Fd()),
	}
}

// Start switches stdin to raw mode and starts reading keys in the background.
// Ctrl+C and Escape call cancel, as raw mode disables the interrupt signal.
func (t *Terminal) Start(ctx context.Context, cancel context.CancelFunc) error {
	if term.IsTerminal(t.fd) {
		oldState, err := term.MakeRaw(t.fd)
		if err != nil {
			return fmt.Errorf("setting terminal raw mode: %w", err)
		}
		t.oldState = oldState
	}

	tm.Clear()
	go t.readInput(ctx, cancel)
	return nil
}

// Close restores the terminal state. Inputs that support read deadlines
// unblock the input reader. A reader blocked on a plain stdin stays in Read
// until the next typed byte or until the process exits.
func (t *Terminal) Close() error {
	if input, ok := t.input.(deadlineReader); ok {
		_ = input.SetReadDeadline(time.Now())
	}

	if t.oldState == nil {
		return nil
	}
	err := term.Restore(t.fd, t.oldState)
	t.oldState = nil
	if err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// Render draws the display at the top left corner of the terminal.
func (t *Terminal) Render(display *vm.Display) error {
	text := render.Text(display, t.options)
	// raw mode does not translate line feeds
	text = strings.ReplaceAll(text, "\n", "\r\n")

	tm.MoveCursor(1, 1)
	if _, err := tm.Print(text); err != nil {
		return fmt.Errorf("printing display: %w", err)
	}
	tm.Flush()
	return nil
}

// Pressed returns the keys that were typed within the key hold duration.
func (t *Terminal) Pressed() uint16 {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	now := t.now()
	var pressed uint16
	for key, at := range t.pressedAt {
		if !at.IsZero() && now.Sub(at) < KeyHold {
			pressed |= 1 << key
		}
	}
	return pressed
}

func (t *Terminal) readInput(ctx context.Context, cancel context.CancelFunc) {
	buf := make([]byte, 16)
	for ctx.Err() == nil {
		n, err := t.input.Read(buf)
		for _, b := range buf[:n] {
			if !t.handleInput(b) {
				cancel()
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// handleInput records a typed character and returns false if it requests
// to quit.
func (t *Terminal) handleInput(b byte) bool {
	if b == keyInterrupt || b == keyEscape {
		return false
	}

	key := strings.IndexByte(layout, toLower(b))
	if key < 0 {
		return true
	}

	t.mutex.Lock()
	t.pressedAt[key] = t.now()
	t.mutex.Unlock()
	return true
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}
