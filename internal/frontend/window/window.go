// Package window implements a desktop window frontend based on ebiten.
// Ebiten calls Update at the timer frequency, every call runs one frame of
// the machine.
package window

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/vm"
)

// DefaultScale is the default size of a machine pixel in screen pixels.
const DefaultScale = 10

const bytesPerPixel = 4

// keyMap maps the hexadecimal keypad to the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D      Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var keyMap = [16]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.KeyDigit1,
	0x2: ebiten.KeyDigit2,
	0x3: ebiten.KeyDigit3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.KeyDigit4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

// Color of lit and unlit pixels as RGBA.
var (
	colorOn  = [bytesPerPixel]byte{0xE0, 0xF0, 0xE0, 0xFF}
	colorOff = [bytesPerPixel]byte{0x10, 0x18, 0x10, 0xFF}
)

// Window shows the display of a machine and provides its keypad state.
type Window struct {
	ctx    context.Context
	runner *host.Runner
	title  string
	scale  int

	pixels  []byte // RGBA frame buffer
	image   *ebiten.Image
	pressed uint16
}

// New returns a new window frontend.
func New(title string, scale int) *Window {
	if scale <= 0 {
		scale = DefaultScale
	}

	w := &Window{
		title:  title,
		scale:  scale,
		pixels: make([]byte, vm.DisplayWidth*vm.DisplayHeight*bytesPerPixel),
	}
	w.fill(func(int, int) bool { return false })
	return w
}

// Run opens the window and executes the runner until the window is closed,
// the context is cancelled or the runner is done. It has to be called from
// the main goroutine.
func (w *Window) Run(ctx context.Context, runner *host.Runner) error {
	w.ctx = ctx
	w.runner = runner

	ebiten.SetWindowSize(vm.DisplayWidth*w.scale, vm.DisplayHeight*w.scale)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(vm.TimerFrequency)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Pressed returns the keypad state polled at the start of the current frame.
func (w *Window) Pressed() uint16 {
	return w.pressed
}

// Render copies the display into the frame buffer that is shown on the next draw.
func (w *Window) Render(display *vm.Display) error {
	w.fill(display.Pixel)
	return nil
}

// Update runs a single frame.
func (w *Window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}

	w.pressed = pollKeys(ebiten.IsKeyPressed)

	if err := w.runner.Frame(); err != nil {
		return err
	}
	if w.runner.Done() {
		return ebiten.Termination
	}
	return nil
}

// Draw shows the frame buffer.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(vm.DisplayWidth, vm.DisplayHeight)
	}
	w.image.WritePixels(w.pixels)
	screen.DrawImage(w.image, nil)
}

// Layout returns the logical screen size, ebiten scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return vm.DisplayWidth, vm.DisplayHeight
}

func (w *Window) fill(pixel func(x, y int) bool) {
	for y := range vm.DisplayHeight {
		for x := range vm.DisplayWidth {
			color := colorOff
			if pixel(x, y) {
				color = colorOn
			}
			offset := (y*vm.DisplayWidth + x) * bytesPerPixel
			copy(w.pixels[offset:offset+bytesPerPixel], color[:])
		}
	}
}

// pollKeys returns the keypad state, bit k set meaning key k is pressed.
func pollKeys(isPressed func(ebiten.Key) bool) uint16 {
	var pressed uint16
	for key, mapped := range keyMap {
		if isPressed(mapped) {
			pressed |= 1 << key
		}
	}
	return pressed
}
