package window

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestPollKeys(t *testing.T) {
	tests := []struct {
		name     string
		keys     []ebiten.Key
		expected uint16
	}{
		{"nothing pressed", nil, 0},
		{"key 0", []ebiten.Key{ebiten.KeyX}, 1 << 0x0},
		{"key 1", []ebiten.Key{ebiten.KeyDigit1}, 1 << 0x1},
		{"key C", []ebiten.Key{ebiten.KeyDigit4}, 1 << 0xC},
		{"key F", []ebiten.Key{ebiten.KeyV}, 1 << 0xF},
		{"multiple keys", []ebiten.Key{ebiten.KeyW, ebiten.KeyS}, 1<<0x5 | 1<<0x8},
		{"unmapped key", []ebiten.Key{ebiten.KeyP}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isPressed := func(key ebiten.Key) bool {
				for _, pressed := range tt.keys {
					if pressed == key {
						return true
					}
				}
				return false
			}
			assert.Equal(t, tt.expected, pollKeys(isPressed))
		})
	}
}

func TestRender(t *testing.T) {
	engine, err := vm.New(log.NewTestLogger(t), vm.Config{})
	assert.NoError(t, err)
	// ld I, $206; drw V0, V0, 1; jp $204; sprite data
	assert.NoError(t, engine.LoadProgram([]byte{0xA2, 0x06, 0xD0, 0x01, 0x12, 0x04, 0x80}))
	assert.True(t, engine.Step().OK())
	assert.True(t, engine.Step().OK())

	w := New("test", 0)
	assert.Equal(t, DefaultScale, w.scale)
	assert.Equal(t, colorOff[:], w.pixels[:bytesPerPixel])

	assert.NoError(t, w.Render(engine.Display()))
	assert.Equal(t, colorOn[:], w.pixels[:bytesPerPixel])
	assert.Equal(t, colorOff[:], w.pixels[bytesPerPixel:2*bytesPerPixel])

	width, height := w.Layout(640, 320)
	assert.Equal(t, vm.DisplayWidth, width)
	assert.Equal(t, vm.DisplayHeight, height)
}
