package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newDisplay returns the display of an engine that drew the given sprite at the origin.
func newDisplay(t *testing.T, sprite ...byte) *vm.Display {
	t.Helper()

	engine, err := vm.New(log.NewTestLogger(t), vm.Config{})
	assert.NoError(t, err)

	// ld I, $206; drw V0, V0, n; jp $204; sprite data
	program := []byte{0xA2, 0x06, 0xD0, byte(len(sprite)), 0x12, 0x04}
	program = append(program, sprite...)
	assert.NoError(t, engine.LoadProgram(program))

	for range 2 {
		assert.True(t, engine.Step().OK())
	}
	return engine.Display()
}

func TestText(t *testing.T) {
	display := newDisplay(t, 0b10100000, 0b01000000)
	text := Text(display, Options{On: "#", Off: "."})

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	assert.Len(t, lines, vm.DisplayHeight)
	assert.Equal(t, vm.DisplayWidth, len(lines[0]))
	assert.True(t, strings.HasPrefix(lines[0], "#.#."))
	assert.True(t, strings.HasPrefix(lines[1], ".#.."))
	assert.Equal(t, strings.Repeat(".", vm.DisplayWidth), lines[2])
}

func TestTextBorder(t *testing.T) {
	display := newDisplay(t, 0x80)
	text := Text(display, DefaultOptions())

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	assert.Len(t, lines, vm.DisplayHeight+2)
	assert.Equal(t, "+"+strings.Repeat("-", 2*vm.DisplayWidth)+"+", lines[0])
	assert.Equal(t, lines[0], lines[len(lines)-1])
	assert.True(t, strings.HasPrefix(lines[1], "|██  "))
	assert.True(t, strings.HasSuffix(lines[1], "  |"))
}

func TestWriter(t *testing.T) {
	display := newDisplay(t, 0xFF)
	buf := &bytes.Buffer{}

	w := NewWriter(buf, Options{On: "1", Off: "0"})
	assert.NoError(t, w.Render(display))
	assert.True(t, strings.HasPrefix(buf.String(), "11111111"+strings.Repeat("0", vm.DisplayWidth-8)+"\n"))
}
