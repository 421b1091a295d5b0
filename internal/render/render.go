// Package render converts the pixel grid of a machine into text.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/vm"
)

// Options of the text rendering.
type Options struct {
	On     string // text of a lit pixel
	Off    string // text of an unlit pixel
	Border bool   // draw a frame around the grid
}

// DefaultOptions returns options that render every pixel as two characters
// to keep the aspect ratio in a terminal.
func DefaultOptions() Options {
	return Options{
		On:     "██",
		Off:    "  ",
		Border: true,
	}
}

// Text returns the pixel grid as lines of text, one line per row.
func Text(display *vm.Display, options Options) string {
	width := display.Width()
	buf := &strings.Builder{}

	border := ""
	if options.Border {
		border = "+" + strings.Repeat("-", width*len([]rune(options.Off))) + "+\n"
		buf.WriteString(border)
	}

	for y := range display.Height() {
		if options.Border {
			buf.WriteByte('|')
		}
		for x := range width {
			if display.Pixel(x, y) {
				buf.WriteString(options.On)
			} else {
				buf.WriteString(options.Off)
			}
		}
		if options.Border {
			buf.WriteByte('|')
		}
		buf.WriteByte('\n')
	}

	buf.WriteString(border)
	return buf.String()
}

// Writer renders the display to a writer every time it changes.
type Writer struct {
	writer  io.Writer
	options Options
}

// NewWriter returns a new text renderer.
func NewWriter(writer io.Writer, options Options) *Writer {
	return &Writer{
		writer:  writer,
		options: options,
	}
}

// Render writes the pixel grid.
func (w *Writer) Render(display *vm.Display) error {
	if _, err := io.WriteString(w.writer, Text(display, w.options)); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	return nil
}
