// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

var (
	errEmptyFile    = errors.New("file is empty")
	errFileTooLarge = errors.New("file too large")
	errShortRead    = errors.New("file shorter than reported")
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw ROM file and returns the program that it contains.
// ROM files have no header, the whole content is loaded at vm.ProgramStart.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading file info %s: %w", path, err)
	}
	size := info.Size()
	switch {
	case size == 0:
		return nil, fmt.Errorf("%w: %s", errEmptyFile, path)
	case size > vm.MaxProgramSize:
		return nil, fmt.Errorf("%w: %s has %d bytes, limit is %d",
			errFileTooLarge, path, size, vm.MaxProgramSize)
	}

	cart, err := cartridge.LoadBuffer(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	// the buffer loader pads PRG to full 16 KiB banks
	if int64(len(cart.PRG)) < size {
		return nil, fmt.Errorf("%w: %s", errShortRead, path)
	}
	return cart.PRG[:size], nil
}
