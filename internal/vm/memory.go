package vm

import (
	"errors"
	"fmt"
)

// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Interpreter area, unused
//	0x050-0x1FF: Font glyphs
//	0x200-0xFFF: User program space (3584 bytes)
const (
	// MemorySize is the amount of addressable bytes.
	MemorySize = 0x1000

	// FontStart is the memory address of the first font glyph.
	FontStart = 0x050

	// ProgramStart is the memory address where programs are loaded and begin execution.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// MaxFontSize is the size of the region reserved for font glyphs.
	MaxFontSize = ProgramStart - FontStart
)

// ErrAddressOutOfRange is returned for any access outside of [0, MemorySize).
var ErrAddressOutOfRange = errors.New("address out of range")

// Memory is a flat, bounds-checked byte storage.
// All accesses are validated before anything is mutated.
type Memory struct {
	data [MemorySize]byte
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if err := checkRange(address, 1); err != nil {
		return 0, err
	}
	return m.data[address], nil
}

// Write sets the byte at the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if err := checkRange(address, 1); err != nil {
		return err
	}
	m.data[address] = value
	return nil
}

// ReadWord returns the big endian 16-bit value stored at address and address+1.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if err := checkRange(address, 2); err != nil {
		return 0, err
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// WriteWord stores a 16-bit value in big endian order at address and address+1.
func (m *Memory) WriteWord(address, value uint16) error {
	if err := checkRange(address, 2); err != nil {
		return err
	}
	m.data[address] = byte(value >> 8)
	m.data[address+1] = byte(value)
	return nil
}

// ReadBytes returns a copy of size bytes starting at address.
func (m *Memory) ReadBytes(address uint16, size int) ([]byte, error) {
	if err := checkRange(address, size); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	copy(buf, m.data[address:])
	return buf, nil
}

// WriteBytes copies data into memory starting at address. A write that does
// not fit completely is rejected without writing anything.
func (m *Memory) WriteBytes(address uint16, data []byte) error {
	if err := checkRange(address, len(data)); err != nil {
		return err
	}
	copy(m.data[address:], data)
	return nil
}

// view returns the bytes in range without copying them, for use inside the
// engine only.
func (m *Memory) view(address uint16, size int) ([]byte, error) {
	if err := checkRange(address, size); err != nil {
		return nil, err
	}
	return m.data[address : int(address)+size], nil
}

// Reset zeroes the whole memory.
func (m *Memory) Reset() {
	m.data = [MemorySize]byte{}
}

func checkRange(address uint16, size int) error {
	if size < 0 || int(address)+size > MemorySize {
		return fmt.Errorf("%w: $%04X+%d", ErrAddressOutOfRange, address, size)
	}
	return nil
}
