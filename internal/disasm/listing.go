package disasm

import (
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/set"
)

const dataBytesPerLine = 16

// Options of the listing writer.
type Options struct {
	OffsetComments bool // comment every line with its address and opcode bytes
}

// Writer writes a linear assembly listing of a program loaded at vm.ProgramStart.
// Opcodes without a definition are written as data bytes.
type Writer struct {
	writer  io.Writer
	options Options
}

// NewWriter returns a new listing writer.
func NewWriter(writer io.Writer, options Options) *Writer {
	return &Writer{
		writer:  writer,
		options: options,
	}
}

// Write writes the listing of the program.
func (w *Writer) Write(program []byte) error {
	if err := w.writeHeader(program); err != nil {
		return err
	}

	labels := collectLabels(program)
	data := dataLine{writer: w}

	for offset := 0; offset < len(program); offset += OpcodeSize {
		address := vm.ProgramStart + uint16(offset)

		if label, ok := labels[address]; ok {
			if err := data.flush(); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w.writer, "\n%s:\n", label); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		end := min(offset+OpcodeSize, len(program))
		if end-offset < OpcodeSize {
			if err := data.add(address, program[offset:end]); err != nil {
				return err
			}
			continue
		}

		opcode := uint16(program[offset])<<8 | uint16(program[offset+1])
		ins, ok := Decode(opcode)
		if !ok {
			if err := data.add(address, program[offset:end]); err != nil {
				return err
			}
			continue
		}

		if err := data.flush(); err != nil {
			return err
		}
		if err := w.writeCodeLine(address, ins, labels); err != nil {
			return err
		}
	}

	return data.flush()
}

func (w *Writer) writeHeader(program []byte) error {
	crc32q := crc32.MakeTable(crc32.IEEE)
	if _, err := fmt.Fprintf(w.writer, "; CRC32 checksum: %08x\n", crc32.Checksum(program, crc32q)); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Code base address: $%04x\n", vm.ProgramStart); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	return nil
}

func (w *Writer) writeCodeLine(address uint16, ins Instruction, labels map[uint16]string) error {
	code := ins.String()
	if label, ok := labels[ins.Target()]; ok {
		switch {
		case ins.IsJump(), ins.IsCall():
			code = ins.Name + " " + label
		case ins.IsDataReference():
			code = ins.Name + " I, " + label
		}
	}

	var err error
	if w.options.OffsetComments {
		_, err = fmt.Fprintf(w.writer, "  %-30s ; $%04X  %02X %02X\n", code, address, ins.Opcode>>8, ins.Opcode&0xFF)
	} else {
		_, err = fmt.Fprintf(w.writer, "  %s\n", code)
	}
	if err != nil {
		return fmt.Errorf("writing code line: %w", err)
	}
	return nil
}

// dataLine bundles consecutive data bytes into lines of dataBytesPerLine bytes.
type dataLine struct {
	writer  *Writer
	address uint16
	data    []byte
}

func (d *dataLine) add(address uint16, data []byte) error {
	if len(d.data) == 0 {
		d.address = address
	}
	d.data = append(d.data, data...)
	if len(d.data) >= dataBytesPerLine {
		return d.flush()
	}
	return nil
}

func (d *dataLine) flush() error {
	if len(d.data) == 0 {
		return nil
	}

	buf := &strings.Builder{}
	buf.WriteString(".byte ")
	for i, b := range d.data {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(buf, "$%02x", b)
	}

	var err error
	if d.writer.options.OffsetComments {
		_, err = fmt.Fprintf(d.writer.writer, "  %-30s ; $%04X\n", buf.String(), d.address)
	} else {
		_, err = fmt.Fprintf(d.writer.writer, "  %s\n", buf.String())
	}
	if err != nil {
		return fmt.Errorf("writing data line: %w", err)
	}

	d.data = d.data[:0]
	return nil
}

// collectLabels names the word aligned addresses inside the program that are
// referenced by jumps, calls and index register loads.
func collectLabels(program []byte) map[uint16]string {
	calls := set.New[uint16]()
	jumps := set.New[uint16]()
	references := set.New[uint16]()

	for offset := 0; offset+1 < len(program); offset += OpcodeSize {
		opcode := uint16(program[offset])<<8 | uint16(program[offset+1])
		ins, ok := Decode(opcode)
		if !ok {
			continue
		}

		switch {
		case ins.IsCall():
			calls.Add(ins.Target())
		case ins.IsJump():
			jumps.Add(ins.Target())
		case ins.IsDataReference():
			references.Add(ins.Target())
		}
	}

	labels := map[uint16]string{}
	end := vm.ProgramStart + len(program)
	for address := vm.ProgramStart; address < end; address += OpcodeSize {
		target := uint16(address)
		switch {
		case calls.Contains(target):
			labels[target] = fmt.Sprintf("sub_%03X", target)
		case jumps.Contains(target):
			labels[target] = fmt.Sprintf("label_%03X", target)
		case references.Contains(target):
			labels[target] = fmt.Sprintf("data_%03X", target)
		}
	}
	return labels
}
