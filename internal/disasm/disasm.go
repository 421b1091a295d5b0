// Package disasm decodes CHIP-8 opcodes into assembly mnemonics and writes
// assembly listings of programs.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// OpcodeSize is the size of every CHIP-8 instruction in bytes.
const OpcodeSize = 2

// Instruction is a decoded CHIP-8 opcode.
type Instruction struct {
	Opcode uint16
	Name   string // mnemonic, empty for opcodes without a definition
	Params string // formatted operands

	ins *chip8.Instruction
}

// Decode identifies the instruction that the opcode encodes. It returns false
// if the opcode bit pattern has no defined meaning.
func Decode(opcode uint16) (Instruction, bool) {
	nibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(nibble)] {
		if op.Info.Mask&opcode != op.Info.Value {
			continue
		}

		ins := Instruction{
			Opcode: opcode,
			Name:   op.Instruction.Name,
			ins:    op.Instruction,
		}
		ins.Params = formatParams(ins.Name, opcode)
		return ins, true
	}

	return Instruction{Opcode: opcode}, false
}

// String returns the instruction in assembly syntax, or a word directive if
// the opcode is not defined.
func (i Instruction) String() string {
	switch {
	case i.ins == nil:
		return fmt.Sprintf(".word $%04X", i.Opcode)
	case i.Params == "":
		return i.Name
	default:
		return i.Name + " " + i.Params
	}
}

// IsJump returns whether the instruction is a JP addr with a fixed target.
func (i Instruction) IsJump() bool {
	return i.ins == chip8.JpInst && i.Opcode&0xF000 == 0x1000
}

// IsCall returns true if the instruction is a call instruction.
func (i Instruction) IsCall() bool {
	return i.ins == chip8.CallInst
}

// IsReturn returns true if the instruction is a return instruction.
func (i Instruction) IsReturn() bool {
	return i.ins == chip8.RetInst
}

// IsSkip returns true if the instruction conditionally skips the next one.
func (i Instruction) IsSkip() bool {
	if i.ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(i.ins.Name)
}

// IsDataReference returns true for LD I, addr.
func (i Instruction) IsDataReference() bool {
	return i.ins == chip8.LdInst && i.Opcode&0xF000 == 0xA000
}

// ReadsMemory returns whether the instruction reads from the memory at I.
func (i Instruction) ReadsMemory() bool {
	if i.ins == nil {
		return false
	}
	return chip8.MemoryReadInstructions.Contains(i.ins.Name)
}

// WritesMemory returns whether the instruction writes to the memory at I.
func (i Instruction) WritesMemory() bool {
	if i.ins == nil {
		return false
	}
	return chip8.MemoryWriteInstructions.Contains(i.ins.Name)
}

// Target returns the 12-bit address operand of the opcode.
func (i Instruction) Target() uint16 {
	return i.Opcode & 0x0FFF
}
