package vm

import (
	"math/bits"

	"github.com/retroenv/chip8vm/internal/font"
)

// execute decodes and runs a fetched opcode. Every handler validates before it
// mutates, so a failing instruction leaves registers, memory and display as
// they were.
func (e *Engine) execute(opcode uint16, result *Result) Status {
	switch opGroup(opcode) {
	case 0x0:
		return e.executeSystem(opcode, result)

	case 0x1: // JP addr
		e.pc = opNNN(opcode)

	case 0x2: // CALL addr
		if err := e.stack.Push(e.pc); err != nil {
			return StatusStackFull
		}
		e.pc = opNNN(opcode)

	case 0x3: // SE Vx, byte
		if e.registers[opX(opcode)] == opNN(opcode) {
			e.skip()
		}

	case 0x4: // SNE Vx, byte
		if e.registers[opX(opcode)] != opNN(opcode) {
			e.skip()
		}

	case 0x5: // SE Vx, Vy; the low nibble is padding
		if e.registers[opX(opcode)] == e.registers[opY(opcode)] {
			e.skip()
		}

	case 0x6: // LD Vx, byte
		e.registers[opX(opcode)] = opNN(opcode)

	case 0x7: // ADD Vx, byte
		e.registers[opX(opcode)] += opNN(opcode)

	case 0x8:
		return e.executeArithmetic(opcode)

	case 0x9: // SNE Vx, Vy; the low nibble is padding
		if e.registers[opX(opcode)] != e.registers[opY(opcode)] {
			e.skip()
		}

	case 0xA: // LD I, addr
		e.index = opNNN(opcode)

	case 0xB: // JP V0, addr
		offset := e.registers[opX(opcode)]
		if e.quirks.JumpUsesV0 {
			offset = e.registers[0]
		}
		e.pc = opNNN(opcode) + uint16(offset)

	case 0xC: // RND Vx, byte
		e.registers[opX(opcode)] = uint8(e.random.Uint32()) & opNN(opcode)

	case 0xD:
		return e.executeDraw(opcode, result)

	case 0xE:
		return e.executeKeypad(opcode)

	case 0xF:
		return e.executeMisc(opcode, result)
	}

	return StatusOK
}

// skip advances the program counter over the next instruction.
func (e *Engine) skip() {
	e.pc += 2
}

func (e *Engine) executeSystem(opcode uint16, result *Result) Status {
	switch opcode {
	case 0x00E0: // CLS
		e.display.clear()
		result.DisplayDirty = true
		return StatusOK

	case 0x00EE: // RET
		address, err := e.stack.Pop()
		if err != nil {
			return StatusStackEmpty
		}
		e.pc = address
		return StatusOK

	default:
		// SYS addr executes native machine code of the host computer
		return StatusInstructionNotImplemented
	}
}

func (e *Engine) executeArithmetic(opcode uint16) Status {
	x := opX(opcode)
	vx := e.registers[x]
	vy := e.registers[opY(opcode)]

	// The flag is written after the result, so VF used as X ends up holding the flag.
	switch opN(opcode) {
	case 0x0: // LD Vx, Vy
		e.registers[x] = vy

	case 0x1: // OR Vx, Vy
		e.registers[x] = vx | vy
		e.resetLogicFlag()

	case 0x2: // AND Vx, Vy
		e.registers[x] = vx & vy
		e.resetLogicFlag()

	case 0x3: // XOR Vx, Vy
		e.registers[x] = vx ^ vy
		e.resetLogicFlag()

	case 0x4: // ADD Vx, Vy
		sum := uint16(vx) + uint16(vy)
		e.registers[x] = uint8(sum)
		e.registers[FlagRegister] = boolToFlag(sum > 0xFF)

	case 0x5: // SUB Vx, Vy
		e.registers[x] = vx - vy
		e.registers[FlagRegister] = e.notBorrow(vx, vy)

	case 0x6: // SHR Vx {, Vy}
		source := e.shiftSource(vx, vy)
		e.registers[x] = source >> 1
		e.registers[FlagRegister] = source & 0x01

	case 0x7: // SUBN Vx, Vy
		e.registers[x] = vy - vx
		e.registers[FlagRegister] = e.notBorrow(vy, vx)

	case 0xE: // SHL Vx {, Vy}
		source := e.shiftSource(vx, vy)
		e.registers[x] = source << 1
		e.registers[FlagRegister] = source >> 7

	default:
		return StatusInstructionInvalid
	}

	return StatusOK
}

func (e *Engine) resetLogicFlag() {
	if e.quirks.LogicResetsFlag {
		e.registers[FlagRegister] = 0
	}
}

// notBorrow returns the flag value for minuend - subtrahend.
func (e *Engine) notBorrow(minuend, subtrahend uint8) uint8 {
	if e.quirks.StrictNotBorrow {
		return boolToFlag(minuend > subtrahend)
	}
	return boolToFlag(minuend >= subtrahend)
}

func (e *Engine) shiftSource(vx, vy uint8) uint8 {
	if e.quirks.ShiftUsesY {
		return vy
	}
	return vx
}

// executeDraw handles DRW Vx, Vy, nibble.
func (e *Engine) executeDraw(opcode uint16, result *Result) Status {
	sprite, err := e.memory.view(e.index, int(opN(opcode)))
	if err != nil {
		return StatusMemoryFault
	}

	collision := e.display.drawSprite(e.registers[opX(opcode)], e.registers[opY(opcode)], sprite)
	e.registers[FlagRegister] = boolToFlag(collision)
	result.DisplayDirty = true
	return StatusOK
}

// executeKeypad handles SKP Vx and SKNP Vx.
func (e *Engine) executeKeypad(opcode uint16) Status {
	var skipIfPressed bool
	switch opNN(opcode) {
	case 0x9E:
		skipIfPressed = true
	case 0xA1:
		skipIfPressed = false
	default:
		return StatusInstructionInvalid
	}

	if e.keypad == nil {
		return StatusInstructionNotImplemented
	}

	key := e.registers[opX(opcode)] & 0x0F
	pressed := e.keypad.Pressed()&(1<<key) != 0
	if pressed == skipIfPressed {
		e.skip()
	}
	return StatusOK
}

func (e *Engine) executeMisc(opcode uint16, result *Result) Status {
	x := opX(opcode)
	vx := e.registers[x]

	switch opNN(opcode) {
	case 0x07: // LD Vx, DT
		e.registers[x] = e.timers.Delay()

	case 0x0A: // LD Vx, K
		return e.waitForKey(x, result)

	case 0x15: // LD DT, Vx
		e.timers.SetDelay(vx)

	case 0x18: // LD ST, Vx
		e.timers.SetSound(vx)
		result.SoundTimerSet = true

	case 0x1E: // ADD I, Vx
		e.index += uint16(vx)

	case 0x29: // LD F, Vx
		e.index = FontStart + font.GlyphSize*uint16(vx&0x0F)

	case 0x33: // LD B, Vx
		digits := [3]byte{vx / 100 % 10, vx / 10 % 10, vx % 10}
		if err := e.memory.WriteBytes(e.index, digits[:]); err != nil {
			return StatusMemoryFault
		}

	case 0x55: // LD [I], Vx
		if err := e.memory.WriteBytes(e.index, e.registers[:x+1]); err != nil {
			return StatusMemoryFault
		}
		e.advanceIndex(x)

	case 0x65: // LD Vx, [I]
		data, err := e.memory.view(e.index, int(x)+1)
		if err != nil {
			return StatusMemoryFault
		}
		copy(e.registers[:], data)
		e.advanceIndex(x)

	default:
		return StatusInstructionInvalid
	}

	return StatusOK
}

// waitForKey stores the next key that is pressed and released in Vx. The
// lowest key down is latched on the first step that sees one, and the
// instruction completes once that key is up again. Until then the program
// counter is moved back so that the instruction runs again on the next step,
// instead of blocking.
func (e *Engine) waitForKey(x uint8, result *Result) Status {
	if e.keypad == nil {
		return StatusInstructionNotImplemented
	}

	pressed := e.keypad.Pressed()
	if !e.keyLatched {
		if pressed != 0 {
			e.latchedKey = uint8(bits.TrailingZeros16(pressed))
			e.keyLatched = true
		}
		e.pc -= 2
		result.WaitingForKey = true
		return StatusOK
	}

	if pressed&(1<<e.latchedKey) != 0 {
		e.pc -= 2
		result.WaitingForKey = true
		return StatusOK
	}

	e.registers[x] = e.latchedKey
	e.keyLatched = false
	return StatusOK
}

func (e *Engine) advanceIndex(x uint8) {
	if e.quirks.MemoryIncrementsIndex {
		e.index += uint16(x) + 1
	}
}
