package vm

// Opcode operand extraction. CHIP-8 opcodes are 16-bit words laid out as
// nibbles G X Y N, where G selects the instruction group.

func opGroup(opcode uint16) uint8 {
	return uint8(opcode >> 12)
}

// opX extracts the X register nibble.
func opX(opcode uint16) uint8 {
	return uint8((opcode & 0x0F00) >> 8)
}

// opY extracts the Y register nibble.
func opY(opcode uint16) uint8 {
	return uint8((opcode & 0x00F0) >> 4)
}

// opN extracts the 4-bit constant.
func opN(opcode uint16) uint8 {
	return uint8(opcode & 0x000F)
}

// opNN extracts the immediate byte.
func opNN(opcode uint16) uint8 {
	return uint8(opcode & 0x00FF)
}

// opNNN extracts the 12-bit address.
func opNNN(opcode uint16) uint16 {
	return opcode & 0x0FFF
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
