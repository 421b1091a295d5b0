package vm

// Quirks selects between behaviors that differ across historical CHIP-8
// interpreters. The zero value is the modern behavior.
type Quirks struct {
	// ShiftUsesY shifts VY into VX for 8XY6 and 8XYE instead of shifting VX in place.
	ShiftUsesY bool
	// MemoryIncrementsIndex advances I by X+1 after FX55 and FX65.
	MemoryIncrementsIndex bool
	// JumpUsesV0 adds V0 to the address of BNNN instead of VX.
	JumpUsesV0 bool
	// StrictNotBorrow sets VF for 8XY5 and 8XY7 only if the minuend is
	// strictly greater than the subtrahend.
	StrictNotBorrow bool
	// LogicResetsFlag clears VF after 8XY1, 8XY2 and 8XY3.
	LogicResetsFlag bool
}

// LegacyQuirks returns the behavior of the original COSMAC VIP interpreter.
func LegacyQuirks() Quirks {
	return Quirks{
		ShiftUsesY:            true,
		MemoryIncrementsIndex: true,
		JumpUsesV0:            true,
		StrictNotBorrow:       true,
		LogicResetsFlag:       true,
	}
}

// ModernQuirks returns the behavior most current programs expect.
func ModernQuirks() Quirks {
	return Quirks{}
}
