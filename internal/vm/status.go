package vm

import (
	"errors"
	"fmt"
)

// Status is the outcome of a single instruction cycle.
type Status uint8

const (
	// StatusOK means the instruction executed.
	StatusOK Status = iota
	// StatusFetchFailed means the program counter pointed past the end of memory.
	StatusFetchFailed
	// StatusInstructionInvalid means the opcode bit pattern has no defined meaning.
	StatusInstructionInvalid
	// StatusInstructionNotImplemented means the opcode is defined but not supported,
	// like native machine code calls or keypad opcodes without a keypad.
	StatusInstructionNotImplemented
	// StatusStackEmpty means a return was executed without a pending call.
	StatusStackEmpty
	// StatusStackFull means a call exceeded the nesting depth of the stack.
	StatusStackFull
	// StatusMemoryFault means an instruction would have accessed memory past its end.
	StatusMemoryFault
)

var (
	ErrFetchFailed               = errors.New("fetch failed")
	ErrInstructionInvalid        = errors.New("invalid instruction")
	ErrInstructionNotImplemented = errors.New("instruction not implemented")
	ErrMemoryFault               = errors.New("memory fault")
	errUnknownStatus             = errors.New("unknown status")
)

var statusNames = map[Status]string{
	StatusOK:                        "ok",
	StatusFetchFailed:               "fetch failed",
	StatusInstructionInvalid:        "instruction invalid",
	StatusInstructionNotImplemented: "instruction not implemented",
	StatusStackEmpty:                "stack empty",
	StatusStackFull:                 "stack full",
	StatusMemoryFault:               "memory fault",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Err returns the sentinel error matching the status, or nil for StatusOK.
func (s Status) Err() error {
	switch s {
	case StatusOK:
		return nil
	case StatusFetchFailed:
		return ErrFetchFailed
	case StatusInstructionInvalid:
		return ErrInstructionInvalid
	case StatusInstructionNotImplemented:
		return ErrInstructionNotImplemented
	case StatusStackEmpty:
		return ErrStackEmpty
	case StatusStackFull:
		return ErrStackFull
	case StatusMemoryFault:
		return ErrMemoryFault
	default:
		return fmt.Errorf("%w: %d", errUnknownStatus, uint8(s))
	}
}

// Result describes the outcome and observable side effects of a cycle.
type Result struct {
	Status Status
	Opcode uint16 // raw opcode, zero if the fetch failed

	DisplayDirty  bool // the display changed and should be redrawn
	SoundTimerSet bool // FX18 was executed
	WaitingForKey bool // FX0A has no released key yet and will run again
}

// OK returns whether the cycle completed successfully.
func (r Result) OK() bool {
	return r.Status == StatusOK
}
