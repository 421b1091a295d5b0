package vm

import "errors"

// StackDepth is the conventional number of nested subroutine calls.
const StackDepth = 16

var (
	// ErrStackFull is returned when pushing onto a stack at capacity.
	ErrStackFull = errors.New("stack full")
	// ErrStackEmpty is returned when popping from an empty stack.
	ErrStackEmpty = errors.New("stack empty")
)

// Stack is a bounded LIFO of return addresses.
type Stack struct {
	addresses []uint16
	top       int
}

// NewStack returns an empty stack that can hold capacity addresses.
func NewStack(capacity int) *Stack {
	return &Stack{
		addresses: make([]uint16, capacity),
	}
}

// Push stores an address on top of the stack.
func (s *Stack) Push(address uint16) error {
	if s.top >= len(s.addresses) {
		return ErrStackFull
	}
	s.addresses[s.top] = address
	s.top++
	return nil
}

// Pop removes and returns the address on top of the stack.
func (s *Stack) Pop() (uint16, error) {
	if s.top == 0 {
		return 0, ErrStackEmpty
	}
	s.top--
	return s.addresses[s.top], nil
}

// Depth returns the number of addresses currently on the stack.
func (s *Stack) Depth() int {
	return s.top
}

// Capacity returns the maximum number of addresses the stack can hold.
func (s *Stack) Capacity() int {
	return len(s.addresses)
}

// Reset empties the stack.
func (s *Stack) Reset() {
	clear(s.addresses)
	s.top = 0
}
