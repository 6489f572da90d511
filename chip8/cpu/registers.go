package cpu

import "github.com/valerio/go-chip8/chip8/addr"

// Registers is the V0-VF register file. VF is an ordinary register that a
// few instructions also overwrite with a flag (carry, borrow, collision).
type Registers [16]uint8

const flagRegister = 0xF

func (r *Registers) setFlag(condition bool) {
	if condition {
		r[flagRegister] = 1
	} else {
		r[flagRegister] = 0
	}
}

// Stack holds return addresses for nested subroutine calls.
type Stack struct {
	entries [addr.StackDepth]uint16
	sp      uint8
}

// push returns false, leaving the stack untouched, when it is already full.
func (s *Stack) push(address uint16) bool {
	if int(s.sp) >= len(s.entries) {
		return false
	}
	s.entries[s.sp] = address
	s.sp++
	return true
}

// pop returns false when the stack is empty.
func (s *Stack) pop() (uint16, bool) {
	if s.sp == 0 {
		return 0, false
	}
	s.sp--
	return s.entries[s.sp], true
}

// Depth returns the number of return addresses currently stored.
func (s *Stack) Depth() int {
	return int(s.sp)
}

func (s *Stack) reset() {
	*s = Stack{}
}
