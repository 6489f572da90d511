package cpu

import "fmt"

// FaultKind identifies why the machine halted.
type FaultKind int

const (
	FaultStackOverflow FaultKind = iota
	FaultStackUnderflow
	FaultMemoryOutOfRange
	FaultPCOutOfRange
)

func (k FaultKind) String() string {
	switch k {
	case FaultStackOverflow:
		return "stack overflow"
	case FaultStackUnderflow:
		return "stack underflow"
	case FaultMemoryOutOfRange:
		return "memory access out of range"
	case FaultPCOutOfRange:
		return "program counter out of range"
	default:
		return fmt.Sprintf("fault(%d)", int(k))
	}
}

// MachineFault is returned by Step when the program breaks stack discipline or
// touches memory outside the address space. The CPU stays halted, returning the
// same fault, until it is reset or a new program is loaded.
type MachineFault struct {
	Kind   FaultKind
	PC     uint16 // address of the faulting instruction
	Opcode uint16
	Err    error
}

func (f *MachineFault) Error() string {
	msg := fmt.Sprintf("machine fault: %s at 0x%03X (opcode %04X)", f.Kind, f.PC, f.Opcode)
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

func (f *MachineFault) Unwrap() error {
	return f.Err
}

// UnknownInstructionError reports an instruction word with no defined meaning.
// It is only returned in strict mode and does not halt the CPU.
type UnknownInstructionError struct {
	PC     uint16
	Opcode uint16
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("unknown instruction %04X at 0x%03X", e.Opcode, e.PC)
}
