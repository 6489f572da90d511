package cpu

import "github.com/valerio/go-chip8/chip8/bit"

// Opcode executes one instruction family. The instruction word being executed
// is in cpu.currentOpcode and the PC already points past it.
type Opcode func(*CPU) error

// Decode selects the instruction family from the leading nibble of word.
func Decode(word uint16) Opcode {
	return opcodes[bit.Nibble(word, 0)]
}

var opcodes = [16]Opcode{
	opcode0x0, opcode0x1, opcode0x2, opcode0x3,
	opcode0x4, opcode0x5, opcode0x6, opcode0x7,
	opcode0x8, opcode0x9, opcode0xA, opcode0xB,
	opcode0xC, opcode0xD, opcode0xE, opcode0xF,
}

// operand accessors for the current instruction word

func (c *CPU) x() uint8 {
	return bit.Nibble(c.currentOpcode, 1)
}

func (c *CPU) y() uint8 {
	return bit.Nibble(c.currentOpcode, 2)
}

func (c *CPU) n() uint8 {
	return bit.Nibble(c.currentOpcode, 3)
}

func (c *CPU) nn() uint8 {
	return bit.Low(c.currentOpcode)
}

func (c *CPU) nnn() uint16 {
	return bit.Address(c.currentOpcode)
}
