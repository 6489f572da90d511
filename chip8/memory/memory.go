package memory

import (
	"errors"
	"fmt"

	"github.com/valerio/go-chip8/chip8/addr"
	"github.com/valerio/go-chip8/chip8/bit"
)

// ErrAddressOutOfRange is returned by every accessor that would touch
// memory at or past addr.MemorySize.
var ErrAddressOutOfRange = errors.New("address out of range")

// Memory is the 4KB address space of the machine. The glyph font lives in
// the low bytes and programs are loaded at addr.ProgramStart.
type Memory struct {
	data [addr.MemorySize]byte
}

// New returns memory in its reset state: zeroed, font copied in.
func New() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset zeroes the whole address space and copies a fresh font.
func (m *Memory) Reset() {
	clear(m.data[:])
	copy(m.data[addr.FontStart:addr.FontEnd], Font[:])
}

// Read returns the byte at address.
func (m *Memory) Read(address uint16) (byte, error) {
	if int(address) >= addr.MemorySize {
		return 0, outOfRange(address)
	}
	return m.data[address], nil
}

// Write stores value at address.
func (m *Memory) Write(address uint16, value byte) error {
	if int(address) >= addr.MemorySize {
		return outOfRange(address)
	}
	m.data[address] = value
	return nil
}

// ReadWord returns the big-endian instruction word at [address, address+1].
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if address > addr.LastInstruction {
		return 0, outOfRange(address)
	}
	return bit.Combine(m.data[address], m.data[address+1]), nil
}

// Slice returns a view of n bytes starting at address. The returned slice
// aliases memory, writes to it are visible to the machine.
func (m *Memory) Slice(address uint16, n int) ([]byte, error) {
	end := int(address) + n
	if n < 0 || end > addr.MemorySize {
		return nil, outOfRange(uint16(min(end, 0xFFFF)))
	}
	return m.data[address:end], nil
}

// Load copies data into memory starting at address. Nothing is written if
// the data does not fit.
func (m *Memory) Load(address uint16, data []byte) error {
	dst, err := m.Slice(address, len(data))
	if err != nil {
		return err
	}
	copy(dst, data)
	return nil
}

func outOfRange(address uint16) error {
	return fmt.Errorf("%w: 0x%04X", ErrAddressOutOfRange, address)
}
