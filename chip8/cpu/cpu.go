package cpu

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/valerio/go-chip8/chip8/addr"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

// State is the execution state of the interpreter.
type State int

const (
	// Running executes one instruction per Step.
	Running State = iota
	// AwaitingKey is entered by FX0A when no key is down. Step does nothing
	// else until a keypad line is observed pressed.
	AwaitingKey
	// Halted means a MachineFault stopped execution.
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	case Halted:
		return "halted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Quirks selects between behaviors that differ across CHIP-8 implementations.
type Quirks struct {
	// ShiftUsesVX makes 8XY6 and 8XYE shift VX in place instead of reading VY.
	ShiftUsesVX bool
}

// Config holds the interpreter options.
type Config struct {
	Quirks Quirks
	// Strict makes Step return an *UnknownInstructionError for undefined
	// instruction words instead of skipping them.
	Strict bool
	// Seed for the CXNN random generator, 0 picks a random seed.
	Seed uint64
}

// CPU is the CHIP-8 interpreter. It owns memory, registers, stack, timers,
// keypad and display, and is driven one instruction at a time through Step.
// It is not safe for concurrent use.
type CPU struct {
	// registers
	v     Registers
	i     uint16
	pc    uint16
	stack Stack

	// devices
	mem    *memory.Memory
	screen *video.FrameBuffer
	keypad memory.Keypad
	timers memory.Timers

	// metadata
	state         State
	waitRegister  uint8
	fault         *MachineFault
	currentOpcode uint16
	instructionPC uint16
	instructions  uint64

	config Config
	rng    *rand.Rand
}

// New returns a CPU in its reset state, with no program loaded.
func New(config Config) *CPU {
	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	c := &CPU{
		mem:    memory.New(),
		screen: video.NewFrameBuffer(),
		config: config,
		rng:    rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
	c.Reset()

	return c
}

// Reset zeroes every register, the stack, timers, keypad and display, and
// copies a fresh font into memory. The PC is set to the program start.
func (c *CPU) Reset() {
	c.mem.Reset()
	c.screen.Reset()
	c.keypad.Reset()
	c.timers.Reset()
	c.stack.reset()

	c.v = Registers{}
	c.i = 0
	c.pc = addr.ProgramStart

	c.state = Running
	c.waitRegister = 0
	c.fault = nil
	c.currentOpcode = 0
	c.instructionPC = 0
	c.instructions = 0
}

// LoadProgram resets the machine and copies program to addr.ProgramStart.
// If the program does not fit, memory.ErrROMTooLarge is returned and the
// machine is left in its reset state. A nil image is memory.ErrROMUnreadable.
func (c *CPU) LoadProgram(program []byte) error {
	c.Reset()

	if program == nil {
		return fmt.Errorf("%w: no program image", memory.ErrROMUnreadable)
	}

	if err := memory.CheckROMSize(len(program)); err != nil {
		return err
	}
	if err := c.mem.Load(addr.ProgramStart, program); err != nil {
		return err
	}

	c.pc = addr.ProgramStart
	return nil
}

// LoadProgramFrom reads a whole program image from r and loads it. Read
// failures are reported as memory.ErrROMUnreadable.
func (c *CPU) LoadProgramFrom(r io.Reader) error {
	c.Reset()

	program, err := io.ReadAll(io.LimitReader(r, int64(addr.MaxProgramSize)+1))
	if err != nil {
		return fmt.Errorf("%w: %v", memory.ErrROMUnreadable, err)
	}

	return c.LoadProgram(program)
}

// Step executes exactly one instruction. The PC is advanced past the
// instruction word before it is executed, so jumps and skips operate on the
// address of the following instruction.
//
// While awaiting a key, Step only polls the keypad. Once halted by a fault,
// Step keeps returning that fault.
func (c *CPU) Step() error {
	switch c.state {
	case Halted:
		return c.fault
	case AwaitingKey:
		if key, ok := c.keypad.FirstPressed(); ok {
			c.v[c.waitRegister] = uint8(key)
			c.state = Running
		}
		return nil
	}

	word, err := c.mem.ReadWord(c.pc)
	if err != nil {
		c.instructionPC = c.pc
		c.currentOpcode = 0
		return c.halt(FaultPCOutOfRange, err)
	}

	c.currentOpcode = word
	c.instructionPC = c.pc
	c.pc += 2
	c.instructions++

	return Decode(word)(c)
}

// TickTimers decrements the delay and sound timers by one, never below zero.
// It should be called at 60Hz regardless of the instruction rate.
func (c *CPU) TickTimers() {
	c.timers.Tick()
}

// SetKey updates the state of a keypad line. Only the low nibble of key is used.
func (c *CPU) SetKey(key uint8, pressed bool) {
	c.keypad.Set(memory.Key(key), pressed)
}

// Display returns the frame buffer. Consumers call ClearRedraw on it after
// painting a frame.
func (c *CPU) Display() *video.FrameBuffer {
	return c.screen
}

// ToneActive reports whether the sound timer is running.
func (c *CPU) ToneActive() bool {
	return c.timers.ToneActive()
}

func (c *CPU) State() State {
	return c.state
}

// Fault returns the fault that halted the CPU, or nil.
func (c *CPU) Fault() *MachineFault {
	return c.fault
}

// Getter methods, mostly for tests and status displays
func (c *CPU) GetPC() uint16 { return c.pc }

func (c *CPU) GetI() uint16 { return c.i }

func (c *CPU) GetV(register uint8) uint8 { return c.v[register&0x0F] }

func (c *CPU) GetStackDepth() int { return c.stack.Depth() }

func (c *CPU) GetDelayTimer() uint8 { return c.timers.Delay() }

func (c *CPU) GetSoundTimer() uint8 { return c.timers.Sound() }

func (c *CPU) GetInstructionCount() uint64 { return c.instructions }

func (c *CPU) GetCurrentOpcode() uint16 { return c.currentOpcode }

// ReadMemory returns the byte at address.
func (c *CPU) ReadMemory(address uint16) (byte, error) { return c.mem.Read(address) }

func (c *CPU) halt(kind FaultKind, cause error) error {
	c.fault = &MachineFault{
		Kind:   kind,
		PC:     c.instructionPC,
		Opcode: c.currentOpcode,
		Err:    cause,
	}
	c.state = Halted
	return c.fault
}

func (c *CPU) unknown() error {
	if !c.config.Strict {
		return nil
	}
	return &UnknownInstructionError{PC: c.instructionPC, Opcode: c.currentOpcode}
}
