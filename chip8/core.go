package chip8

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/events"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// Config holds the emulation settings.
type Config struct {
	// InstructionsPerSecond is the CPU rate, timers always run at 60Hz.
	InstructionsPerSecond int
	CPU                   cpu.Config
}

// DefaultConfig returns the usual 700 instructions per second, no quirks.
func DefaultConfig() Config {
	return Config{InstructionsPerSecond: events.DefaultInstructionsPerSecond}
}

// Machine drives a CPU through the event scheduler: instructions and timer
// ticks interleave on a virtual clock, and every timer tick ends a frame.
type Machine struct {
	cpu       *cpu.CPU
	clock     events.Clock
	scheduler *events.EventScheduler
	limiter   timing.Limiter

	program []byte
	paused  bool

	frameCount      uint64
	eventsProcessed uint64
}

// New creates a machine with no program loaded.
func New(config Config) (*Machine, error) {
	if config.InstructionsPerSecond == 0 {
		config.InstructionsPerSecond = events.DefaultInstructionsPerSecond
	}

	clock, err := events.NewClock(config.InstructionsPerSecond)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		cpu:       cpu.New(config.CPU),
		clock:     clock,
		scheduler: events.NewEventScheduler(4),
		limiter:   timing.NewNoOpLimiter(),
	}
	m.restartClock()

	slog.Debug("Machine created",
		"ips", config.InstructionsPerSecond,
		"strict", config.CPU.Strict,
		"shift_uses_vx", config.CPU.Quirks.ShiftUsesVX)

	return m, nil
}

// NewWithFile creates a machine and loads the program at path into it.
func NewWithFile(path string, config Config) (*Machine, error) {
	data, err := memory.ReadROM(path)
	if err != nil {
		return nil, err
	}

	m, err := New(config)
	if err != nil {
		return nil, err
	}

	if err := m.LoadProgram(data); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return m, nil
}

// LoadProgram resets the machine and loads program. The program is kept so
// Reset can reload it. A rejected program leaves the machine empty.
func (m *Machine) LoadProgram(program []byte) error {
	if err := m.cpu.LoadProgram(program); err != nil {
		// the CPU is left in its reset state, Reset must not bring back the old program
		m.program = nil
		m.frameCount = 0
		m.restartClock()
		return err
	}

	m.program = append(m.program[:0], program...)
	m.frameCount = 0
	m.restartClock()
	return nil
}

// Reset reloads the current program, clearing all machine state.
func (m *Machine) Reset() {
	if m.program == nil {
		m.cpu.Reset()
	} else if err := m.cpu.LoadProgram(m.program); err != nil {
		// the program fit when it was first loaded
		slog.Error("Failed to reload program", "error", err)
	}

	m.frameCount = 0
	m.restartClock()
	slog.Info("Machine reset")
}

func (m *Machine) restartClock() {
	m.scheduler.Stop()
	m.scheduler.SetCurrentCycle(0)
	m.scheduler.Start()
	m.clock.Bootstrap(m.scheduler)
}

// SetFrameLimiter sets the limiter waited on at the end of every frame.
// A nil limiter disables pacing.
func (m *Machine) SetFrameLimiter(limiter timing.Limiter) {
	if limiter == nil {
		limiter = timing.NewNoOpLimiter()
	}
	m.limiter = limiter
}

// RunUntilFrame processes scheduled events up to and including the next
// timer tick. A machine fault stops the frame early and is returned on every
// call until the machine is reset. In strict mode unknown instructions do not
// cut the frame short: the first one seen is returned once the frame ends.
func (m *Machine) RunUntilFrame() error {
	defer m.limiter.WaitForNextFrame()

	if m.paused {
		return nil
	}
	if fault := m.cpu.Fault(); fault != nil {
		return fault
	}

	var frameErr error
	for {
		evt, ok := m.scheduler.GetNextEvent()
		if !ok {
			return errors.New("event queue is empty")
		}
		m.clock.Reschedule(m.scheduler, evt)
		m.eventsProcessed++

		switch evt.EventType {
		case events.InstructionStep:
			if err := m.cpu.Step(); err != nil {
				m.logStepError(err)
				var fault *cpu.MachineFault
				if errors.As(err, &fault) {
					return err
				}
				if frameErr == nil {
					frameErr = err
				}
			}
		case events.TimerTick:
			m.cpu.TickTimers()
			m.frameCount++
			return frameErr
		}
	}
}

func (m *Machine) logStepError(err error) {
	var fault *cpu.MachineFault
	if errors.As(err, &fault) {
		slog.Error("Machine halted", "kind", fault.Kind.String(),
			"pc", fmt.Sprintf("0x%03X", fault.PC),
			"opcode", fmt.Sprintf("%04X", fault.Opcode),
			"frame", m.frameCount)
		return
	}
	slog.Debug("Step failed", "error", err, "frame", m.frameCount)
}

// HandleAction applies emulator level actions. Keypad actions set the
// matching key line.
func (m *Machine) HandleAction(act action.Action, pressed bool) {
	if line, ok := action.KeypadLine(act); ok {
		m.SetKey(line, pressed)
		return
	}
	if !pressed {
		return
	}

	switch act {
	case action.EmulatorPauseToggle:
		m.TogglePause()
	case action.EmulatorReset:
		m.Reset()
	}
}

// SetKey updates a keypad line.
func (m *Machine) SetKey(key uint8, pressed bool) {
	m.cpu.SetKey(key, pressed)
}

// TogglePause pauses or resumes emulation. While paused neither instructions
// nor timers run.
func (m *Machine) TogglePause() {
	m.paused = !m.paused
	slog.Info("Emulation paused", "paused", m.paused)
}

func (m *Machine) Paused() bool {
	return m.paused
}

// ToneActive reports whether the sound timer is running. A paused machine is silent.
func (m *Machine) ToneActive() bool {
	return !m.paused && m.cpu.ToneActive()
}

// Status describes the CPU state: running, awaiting key or halted.
func (m *Machine) Status() string {
	if m.paused {
		return "paused"
	}
	return m.cpu.State().String()
}

// Getter methods for compatibility with existing interfaces
func (m *Machine) GetCurrentFrame() *video.FrameBuffer {
	return m.cpu.Display()
}

func (m *Machine) GetCPU() *cpu.CPU {
	return m.cpu
}

func (m *Machine) GetFrameCount() uint64 {
	return m.frameCount
}

func (m *Machine) GetInstructionCount() uint64 {
	return m.cpu.GetInstructionCount()
}

func (m *Machine) GetEventCount() uint64 {
	return m.eventsProcessed
}
