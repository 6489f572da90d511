package events

import "fmt"

const (
	// DefaultInstructionsPerSecond is the usual CHIP-8 instruction rate.
	DefaultInstructionsPerSecond = 700
	// TimerFrequency is the fixed rate of the delay and sound timers.
	TimerFrequency = 60
)

// Clock maps the instruction rate and the 60Hz timer rate onto a single
// virtual cycle counter. One second is instructionsPerSecond*TimerFrequency
// cycles, so both periods are whole numbers and the interleaving is exact.
type Clock struct {
	instructionPeriod uint64
	tickPeriod        uint64
}

// NewClock creates a clock for the given instruction rate.
func NewClock(instructionsPerSecond int) (Clock, error) {
	if instructionsPerSecond <= 0 {
		return Clock{}, fmt.Errorf("invalid instruction rate %d, must be positive", instructionsPerSecond)
	}

	return Clock{
		instructionPeriod: TimerFrequency,
		tickPeriod:        uint64(instructionsPerSecond),
	}, nil
}

// InstructionPeriod is the number of cycles between two instructions.
func (c Clock) InstructionPeriod() uint64 {
	return c.instructionPeriod
}

// TickPeriod is the number of cycles between two timer ticks.
func (c Clock) TickPeriod() uint64 {
	return c.tickPeriod
}

// InstructionsPerTick returns the average number of instructions per frame.
func (c Clock) InstructionsPerTick() float64 {
	return float64(c.tickPeriod) / float64(c.instructionPeriod)
}

// Bootstrap schedules the first instruction and the first timer tick.
func (c Clock) Bootstrap(s *EventScheduler) {
	s.ScheduleRelative(InstructionStep, c.instructionPeriod)
	s.ScheduleRelative(TimerTick, c.tickPeriod)
}

// Reschedule queues the next occurrence of a periodic event that just fired.
func (c Clock) Reschedule(s *EventScheduler, event Event) {
	switch event.EventType {
	case InstructionStep:
		s.Schedule(InstructionStep, event.Cycle+c.instructionPeriod)
	case TimerTick:
		s.Schedule(TimerTick, event.Cycle+c.tickPeriod)
	}
}
