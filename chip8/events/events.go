package events

import "container/heap"

// EventType represents the different kinds of work the interpreter loop interleaves
type EventType int

const (
	// InstructionStep executes one instruction.
	InstructionStep EventType = iota
	// TimerTick decrements the delay and sound timers and ends a frame.
	TimerTick
)

func (t EventType) String() string {
	switch t {
	case InstructionStep:
		return "instruction"
	case TimerTick:
		return "timer tick"
	default:
		return "unknown"
	}
}

// Event represents a scheduled event in the emulator
type Event struct {
	Cycle     uint64    // Absolute virtual cycle when this event should fire
	EventType EventType // Type of event
}

// EventScheduler is a priority queue of events ordered by cycle. Events due
// on the same cycle fire in EventType order, so an instruction due on a tick
// boundary runs before the tick.
type EventScheduler struct {
	events       eventQueue
	currentCycle uint64
	running      bool
}

// NewEventScheduler creates a new event scheduler with room for capacity events
func NewEventScheduler(capacity int) *EventScheduler {
	return &EventScheduler{
		events: make(eventQueue, 0, capacity),
	}
}

// Schedule adds an event to the queue. Events scheduled while the scheduler
// is stopped are dropped.
func (s *EventScheduler) Schedule(eventType EventType, cycle uint64) {
	if !s.running {
		return
	}
	heap.Push(&s.events, Event{Cycle: cycle, EventType: eventType})
}

// ScheduleRelative schedules an event relative to the current cycle
func (s *EventScheduler) ScheduleRelative(eventType EventType, cyclesFromNow uint64) {
	s.Schedule(eventType, s.currentCycle+cyclesFromNow)
}

// GetNextEvent removes and returns the earliest event, advancing the current
// cycle to it. It returns false when stopped or empty.
func (s *EventScheduler) GetNextEvent() (Event, bool) {
	if !s.running || len(s.events) == 0 {
		return Event{}, false
	}

	event := heap.Pop(&s.events).(Event)
	s.currentCycle = event.Cycle
	return event, true
}

// Start begins event processing
func (s *EventScheduler) Start() {
	s.running = true
}

// Stop halts event processing and drains the queue
func (s *EventScheduler) Stop() {
	s.running = false
	s.events = s.events[:0]
}

// Running reports whether the scheduler accepts and delivers events.
func (s *EventScheduler) Running() bool {
	return s.running
}

// GetCurrentCycle returns the current cycle count
func (s *EventScheduler) GetCurrentCycle() uint64 {
	return s.currentCycle
}

// SetCurrentCycle updates the current cycle count
func (s *EventScheduler) SetCurrentCycle(cycle uint64) {
	s.currentCycle = cycle
}

// EventCount returns the number of pending events
func (s *EventScheduler) EventCount() int {
	return len(s.events)
}

type eventQueue []Event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].Cycle != q[j].Cycle {
		return q[i].Cycle < q[j].Cycle
	}
	return q[i].EventType < q[j].EventType
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(Event)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	event := old[n-1]
	*q = old[:n-1]
	return event
}
