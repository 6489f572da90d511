package memory

// Timers holds the delay and sound countdown registers. Both are meant to be
// ticked at 60Hz, independently of how fast instructions are executed.
type Timers struct {
	delay uint8
	sound uint8
}

// Tick decrements both timers by one, stopping at zero.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

func (t *Timers) Delay() uint8 {
	return t.delay
}

func (t *Timers) Sound() uint8 {
	return t.sound
}

func (t *Timers) SetDelay(value uint8) {
	t.delay = value
}

func (t *Timers) SetSound(value uint8) {
	t.sound = value
}

// ToneActive reports whether the buzzer should be sounding.
func (t *Timers) ToneActive() bool {
	return t.sound > 0
}

// Reset stops both timers.
func (t *Timers) Reset() {
	t.delay = 0
	t.sound = 0
}
