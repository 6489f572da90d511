package audio

import (
	"sync/atomic"

	"github.com/faiface/beep"
)

// Tone is a square wave beep.Streamer gated by an on/off switch. It never
// ends, while inactive it streams silence. SetActive may be called from a
// different goroutine than the one streaming.
type Tone struct {
	active atomic.Bool
	phase  float64
	step   float64
}

var _ beep.Streamer = (*Tone)(nil)

// NewTone creates an inactive tone at the given frequency and sample rate.
func NewTone(sampleRate beep.SampleRate, frequency float64) *Tone {
	return &Tone{step: frequency / float64(sampleRate)}
}

// SetActive switches the tone on or off.
func (t *Tone) SetActive(active bool) {
	t.active.Store(active)
}

// Active reports whether the tone is sounding.
func (t *Tone) Active() bool {
	return t.active.Load()
}

// Stream fills samples with the square wave, or silence when inactive.
func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if !t.active.Load() {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}

	for i := range samples {
		v := Amplitude
		if t.phase >= 0.5 {
			v = -Amplitude
		}
		samples[i] = [2]float64{v, v}

		t.phase += t.step
		if t.phase >= 1 {
			t.phase--
		}
	}
	return len(samples), true
}

// Err always returns nil, a tone cannot fail.
func (t *Tone) Err() error {
	return nil
}

// Close does nothing, there is no device behind a bare tone.
func (t *Tone) Close() error {
	return nil
}
