package audio

import (
	"time"

	"github.com/faiface/beep"
)

const (
	// SampleRate of the generated tone.
	SampleRate = beep.SampleRate(44100)
	// ToneFrequency is the pitch of the buzzer in Hz.
	ToneFrequency = 440.0
	// Amplitude of the square wave, kept low since it is a harsh sound.
	Amplitude = 0.2
	// bufferDuration is the speaker buffer length. Shorter buffers make the
	// tone start and stop closer to the timer edges.
	bufferDuration = time.Second / 30
)
