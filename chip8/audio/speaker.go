//go:build beep

package audio

import (
	"fmt"
	"log/slog"

	"github.com/faiface/beep/speaker"
)

// Speaker plays a Tone on the default audio device.
type Speaker struct {
	tone *Tone
}

// NewSpeaker opens the audio device and starts streaming a silent tone.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(bufferDuration)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %v", err)
	}

	tone := NewTone(SampleRate, ToneFrequency)
	speaker.Play(tone)

	slog.Info("Audio initialized", "sample_rate", int(SampleRate), "frequency", ToneFrequency)
	return &Speaker{tone: tone}, nil
}

// SetActive switches the buzzer on or off.
func (s *Speaker) SetActive(active bool) {
	s.tone.SetActive(active)
}

// Close stops playback and releases the device.
func (s *Speaker) Close() error {
	s.tone.SetActive(false)
	speaker.Clear()
	speaker.Close()
	return nil
}
