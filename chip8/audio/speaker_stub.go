//go:build !beep

package audio

import "errors"

// ErrUnavailable is returned when the binary was built without audio output.
var ErrUnavailable = errors.New("audio output not available - build with -tags beep to enable")

// Speaker stub for builds without an audio device
type Speaker struct{}

// NewSpeaker always fails, see ErrUnavailable.
func NewSpeaker() (*Speaker, error) {
	return nil, ErrUnavailable
}

func (s *Speaker) SetActive(bool) {}

func (s *Speaker) Close() error {
	return nil
}
