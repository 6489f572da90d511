package timing

import "time"

// TargetFPS is the frame rate: one frame per delay timer tick.
const TargetFPS = 60

// FrameDuration returns the wall-clock length of one frame at TargetFPS.
func FrameDuration() time.Duration {
	return time.Second / TargetFPS
}

// Limiter paces the emulation loop to real time. The machine calls
// WaitForNextFrame once at the end of every frame.
type Limiter interface {
	WaitForNextFrame()
	// Reset drops any accumulated lag, for example after a pause.
	Reset()
}

type unlimited struct{}

// NewNoOpLimiter returns a limiter that never waits. Headless runs and
// tests use it to execute frames as fast as possible.
func NewNoOpLimiter() Limiter {
	return &unlimited{}
}

func (*unlimited) WaitForNextFrame() {}

func (*unlimited) Reset() {}
