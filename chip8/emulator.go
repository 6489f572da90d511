package chip8

import (
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/video"
)

// Emulator is the interface for all emulator implementations
type Emulator interface {
	// RunUntilFrame advances emulation by one 60Hz frame.
	RunUntilFrame() error
	GetCurrentFrame() *video.FrameBuffer
	HandleAction(act action.Action, pressed bool)
	// ToneActive reports whether the buzzer should sound.
	ToneActive() bool
	// Status is a short description of the emulator state for display.
	Status() string
}

var (
	_ Emulator = (*Machine)(nil)
	_ Emulator = (*TestPatternEmulator)(nil)
)
