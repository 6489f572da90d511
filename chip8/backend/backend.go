package backend

import (
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// InputEvent is a platform input translated to an emulator action.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// Backend represents a complete emulator platform (rendering + input)
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, SDL window, etc.)
// - Translating platform-specific input events to Actions
// - Handling backend-specific features (snapshots, status lines)
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Update.
	Init(config BackendConfig) error

	// Update renders the frame, if it changed, and returns the input events
	// collected since the previous call. Backends clear the frame's redraw
	// flag after painting it.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title       string
	Scale       int
	TestPattern bool             // Display test pattern instead of emulation
	Callbacks   BackendCallbacks // Callbacks for backend communication
}

// Status is what a backend may show next to the display.
type Status struct {
	ROMName string
	State   string
	Paused  bool
	Tone    bool
}

// BackendCallbacks allows backends to communicate with the emulator
type BackendCallbacks struct {
	// OnQuit is called when the backend requests shutdown (e.g., window close)
	OnQuit func()

	// GetStatus returns the current emulator status, optional
	GetStatus func() Status
}

// Paint reports whether frame should be painted and acknowledges the redraw.
// A nil frame is never painted.
func Paint(frame *video.FrameBuffer, force bool) bool {
	if frame == nil {
		return false
	}
	if !frame.NeedsRedraw() && !force {
		return false
	}
	frame.ClearRedraw()
	return true
}
