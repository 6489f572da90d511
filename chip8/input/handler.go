package input

import (
	"time"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

// debounceDuration is the minimum time between two presses of the same UI action
const debounceDuration = 300 * time.Millisecond

// Handler manages input processing with debouncing for UI actions.
// Keypad lines are never debounced, games poll them directly.
type Handler struct {
	lastActionTime map[action.Action]time.Time
	debounceDelay  time.Duration
	now            func() time.Time
}

func NewHandler() *Handler {
	return &Handler{
		lastActionTime: make(map[action.Action]time.Time),
		debounceDelay:  debounceDuration,
		now:            time.Now,
	}
}

// ProcessEvent processes an input event, applying debouncing to UI presses.
// Returns true if the event should be handled, false if it was debounced
func (h *Handler) ProcessEvent(evt backend.InputEvent) bool {
	if evt.Type != event.Press {
		return true
	}
	if _, isKey := action.KeypadLine(evt.Action); isKey {
		return true
	}

	now := h.now()
	if lastTime, exists := h.lastActionTime[evt.Action]; exists {
		if now.Sub(lastTime) < h.debounceDelay {
			return false
		}
	}
	h.lastActionTime[evt.Action] = now

	return true
}
