package input

import (
	"log/slog"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

// Keypad receives keypad line changes.
type Keypad interface {
	SetKey(key uint8, pressed bool)
}

// Manager routes input events: keypad actions go straight to the keypad,
// every other action runs the callbacks registered for it.
type Manager struct {
	handlers map[action.Action]map[event.Type][]func()
	handler  *Handler
	keypad   Keypad
}

func NewManager(k Keypad) *Manager {
	return &Manager{
		handlers: make(map[action.Action]map[event.Type][]func()),
		handler:  NewHandler(),
		keypad:   k,
	}
}

// SetKeypad changes the keypad that receives keypad actions.
func (m *Manager) SetKeypad(k Keypad) {
	m.keypad = k
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Dispatch handles every event returned by a backend update.
func (m *Manager) Dispatch(events []backend.InputEvent) {
	for _, evt := range events {
		if !m.handler.ProcessEvent(evt) {
			slog.Debug("Debounced input", "action", evt.Action, "type", evt.Type)
			continue
		}
		m.Trigger(evt.Action, evt.Type)
	}
}

// Trigger handles the given action and event type.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if line, ok := action.KeypadLine(act); ok {
		if m.keypad == nil {
			return
		}
		switch evt {
		case event.Press, event.Hold:
			m.keypad.SetKey(line, true)
		case event.Release:
			m.keypad.SetKey(line, false)
		}
		return
	}

	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}
