package action

import "fmt"

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// CHIP-8 keypad lines, in key order so Keypad0+n is line n
	Keypad0 Action = iota
	Keypad1
	Keypad2
	Keypad3
	Keypad4
	Keypad5
	Keypad6
	Keypad7
	Keypad8
	Keypad9
	KeypadA
	KeypadB
	KeypadC
	KeypadD
	KeypadE
	KeypadF

	// Emulator features
	EmulatorPauseToggle
	EmulatorReset
	EmulatorSnapshot
	EmulatorTestPatternCycle
	EmulatorQuit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// Category groups actions for help output and input routing.
type Category int

const (
	CategoryKeypad Category = iota
	CategoryEmulator
	CategoryDebug
)

// Info describes an action.
type Info struct {
	Name        string
	Description string
	Category    Category
}

var info = map[Action]Info{
	EmulatorPauseToggle:      {"pause", "Pause or resume emulation", CategoryEmulator},
	EmulatorReset:            {"reset", "Reload the current program", CategoryEmulator},
	EmulatorSnapshot:         {"snapshot", "Save the display as PNG", CategoryEmulator},
	EmulatorTestPatternCycle: {"test-pattern", "Show the next test pattern", CategoryEmulator},
	EmulatorQuit:             {"quit", "Exit the emulator", CategoryEmulator},
	DebugLogLevelIncrease:    {"log-more", "Show more log output", CategoryDebug},
	DebugLogLevelDecrease:    {"log-less", "Show less log output", CategoryDebug},
}

// GetInfo returns the description of an action.
func GetInfo(act Action) Info {
	if key, ok := KeypadLine(act); ok {
		return Info{
			Name:        fmt.Sprintf("key-%X", key),
			Description: fmt.Sprintf("Keypad key %X", key),
			Category:    CategoryKeypad,
		}
	}
	if i, ok := info[act]; ok {
		return i
	}
	return Info{Name: fmt.Sprintf("action-%d", int(act)), Category: CategoryEmulator}
}

func (a Action) String() string {
	return GetInfo(a).Name
}

// KeypadLine returns the keypad line an action drives, if it is a keypad action.
func KeypadLine(act Action) (uint8, bool) {
	if act < Keypad0 || act > KeypadF {
		return 0, false
	}
	return uint8(act - Keypad0), true
}
