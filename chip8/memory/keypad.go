package memory

// The computers which originally used the Chip-8 Language had a 16-key
// hexadecimal keypad with the following layout:
//
//	+---+---+---+---+
//	| 1 | 2 | 3 | C |
//	+---+---+---+---+
//	| 4 | 5 | 6 | D |
//	+---+---+---+---+
//	| 7 | 8 | 9 | E |
//	+---+---+---+---+
//	| A | 0 | B | F |
//	+---+---+---+---+

// Key is one of the 16 keypad lines.
type Key uint8

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// KeyCount is the number of keypad lines.
const KeyCount = 16

// Keypad holds the pressed state of every line, bit n set means key n is down.
type Keypad struct {
	lines uint16
}

// Press marks key as held down. Only the low nibble of key is used.
func (k *Keypad) Press(key Key) {
	k.lines |= 1 << (key & 0x0F)
}

// Release marks key as up.
func (k *Keypad) Release(key Key) {
	k.lines &^= 1 << (key & 0x0F)
}

// Set updates key to the given state.
func (k *Keypad) Set(key Key, pressed bool) {
	if pressed {
		k.Press(key)
	} else {
		k.Release(key)
	}
}

// IsPressed reports whether key is currently held down.
func (k *Keypad) IsPressed(key Key) bool {
	return k.lines&(1<<(key&0x0F)) != 0
}

// FirstPressed returns the lowest pressed key, if any.
func (k *Keypad) FirstPressed() (Key, bool) {
	if k.lines == 0 {
		return 0, false
	}
	for key := Key0; key <= KeyF; key++ {
		if k.IsPressed(key) {
			return key, true
		}
	}
	return 0, false
}

// Reset releases every key.
func (k *Keypad) Reset() {
	k.lines = 0
}
