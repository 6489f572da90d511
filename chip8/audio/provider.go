package audio

// Player turns the buzzer on and off. The emulation loop calls SetActive
// once per frame with the state of the sound timer.
type Player interface {
	SetActive(active bool)
	Close() error
}

var (
	_ Player = (*Tone)(nil)
	_ Player = (*Speaker)(nil)
)
