package memory

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/go-chip8/chip8/addr"
)

var (
	// ErrROMUnreadable is returned when the program bytes cannot be obtained.
	ErrROMUnreadable = errors.New("rom unreadable")
	// ErrROMTooLarge is returned when a program does not fit above addr.ProgramStart.
	ErrROMTooLarge = errors.New("rom too large")
)

// ReadROM reads a raw program image from path. No format parsing is done,
// CHIP-8 programs have no header.
func ReadROM(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrROMUnreadable, err)
	}

	slog.Info("Loaded ROM data", "path", path, "bytes", len(data))
	return data, nil
}

// CheckROMSize returns ErrROMTooLarge if a program of the given size cannot be loaded.
func CheckROMSize(size int) error {
	if size > addr.MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, at most %d fit", ErrROMTooLarge, size, addr.MaxProgramSize)
	}
	return nil
}
