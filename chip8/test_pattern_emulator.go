package chip8

import (
	"log/slog"

	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// TestPatternEmulator displays test patterns without actual emulation
type TestPatternEmulator struct {
	frameBuffer      *video.FrameBuffer
	patternType      int
	animationCounter int
	limiter          timing.Limiter
}

func NewTestPatternEmulator() *TestPatternEmulator {
	e := &TestPatternEmulator{
		frameBuffer: video.NewFrameBuffer(),
		limiter:     timing.NewNoOpLimiter(),
	}
	e.drawPattern(0)
	return e
}

func (e *TestPatternEmulator) RunUntilFrame() error {
	e.animationCounter++
	if e.animationCounter%display.TestPatternAnimationFrames == 0 {
		e.drawPattern(e.animationCounter / display.TestPatternAnimationFrames)
	}
	e.limiter.WaitForNextFrame()
	return nil
}

func (e *TestPatternEmulator) GetCurrentFrame() *video.FrameBuffer {
	return e.frameBuffer
}

func (e *TestPatternEmulator) HandleAction(act action.Action, pressed bool) {
	if act == action.EmulatorTestPatternCycle && pressed {
		e.CycleTestPattern()
	}
}

// ToneActive is always false, test patterns are silent.
func (e *TestPatternEmulator) ToneActive() bool {
	return false
}

func (e *TestPatternEmulator) Status() string {
	return "test pattern: " + e.PatternName()
}

// PatternType returns the index of the pattern being shown.
func (e *TestPatternEmulator) PatternType() int {
	return e.patternType
}

func (e *TestPatternEmulator) PatternName() string {
	return display.TestPatternNames[e.patternType]
}

func (e *TestPatternEmulator) CycleTestPattern() {
	e.patternType = (e.patternType + 1) % display.TestPatternCount
	e.animationCounter = 0
	e.drawPattern(0)
	slog.Info("Switched to test pattern", "pattern", e.PatternName())
}

func (e *TestPatternEmulator) SetFrameLimiter(limiter timing.Limiter) {
	if limiter == nil {
		e.limiter = timing.NewNoOpLimiter()
	} else {
		e.limiter = limiter
	}
}

// drawPattern redraws the current pattern at the given animation step.
// Only stripes and diagonal lines move.
func (e *TestPatternEmulator) drawPattern(step int) {
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			e.frameBuffer.SetPixel(uint(x), uint(y), patternPixel(e.patternType, x, y, step))
		}
	}
}

func patternPixel(pattern, x, y, step int) bool {
	switch pattern {
	case 0: // Checkerboard
		return ((x/display.TestPatternTileSize)+(y/display.TestPatternTileSize))%2 == 0
	case 1: // Border, exercises the edge pixels that clipping keeps
		return x == 0 || y == 0 || x == video.FramebufferWidth-1 || y == video.FramebufferHeight-1
	case 2: // Vertical stripes
		return ((x+step*display.TestPatternStripeSpeed)/display.TestPatternStripeWidth)%2 == 0
	case 3: // Diagonal lines
		return ((x+y+step*display.TestPatternDiagonalSpeed)/display.TestPatternTileSize)%2 == 0
	default:
		return false
	}
}
