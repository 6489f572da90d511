package video

// Display geometry.
const (
	FramebufferWidth  = 64
	FramebufferHeight = 32

	// SpriteWidth is the fixed width in pixels of every sprite row.
	SpriteWidth = 8
)

// Color is an RGBA pixel value used by presentation surfaces.
type Color uint32

const (
	OffColor Color = 0x000000FF
	OnColor  Color = 0xFFFFFFFF
)

// ColorOf maps a pixel state to its RGBA color.
func ColorOf(on bool) Color {
	if on {
		return OnColor
	}
	return OffColor
}

// FrameBuffer is the monochrome display: 64x32 one-bit pixels stored row-major,
// plus a one-shot redraw flag. The flag is raised by every change to the
// buffer and only cleared by the consumer, after it has painted a frame.
type FrameBuffer struct {
	buffer [FramebufferWidth * FramebufferHeight]bool
	redraw bool
}

// NewFrameBuffer creates a cleared frame buffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

func (fb *FrameBuffer) GetPixel(x, y uint) bool {
	return fb.buffer[y*FramebufferWidth+x]
}

func (fb *FrameBuffer) SetPixel(x, y uint, on bool) {
	fb.buffer[y*FramebufferWidth+x] = on
	fb.redraw = true
}

// ToSlice returns the row-major pixel data. The slice aliases the buffer.
func (fb *FrameBuffer) ToSlice() []bool {
	return fb.buffer[:]
}

// Clear turns every pixel off and requests a redraw.
func (fb *FrameBuffer) Clear() {
	clear(fb.buffer[:])
	fb.redraw = true
}

// NeedsRedraw reports whether the buffer changed since the last ClearRedraw.
func (fb *FrameBuffer) NeedsRedraw() bool {
	return fb.redraw
}

// ClearRedraw acknowledges the current frame.
func (fb *FrameBuffer) ClearRedraw() {
	fb.redraw = false
}

// Reset clears the buffer and the redraw flag.
func (fb *FrameBuffer) Reset() {
	clear(fb.buffer[:])
	fb.redraw = false
}

// DrawSprite XORs an 8-pixel wide sprite, one byte per row, onto the buffer.
// The origin wraps around the screen, but pixels running past the right or
// bottom edge are clipped. It returns true if any pixel was turned off.
// A redraw is requested even when the sprite is empty.
func (fb *FrameBuffer) DrawSprite(sprite []byte, x, y uint8) (collision bool) {
	originX := uint(x) % FramebufferWidth
	originY := uint(y) % FramebufferHeight

	for row, line := range sprite {
		py := originY + uint(row)
		if py >= FramebufferHeight {
			break
		}

		for col := uint(0); col < SpriteWidth; col++ {
			px := originX + col
			if px >= FramebufferWidth {
				break
			}
			if line&(0x80>>col) == 0 {
				continue
			}

			idx := py*FramebufferWidth + px
			if fb.buffer[idx] {
				collision = true
			}
			fb.buffer[idx] = !fb.buffer[idx]
		}
	}

	fb.redraw = true
	return collision
}
