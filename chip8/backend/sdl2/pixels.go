package sdl2

import (
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/video"
)

// framePixels converts the frame to RGBA8888 texture bytes. SDL reads the
// format as a native 32 bit value, so on little-endian hosts each pixel is
// stored alpha first.
func framePixels(frame *video.FrameBuffer, dst []byte) []byte {
	size := video.FramebufferWidth * video.FramebufferHeight * display.RGBABytesPerPixel
	if cap(dst) < size {
		dst = make([]byte, size)
	}
	dst = dst[:size]

	for i, on := range frame.ToSlice() {
		c := uint32(video.ColorOf(on))
		idx := i * display.RGBABytesPerPixel

		dst[idx] = byte(c & display.RGBAColorMask)                           // Alpha
		dst[idx+1] = byte((c >> display.RGBABShift) & display.RGBAColorMask) // Blue
		dst[idx+2] = byte((c >> display.RGBAGShift) & display.RGBAColorMask) // Green
		dst[idx+3] = byte((c >> display.RGBARShift) & display.RGBAColorMask) // Red
	}

	return dst
}

// windowSize returns the window dimensions for a pixel scale.
func windowSize(scale int) (int32, int32) {
	if scale < 1 {
		scale = display.DefaultPixelScale
	}
	return int32(video.FramebufferWidth * scale), int32(video.FramebufferHeight * scale)
}
