package backend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/video"
)

func TestPaint(t *testing.T) {
	t.Run("nil frame", func(t *testing.T) {
		assert.False(t, backend.Paint(nil, true))
	})

	t.Run("unchanged frame is skipped", func(t *testing.T) {
		frame := video.NewFrameBuffer()
		assert.False(t, backend.Paint(frame, false))
	})

	t.Run("changed frame is painted once", func(t *testing.T) {
		frame := video.NewFrameBuffer()
		frame.SetPixel(3, 3, true)

		assert.True(t, backend.Paint(frame, false))
		assert.False(t, frame.NeedsRedraw())
		assert.False(t, backend.Paint(frame, false))
	})

	t.Run("forced paint", func(t *testing.T) {
		frame := video.NewFrameBuffer()
		assert.True(t, backend.Paint(frame, true))
	})
}
