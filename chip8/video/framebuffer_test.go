package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func countLit(fb *FrameBuffer) int {
	lit := 0
	for _, on := range fb.ToSlice() {
		if on {
			lit++
		}
	}
	return lit
}

func TestFrameBuffer_ClearRaisesRedraw(t *testing.T) {
	fb := NewFrameBuffer()
	fb.SetPixel(3, 4, true)
	fb.ClearRedraw()

	fb.Clear()

	assert.True(t, fb.NeedsRedraw())
	assert.Equal(t, 0, countLit(fb))

	fb.ClearRedraw()
	assert.False(t, fb.NeedsRedraw())
}

func TestFrameBuffer_DrawSprite(t *testing.T) {
	testCases := []struct {
		desc      string
		sprite    []byte
		x, y      uint8
		wantLit   [][2]uint
		wantCount int
	}{
		{
			desc:      "single pixel at origin",
			sprite:    []byte{0x80},
			wantLit:   [][2]uint{{0, 0}},
			wantCount: 1,
		},
		{
			desc:      "full row",
			sprite:    []byte{0xFF},
			x:         10,
			y:         5,
			wantLit:   [][2]uint{{10, 5}, {17, 5}},
			wantCount: 8,
		},
		{
			desc:      "origin wraps",
			sprite:    []byte{0x80},
			x:         64 + 2,
			y:         32 + 3,
			wantLit:   [][2]uint{{2, 3}},
			wantCount: 1,
		},
		{
			desc:      "right edge clips",
			sprite:    []byte{0xFF},
			x:         60,
			wantLit:   [][2]uint{{60, 0}, {63, 0}},
			wantCount: 4,
		},
		{
			desc:      "bottom edge clips",
			sprite:    []byte{0x80, 0x80, 0x80, 0x80},
			y:         30,
			wantLit:   [][2]uint{{0, 30}, {0, 31}},
			wantCount: 2,
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			fb := NewFrameBuffer()

			collision := fb.DrawSprite(tC.sprite, tC.x, tC.y)

			assert.False(t, collision)
			assert.True(t, fb.NeedsRedraw())
			assert.Equal(t, tC.wantCount, countLit(fb))
			for _, p := range tC.wantLit {
				assert.True(t, fb.GetPixel(p[0], p[1]), "pixel (%d,%d)", p[0], p[1])
			}
		})
	}
}

func TestFrameBuffer_DrawTwiceRestoresAndCollides(t *testing.T) {
	fb := NewFrameBuffer()
	fb.SetPixel(40, 20, true)
	before := *fb

	sprite := []byte{0xF0, 0x90, 0xF0}
	assert.False(t, fb.DrawSprite(sprite, 38, 19))
	assert.True(t, fb.DrawSprite(sprite, 38, 19))

	assert.Equal(t, before.ToSlice(), fb.ToSlice())
}

func TestFrameBuffer_CollisionOnlyWhenPixelTurnsOff(t *testing.T) {
	fb := NewFrameBuffer()
	fb.DrawSprite([]byte{0x0F}, 0, 0)

	// 0xF0 only touches unlit pixels
	assert.False(t, fb.DrawSprite([]byte{0xF0}, 0, 0))
	// 0x01 turns off (7,0)
	assert.True(t, fb.DrawSprite([]byte{0x01}, 0, 0))
	assert.False(t, fb.GetPixel(7, 0))
}

func TestFrameBuffer_EmptySpriteStillRequestsRedraw(t *testing.T) {
	fb := NewFrameBuffer()
	assert.False(t, fb.DrawSprite(nil, 0, 0))
	assert.True(t, fb.NeedsRedraw())
}

func TestColorOf(t *testing.T) {
	assert.Equal(t, OnColor, ColorOf(true))
	assert.Equal(t, OffColor, ColorOf(false))
}
