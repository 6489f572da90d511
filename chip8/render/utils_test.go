package render

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHalfBlockChar(t *testing.T) {
	tests := []struct {
		top, bottom bool
		want        rune
	}{
		{true, true, FullBlock},
		{true, false, UpperHalfBlock},
		{false, true, LowerHalfBlock},
		{false, false, Blank},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HalfBlockChar(tt.top, tt.bottom))
	}
}

func TestRenderFrameToHalfBlocks(t *testing.T) {
	// 3x3 frame:
	// X . X
	// X X .
	// . . X
	frame := []bool{
		true, false, true,
		true, true, false,
		false, false, true,
	}

	lines := RenderFrameToHalfBlocks(frame, 3, 3)
	require.Len(t, lines, 2)
	assert.Equal(t, "█▄▀", lines[0])
	assert.Equal(t, "  ▀", lines[1])
	assert.Equal(t, 3, utf8.RuneCountInString(lines[0]))
}

func TestRenderFrameToHalfBlocks_ShortFrame(t *testing.T) {
	assert.Empty(t, RenderFrameToHalfBlocks(make([]bool, 5), 3, 3))
	assert.Empty(t, RenderFrameToHalfBlocks(nil, 0, 0))
}
