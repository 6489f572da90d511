package render

import "strings"

// Characters used to pack two display rows into one text row
const (
	FullBlock      = '█'
	UpperHalfBlock = '▀'
	LowerHalfBlock = '▄'
	Blank          = ' '
)

// HalfBlockChar returns the character showing a lit/unlit top and bottom pixel pair.
func HalfBlockChar(top, bottom bool) rune {
	switch {
	case top && bottom:
		return FullBlock
	case top:
		return UpperHalfBlock
	case bottom:
		return LowerHalfBlock
	default:
		return Blank
	}
}

// RenderFrameToHalfBlocks converts a row-major frame to half-block text, one
// string per pair of pixel rows. A missing last row counts as unlit.
func RenderFrameToHalfBlocks(frame []bool, width, height int) []string {
	if width <= 0 || height <= 0 || len(frame) < width*height {
		return []string{}
	}

	textHeight := (height + 1) / 2
	lines := make([]string, textHeight)

	var sb strings.Builder
	for textRow := 0; textRow < textHeight; textRow++ {
		sb.Reset()
		top := textRow * 2
		bottom := top + 1

		for x := 0; x < width; x++ {
			b := bottom < height && frame[bottom*width+x]
			sb.WriteRune(HalfBlockChar(frame[top*width+x], b))
		}
		lines[textRow] = sb.String()
	}

	return lines
}
