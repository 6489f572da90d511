package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

// execute runs a single instruction word without going through fetch.
func execute(t *testing.T, c *CPU, word uint16) {
	t.Helper()
	c.currentOpcode = word
	c.instructionPC = c.pc
	c.pc += 2
	require.NoError(t, Decode(word)(c))
}

func TestOpcode_AddWithCarryExhaustive(t *testing.T) {
	c := New(Config{})

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			c.v[1], c.v[2] = uint8(a), uint8(b)
			execute(t, c, 0x8124)

			sum := a + b
			if c.v[1] != uint8(sum) || (c.v[0xF] == 1) != (sum > 0xFF) {
				t.Fatalf("8XY4 %d+%d: got V1=%d VF=%d", a, b, c.v[1], c.v[0xF])
			}
		}
	}
}

func TestOpcode_SubExhaustive(t *testing.T) {
	c := New(Config{})

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			c.v[1], c.v[2] = uint8(a), uint8(b)
			execute(t, c, 0x8125)

			if c.v[1] != uint8(a-b) || (c.v[0xF] == 1) != (a > b) {
				t.Fatalf("8XY5 %d-%d: got V1=%d VF=%d", a, b, c.v[1], c.v[0xF])
			}

			c.v[1], c.v[2] = uint8(a), uint8(b)
			execute(t, c, 0x8127)

			if c.v[1] != uint8(b-a) || (c.v[0xF] == 1) != (b > a) {
				t.Fatalf("8XY7 %d-%d: got V1=%d VF=%d", b, a, c.v[1], c.v[0xF])
			}
		}
	}
}

func TestOpcode_Logic(t *testing.T) {
	cases := []struct {
		name string
		word uint16
		want uint8
	}{
		{"LD", 0x8120, 0x0F},
		{"OR", 0x8121, 0x3F},
		{"AND", 0x8122, 0x0C},
		{"XOR", 0x8123, 0x33},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(Config{})
			c.v[1], c.v[2], c.v[0xF] = 0x3C, 0x0F, 0x7
			execute(t, c, tc.word)
			assert.Equal(t, tc.want, c.v[1])
			assert.Equal(t, uint8(0x7), c.v[0xF], "VF untouched")
		})
	}
}

func TestOpcode_Shifts(t *testing.T) {
	cases := []struct {
		name   string
		quirks Quirks
		word   uint16
		vx, vy uint8
		wantVX uint8
		wantVF uint8
	}{
		{"SHR reads VY", Quirks{}, 0x8126, 0x00, 0x05, 0x02, 1},
		{"SHR even VY", Quirks{}, 0x8126, 0xFF, 0x04, 0x02, 0},
		{"SHL reads VY", Quirks{}, 0x812E, 0x00, 0x81, 0x02, 1},
		{"SHL no carry", Quirks{}, 0x812E, 0xFF, 0x41, 0x82, 0},
		{"SHR in place", Quirks{ShiftUsesVX: true}, 0x8126, 0x05, 0xF0, 0x02, 1},
		{"SHL in place", Quirks{ShiftUsesVX: true}, 0x812E, 0x40, 0xFF, 0x80, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(Config{Quirks: tc.quirks})
			c.v[1], c.v[2] = tc.vx, tc.vy
			execute(t, c, tc.word)
			assert.Equal(t, tc.wantVX, c.v[1])
			assert.Equal(t, tc.wantVF, c.v[0xF])
		})
	}
}

func TestOpcode_FlagOrderWhenXIsF(t *testing.T) {
	// ADD writes the flag last, every other flag-setting op writes the result last
	cases := []struct {
		name   string
		word   uint16
		vf, vy uint8
		want   uint8
	}{
		{"ADD carry", 0x8F14, 0xFF, 0x02, 1},
		{"ADD no carry", 0x8F14, 0x01, 0x02, 0},
		{"SUB", 0x8F15, 0x05, 0x01, 0x00},
		{"SUB borrow", 0x8F15, 0x01, 0x05, 0xFB},
		{"SUBN", 0x8F17, 0x05, 0x01, 0x01},
		{"SUBN no borrow", 0x8F17, 0x01, 0x05, 0x04},
		{"SHR", 0x8F16, 0x00, 0x02, 0x01},
		{"SHL", 0x8F1E, 0x00, 0x40, 0x80},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(Config{})
			c.v[0xF], c.v[1] = tc.vf, tc.vy
			execute(t, c, tc.word)
			assert.Equal(t, tc.want, c.v[0xF])
		})
	}
}

func TestOpcode_FlagWrittenBeforeResultWhenYIsF(t *testing.T) {
	cases := []struct {
		name           string
		word           uint16
		vx, vf         uint8
		wantVX, wantVF uint8
	}{
		// the result reads VF after the flag was stored in it
		{"SUB", 0x81F5, 0x05, 0x03, 0x04, 1},
		{"SUBN", 0x81F7, 0x03, 0x05, 0xFE, 1},
		{"SHR", 0x81F6, 0x00, 0x03, 0x00, 1},
		{"SHL", 0x81FE, 0x00, 0x80, 0x02, 1},
		{"ADD", 0x81F4, 0xFF, 0x02, 0x01, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(Config{})
			c.v[1], c.v[0xF] = tc.vx, tc.vf
			execute(t, c, tc.word)
			assert.Equal(t, tc.wantVX, c.v[1])
			assert.Equal(t, tc.wantVF, c.v[0xF])
		})
	}
}

func TestOpcode_AddImmediateWrapsWithoutFlag(t *testing.T) {
	c := New(Config{})
	c.v[3], c.v[0xF] = 0xFE, 0x09
	execute(t, c, 0x7305)
	assert.Equal(t, uint8(0x03), c.v[3])
	assert.Equal(t, uint8(0x09), c.v[0xF])
}

func TestOpcode_Skips(t *testing.T) {
	cases := []struct {
		name   string
		word   uint16
		v1, v2 uint8
		skip   bool
	}{
		{"SE equal", 0x31AA, 0xAA, 0, true},
		{"SE differ", 0x31AA, 0xAB, 0, false},
		{"SNE equal", 0x41AA, 0xAA, 0, false},
		{"SNE differ", 0x41AA, 0xAB, 0, true},
		{"SE regs equal", 0x5120, 0x10, 0x10, true},
		{"SE regs differ", 0x5120, 0x10, 0x11, false},
		{"SNE regs equal", 0x9120, 0x10, 0x10, false},
		{"SNE regs differ", 0x9120, 0x10, 0x11, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(Config{})
			c.v[1], c.v[2] = tc.v1, tc.v2
			execute(t, c, tc.word)

			want := uint16(0x202)
			if tc.skip {
				want = 0x204
			}
			assert.Equal(t, want, c.pc)
		})
	}
}

func TestOpcode_KeySkips(t *testing.T) {
	c := New(Config{})
	c.v[4] = 0x17 // only the low nibble selects the key

	execute(t, c, 0xE49E)
	assert.Equal(t, uint16(0x202), c.pc, "SKP with key up")
	execute(t, c, 0xE4A1)
	assert.Equal(t, uint16(0x206), c.pc, "SKNP with key up")

	c.SetKey(0x7, true)
	execute(t, c, 0xE49E)
	assert.Equal(t, uint16(0x20A), c.pc, "SKP with key down")
	execute(t, c, 0xE4A1)
	assert.Equal(t, uint16(0x20C), c.pc, "SKNP with key down")
}

func TestOpcode_CallAndReturn(t *testing.T) {
	// 0x200: CALL 0x206
	// 0x202: LD V1, 0x22
	// 0x204: JP 0x204
	// 0x206: LD V0, 0x11
	// 0x208: RET
	c := newTestCPU(t, 0x2206, 0x6122, 0x1204, 0x6011, 0x00EE)

	require.NoError(t, c.Step())
	assert.Equal(t, uint16(0x206), c.GetPC())
	assert.Equal(t, 1, c.GetStackDepth())

	stepN(t, c, 2)
	assert.Equal(t, uint16(0x202), c.GetPC())
	assert.Equal(t, 0, c.GetStackDepth())
	assert.Equal(t, uint8(0x11), c.GetV(0))

	stepN(t, c, 2)
	assert.Equal(t, uint8(0x22), c.GetV(1))
	assert.Equal(t, uint16(0x204), c.GetPC())
}

func TestOpcode_Jumps(t *testing.T) {
	c := New(Config{})
	execute(t, c, 0x1ABC)
	assert.Equal(t, uint16(0xABC), c.pc)

	c.v[0] = 0x10
	execute(t, c, 0xB300)
	assert.Equal(t, uint16(0x310), c.pc)

	c.v[1] = 0x10
	execute(t, c, 0xB300)
	assert.Equal(t, uint16(0x310), c.pc, "offset always comes from V0")
}

func TestOpcode_IndexRegister(t *testing.T) {
	// LD I, 0x300; LD V3, 0x10; ADD I, V3
	c := newTestCPU(t, 0xA300, 0x6310, 0xF31E)
	stepN(t, c, 3)
	assert.Equal(t, uint16(0x310), c.GetI())
	assert.Equal(t, uint8(0x10), c.GetV(3))
}

func TestOpcode_Random(t *testing.T) {
	c := New(Config{Seed: 42})
	other := New(Config{Seed: 42})

	for range 100 {
		execute(t, c, 0xC50F)
		execute(t, other, 0xC50F)
		assert.Zero(t, c.v[5]&0xF0, "result is masked")
		assert.Equal(t, other.v[5], c.v[5], "same seed gives the same sequence")
	}

	execute(t, c, 0xC500)
	assert.Zero(t, c.v[5])
}

func TestOpcode_TimerTransfers(t *testing.T) {
	c := New(Config{})
	c.v[2] = 0x30

	execute(t, c, 0xF215)
	execute(t, c, 0xF218)
	assert.Equal(t, uint8(0x30), c.timers.Delay())
	assert.Equal(t, uint8(0x30), c.timers.Sound())

	c.TickTimers()
	execute(t, c, 0xF707)
	assert.Equal(t, uint8(0x2F), c.v[7])
}

func TestOpcode_GlyphAddress(t *testing.T) {
	c := New(Config{})

	c.v[1] = 0x0A
	execute(t, c, 0xF129)
	assert.Equal(t, memory.GlyphAddress(0xA), c.i)
	assert.Equal(t, uint16(50), c.i)

	c.v[1] = 0xF3
	execute(t, c, 0xF129)
	assert.Equal(t, uint16(15), c.i, "only the low nibble selects the glyph")
}

func TestOpcode_BCD(t *testing.T) {
	c := New(Config{})
	c.i = 0x300
	c.v[6] = 234
	execute(t, c, 0xF633)

	for i, want := range []byte{2, 3, 4} {
		got, err := c.mem.Read(0x300 + uint16(i))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, uint16(0x300), c.i, "I is not modified")
}

func TestOpcode_StoreAndLoadRegisters(t *testing.T) {
	c := New(Config{})
	c.i = 0x400
	for r := range c.v {
		c.v[r] = uint8(r + 1)
	}

	execute(t, c, 0xF355)
	for r := 0; r < 4; r++ {
		got, err := c.mem.Read(0x400 + uint16(r))
		require.NoError(t, err)
		assert.Equal(t, uint8(r+1), got)
	}
	next, err := c.mem.Read(0x404)
	require.NoError(t, err)
	assert.Zero(t, next, "only V0..VX are stored")
	assert.Equal(t, uint16(0x400), c.i)

	c.v = Registers{}
	execute(t, c, 0xF265)
	assert.Equal(t, uint8(1), c.v[0])
	assert.Equal(t, uint8(2), c.v[1])
	assert.Equal(t, uint8(3), c.v[2])
	assert.Zero(t, c.v[3], "only V0..VX are loaded")
}

func TestOpcode_ClearScreen(t *testing.T) {
	c := New(Config{})
	c.screen.SetPixel(10, 10, true)
	c.screen.ClearRedraw()

	execute(t, c, 0x00E0)
	assert.True(t, c.Display().NeedsRedraw())
	for _, on := range c.Display().ToSlice() {
		require.False(t, on)
	}
}

func TestOpcode_DrawTwiceErasesAndCollides(t *testing.T) {
	// LD I, glyph 0; DRW V0, V1, 5; DRW V0, V1, 5
	c := newTestCPU(t, 0xA000, 0xD015, 0xD015)

	stepN(t, c, 2)
	assert.Equal(t, uint8(0), c.GetV(0xF))
	assert.True(t, c.Display().GetPixel(0, 0))
	c.Display().ClearRedraw()

	require.NoError(t, c.Step())
	assert.Equal(t, uint8(1), c.GetV(0xF))
	assert.True(t, c.Display().NeedsRedraw())
	for _, on := range c.Display().ToSlice() {
		require.False(t, on)
	}
}

func TestOpcode_DrawWrapsOrigin(t *testing.T) {
	c := New(Config{})
	c.i = 0x300
	require.NoError(t, c.mem.Write(0x300, 0xFF))
	c.v[0], c.v[1] = video.FramebufferWidth+60, video.FramebufferHeight+31

	execute(t, c, 0xD011)
	assert.True(t, c.screen.GetPixel(60, 31))
	assert.True(t, c.screen.GetPixel(63, 31))
	assert.False(t, c.screen.GetPixel(0, 31), "pixels past the edge are clipped")
}

func TestOpcode_ClearThenLoopRedrawsOnce(t *testing.T) {
	// CLS; JP 0x202
	c := newTestCPU(t, 0x00E0, 0x1202)

	require.NoError(t, c.Step())
	assert.True(t, c.Display().NeedsRedraw())
	c.Display().ClearRedraw()

	stepN(t, c, 50)
	assert.False(t, c.Display().NeedsRedraw())
	assert.Equal(t, uint16(0x202), c.GetPC())
}
