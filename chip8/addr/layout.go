package addr

// memory map
const (
	// MemorySize is the size of the whole addressable space (0x000-0xFFF).
	MemorySize = 0x1000
	// FontStart is where the built-in hexadecimal glyphs are copied on reset.
	FontStart uint16 = 0x000
	// FontEnd is the first address past the glyph table.
	FontEnd uint16 = 0x050
	// ProgramStart is the load address of every program, and the initial PC.
	ProgramStart uint16 = 0x200
	// MaxProgramSize is the largest program image that fits above ProgramStart.
	MaxProgramSize = MemorySize - int(ProgramStart)
	// LastInstruction is the highest address an instruction word can start at.
	LastInstruction uint16 = MemorySize - 2
)

// GlyphSize is the number of bytes (rows) of a single font glyph.
const GlyphSize = 5

// StackDepth is the maximum number of nested subroutine calls.
const StackDepth = 16
