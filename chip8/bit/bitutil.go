package bit

// Combine combines two 8 bit values into a single 16 bit value.
// The high byte will be the most significant one.
func Combine(high, low uint8) uint16 {
	return (uint16(high) << 8) | uint16(low)
}

// CheckedAdd adds two 8 bit unsigned values and detects if the raw sum exceeded 255.
func CheckedAdd(a, b uint8) (result uint8, carry bool) {
	sum := uint16(a) + uint16(b)
	return uint8(sum), sum > 0xFF
}

// CheckedSub subtracts b from a with wrap-around and reports whether a > b.
// The second value is the CHIP-8 "no borrow" flag, which is 0 when a == b.
func CheckedSub(a, b uint8) (result uint8, noBorrow bool) {
	return a - b, a > b
}

// IsSet will check if the bit at the specified index is set to 1 or not.
func IsSet(index, byte uint8) bool {
	return ((byte >> index) & 1) == 1
}

// Low returns the low (LSB) part of a 16 bit number.
func Low(value uint16) uint8 {
	return uint8(value)
}

// High returns the high (MSB) part of a 16 bit number.
func High(value uint16) uint8 {
	return uint8(value >> 8)
}

// Nibble returns the 4 bit field at position n of an instruction word,
// counting from the most significant nibble (0) to the least significant (3).
func Nibble(word uint16, n uint) uint8 {
	return uint8(word>>((3-n)*4)) & 0x0F
}

// Address returns the low 12 bits of an instruction word.
func Address(word uint16) uint16 {
	return word & 0x0FFF
}

// BCD splits a byte into its hundreds, tens and units digits.
func BCD(value uint8) (hundreds, tens, units uint8) {
	return value / 100, (value / 10) % 10, value % 10
}
