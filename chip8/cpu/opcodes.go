package cpu

import (
	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/memory"
)

// 00E0 CLS, 00EE RET
func opcode0x0(cpu *CPU) error {
	switch cpu.currentOpcode {
	case 0x00E0:
		cpu.screen.Clear()
		return nil
	case 0x00EE:
		ret, ok := cpu.stack.pop()
		if !ok {
			return cpu.halt(FaultStackUnderflow, nil)
		}
		cpu.pc = ret
		return nil
	default:
		// 0NNN machine code routines are not supported
		return cpu.unknown()
	}
}

// JP nnn
// #1NNN
func opcode0x1(cpu *CPU) error {
	cpu.pc = cpu.nnn()
	return nil
}

// CALL nnn
// #2NNN
func opcode0x2(cpu *CPU) error {
	if !cpu.stack.push(cpu.pc) {
		return cpu.halt(FaultStackOverflow, nil)
	}
	cpu.pc = cpu.nnn()
	return nil
}

// SE Vx, nn
// #3XNN
func opcode0x3(cpu *CPU) error {
	cpu.skipIf(cpu.v[cpu.x()] == cpu.nn())
	return nil
}

// SNE Vx, nn
// #4XNN
func opcode0x4(cpu *CPU) error {
	cpu.skipIf(cpu.v[cpu.x()] != cpu.nn())
	return nil
}

// SE Vx, Vy
// #5XY0
func opcode0x5(cpu *CPU) error {
	if cpu.n() != 0 {
		return cpu.unknown()
	}
	cpu.skipIf(cpu.v[cpu.x()] == cpu.v[cpu.y()])
	return nil
}

// LD Vx, nn
// #6XNN
func opcode0x6(cpu *CPU) error {
	cpu.v[cpu.x()] = cpu.nn()
	return nil
}

// ADD Vx, nn (VF untouched)
// #7XNN
func opcode0x7(cpu *CPU) error {
	cpu.v[cpu.x()] += cpu.nn()
	return nil
}

// register to register arithmetic
// #8XYN
func opcode0x8(cpu *CPU) error {
	x, y := cpu.x(), cpu.y()
	vx, vy := cpu.v[x], cpu.v[y]

	// ADD writes VF after the result, the others write it before. The
	// result is computed from the registers after the flag write, so when X
	// or Y is F the order is observable.
	switch cpu.n() {
	case 0x0: // LD Vx, Vy
		cpu.v[x] = vy
	case 0x1: // OR Vx, Vy
		cpu.v[x] = vx | vy
	case 0x2: // AND Vx, Vy
		cpu.v[x] = vx & vy
	case 0x3: // XOR Vx, Vy
		cpu.v[x] = vx ^ vy
	case 0x4: // ADD Vx, Vy
		sum, carry := bit.CheckedAdd(vx, vy)
		cpu.v[x] = sum
		cpu.v.setFlag(carry)
	case 0x5: // SUB Vx, Vy
		cpu.v.setFlag(vx > vy)
		cpu.v[x], _ = bit.CheckedSub(cpu.v[x], cpu.v[y])
	case 0x6: // SHR Vx, Vy
		cpu.v.setFlag(bit.IsSet(0, cpu.shiftSource(vx, vy)))
		cpu.v[x] = cpu.shiftSource(cpu.v[x], cpu.v[y]) >> 1
	case 0x7: // SUBN Vx, Vy
		cpu.v.setFlag(vy > vx)
		cpu.v[x], _ = bit.CheckedSub(cpu.v[y], cpu.v[x])
	case 0xE: // SHL Vx, Vy
		cpu.v.setFlag(bit.IsSet(7, cpu.shiftSource(vx, vy)))
		cpu.v[x] = cpu.shiftSource(cpu.v[x], cpu.v[y]) << 1
	default:
		return cpu.unknown()
	}

	return nil
}

// SNE Vx, Vy
// #9XY0
func opcode0x9(cpu *CPU) error {
	if cpu.n() != 0 {
		return cpu.unknown()
	}
	cpu.skipIf(cpu.v[cpu.x()] != cpu.v[cpu.y()])
	return nil
}

// LD I, nnn
// #ANNN
func opcode0xA(cpu *CPU) error {
	cpu.i = cpu.nnn()
	return nil
}

// JP V0, nnn
// #BNNN
func opcode0xB(cpu *CPU) error {
	cpu.pc = cpu.nnn() + uint16(cpu.v[0])
	return nil
}

// RND Vx, nn
// #CXNN
func opcode0xC(cpu *CPU) error {
	cpu.v[cpu.x()] = uint8(cpu.rng.UintN(256)) & cpu.nn()
	return nil
}

// DRW Vx, Vy, n
// #DXYN
func opcode0xD(cpu *CPU) error {
	sprite, err := cpu.mem.Slice(cpu.i, int(cpu.n()))
	if err != nil {
		return cpu.halt(FaultMemoryOutOfRange, err)
	}

	collision := cpu.screen.DrawSprite(sprite, cpu.v[cpu.x()], cpu.v[cpu.y()])
	cpu.v.setFlag(collision)
	return nil
}

// SKP Vx, SKNP Vx
// #EX9E, #EXA1
func opcode0xE(cpu *CPU) error {
	key := memory.Key(cpu.v[cpu.x()])

	switch cpu.nn() {
	case 0x9E:
		cpu.skipIf(cpu.keypad.IsPressed(key))
	case 0xA1:
		cpu.skipIf(!cpu.keypad.IsPressed(key))
	default:
		return cpu.unknown()
	}
	return nil
}

// timers, keypad wait, index register and memory transfers
// #FXNN
func opcode0xF(cpu *CPU) error {
	x := cpu.x()

	switch cpu.nn() {
	case 0x07: // LD Vx, DT
		cpu.v[x] = cpu.timers.Delay()
	case 0x0A: // LD Vx, K
		cpu.waitForKey(x)
	case 0x15: // LD DT, Vx
		cpu.timers.SetDelay(cpu.v[x])
	case 0x18: // LD ST, Vx
		cpu.timers.SetSound(cpu.v[x])
	case 0x1E: // ADD I, Vx
		cpu.i += uint16(cpu.v[x])
	case 0x29: // LD F, Vx
		cpu.i = memory.GlyphAddress(cpu.v[x])
	case 0x33: // LD B, Vx
		digits, err := cpu.mem.Slice(cpu.i, 3)
		if err != nil {
			return cpu.halt(FaultMemoryOutOfRange, err)
		}
		digits[0], digits[1], digits[2] = bit.BCD(cpu.v[x])
	case 0x55: // LD [I], Vx
		dst, err := cpu.mem.Slice(cpu.i, int(x)+1)
		if err != nil {
			return cpu.halt(FaultMemoryOutOfRange, err)
		}
		copy(dst, cpu.v[:x+1])
	case 0x65: // LD Vx, [I]
		src, err := cpu.mem.Slice(cpu.i, int(x)+1)
		if err != nil {
			return cpu.halt(FaultMemoryOutOfRange, err)
		}
		copy(cpu.v[:x+1], src)
	default:
		return cpu.unknown()
	}
	return nil
}

func (c *CPU) skipIf(condition bool) {
	if condition {
		c.pc += 2
	}
}

func (c *CPU) shiftSource(vx, vy uint8) uint8 {
	if c.config.Quirks.ShiftUsesVX {
		return vx
	}
	return vy
}

// waitForKey completes immediately if a key is already down, otherwise the
// CPU parks in AwaitingKey until Step observes a pressed line.
func (c *CPU) waitForKey(register uint8) {
	if key, ok := c.keypad.FirstPressed(); ok {
		c.v[register] = uint8(key)
		return
	}
	c.state = AwaitingKey
	c.waitRegister = register
}
