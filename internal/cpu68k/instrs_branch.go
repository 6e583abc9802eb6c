package cpu68k

// execGroup5 covers the 0101 nibble: ADDQ/SUBQ #imm,<ea>, Scc <ea>,
// and DBcc Dn,disp — the latter two sharing the encoding space via
// the mode/reg field being 001 (an address register) with size field
// 11 for DBcc.
func (c *CPU) execGroup5(op uint16) {
	mode, reg := uint8(op>>3)&7, regOf(op, 0)

	if mode == 1 && op&0xC0 == 0xC0 {
		cc := (op >> 8) & 0xF
		disp := signExtend(uint32(c.fetchPC()), Word)
		pc := c.PC
		if !c.testCondition(cc) {
			c.D[reg]--
			if int16(c.D[reg]&0xFFFF) != -1 {
				c.PC = pc + disp - 2
			}
		}
		return
	}

	sz := sizeOf((op >> 6) & 3)

	if op&0xC0 == 0xC0 {
		cc := (op >> 8) & 0xF
		e := c.resolveEA(mode, reg, Byte)
		if c.testCondition(cc) {
			c.write(e, Byte, 0xFF)
		} else {
			c.write(e, Byte, 0x00)
		}
		return
	}

	imm := uint32((op >> 9) & 7)
	if imm == 0 {
		imm = 8
	}
	e := c.resolveEA(mode, reg, sz)
	v := c.read(e, sz)
	if op&0x0100 != 0 {
		r := v - imm
		c.write(e, sz, r)
		if mode != 1 {
			c.setFlagsSub(imm, v, r, sz)
		}
	} else {
		r := v + imm
		c.write(e, sz, r)
		if mode != 1 {
			c.setFlagsAdd(imm, v, r, sz)
		}
	}
}

// execBranch covers the 0110 nibble: BRA/BSR/Bcc, with the classic
// 8-bit displacement extended to a 16-bit extension word when the
// low byte of the opcode is zero.
func (c *CPU) execBranch(op uint16) {
	cc := (op >> 8) & 0xF
	base := c.PC
	disp := int32(int8(op & 0xFF))
	if disp == 0 {
		disp = int32(int16(c.fetchPC()))
	}

	switch cc {
	case 1: // BSR
		c.pushLong(c.PC)
		c.PC = uint32(int32(base) + disp)
	case 0: // BRA
		c.PC = uint32(int32(base) + disp)
	default:
		if c.testCondition(cc) {
			c.PC = uint32(int32(base) + disp)
		}
	}
}
