package cpu68k

// execGroup8 covers the 1000 nibble: OR Dn,<ea>/<ea>,Dn, DIVU/DIVS,
// and SBCD.
func (c *CPU) execGroup8(op uint16) {
	dreg := regOf(op, 9)
	opmode := (op >> 6) & 7
	mode, reg := uint8(op>>3)&7, regOf(op, 0)

	if opmode == 3 {
		c.execDivu(op, dreg, mode, reg)
		return
	}
	if opmode == 7 {
		c.execDivs(op, dreg, mode, reg)
		return
	}
	if opmode == 4 && mode == 0 {
		c.execSbcd(reg, dreg, false)
		return
	}
	if opmode == 4 && mode == 1 {
		c.execSbcd(reg, dreg, true)
		return
	}

	sz := sizeOf(opmode & 3)
	toEA := opmode&4 != 0
	e := c.resolveEA(mode, reg, sz)
	if toEA {
		v := c.read(e, sz)
		r := v | (c.D[dreg] & sz.Mask())
		c.write(e, sz, r)
		c.setFlagsLogical(r, sz)
		return
	}
	v := c.read(e, sz)
	r := (c.D[dreg] & sz.Mask()) | v
	c.D[dreg] = c.D[dreg]&^sz.Mask() | r&sz.Mask()
	c.setFlagsLogical(r, sz)
}

// execDivu implements DIVU.w <ea>,Dn: a 32-bit dividend by a 16-bit
// divisor producing a 16-bit quotient in the low word and the
// remainder in the high word. Division by zero raises vector 5
// without modifying Dn.
func (c *CPU) execDivu(op uint16, dreg uint8, mode, reg uint8) {
	e := c.resolveEA(mode, reg, Word)
	divisor := c.read(e, Word) & 0xFFFF
	if divisor == 0 {
		c.exception(vecDivideByZero)
		return
	}
	dividend := c.D[dreg]
	quotient := dividend / divisor
	remainder := dividend % divisor

	c.SR &^= FlagN | FlagZ | FlagV | FlagC
	if quotient > 0xFFFF {
		c.SR |= FlagV
		return
	}
	c.D[dreg] = remainder<<16 | quotient&0xFFFF
	if quotient == 0 {
		c.SR |= FlagZ
	}
	if quotient&0x8000 != 0 {
		c.SR |= FlagN
	}
}

// execDivs implements DIVS.w <ea>,Dn with signed 32/16->16r:16q
// division and the same zero-divide fault as DIVU.
func (c *CPU) execDivs(op uint16, dreg uint8, mode, reg uint8) {
	e := c.resolveEA(mode, reg, Word)
	divisor := int32(int16(c.read(e, Word)))
	if divisor == 0 {
		c.exception(vecDivideByZero)
		return
	}
	dividend := int32(c.D[dreg])
	quotient := dividend / divisor
	remainder := dividend % divisor

	c.SR &^= FlagN | FlagZ | FlagV | FlagC
	if quotient > 32767 || quotient < -32768 {
		c.SR |= FlagV
		return
	}
	c.D[dreg] = uint32(remainder)<<16 | uint32(quotient)&0xFFFF
	if quotient == 0 {
		c.SR |= FlagZ
	}
	if quotient < 0 {
		c.SR |= FlagN
	}
}

func (c *CPU) execSbcd(srcReg, dstReg uint8, memory bool) {
	x := uint32(0)
	if c.SR&FlagX != 0 {
		x = 1
	}
	var src, dst uint32
	var e, d ea
	if memory {
		e = c.resolveEA(4, srcReg, Byte)
		d = c.resolveEA(4, dstReg, Byte)
		src, dst = c.read(e, Byte), c.read(d, Byte)
	} else {
		src, dst = c.D[srcReg]&0xFF, c.D[dstReg]&0xFF
	}

	r, borrow := bcdSub(dst, src, x)
	c.SR &^= FlagN | FlagC | FlagX
	if borrow {
		c.SR |= FlagC | FlagX
	}
	if r != 0 {
		c.SR &^= FlagZ
	}

	if memory {
		c.write(d, Byte, r)
	} else {
		c.D[dstReg] = c.D[dstReg]&0xFFFFFF00 | r
	}
}

func bcdSub(dst, src, x uint32) (uint32, bool) {
	lo := int32(dst&0xF) - int32(src&0xF) - int32(x)
	var loBorrow uint32
	if lo < 0 {
		lo += 10
		loBorrow = 1
	}
	hi := int32(dst>>4&0xF) - int32(src>>4&0xF) - int32(loBorrow)
	borrow := false
	if hi < 0 {
		hi += 10
		borrow = true
	}
	return uint32(hi)<<4 | uint32(lo), borrow
}

func bcdAdd(dst, src, x uint32) (uint32, bool) {
	lo := dst&0xF + src&0xF + x
	var carry uint32
	if lo > 9 {
		lo -= 10
		carry = 1
	}
	hi := dst>>4&0xF + src>>4&0xF + carry
	c2 := false
	if hi > 9 {
		hi -= 10
		c2 = true
	}
	return hi<<4 | lo, c2
}

func (c *CPU) execAbcd(srcReg, dstReg uint8, memory bool) {
	x := uint32(0)
	if c.SR&FlagX != 0 {
		x = 1
	}
	var src, dst uint32
	var e, d ea
	if memory {
		e = c.resolveEA(4, srcReg, Byte)
		d = c.resolveEA(4, dstReg, Byte)
		src, dst = c.read(e, Byte), c.read(d, Byte)
	} else {
		src, dst = c.D[srcReg]&0xFF, c.D[dstReg]&0xFF
	}

	r, carry := bcdAdd(dst, src, x)
	c.SR &^= FlagN | FlagC | FlagX
	if carry {
		c.SR |= FlagC | FlagX
	}
	if r != 0 {
		c.SR &^= FlagZ
	}

	if memory {
		c.write(d, Byte, r)
	} else {
		c.D[dstReg] = c.D[dstReg]&0xFFFFFF00 | r
	}
}

// execGroup9D handles ADD/ADDA/ADDX (nibble 1101) and SUB/SUBA/SUBX
// (nibble 1001), which share identical bitfield layouts differing
// only in the operation performed.
func (c *CPU) execGroup9D(op uint16, isAdd bool) {
	dreg := regOf(op, 9)
	opmode := (op >> 6) & 7
	mode, reg := uint8(op>>3)&7, regOf(op, 0)

	if opmode == 3 || opmode == 7 {
		sz := Word
		if opmode == 7 {
			sz = Long
		}
		e := c.resolveEA(mode, reg, sz)
		v := signExtend(c.read(e, sz), sz)
		if isAdd {
			c.A[dreg] += v
		} else {
			c.A[dreg] -= v
		}
		return
	}

	sz := sizeOf(opmode & 3)
	toEA := opmode&4 != 0

	if toEA && (mode == 0 || mode == 1) {
		c.execAddxSubx(dreg, reg, sz, isAdd, mode == 1)
		return
	}

	if toEA {
		e := c.resolveEA(mode, reg, sz)
		v := c.read(e, sz)
		d := c.D[dreg] & sz.Mask()
		if isAdd {
			r := v + d
			c.write(e, sz, r)
			c.setFlagsAdd(d, v, r, sz)
		} else {
			r := v - d
			c.write(e, sz, r)
			c.setFlagsSub(d, v, r, sz)
		}
		return
	}

	e := c.resolveEA(mode, reg, sz)
	v := c.read(e, sz)
	d := c.D[dreg] & sz.Mask()
	if isAdd {
		r := d + v
		c.D[dreg] = c.D[dreg]&^sz.Mask() | r&sz.Mask()
		c.setFlagsAdd(v, d, r, sz)
	} else {
		r := d - v
		c.D[dreg] = c.D[dreg]&^sz.Mask() | r&sz.Mask()
		c.setFlagsSub(v, d, r, sz)
	}
}

func (c *CPU) execAddxSubx(dstReg, srcReg uint8, sz Size, isAdd, memory bool) {
	x := uint32(0)
	if c.SR&FlagX != 0 {
		x = 1
	}
	var src, dst uint32
	var e, d ea
	if memory {
		e = c.resolveEA(4, srcReg, sz)
		d = c.resolveEA(4, dstReg, sz)
		src, dst = c.read(e, sz), c.read(d, sz)
	} else {
		src, dst = c.D[srcReg]&sz.Mask(), c.D[dstReg]&sz.Mask()
	}

	var r uint32
	if isAdd {
		r = dst + src + x
		c.setFlagsAddX(src, dst, r, sz)
	} else {
		r = dst - src - x
		c.setFlagsSubX(src, dst, r, sz)
	}

	if memory {
		c.write(d, sz, r)
	} else {
		c.D[dstReg] = c.D[dstReg]&^sz.Mask() | r&sz.Mask()
	}
}
