package cpu68k

// execGroupB covers the 1011 nibble: CMP/CMPA, EOR, and CMPM.
func (c *CPU) execGroupB(op uint16) {
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
		a := c.A[dreg]
		r := a - v
		c.setFlagsCmp(v, a, r, sz)
		return
	}

	sz := sizeOf(opmode & 3)

	if opmode >= 4 && mode == 1 {
		e := c.resolveEA(3, reg, sz)
		d := c.resolveEA(3, dreg, sz)
		v := c.read(e, sz)
		dst := c.read(d, sz)
		r := dst - v
		c.setFlagsCmp(v, dst, r, sz)
		return
	}

	if opmode >= 4 {
		e := c.resolveEA(mode, reg, sz)
		v := c.read(e, sz)
		r := v ^ (c.D[dreg] & sz.Mask())
		c.write(e, sz, r)
		c.setFlagsLogical(r, sz)
		return
	}

	e := c.resolveEA(mode, reg, sz)
	v := c.read(e, sz)
	d := c.D[dreg] & sz.Mask()
	r := d - v
	c.setFlagsCmp(v, d, r, sz)
}

// execGroupC covers the 1100 nibble: AND, MULU/MULS, ABCD, and EXG.
func (c *CPU) execGroupC(op uint16) {
	dreg := regOf(op, 9)
	opmode := (op >> 6) & 7
	mode, reg := uint8(op>>3)&7, regOf(op, 0)

	if opmode == 3 {
		e := c.resolveEA(mode, reg, Word)
		v := c.read(e, Word) & 0xFFFF
		r := v * (c.D[dreg] & 0xFFFF)
		c.D[dreg] = r
		c.setFlagsLogical(r, Long)
		return
	}
	if opmode == 7 {
		e := c.resolveEA(mode, reg, Word)
		v := int32(int16(c.read(e, Word)))
		r := v * int32(int16(c.D[dreg]))
		c.D[dreg] = uint32(r)
		c.setFlagsLogical(uint32(r), Long)
		return
	}
	if opmode == 4 && mode == 0 {
		c.execAbcd(reg, dreg, false)
		return
	}
	if opmode == 4 && mode == 1 {
		c.execAbcd(reg, dreg, true)
		return
	}
	if op&0xF130 == 0xC100 {
		c.execExg(op)
		return
	}

	sz := sizeOf(opmode & 3)
	toEA := opmode&4 != 0
	e := c.resolveEA(mode, reg, sz)
	if toEA {
		v := c.read(e, sz)
		r := v & (c.D[dreg] & sz.Mask())
		c.write(e, sz, r)
		c.setFlagsLogical(r, sz)
		return
	}
	v := c.read(e, sz)
	r := (c.D[dreg] & sz.Mask()) & v
	c.D[dreg] = c.D[dreg]&^sz.Mask() | r&sz.Mask()
	c.setFlagsLogical(r, sz)
}

func (c *CPU) execExg(op uint16) {
	rx, ry := regOf(op, 9), regOf(op, 0)
	mode := (op >> 3) & 0x1F
	switch mode {
	case 0x08:
		c.D[rx], c.D[ry] = c.D[ry], c.D[rx]
	case 0x09:
		c.A[rx], c.A[ry] = c.A[ry], c.A[rx]
	default:
		c.D[rx], c.A[ry] = c.A[ry], c.D[rx]
	}
}
