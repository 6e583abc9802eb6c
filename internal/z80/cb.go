package z80

// decodeCB dispatches the CB-prefixed opcode space: rotate/shift (x=0),
// BIT (x=1), RES (x=2), SET (x=3), each over one of B,C,D,E,H,L,(HL),A.
func (c *CPU) decodeCB(op uint8) int {
	x, y, z, _, _ := decodeXYZ(op)
	idx := &indexState{}
	v := c.reg8(idx, z)

	switch x {
	case 0:
		res := c.rotOp(y, v)
		c.setReg8(idx, z, res)
		if z == 6 {
			return 15
		}
		return 8
	case 1:
		c.bitTest(y, v, z == 6)
		if z == 6 {
			return 12
		}
		return 8
	case 2:
		res := v &^ (1 << y)
		c.setReg8(idx, z, res)
		if z == 6 {
			return 15
		}
		return 8
	default:
		res := v | 1<<y
		c.setReg8(idx, z, res)
		if z == 6 {
			return 15
		}
		return 8
	}
}

// decodeIndexedCB dispatches DD CB d / FD CB d: the operand is always
// (IX+d)/(IY+d); for x=0,2,3 (rotate/RES/SET) the result is additionally
// copied into the z-selected register when z != 6, an undocumented
// "copy" side effect relied upon by some software.
func (c *CPU) decodeIndexedCB(op uint8, addr uint16) int {
	x, y, z, _, _ := decodeXYZ(op)
	v := c.Bus.Read(addr)

	switch x {
	case 0:
		res := c.rotOp(y, v)
		c.Bus.Write(addr, res)
		c.copyIndexedCB(z, res)
		return 23
	case 1:
		c.bitTest(y, v, true)
		return 20
	case 2:
		res := v &^ (1 << y)
		c.Bus.Write(addr, res)
		c.copyIndexedCB(z, res)
		return 23
	default:
		res := v | 1<<y
		c.Bus.Write(addr, res)
		c.copyIndexedCB(z, res)
		return 23
	}
}

func (c *CPU) copyIndexedCB(z uint8, v uint8) {
	switch z {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 7:
		c.A = v
	}
}
