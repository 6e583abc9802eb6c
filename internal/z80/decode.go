package z80

// decode.go implements the Z80's base/CB/ED opcode spaces via the
// well-documented x/y/z/p/q bitfield decomposition of the opcode byte
// (bits 7-6 = x, 5-3 = y, 2-0 = z; p = y>>1, q = y&1). This keeps the
// full documented-plus-undocumented instruction set auditable as a
// handful of exhaustive switches rather than a 64K-entry table, matching
// a tractable size for the Z80's much denser encoding than the 68000's.

func decodeXYZ(op uint8) (x, y, z, p, q uint8) {
	x = op >> 6
	y = (op >> 3) & 7
	z = op & 7
	p = y >> 1
	q = y & 1
	return
}

// reg8 reads one of the B,C,D,E,H,L,(HL),A operands selected by a 3-bit
// field, substituting (IX+d)/(IY+d) for (HL) when idx selects an index
// register (the only substitution DD/FD actually performs for plain
// 8-bit operands).
func (c *CPU) reg8(idx *indexState, sel uint8) uint8 {
	switch sel {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		if idx.reg != idxNone {
			return c.Bus.Read(c.dispAddr(idx))
		}
		return c.Bus.Read(c.HL())
	default:
		return c.A
	}
}

func (c *CPU) setReg8(idx *indexState, sel uint8, v uint8) {
	switch sel {
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
	case 6:
		if idx.reg != idxNone {
			c.Bus.Write(c.dispAddr(idx), v)
		} else {
			c.Bus.Write(c.HL(), v)
		}
	default:
		c.A = v
	}
}

func (c *CPU) reg16(p uint8, idx *indexState) uint16 {
	switch p {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.idxBase(idx)
	default:
		return c.SP
	}
}

func (c *CPU) setReg16(p uint8, idx *indexState, v uint16) {
	switch p {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.setIdxBase(idx, v)
	default:
		c.SP = v
	}
}

func (c *CPU) reg16Stk(p uint8, idx *indexState) uint16 {
	switch p {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.idxBase(idx)
	default:
		return c.AF()
	}
}

func (c *CPU) setReg16Stk(p uint8, idx *indexState, v uint16) {
	switch p {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.setIdxBase(idx, v)
	default:
		c.SetAF(v)
	}
}

func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !c.flag(FlagZ)
	case 1:
		return c.flag(FlagZ)
	case 2:
		return !c.flag(FlagC)
	case 3:
		return c.flag(FlagC)
	case 4:
		return !c.flag(FlagPV)
	case 5:
		return c.flag(FlagPV)
	case 6:
		return !c.flag(FlagS)
	default:
		return c.flag(FlagS)
	}
}

func (c *CPU) aluOp(sel uint8, v uint8) {
	switch sel {
	case 0:
		c.A = c.add8(c.A, v, false)
	case 1:
		c.A = c.add8(c.A, v, c.flag(FlagC))
	case 2:
		c.A = c.sub8(c.A, v, false)
	case 3:
		c.A = c.sub8(c.A, v, c.flag(FlagC))
	case 4:
		c.A = c.and8(c.A, v)
	case 5:
		c.A = c.xor8(c.A, v)
	case 6:
		c.A = c.or8(c.A, v)
	default:
		c.cp8(c.A, v)
	}
}

func (c *CPU) rotOp(sel uint8, v uint8) uint8 {
	switch sel {
	case 0:
		return c.rlc(v)
	case 1:
		return c.rrc(v)
	case 2:
		return c.rl(v)
	case 3:
		return c.rr(v)
	case 4:
		return c.sla(v)
	case 5:
		return c.sra(v)
	case 6:
		return c.sll(v)
	default:
		return c.srl(v)
	}
}

func (c *CPU) retInner() {
	c.PC = c.pop16()
	c.WZ = c.PC
}

// decodeBase dispatches one base-page (unprefixed) opcode.
func (c *CPU) decodeBase(op uint8, idx *indexState) int {
	x, y, z, p, q := decodeXYZ(op)

	switch x {
	case 0:
		switch z {
		case 0:
			return c.decodeBlockX0(y)
		case 1:
			if q == 0 {
				v := c.fetch16()
				c.setReg16(p, idx, v)
				return 10
			}
			hl := c.add16(c.idxBase(idx), c.reg16(p, idx))
			c.setIdxBase(idx, hl)
			return 11
		case 2:
			return c.decodeIndirectLoad(p, q, idx)
		case 3:
			if q == 0 {
				c.setReg16(p, idx, c.reg16(p, idx)+1)
			} else {
				c.setReg16(p, idx, c.reg16(p, idx)-1)
			}
			return 6
		case 4:
			v := c.reg8(idx, y)
			c.setReg8(idx, y, c.inc8(v))
			return incDecCycles(y, idx)
		case 5:
			v := c.reg8(idx, y)
			c.setReg8(idx, y, c.dec8(v))
			return incDecCycles(y, idx)
		case 6:
			n := c.fetch8()
			c.setReg8(idx, y, n)
			if y == 6 {
				if idx.reg != idxNone {
					return 19
				}
				return 10
			}
			return 7
		case 7:
			return c.decodeRotateA(y)
		}
	case 1:
		if y == 6 && z == 6 {
			c.Halted = true
			return 4
		}
		v := c.reg8(idx, z)
		c.setReg8(idx, y, v)
		if y == 6 || z == 6 {
			if idx.reg != idxNone {
				return 19
			}
			return 7
		}
		return 4
	case 2:
		v := c.reg8(idx, z)
		c.aluOp(y, v)
		if z == 6 {
			if idx.reg != idxNone {
				return 19
			}
			return 7
		}
		return 4
	case 3:
		switch z {
		case 0:
			if c.condition(y) {
				c.retInner()
				return 11
			}
			return 5
		case 1:
			if q == 0 {
				c.setReg16Stk(p, idx, c.pop16())
				return 10
			}
			return c.decodeX3Z1Q1(p, idx)
		case 2:
			addr := c.fetch16()
			c.WZ = addr
			if c.condition(y) {
				c.PC = addr
			}
			return 10
		case 3:
			return c.decodeX3Z3(y, idx)
		case 4:
			addr := c.fetch16()
			c.WZ = addr
			if c.condition(y) {
				c.push16(c.PC)
				c.PC = addr
			}
			return 17
		case 5:
			if q == 0 {
				c.push16(c.reg16Stk(p, idx))
				return 11
			}
			return c.decodeX3Z5Q1()
		case 6:
			n := c.fetch8()
			c.aluOp(y, n)
			return 7
		default:
			c.push16(c.PC)
			c.PC = uint16(y) * 8
			c.WZ = c.PC
			return 11
		}
	}
	return 4
}

func incDecCycles(y uint8, idx *indexState) int {
	if y == 6 {
		if idx.reg != idxNone {
			return 23
		}
		return 11
	}
	return 4
}

func (c *CPU) decodeBlockX0(y uint8) int {
	switch y {
	case 0:
		return 4 // NOP
	case 1:
		c.A, c.A2 = c.A2, c.A
		c.F, c.F2 = c.F2, c.F
		return 4
	case 2:
		n := int8(c.fetch8())
		c.B--
		if c.B != 0 {
			c.PC = uint16(int32(c.PC) + int32(n))
			c.WZ = c.PC
			return 13
		}
		return 8
	case 3:
		n := int8(c.fetch8())
		c.PC = uint16(int32(c.PC) + int32(n))
		c.WZ = c.PC
		return 12
	default:
		cc := y - 4
		n := int8(c.fetch8())
		if c.condition(cc) {
			c.PC = uint16(int32(c.PC) + int32(n))
			c.WZ = c.PC
			return 12
		}
		return 7
	}
}

func (c *CPU) decodeIndirectLoad(p, q uint8, idx *indexState) int {
	switch p {
	case 0:
		if q == 0 {
			c.Bus.Write(c.BC(), c.A)
			c.WZ = (c.BC()+1)&0xFF | uint16(c.A)<<8
		} else {
			c.A = c.Bus.Read(c.BC())
			c.WZ = c.BC() + 1
		}
		return 7
	case 1:
		if q == 0 {
			c.Bus.Write(c.DE(), c.A)
			c.WZ = (c.DE()+1)&0xFF | uint16(c.A)<<8
		} else {
			c.A = c.Bus.Read(c.DE())
			c.WZ = c.DE() + 1
		}
		return 7
	case 2:
		addr := c.fetch16()
		c.WZ = addr + 1
		if q == 0 {
			v := c.idxBase(idx)
			c.Bus.Write(addr, uint8(v))
			c.Bus.Write(addr+1, uint8(v>>8))
		} else {
			lo := uint16(c.Bus.Read(addr))
			hi := uint16(c.Bus.Read(addr + 1))
			c.setIdxBase(idx, hi<<8|lo)
		}
		if idx.reg != idxNone {
			return 20
		}
		return 16
	default:
		addr := c.fetch16()
		c.WZ = addr + 1
		if q == 0 {
			c.Bus.Write(addr, c.A)
		} else {
			c.A = c.Bus.Read(addr)
		}
		return 13
	}
}

// decodeRotateA implements RLCA/RRCA/RLA/RRA/DAA/CPL/SCF/CCF. The four
// accumulator-only rotates share their bit-shuffling with the
// CB-prefixed rotate helpers but, unlike them, leave S, Z, and P/V
// untouched — only C, H, N, and X/Y change.
func (c *CPU) decodeRotateA(y uint8) int {
	switch y {
	case 0, 1, 2, 3:
		szpv := c.F & (FlagS | FlagZ | FlagPV)
		switch y {
		case 0:
			c.A = c.rlc(c.A)
		case 1:
			c.A = c.rrc(c.A)
		case 2:
			c.A = c.rl(c.A)
		default:
			c.A = c.rr(c.A)
		}
		c.F = c.F&^(FlagS|FlagZ|FlagPV) | szpv
		return 4
	case 4:
		c.daa()
		return 4
	case 5:
		c.A = ^c.A
		c.setFlag(FlagN, true)
		c.setFlag(FlagH, true)
		c.setXY(c.A)
		return 4
	case 6:
		c.setFlag(FlagC, true)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
		c.setXY(c.A)
		return 4
	default:
		carry := c.flag(FlagC)
		c.setFlag(FlagH, carry)
		c.setFlag(FlagC, !carry)
		c.setFlag(FlagN, false)
		c.setXY(c.A)
		return 4
	}
}

// decodeX3Z1Q1 covers the x=3,z=1,q=1 opcode family: RET (p=0), EXX
// (p=1), JP (HL)/(IX)/(IY) (p=2), LD SP,HL/IX/IY (p=3).
func (c *CPU) decodeX3Z1Q1(p uint8, idx *indexState) int {
	switch p {
	case 0:
		c.retInner()
		return 10
	case 1:
		c.B, c.B2 = c.B2, c.B
		c.C, c.C2 = c.C2, c.C
		c.D, c.D2 = c.D2, c.D
		c.E, c.E2 = c.E2, c.E
		c.H, c.H2 = c.H2, c.H
		c.L, c.L2 = c.L2, c.L
		return 4
	case 2:
		c.PC = c.idxBase(idx)
		return 4
	default:
		c.SP = c.idxBase(idx)
		return 6
	}
}

func (c *CPU) decodeX3Z3(y uint8, idx *indexState) int {
	switch y {
	case 0:
		addr := c.fetch16()
		c.WZ = addr
		c.PC = addr
		return 10
	case 1:
		none := &indexState{}
		return c.execCB(none)
	case 2:
		port := uint16(c.fetch8())
		c.WZ = port + 1
		c.A = c.Bus.In(port)
		return 11
	case 3:
		port := uint16(c.fetch8())
		c.Bus.Out(port, c.A)
		c.WZ = port + 1
		return 11
	case 4:
		addr := c.idxBase(idx)
		lo := c.Bus.Read(c.SP)
		hi := c.Bus.Read(c.SP + 1)
		old := uint16(hi)<<8 | uint16(lo)
		c.Bus.Write(c.SP, uint8(addr))
		c.Bus.Write(c.SP+1, uint8(addr>>8))
		c.setIdxBase(idx, old)
		c.WZ = old
		if idx.reg != idxNone {
			return 23
		}
		return 19
	case 5:
		h, l := c.H, c.L
		c.H, c.L = c.D, c.E
		c.D, c.E = h, l
		return 4
	case 6:
		c.IFF1, c.IFF2 = false, false
		c.eiShadow = false
		return 4
	default:
		c.IFF1, c.IFF2 = true, true
		c.eiShadow = true
		return 4
	}
}

// decodeX3Z5Q1 is opcode 0xCD, CALL nn (the only documented member of
// the x=3,z=5,q=1 family; the other three p values are the DD, ED and
// FD prefix bytes, which execOne consumes before dispatch).
func (c *CPU) decodeX3Z5Q1() int {
	addr := c.fetch16()
	c.WZ = addr
	c.push16(c.PC)
	c.PC = addr
	return 17
}
