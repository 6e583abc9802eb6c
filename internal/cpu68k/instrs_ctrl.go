package cpu68k

// execGroup4 covers the 0100 nibble: the miscellaneous instructions
// (CLR/NEG/NEGX/NOT/TST/TAS/SWAP/EXT/LEA/PEA/CHK/JMP/JSR/MOVEM), the
// single-word control instructions (NOP/RTS/RTE/RTR/TRAPV/RESET/STOP),
// TRAP #n, LINK/UNLK, and MOVE to/from USP.
func (c *CPU) execGroup4(op uint16) {
	switch op {
	case 0x4AFC:
		c.exception(vecIllegalInstruction)
		return
	case 0x4E70:
		c.requireSupervisor()
		return
	case 0x4E71:
		return
	case 0x4E72:
		c.requireSupervisor()
		imm := c.fetchPC()
		c.setSR(imm)
		c.stopped = true
		return
	case 0x4E73:
		c.requireSupervisor()
		sr := c.popWord()
		pc := c.popLong()
		c.setSR(sr)
		c.PC = pc
		return
	case 0x4E75:
		c.PC = c.popLong()
		return
	case 0x4E76:
		if c.SR&FlagV != 0 {
			c.exception(vecTRAPV)
		}
		return
	case 0x4E77:
		sr := c.popWord()
		pc := c.popLong()
		c.setCCR(sr)
		c.PC = pc
		return
	}

	if op&0xFFF0 == 0x4E40 {
		c.exception(vecTrap0 + int(op&0xF))
		return
	}
	if op&0xFFF8 == 0x4E50 {
		areg := regOf(op, 0)
		disp := signExtend(uint32(c.fetchPC()), Word)
		c.pushLong(c.A[areg])
		c.A[areg] = c.A[7]
		c.A[7] += disp
		return
	}
	if op&0xFFF8 == 0x4E58 {
		areg := regOf(op, 0)
		c.A[7] = c.A[areg]
		c.A[areg] = c.popLong()
		return
	}
	if op&0xFFF8 == 0x4E60 {
		c.requireSupervisor()
		c.USP = c.A[regOf(op, 0)]
		return
	}
	if op&0xFFF8 == 0x4E68 {
		c.requireSupervisor()
		c.A[regOf(op, 0)] = c.USP
		return
	}
	if op&0xFFC0 == 0x4E80 {
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		e := c.resolveEA(mode, reg, Long)
		c.pushLong(c.PC)
		c.PC = e.address()
		return
	}
	if op&0xFFC0 == 0x4EC0 {
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		e := c.resolveEA(mode, reg, Long)
		c.PC = e.address()
		return
	}
	if (op&0xFB80 == 0x4880 || op&0xFB80 == 0x4C80) && op&0x38 != 0 {
		c.execMovem(op)
		return
	}
	if op&0xF1C0 == 0x41C0 {
		dreg := regOf(op, 9)
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		e := c.resolveEA(mode, reg, Long)
		c.A[dreg] = e.address()
		return
	}
	if op&0xF1C0 == 0x4180 {
		dreg := regOf(op, 9)
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		e := c.resolveEA(mode, reg, Word)
		bound := int16(c.read(e, Word))
		v := int16(c.D[dreg])
		if v < 0 {
			c.SR |= FlagN
			c.exception(vecCHK)
		} else if v > bound {
			c.SR &^= FlagN
			c.exception(vecCHK)
		}
		return
	}
	if op&0xFFF8 == 0x4840 {
		reg := regOf(op, 0)
		v := c.D[reg]
		v = v<<16 | v>>16
		c.D[reg] = v
		c.setFlagsLogical(v, Long)
		return
	}
	if op&0xFFF8 == 0x4880 {
		reg := regOf(op, 0)
		v := signExtend(c.D[reg]&0xFFFF, Word) & 0xFFFF
		c.D[reg] = c.D[reg]&0xFFFF0000 | v
		c.setFlagsLogical(v, Word)
		return
	}
	if op&0xFFF8 == 0x48C0 {
		reg := regOf(op, 0)
		v := signExtend(c.D[reg]&0xFFFF, Word)
		c.D[reg] = v
		c.setFlagsLogical(v, Long)
		return
	}
	if op&0xFFC0 == 0x4840 {
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		e := c.resolveEA(mode, reg, Long)
		c.pushLong(e.address())
		return
	}
	if op&0xFFC0 == 0x4AC0 {
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		e := c.resolveEA(mode, reg, Byte)
		v := c.read(e, Byte)
		c.setFlagsLogical(v, Byte)
		c.write(e, Byte, v|0x80)
		return
	}
	if op&0xFF00 == 0x4A00 {
		sz := sizeOf((op >> 6) & 3)
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		e := c.resolveEA(mode, reg, sz)
		v := c.read(e, sz)
		c.setFlagsLogical(v, sz)
		return
	}
	if op&0xFF00 == 0x4000 {
		sz := sizeOf((op >> 6) & 3)
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		e := c.resolveEA(mode, reg, sz)
		v := c.read(e, sz)
		x := uint32(0)
		if c.SR&FlagX != 0 {
			x = 1
		}
		r := 0 - v - x
		c.write(e, sz, r)
		c.setFlagsSubX(v, 0, r, sz)
		return
	}
	if op&0xFF00 == 0x4200 {
		sz := sizeOf((op >> 6) & 3)
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		e := c.resolveEA(mode, reg, sz)
		c.write(e, sz, 0)
		c.SR &^= FlagN | FlagV | FlagC
		c.SR |= FlagZ
		return
	}
	if op&0xFF00 == 0x4400 {
		sz := sizeOf((op >> 6) & 3)
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		e := c.resolveEA(mode, reg, sz)
		v := c.read(e, sz)
		r := 0 - v
		c.write(e, sz, r)
		c.setFlagsSub(v, 0, r, sz)
		return
	}
	if op&0xFF00 == 0x4600 {
		sz := sizeOf((op >> 6) & 3)
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		e := c.resolveEA(mode, reg, sz)
		v := ^c.read(e, sz)
		c.write(e, sz, v)
		c.setFlagsLogical(v, sz)
		return
	}
	if op&0xFFC0 == 0x40C0 {
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		e := c.resolveEA(mode, reg, Word)
		c.write(e, Word, uint32(c.SR))
		return
	}
	if op&0xFFC0 == 0x44C0 {
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		e := c.resolveEA(mode, reg, Word)
		c.setCCR(uint16(c.read(e, Word)))
		return
	}
	if op&0xFFC0 == 0x46C0 {
		c.requireSupervisor()
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		e := c.resolveEA(mode, reg, Word)
		c.setSR(uint16(c.read(e, Word)))
		return
	}

	c.exception(vecIllegalInstruction)
}

// execMovem implements MOVEM: a register-mask bulk transfer between
// the register file and memory, used for stack-frame prologues. The
// predecrement addressing mode stores registers in reverse order,
// walking the mask from bit 15 (A7) down to bit 0 (D0), so D0 ends up
// at the lowest address.
func (c *CPU) execMovem(op uint16) {
	dr := op&0x0400 != 0
	sz := Word
	if op&0x40 != 0 {
		sz = Long
	}
	mode, reg := uint8(op>>3)&7, regOf(op, 0)
	mask := c.fetchPC()

	if mode == 4 {
		addr := c.A[reg]
		for i := 15; i >= 0; i-- {
			if mask&(1<<uint(i)) == 0 {
				continue
			}
			addr -= uint32(sz)
			var v uint32
			if i < 8 {
				v = c.D[i]
			} else {
				v = c.A[i-8]
			}
			c.writeBus(sz, addr, v)
		}
		c.A[reg] = addr
		return
	}

	var addr uint32
	if mode == 3 {
		addr = c.A[reg]
	} else {
		addr = c.resolveEA(mode, reg, sz).address()
	}

	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		if dr {
			v := c.readBus(sz, addr)
			if sz == Word {
				v = signExtend(v, Word)
			}
			if i < 8 {
				c.D[i] = v
			} else {
				c.A[i-8] = v
			}
		} else {
			var v uint32
			if i < 8 {
				v = c.D[i]
			} else {
				v = c.A[i-8]
			}
			c.writeBus(sz, addr, v)
		}
		addr += uint32(sz)
	}
	if mode == 3 {
		c.A[reg] = addr
	}
}

func popcount16(v uint16) int {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n
}
