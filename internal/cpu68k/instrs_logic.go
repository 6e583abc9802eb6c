package cpu68k

// execGroup0 covers the 0000 nibble: immediate arithmetic/logical ops
// to an effective address, immediate ops to CCR/SR, MOVEP, and the
// static and dynamic bit instructions (BTST/BCHG/BCLR/BSET).
func (c *CPU) execGroup0(op uint16) {
	switch {
	case op == 0x003C:
		c.setCCR(c.SR&0xFF | uint16(c.fetchPC())&0xFF)
		return
	case op == 0x007C:
		c.requireSupervisor()
		c.setSR(c.SR | c.fetchPC())
		return
	case op == 0x023C:
		c.setCCR(c.SR&0xFF &^ uint16(c.fetchPC())&0xFF)
		return
	case op == 0x027C:
		c.requireSupervisor()
		c.setSR(c.SR &^ c.fetchPC())
		return
	case op == 0x0A3C:
		c.setCCR(c.SR&0xFF ^ uint16(c.fetchPC())&0xFF)
		return
	case op == 0x0A7C:
		c.requireSupervisor()
		c.setSR(c.SR ^ c.fetchPC())
		return
	}

	if op&0xF138 == 0x0108 {
		c.execMovep(op)
		return
	}

	if op&0xF100 == 0x0100 {
		c.execBitDynamic(op)
		return
	}
	if op&0xFF00 == 0x0800 {
		c.execBitStatic(op)
		return
	}

	kind := (op >> 9) & 7
	sz := sizeOf((op >> 6) & 3)

	switch kind {
	case 0, 1, 2, 3, 5, 6:
		imm := c.fetchImmediate(sz)
		mode, reg := uint8(op>>3)&7, regOf(op, 0)
		dst := c.resolveEA(mode, reg, sz)
		v := c.read(dst, sz)
		switch kind {
		case 0:
			r := v | imm
			c.write(dst, sz, r)
			c.setFlagsLogical(r, sz)
		case 1:
			r := v & imm
			c.write(dst, sz, r)
			c.setFlagsLogical(r, sz)
		case 2:
			r := v - imm
			c.write(dst, sz, r)
			c.setFlagsSub(imm, v, r, sz)
		case 3:
			r := v + imm
			c.write(dst, sz, r)
			c.setFlagsAdd(imm, v, r, sz)
		case 5:
			r := v ^ imm
			c.write(dst, sz, r)
			c.setFlagsLogical(r, sz)
		case 6:
			r := v - imm
			c.setFlagsCmp(imm, v, r, sz)
		}
	default:
		c.exception(vecIllegalInstruction)
	}
}

func (c *CPU) fetchImmediate(sz Size) uint32 {
	switch sz {
	case Byte:
		return uint32(c.fetchPC() & 0xFF)
	case Word:
		return uint32(c.fetchPC())
	default:
		return c.fetchPCLong()
	}
}

func (c *CPU) requireSupervisor() {
	if !c.supervisor() {
		c.exception(vecPrivilegeViolation)
	}
}

func (c *CPU) execMovep(op uint16) {
	dreg := regOf(op, 9)
	areg := regOf(op, 0)
	disp := signExtend(uint32(c.fetchPC()), Word)
	addr := c.A[areg] + disp
	toMemory := op&0x80 != 0
	isLong := op&0x40 != 0

	if isLong {
		if toMemory {
			v := c.D[dreg]
			c.Bus.WriteByte(addr, uint8(v>>24))
			c.Bus.WriteByte(addr+2, uint8(v>>16))
			c.Bus.WriteByte(addr+4, uint8(v>>8))
			c.Bus.WriteByte(addr+6, uint8(v))
		} else {
			v := uint32(c.Bus.ReadByte(addr))<<24 | uint32(c.Bus.ReadByte(addr+2))<<16 |
				uint32(c.Bus.ReadByte(addr+4))<<8 | uint32(c.Bus.ReadByte(addr+6))
			c.D[dreg] = v
		}
		return
	}
	if toMemory {
		v := c.D[dreg]
		c.Bus.WriteByte(addr, uint8(v>>8))
		c.Bus.WriteByte(addr+2, uint8(v))
	} else {
		v := uint32(c.Bus.ReadByte(addr))<<8 | uint32(c.Bus.ReadByte(addr+2))
		c.D[dreg] = c.D[dreg]&0xFFFF0000 | v
	}
}

func (c *CPU) execBitStatic(op uint16) {
	bitop := (op >> 6) & 3
	mode, reg := uint8(op>>3)&7, regOf(op, 0)
	bitNum := c.fetchPC() & 0xFF
	c.doBitOp(bitop, mode, reg, uint32(bitNum))
}

func (c *CPU) execBitDynamic(op uint16) {
	bitop := (op >> 6) & 3
	mode, reg := uint8(op>>3)&7, regOf(op, 0)
	dreg := regOf(op, 9)
	c.doBitOp(bitop, mode, reg, c.D[dreg])
}

func (c *CPU) doBitOp(bitop uint16, mode, reg uint8, bitNum uint32) {
	sz := Long
	if mode != 0 {
		sz = Byte
	}
	dst := c.resolveEA(mode, reg, sz)
	v := c.read(dst, sz)
	bits := uint32(32)
	if sz == Byte {
		bits = 8
	}
	n := bitNum % bits
	mask := uint32(1) << n

	c.SR &^= FlagZ
	if v&mask == 0 {
		c.SR |= FlagZ
	}

	switch bitop {
	case 0: // BTST
	case 1: // BCHG
		c.write(dst, sz, v^mask)
	case 2: // BCLR
		c.write(dst, sz, v&^mask)
	case 3: // BSET
		c.write(dst, sz, v|mask)
	}
}
