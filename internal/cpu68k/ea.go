package cpu68k

// eaKind distinguishes the four shapes an effective address can take:
// a data register, an address register, a memory location, or (for
// mode 7 reg 4 only) an immediate value baked into the instruction
// stream.
type eaKind uint8

const (
	eaDataReg eaKind = iota
	eaAddrReg
	eaMemory
	eaImmediate
)

// ea is a resolved effective address: everything a read/write/address
// operation needs, computed once so post-increment and pre-decrement
// side effects happen exactly once per instruction.
type ea struct {
	kind eaKind
	reg  uint8
	addr uint32
	imm  uint32
}

func (c *CPU) read(e ea, sz Size) uint32 {
	switch e.kind {
	case eaDataReg:
		return c.D[e.reg] & sz.Mask()
	case eaAddrReg:
		return c.A[e.reg] & sz.Mask()
	case eaImmediate:
		return e.imm & sz.Mask()
	default:
		return c.readBus(sz, e.addr)
	}
}

func (c *CPU) write(e ea, sz Size, v uint32) {
	v &= sz.Mask()
	switch e.kind {
	case eaDataReg:
		c.D[e.reg] = c.D[e.reg]&^sz.Mask() | v
	case eaAddrReg:
		c.A[e.reg] = signExtend(v, sz)
	case eaMemory:
		c.writeBus(sz, e.addr, v)
	}
}

// address returns the memory address of e; valid only for control
// addressing modes (LEA/PEA/JMP/JSR), never for Dn/An/immediate.
func (e ea) address() uint32 { return e.addr }

func signExtend(v uint32, sz Size) uint32 {
	switch sz {
	case Byte:
		if v&0x80 != 0 {
			return v | 0xFFFFFF00
		}
	case Word:
		if v&0x8000 != 0 {
			return v | 0xFFFF0000
		}
	}
	return v
}

// resolveEA decodes the 6-bit mode/reg field of an instruction word
// into an ea, fetching any extension words and applying pre-decrement
// or post-increment as a side effect of the resolution itself.
func (c *CPU) resolveEA(mode, reg uint8, sz Size) ea {
	switch mode {
	case 0:
		return ea{kind: eaDataReg, reg: reg}
	case 1:
		return ea{kind: eaAddrReg, reg: reg}
	case 2:
		return ea{kind: eaMemory, addr: c.A[reg]}
	case 3:
		addr := c.A[reg]
		inc := uint32(sz)
		if reg == 7 && sz == Byte {
			inc = 2
		}
		c.A[reg] += inc
		return ea{kind: eaMemory, addr: addr}
	case 4:
		dec := uint32(sz)
		if reg == 7 && sz == Byte {
			dec = 2
		}
		c.A[reg] -= dec
		return ea{kind: eaMemory, addr: c.A[reg]}
	case 5:
		disp := signExtend(uint32(c.fetchPC()), Word)
		return ea{kind: eaMemory, addr: c.A[reg] + disp}
	case 6:
		return ea{kind: eaMemory, addr: c.calcIndex(c.A[reg])}
	default:
		switch reg {
		case 0:
			return ea{kind: eaMemory, addr: signExtend(uint32(c.fetchPC()), Word)}
		case 1:
			return ea{kind: eaMemory, addr: c.fetchPCLong()}
		case 2:
			base := c.PC
			disp := signExtend(uint32(c.fetchPC()), Word)
			return ea{kind: eaMemory, addr: base + disp}
		case 3:
			base := c.PC
			return ea{kind: eaMemory, addr: c.calcIndex(base)}
		case 4:
			switch sz {
			case Byte:
				return ea{kind: eaImmediate, imm: uint32(c.fetchPC() & 0xFF)}
			case Word:
				return ea{kind: eaImmediate, imm: uint32(c.fetchPC())}
			default:
				return ea{kind: eaImmediate, imm: c.fetchPCLong()}
			}
		default:
			c.exception(vecIllegalInstruction)
			return ea{}
		}
	}
}

// calcIndex implements the brief extension-word index format shared
// by d8(An,Xn) and d8(PC,Xn): an 8-bit displacement plus a scaled data
// or address register (word or long).
func (c *CPU) calcIndex(base uint32) uint32 {
	ext := c.fetchPC()
	disp := signExtend(uint32(ext&0xFF), Byte)
	xreg := uint8(ext>>12) & 7
	var xval uint32
	if ext&0x8000 != 0 {
		xval = c.A[xreg]
	} else {
		xval = c.D[xreg]
	}
	if ext&0x0800 == 0 {
		xval = signExtend(xval&0xFFFF, Word)
	}
	return base + disp + xval
}
