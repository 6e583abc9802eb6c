package z80

// Step executes exactly one instruction (including interrupt
// acceptance, which counts as the "instruction" for EI-shadow purposes)
// and returns the number of T-states consumed.
func (c *CPU) Step() int {
	if c.nmiLine {
		c.nmiLine = false
		return c.acceptNMI()
	}

	shadow := c.eiShadow
	c.eiShadow = false

	if c.irqLine && c.IFF1 && !shadow {
		return c.acceptIRQ()
	}

	if c.Halted {
		// A halted CPU still fetches NOPs and advances R, per hardware.
		c.incR(1)
		return 4
	}

	return c.execOne()
}

// execOne fetches and dispatches a single instruction, resolving any
// DD/FD/CB/ED prefixes: DD/FD before ED is ignored, repeated DD/FD stack
// and only the last counts, and every prefix byte increments R by one.
func (c *CPU) execOne() int {
	idx := &indexState{}
	for {
		op := c.fetch8()
		c.incR(1)

		switch op {
		case 0xDD:
			idx.reg = idxIX
			continue
		case 0xFD:
			idx.reg = idxIY
			continue
		case 0xED:
			return c.execED()
		case 0xCB:
			return c.execCB(idx)
		default:
			return c.execBase(op, idx)
		}
	}
}

type indexReg int

const (
	idxNone indexReg = iota
	idxIX
	idxIY
)

// indexState carries which index register (if any) the current
// instruction has been prefixed to use.
type indexState struct {
	reg indexReg
}

func (c *CPU) idxBase(idx *indexState) uint16 {
	switch idx.reg {
	case idxIX:
		return c.IX
	case idxIY:
		return c.IY
	default:
		return c.HL()
	}
}

func (c *CPU) setIdxBase(idx *indexState, v uint16) {
	switch idx.reg {
	case idxIX:
		c.IX = v
	case idxIY:
		c.IY = v
	default:
		c.SetHL(v)
	}
}

// dispAddr reads the displacement byte following a DD/FD prefix and
// computes the effective address, updating WZ: indexed addressing feeds
// WZ = IX/IY + d.
func (c *CPU) dispAddr(idx *indexState) uint16 {
	d := int8(c.fetch8())
	addr := uint16(int32(c.idxBase(idx)) + int32(d))
	c.WZ = addr
	return addr
}

func (c *CPU) execBase(op uint8, idx *indexState) int {
	return c.decodeBase(op, idx)
}

func (c *CPU) execCB(idx *indexState) int {
	if idx.reg != idxNone {
		addr := c.dispAddr(idx)
		op := c.fetch8()
		c.incR(1)
		return c.decodeIndexedCB(op, addr)
	}
	op := c.fetch8()
	c.incR(1)
	return c.decodeCB(op)
}

func (c *CPU) execED() int {
	op := c.fetch8()
	c.incR(1)
	return c.decodeED(op)
}

// acceptIRQ dispatches a maskable interrupt per the current mode: IM0
// executes a bus-supplied opcode (the Genesis sound bus wires $FF, i.e.
// RST 38h); IM1 always executes RST 38h; IM2 vectors through
// (I<<8)|bus_byte.
func (c *CPU) acceptIRQ() int {
	c.IFF1, c.IFF2 = false, false
	if c.Halted {
		c.Halted = false
	}
	c.incR(1)

	switch c.Mode {
	case IM0:
		// Genesis sound bus supplies $FF on IRQ ack absent other modeling.
		c.push16(c.PC)
		c.PC = 0x0038
		c.WZ = c.PC
		return 13
	case IM1:
		c.push16(c.PC)
		c.PC = 0x0038
		c.WZ = c.PC
		return 13
	default: // IM2
		vecAddr := uint16(c.I)<<8 | 0x00FF
		lo := uint16(c.Bus.Read(vecAddr))
		hi := uint16(c.Bus.Read(vecAddr + 1))
		c.push16(c.PC)
		c.PC = hi<<8 | lo
		c.WZ = c.PC
		return 19
	}
}

func (c *CPU) acceptNMI() int {
	c.IFF2 = c.IFF1
	c.IFF1 = false
	if c.Halted {
		c.Halted = false
	}
	c.incR(1)
	c.push16(c.PC)
	c.PC = 0x0066
	c.WZ = c.PC
	return 11
}
