// Package cpu68k implements a Motorola 68000 instruction interpreter:
// the host CPU of a Sega Mega Drive, driving the bus, the VDP, and the
// Z80 sound co-processor through memory-mapped I/O.
package cpu68k

// Bus is the 24-bit physical address space the 68000 issues cycles
// against. Odd-address word/long accesses are the caller's concern:
// the bus implementation raises its own address-error fault.
type Bus interface {
	ReadByte(addr uint32) uint8
	ReadWord(addr uint32) uint16
	ReadLong(addr uint32) uint32
	WriteByte(addr uint32, v uint8)
	WriteWord(addr uint32, v uint16)
	WriteLong(addr uint32, v uint32)
}

// CPU is a 68000 register file and execution engine. Fields are kept
// flat rather than nested under a Registers struct so the flag helpers
// and the decoder can address them directly.
type CPU struct {
	D [8]uint32
	A [8]uint32
	PC uint32
	SR uint16

	USP uint32
	SSP uint32

	prevPC uint32

	faultAddr  uint32
	faultWrite bool

	pendingIPL uint8
	lastNMI    uint8
	halted     bool
	stopped    bool

	cycles int64

	Bus Bus
}

// New returns a CPU wired to bus, reset as if the reset exception had
// just fired: SSP and PC loaded from vectors 0 and 1, supervisor mode
// and interrupt priority 7 in effect.
func New(bus Bus) *CPU {
	c := &CPU{Bus: bus}
	c.Reset()
	return c
}

func (c *CPU) Reset() {
	c.SR = FlagS | 7<<8
	c.SSP = c.Bus.ReadLong(0)
	c.A[7] = c.SSP
	c.PC = c.Bus.ReadLong(4)
	c.halted = false
	c.stopped = false
	c.pendingIPL = 0
	c.lastNMI = 0
}

// Cycles returns the running cycle count since the last reset; the
// scheduler subtracts its own baseline to derive a step delta.
func (c *CPU) Cycles() int64 { return c.cycles }

func (c *CPU) Halted() bool { return c.halted }

// Step executes exactly one instruction (or, if halted/stopped,
// advances the clock without fetching) and returns the cycle count it
// consumed.
func (c *CPU) Step() int {
	before := c.cycles

	if c.checkInterrupt() {
		return int(c.cycles - before)
	}

	if c.halted {
		c.cycles += 4
		return 4
	}
	if c.stopped {
		if c.checkInterrupt() {
			c.stopped = false
			return int(c.cycles - before)
		}
		c.cycles += 4
		return 4
	}

	c.prevPC = c.PC
	op := c.fetchPC()
	c.execute(op)

	return int(c.cycles - before)
}

func (c *CPU) readBus(sz Size, addr uint32) uint32 {
	switch sz {
	case Byte:
		return uint32(c.Bus.ReadByte(addr))
	case Word:
		return uint32(c.Bus.ReadWord(addr))
	default:
		return c.Bus.ReadLong(addr)
	}
}

func (c *CPU) writeBus(sz Size, addr uint32, v uint32) {
	switch sz {
	case Byte:
		c.Bus.WriteByte(addr, uint8(v))
	case Word:
		c.Bus.WriteWord(addr, uint16(v))
	default:
		c.Bus.WriteLong(addr, v)
	}
}

func (c *CPU) fetchPC() uint16 {
	v := c.Bus.ReadWord(c.PC)
	c.PC += 2
	c.cycles += 4
	return v
}

func (c *CPU) fetchPCLong() uint32 {
	hi := c.fetchPC()
	lo := c.fetchPC()
	return uint32(hi)<<16 | uint32(lo)
}

func (c *CPU) pushLong(v uint32) {
	c.A[7] -= 4
	c.Bus.WriteLong(c.A[7], v)
}

func (c *CPU) popLong() uint32 {
	v := c.Bus.ReadLong(c.A[7])
	c.A[7] += 4
	return v
}

func (c *CPU) pushWord(v uint16) {
	c.A[7] -= 2
	c.Bus.WriteWord(c.A[7], v)
}

func (c *CPU) popWord() uint16 {
	v := c.Bus.ReadWord(c.A[7])
	c.A[7] += 2
	return v
}

func (c *CPU) supervisor() bool { return c.SR&FlagS != 0 }

// setSR installs a full status register value, swapping the active
// stack pointer between USP and SSP if the supervisor bit changed.
func (c *CPU) setSR(v uint16) {
	wasSuper := c.supervisor()
	c.SR = v
	nowSuper := c.supervisor()
	if wasSuper == nowSuper {
		return
	}
	if nowSuper {
		c.USP = c.A[7]
		c.A[7] = c.SSP
	} else {
		c.SSP = c.A[7]
		c.A[7] = c.USP
	}
}

func (c *CPU) setCCR(v uint16) {
	c.SR = c.SR&0xFF00 | v&0x00FF
}

// Registers is a snapshot of programmer-visible CPU state, used by
// savestates and the debug stub.
type Registers struct {
	D   [8]uint32
	A   [8]uint32
	PC  uint32
	SR  uint16
	USP uint32
	SSP uint32
}

func (c *CPU) Registers() Registers {
	r := Registers{D: c.D, A: c.A, PC: c.PC, SR: c.SR, USP: c.USP, SSP: c.SSP}
	if c.supervisor() {
		r.SSP = c.A[7]
	} else {
		r.USP = c.A[7]
	}
	return r
}

// SetState restores a register-file snapshot, used by the GDB stub's
// register-write packet. Save-state loading uses the fuller Restore
// (state.go), which also covers latches Registers does not expose.
func (c *CPU) SetState(r Registers) {
	c.D = r.D
	c.A = r.A
	c.PC = r.PC
	c.USP = r.USP
	c.SSP = r.SSP
	c.SR = r.SR
	if c.supervisor() {
		c.A[7] = r.SSP
	} else {
		c.A[7] = r.USP
	}
}
