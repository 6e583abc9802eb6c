package z80

import "testing"

type memBus struct {
	mem  [0x10000]uint8
	ports [0x10000]uint8
}

func (m *memBus) Read(addr uint16) uint8    { return m.mem[addr] }
func (m *memBus) Write(addr uint16, v uint8) { m.mem[addr] = v }
func (m *memBus) In(port uint16) uint8       { return m.ports[port&0xFF] }
func (m *memBus) Out(port uint16, v uint8)   { m.ports[port&0xFF] = v }

func newTestCPU() (*CPU, *memBus) {
	bus := &memBus{}
	return New(bus), bus
}

func TestRefreshBit7Preserved(t *testing.T) {
	c, bus := newTestCPU()
	c.R = 0x80
	bus.mem[0] = 0x00 // NOP
	c.Step()
	if c.R&0x80 == 0 {
		t.Fatalf("R bit 7 cleared: R = %#02x", c.R)
	}
	if c.R&0x7F != 1 {
		t.Fatalf("R low bits = %#02x, want 1", c.R&0x7F)
	}
}

func TestRefreshWrapsLow7Bits(t *testing.T) {
	c, bus := newTestCPU()
	c.R = 0x7F
	bus.mem[0] = 0x00
	c.Step()
	if c.R != 0x00 {
		t.Fatalf("R = %#02x, want 0x00 after wrap", c.R)
	}
}

// EI shadow: EI; NOP; NOP with IM1 and IRQ held high. The first NOP
// after EI must execute before the interrupt is taken; only the NOP
// after that is replaced by interrupt acceptance.
func TestEIShadow(t *testing.T) {
	c, bus := newTestCPU()
	c.Mode = IM1
	c.SetIRQ(true)
	bus.mem[0] = 0xFB // EI
	bus.mem[1] = 0x00 // NOP
	bus.mem[2] = 0x00 // NOP (should be replaced by IRQ acceptance)
	c.SP = 0x2000

	c.Step() // EI
	if !c.IFF1 {
		t.Fatal("IFF1 not set after EI")
	}
	if c.PC != 1 {
		t.Fatalf("PC after EI = %#04x, want 1", c.PC)
	}

	c.Step() // first NOP, must not be preempted
	if c.PC != 2 {
		t.Fatalf("PC after shadowed NOP = %#04x, want 2 (interrupt must not fire here)", c.PC)
	}

	c.Step() // second NOP's slot: interrupt acceptance instead
	if c.PC != 0x0038 {
		t.Fatalf("PC after interrupt acceptance = %#04x, want 0x0038", c.PC)
	}
	stacked := c.Bus.Read(c.SP)
	stackedHi := c.Bus.Read(c.SP + 1)
	pushed := uint16(stackedHi)<<8 | uint16(stacked)
	if pushed != 2 {
		t.Fatalf("pushed return PC = %#04x, want 2 (address of second NOP)", pushed)
	}
}

// BIT 7,(HL) leaks X/Y from the high byte of WZ, not from the tested
// byte or the (HL) address.
func TestBitHLFlagLeakage(t *testing.T) {
	c, bus := newTestCPU()
	c.H, c.L = 0x20, 0x00
	c.WZ = 0x1234
	bus.mem[0x2000] = 0x80
	bus.mem[0] = 0xCB
	bus.mem[1] = 0x7E // BIT 7,(HL)

	c.Step()

	if c.flag(FlagZ) {
		t.Fatal("Z set, want clear (bit 7 of $80 is set)")
	}
	if c.flag(FlagX) {
		t.Fatal("X set, want clear (bit 3 of WZ-high $12 is 0)")
	}
	if !c.flag(FlagY) {
		t.Fatal("Y clear, want set (bit 5 of WZ-high $12 is 1)")
	}
}

func TestSLLOpcode(t *testing.T) {
	c, bus := newTestCPU()
	c.B = 0x80
	bus.mem[0] = 0xCB
	bus.mem[1] = 0x30 // SLL B
	c.Step()
	if c.B != 0x01 {
		t.Fatalf("B after SLL = %#02x, want 0x01", c.B)
	}
	if !c.flag(FlagC) {
		t.Fatal("carry not set after SLL of 0x80")
	}
}

// DD FD DD ... prefix stacking: only the final index prefix before the
// opcode is honored, and each prefix byte still advances R by one.
func TestPrefixStacking(t *testing.T) {
	c, bus := newTestCPU()
	c.IX = 0x3000
	c.IY = 0x4000
	bus.mem[0x3005] = 0x00
	bus.mem[0x4005] = 0x00
	c.R = 0

	bus.mem[0] = 0xDD
	bus.mem[1] = 0xFD // last prefix wins: IY
	bus.mem[2] = 0x7E // LD A,(IY+d)
	bus.mem[3] = 0x05
	bus.mem[0x4005] = 0x77

	c.Step()
	if c.A != 0x77 {
		t.Fatalf("A = %#02x, want 0x77 (IY+5 should have won over IX)", c.A)
	}
	if c.R&0x7F != 3 {
		t.Fatalf("R = %#02x, want low bits = 3 (two prefixes + opcode)", c.R&0x7F)
	}
}

func TestMemptrUpdatedByLDrrIndirect(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0] = 0x2A // LD HL,(nn)
	bus.mem[1] = 0x00
	bus.mem[2] = 0x80
	bus.mem[0x8000] = 0x11
	bus.mem[0x8001] = 0x22
	c.Step()
	if c.HL() != 0x2211 {
		t.Fatalf("HL = %#04x, want 0x2211", c.HL())
	}
	if c.WZ != 0x8001 {
		t.Fatalf("WZ = %#04x, want 0x8001", c.WZ)
	}
}

func TestNMIClearsIFF1OnlyAndVectors0066(t *testing.T) {
	c, bus := newTestCPU()
	c.IFF1, c.IFF2 = true, true
	c.SP = 0x2000
	bus.mem[0] = 0x00
	c.SetNMI()
	cyc := c.Step()
	if c.PC != 0x0066 {
		t.Fatalf("PC = %#04x, want 0x0066", c.PC)
	}
	if c.IFF1 {
		t.Fatal("IFF1 should be cleared by NMI acceptance")
	}
	if !c.IFF2 {
		t.Fatal("IFF2 should retain the pre-NMI IFF1 value (was true)")
	}
	if cyc != 11 {
		t.Fatalf("NMI acceptance = %d cycles, want 11", cyc)
	}
}

func TestHaltFetchesNOPsAndAdvancesR(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0] = 0x76 // HALT
	c.Step()
	if !c.Halted {
		t.Fatal("CPU not halted after HALT")
	}
	r := c.R
	cyc := c.Step()
	if cyc != 4 {
		t.Fatalf("halted step = %d cycles, want 4", cyc)
	}
	if c.R == r {
		t.Fatal("R did not advance while halted")
	}
}

func TestIM2Vectoring(t *testing.T) {
	c, bus := newTestCPU()
	c.Mode = IM2
	c.I = 0x40
	c.IFF1 = true
	c.SetIRQ(true)
	c.SP = 0x2000
	bus.mem[0x40FF] = 0x00
	bus.mem[0x4100] = 0x90
	bus.mem[0] = 0x00 // NOP, never executed: the pending interrupt is accepted first
	c.Step()
	if c.PC != 0x9000 {
		t.Fatalf("PC = %#04x, want 0x9000", c.PC)
	}
}

func TestEXAFAltSwap(t *testing.T) {
	c, bus := newTestCPU()
	c.A, c.F = 0x11, 0x22
	c.A2, c.F2 = 0x33, 0x44
	bus.mem[0] = 0x08 // EX AF,AF'
	c.Step()
	if c.A != 0x33 || c.F != 0x44 {
		t.Fatalf("A,F = %#02x,%#02x want 0x33,0x44", c.A, c.F)
	}
	if c.A2 != 0x11 || c.F2 != 0x22 {
		t.Fatalf("A',F' = %#02x,%#02x want 0x11,0x22", c.A2, c.F2)
	}
}

func TestLDIDecrementsBCAndSetsParityOverflow(t *testing.T) {
	c, bus := newTestCPU()
	c.SetHL(0x1000)
	c.SetDE(0x2000)
	c.SetBC(0x0002)
	bus.mem[0x1000] = 0x42
	bus.mem[0] = 0xED
	bus.mem[1] = 0xA0 // LDI
	c.Step()
	if bus.mem[0x2000] != 0x42 {
		t.Fatalf("LDI did not transfer byte")
	}
	if c.HL() != 0x1001 || c.DE() != 0x2001 {
		t.Fatal("LDI did not advance HL/DE")
	}
	if c.BC() != 0x0001 {
		t.Fatalf("BC = %#04x, want 1", c.BC())
	}
	if !c.flag(FlagPV) {
		t.Fatal("PV should be set: BC-1 != 0")
	}
}
