package z80

// State is the complete register and latch state this core needs to
// resume bit-for-bit, including the internal flags that never surface
// through the Bus interface: the EI shadow, and the latched IRQ/NMI
// line levels.
type State struct {
	A, F                   uint8
	B, C, D, E, H, L       uint8
	A2, F2                 uint8
	B2, C2, D2, E2, H2, L2 uint8

	IX, IY uint16
	SP, PC uint16

	I, R       uint8
	IFF1, IFF2 bool
	Mode       IM

	WZ uint16

	Halted   bool
	EIShadow bool
	IRQLine  bool
	NMILine  bool

	Cycles uint64
}

// Snapshot captures the full CPU state.
func (c *CPU) Snapshot() State {
	return State{
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		A2: c.A2, F2: c.F2, B2: c.B2, C2: c.C2, D2: c.D2, E2: c.E2, H2: c.H2, L2: c.L2,
		IX: c.IX, IY: c.IY, SP: c.SP, PC: c.PC,
		I: c.I, R: c.R, IFF1: c.IFF1, IFF2: c.IFF2, Mode: c.Mode,
		WZ: c.WZ, Halted: c.Halted, EIShadow: c.eiShadow,
		IRQLine: c.irqLine, NMILine: c.nmiLine, Cycles: c.Cycles,
	}
}

// Restore re-establishes a previously captured state. The caller's Bus
// is left untouched.
func (c *CPU) Restore(s State) {
	c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L
	c.A2, c.F2, c.B2, c.C2, c.D2, c.E2, c.H2, c.L2 = s.A2, s.F2, s.B2, s.C2, s.D2, s.E2, s.H2, s.L2
	c.IX, c.IY, c.SP, c.PC = s.IX, s.IY, s.SP, s.PC
	c.I, c.R, c.IFF1, c.IFF2, c.Mode = s.I, s.R, s.IFF1, s.IFF2, s.Mode
	c.WZ, c.Halted, c.eiShadow = s.WZ, s.Halted, s.EIShadow
	c.irqLine, c.nmiLine, c.Cycles = s.IRQLine, s.NMILine, s.Cycles
}
