package cpu68k

// State is the complete internal state a save-state needs to resume
// this CPU bit-for-bit: the register file plus the runtime latches
// Registers/SetState don't carry (pending interrupt priority, the
// last-seen NMI edge, halted/stopped, and the cycle counter).
type State struct {
	D   [8]uint32
	A   [8]uint32
	PC  uint32
	SR  uint16
	USP uint32
	SSP uint32

	PrevPC     uint32
	PendingIPL uint8
	LastNMI    uint8
	Halted     bool
	Stopped    bool
	Cycles     int64
}

// Snapshot captures the full CPU state.
func (c *CPU) Snapshot() State {
	return State{
		D: c.D, A: c.A, PC: c.PC, SR: c.SR, USP: c.USP, SSP: c.SSP,
		PrevPC: c.prevPC, PendingIPL: c.pendingIPL, LastNMI: c.lastNMI,
		Halted: c.halted, Stopped: c.stopped, Cycles: c.cycles,
	}
}

// Restore re-establishes a previously captured state. The caller's Bus
// is left untouched; only register and latch state is replaced.
func (c *CPU) Restore(s State) {
	c.D, c.A, c.PC, c.SR, c.USP, c.SSP = s.D, s.A, s.PC, s.SR, s.USP, s.SSP
	c.prevPC, c.pendingIPL, c.lastNMI = s.PrevPC, s.PendingIPL, s.LastNMI
	c.halted, c.stopped, c.cycles = s.Halted, s.Stopped, s.Cycles
}
