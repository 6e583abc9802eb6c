package scheduler

import (
	"github.com/genesis-core/megacore/internal/controller"
	"github.com/genesis-core/megacore/internal/cpu68k"
	"github.com/genesis-core/megacore/internal/vdp"
	"github.com/genesis-core/megacore/internal/ym2612"
	"github.com/genesis-core/megacore/internal/z80"
)

// BridgeState is the Z80-side bridge state a save-state carries: sound
// RAM, the bank register, and the reset/bus-grant latches, which
// together with Z80.State fully describe everything on the Z80 side
// of the machine.
type BridgeState struct {
	RAM        [soundRAMSize]byte
	BankValue  uint32
	Granted    bool
	ResetHeld  bool
}

func (z *Z80Bridge) Snapshot() BridgeState {
	return BridgeState{RAM: z.RAM, BankValue: z.Bank.Value(), Granted: z.granted, ResetHeld: z.reset}
}

func (z *Z80Bridge) Restore(s BridgeState) {
	z.RAM = s.RAM
	z.Bank.SetValue(s.BankValue)
	z.granted, z.reset = s.Granted, s.ResetHeld
}

// State is the complete machine state: every component's snapshot plus
// the bus's mutable RAM regions and the scheduler's own debt
// accumulators and master-cycle counter. The cartridge ROM itself is
// not included — it is supplied fresh by the caller and checked
// against ROMChecksum by the savestate package before Restore runs.
type State struct {
	Region Region

	CPU    cpu68k.State
	Z80    z80.State
	Bridge BridgeState
	VDP    vdp.State
	YM     ym2612.State

	Port1, Port2, PortEXP controller.State

	WRAM         [0x10000]byte
	SRAM         []byte
	SRAMEnabled  bool

	Z80Debt, VDPDebt, YMDebt int
	VDPIRQPulse              int
	Cycles                   int64
}

// Snapshot captures the full machine state.
func (m *Machine) Snapshot() State {
	return State{
		Region: m.Region,
		CPU:    m.CPU.Snapshot(),
		Z80:    m.Z80.Snapshot(),
		Bridge: m.Bridge.Snapshot(),
		VDP:    m.VDP.Snapshot(),
		YM:     m.YM.Snapshot(),

		Port1:   m.IO.Port1.Snapshot(),
		Port2:   m.IO.Port2.Snapshot(),
		PortEXP: m.IO.PortEXP.Snapshot(),

		WRAM:        m.Bus.WRAM,
		SRAM:        append([]byte(nil), m.Bus.SRAM...),
		SRAMEnabled: m.Bus.SRAM_enabled,

		Z80Debt: m.z80Debt, VDPDebt: m.vdpDebt, YMDebt: m.ymDebt,
		VDPIRQPulse: m.vdpIRQPulse, Cycles: m.cycles,
	}
}

// Restore re-establishes a previously captured machine state. The
// caller is responsible for having already verified ROM compatibility;
// Restore only checks that the SRAM region's length matches what the
// current bus was built with, returning false if not so the caller can
// surface an invariant-violation error without mutating anything.
func (m *Machine) Restore(s State) bool {
	if len(s.SRAM) != len(m.Bus.SRAM) {
		return false
	}

	m.Region = s.Region
	m.CPU.Restore(s.CPU)
	m.Z80.Restore(s.Z80)
	m.Bridge.Restore(s.Bridge)
	m.VDP.Restore(s.VDP)
	m.YM.Restore(s.YM)

	m.IO.Port1.Restore(s.Port1)
	m.IO.Port2.Restore(s.Port2)
	m.IO.PortEXP.Restore(s.PortEXP)

	m.Bus.WRAM = s.WRAM
	copy(m.Bus.SRAM, s.SRAM)
	m.Bus.SRAM_enabled = s.SRAMEnabled

	m.z80Debt, m.vdpDebt, m.ymDebt = s.Z80Debt, s.VDPDebt, s.YMDebt
	m.vdpIRQPulse = s.VDPIRQPulse
	m.cycles = s.Cycles
	return true
}
