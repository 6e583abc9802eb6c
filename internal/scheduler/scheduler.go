// Package scheduler drives the coupled 68K/Z80/VDP/YM2612 execution
// engine: it owns the master clock, steps each component by its
// proportional share of master cycles every quantum, and routes the
// VDP's interrupt lines to both CPUs.
package scheduler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/genesis-core/megacore/internal/bus"
	"github.com/genesis-core/megacore/internal/controller"
	"github.com/genesis-core/megacore/internal/cpu68k"
	"github.com/genesis-core/megacore/internal/vdp"
	"github.com/genesis-core/megacore/internal/ym2612"
	"github.com/genesis-core/megacore/internal/z80"
)

// Region selects the master-clock frequency and VDP scanline geometry.
type Region int

const (
	NTSC Region = iota
	PAL
)

// MasterClockHz returns the region's master oscillator frequency, the
// basis cmd/frontend resamples YM2612 output against.
func (r Region) MasterClockHz() float64 {
	if r == PAL {
		return 53203424
	}
	return 53693175
}

// Cycle ratios relative to the master clock: 7 per 68K cycle, 15 per
// Z80 cycle, 4 per VDP pixel, 42 per YM2612 internal cycle.
const (
	ratio68K  = 7
	ratioZ80  = 15
	ratioVDP  = 4
	ratioYM   = 42
)

// Machine wires together one of every component and drives them as a
// single cooperative, single-threaded unit; Run is the only place this
// package creates a goroutine, and that goroutine does nothing but
// call Step in a loop.
type Machine struct {
	Region Region

	Bus    *bus.Bus
	CPU    *cpu68k.CPU
	Z80    *z80.CPU
	Bridge *Z80Bridge
	VDP    *vdp.VDP
	YM     *ym2612.Chip
	IO     *controller.IOBlock

	z80Debt int
	vdpDebt int
	ymDebt  int

	vdpIRQPulse int

	cycles int64
}

// New builds a fully wired Machine around the given cartridge ROM.
func New(rom []byte, region Region) *Machine {
	b := bus.New(rom)
	ymChip := ym2612.New()
	bridge := NewZ80Bridge(nil, ymChip)

	io := controller.NewIOBlock()
	if region == PAL {
		io.Version = 0xA1
	} else {
		io.Version = 0xA0
	}

	m := &Machine{
		Region: region,
		Bus:    b,
		VDP:    vdp.New(),
		YM:     ymChip,
		Bridge: bridge,
		IO:     io,
	}
	m.VDP.Region = vdp.Region(region)

	b.VDP = m.VDP
	b.Z80 = bridge
	b.IO = io

	bridge.CPU = z80.New(bridge)
	m.Z80 = bridge.CPU

	bridge.Read68K = func(addr uint32) uint8 { return b.ReadByte(addr) }
	bridge.Write68K = func(addr uint32, v uint8) { b.WriteByte(addr, v) }

	m.VDP.SourceRead = func(addr uint32) uint8 { return b.ReadByte(addr) }

	m.CPU = cpu68k.New(b)
	b.AddressErrorHook = func(e *bus.AddressError) {
		m.CPU.RaiseAddressError(e.Addr, e.Write)
	}

	// BUSREQ held and Z80 reset asserted at power-on per documented
	// defaults.
	bridge.RequestBus()
	bridge.AssertReset(true)

	return m
}

// Reset restores every component to its power-on state.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.VDP.Reset()
	m.YM.Reset()
	m.Bridge.AssertReset(true)
	m.z80Debt, m.vdpDebt, m.ymDebt = 0, 0, 0
	m.vdpIRQPulse = 0
}

// Step runs exactly one 68K instruction and proportionally advances
// the Z80, VDP, and YM2612 by the master-cycle ratio, then delivers
// any interrupts the VDP has raised. It returns the number of master
// cycles this quantum consumed.
func (m *Machine) Step() int64 {
	cpuCycles := m.CPU.Step()
	if cpuCycles <= 0 {
		hostFault("CPU.Step returned a non-positive cycle count: %d", cpuCycles)
		cpuCycles = 1
	}
	if m.VDP.DMAActive() {
		cpuCycles += m.VDP.DMAStallCycles(0)
	}
	mc := int64(cpuCycles) * ratio68K
	m.cycles += mc

	m.stepZ80(mc)
	m.stepVDP(mc)
	m.stepYM(mc)
	m.IO.Step(mc)
	m.deliverInterrupts()

	return mc
}

func (m *Machine) stepZ80(mc int64) {
	m.z80Debt += int(mc)
	for m.z80Debt >= ratioZ80 && !m.Bridge.Halted() {
		used := m.Z80.Step()
		m.z80Debt -= used * ratioZ80
	}
}

func (m *Machine) stepVDP(mc int64) {
	m.vdpDebt += int(mc)
	pixels := m.vdpDebt / ratioVDP
	m.vdpDebt -= pixels * ratioVDP
	if pixels > 0 {
		m.VDP.Step(pixels)
	}
}

func (m *Machine) stepYM(mc int64) {
	m.ymDebt += int(mc)
	internal := m.ymDebt / ratioYM
	m.ymDebt -= internal * ratioYM
	if internal > 0 {
		m.YM.Step(internal)
	}
}

func (m *Machine) deliverInterrupts() {
	if level := m.VDP.PendingIRQLevel(); level > 0 {
		m.CPU.RequestInterrupt(uint8(level))
		m.VDP.AckIRQ()
		if level == 6 {
			m.vdpIRQPulse = 2
		}
	}
	if m.vdpIRQPulse > 0 {
		m.Z80.SetIRQ(true)
		m.vdpIRQPulse--
	} else {
		m.Z80.SetIRQ(false)
	}
}

// Run steps the machine until ctx is canceled, on its own goroutine
// supervised by an errgroup so a panic or error here tears down the
// paired presentation/scripting goroutine a caller runs alongside it.
func (m *Machine) Run(ctx context.Context, g *errgroup.Group) {
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				m.Step()
			}
		}
	})
}

// Cycles returns the total master cycles executed so far.
func (m *Machine) Cycles() int64 { return m.cycles }
