package scheduler

import (
	"github.com/genesis-core/megacore/internal/bus"
	"github.com/genesis-core/megacore/internal/ym2612"
	"github.com/genesis-core/megacore/internal/z80"
)

const soundRAMSize = 0x2000

// Z80Bridge is the Z80-side collaborator the 68K bus reaches through
// its $A00000-$A0FFFF window, and the Z80 core's own view of its
// 16-bit address space: 8KB sound RAM, the YM2612's four ports, the
// bank-select register, and the bank-switched window back into 68K
// space. It satisfies both z80.Bus (for the Z80 core itself) and
// bus.Z80Bridge (for the 68K-side Bus).
type Z80Bridge struct {
	RAM  [soundRAMSize]byte
	CPU  *z80.CPU
	YM   *ym2612.Chip
	Bank bus.BankRegister

	granted bool
	reset   bool

	// Read68K/Write68K reach the 68K's physical address space for the
	// Z80's bank-switched $8000-$FFFF window; installed by the
	// scheduler after both buses exist, avoiding a direct ownership
	// cycle between the two cores.
	Read68K  func(addr uint32) uint8
	Write68K func(addr uint32, v uint8)
}

func NewZ80Bridge(cpu *z80.CPU, ym *ym2612.Chip) *Z80Bridge {
	return &Z80Bridge{CPU: cpu, YM: ym}
}

// Halted reports whether the Z80 should not be stepped this quantum:
// held in reset, or its bus granted away to the 68K.
func (z *Z80Bridge) Halted() bool { return z.reset || z.granted }

// --- z80.Bus ---

func (z *Z80Bridge) Read(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		return z.RAM[addr&(soundRAMSize-1)]
	case addr < 0x6000:
		return z.readYM(addr)
	case addr < 0x8000:
		return 0xFF
	default:
		if z.Read68K == nil {
			return 0xFF
		}
		return z.Read68K(z.Bank.Base() + uint32(addr&0x7FFF))
	}
}

func (z *Z80Bridge) Write(addr uint16, v uint8) {
	switch {
	case addr < 0x4000:
		z.RAM[addr&(soundRAMSize-1)] = v
	case addr < 0x6000:
		z.writeYM(addr, v)
	case addr == 0x6000:
		z.Bank.Shift(v & 1)
	case addr < 0x8000:
		// PSG write window ($7F11): decoded, not synthesized, matching
		// the VDP's own PSG-port simplification.
	default:
		if z.Write68K != nil {
			z.Write68K(z.Bank.Base()+uint32(addr&0x7FFF), v)
		}
	}
}

func (z *Z80Bridge) In(port uint16) uint8    { return 0xFF }
func (z *Z80Bridge) Out(port uint16, v uint8) {}

// readYM returns the chip status; all four port addresses mirror the
// same status read on real hardware.
func (z *Z80Bridge) readYM(addr uint16) uint8 {
	return z.YM.ReadStatus()
}

func (z *Z80Bridge) writeYM(addr uint16, v uint8) {
	group := 0
	if addr&2 != 0 {
		group = 1
	}
	if addr&1 == 0 {
		z.YM.WriteAddress(group, v)
	} else {
		z.YM.WriteData(group, v)
	}
}

// --- bus.Z80Bridge (the 68K-facing Device plus BUSREQ controls) ---

func (z *Z80Bridge) ReadByte(addr uint32) uint8  { return z.Read(uint16(addr)) }
func (z *Z80Bridge) WriteByte(addr uint32, v uint8) { z.Write(uint16(addr), v) }

func (z *Z80Bridge) ReadWord(addr uint32) uint16 {
	hi := uint16(z.Read(uint16(addr)))
	lo := uint16(z.Read(uint16(addr + 1)))
	return hi<<8 | lo
}

func (z *Z80Bridge) WriteWord(addr uint32, v uint16) {
	z.Write(uint16(addr), uint8(v>>8))
	z.Write(uint16(addr+1), uint8(v))
}

func (z *Z80Bridge) BusGranted() bool { return z.granted }
func (z *Z80Bridge) RequestBus()      { z.granted = true }
func (z *Z80Bridge) ReleaseBus()      { z.granted = false }

func (z *Z80Bridge) AssertReset(held bool) {
	z.reset = held
	if held {
		z.CPU.Reset()
	}
}
