package scheduler

import "testing"

func nopROM() []byte {
	rom := make([]byte, 0x10000)
	// SSP
	rom[0], rom[1], rom[2], rom[3] = 0x00, 0x01, 0x00, 0x00
	// PC -> 0x400
	rom[4], rom[5], rom[6], rom[7] = 0x00, 0x00, 0x04, 0x00
	for i := 0x400; i < len(rom)-1; i += 2 {
		rom[i], rom[i+1] = 0x4E, 0x71 // NOP
	}
	return rom
}

func TestMachineStepAdvancesMasterCycles(t *testing.T) {
	m := New(nopROM(), NTSC)
	var total int64
	for i := 0; i < 50; i++ {
		total += m.Step()
	}
	if total <= 0 {
		t.Fatalf("expected positive master-cycle advance, got %d", total)
	}
	if m.Cycles() != total {
		t.Fatalf("Cycles() = %d, want %d", m.Cycles(), total)
	}
}

func TestZ80HeldInResetAtPowerOn(t *testing.T) {
	m := New(nopROM(), NTSC)
	if !m.Bridge.Halted() {
		t.Fatalf("Z80 must be held (reset asserted, bus granted to 68K) at power-on")
	}
}

func TestVInterruptDeliveredTo68K(t *testing.T) {
	m := New(nopROM(), NTSC)

	// Vector 26 (level-6 autovector) handler at 0x600.
	setLong(m.Bus.ROM, 26*4, 0x600)
	for i := 0x600; i < 0x600+64; i += 2 {
		m.Bus.ROM[i], m.Bus.ROM[i+1] = 0x4E, 0x71
	}

	m.VDP.Reg[1] |= 0x20 // V-interrupt enable

	found := false
	for i := 0; i < 200000; i++ {
		m.Step()
		if m.CPU.Registers().PC >= 0x600 && m.CPU.Registers().PC < 0x600+64 {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected the V-interrupt handler to run within the stepped budget")
	}
}

func setLong(buf []byte, addr int, v uint32) {
	buf[addr] = byte(v >> 24)
	buf[addr+1] = byte(v >> 16)
	buf[addr+2] = byte(v >> 8)
	buf[addr+3] = byte(v)
}
