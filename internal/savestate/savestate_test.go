package savestate

import (
	"bytes"
	"testing"

	"github.com/genesis-core/megacore/internal/scheduler"
)

func nopROM() []byte {
	rom := make([]byte, 0x10000)
	rom[0], rom[1], rom[2], rom[3] = 0x00, 0x01, 0x00, 0x00
	rom[4], rom[5], rom[6], rom[7] = 0x00, 0x00, 0x04, 0x00
	for i := 0x400; i < len(rom)-1; i += 2 {
		rom[i], rom[i+1] = 0x4E, 0x71
	}
	return rom
}

func TestSaveLoadRoundTripIsBitExact(t *testing.T) {
	rom := nopROM()
	m := scheduler.New(rom, scheduler.NTSC)
	for i := 0; i < 25; i++ {
		m.Step()
	}
	m.Bus.WRAM[0x100] = 0x42
	m.IO.Port1.WriteCtrl(0x40)

	var buf bytes.Buffer
	if err := Save(&buf, m, rom); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	want := m.Snapshot()

	// Diverge the live machine so Load is the only thing that could
	// make the post-load snapshot match `want` again.
	for i := 0; i < 25; i++ {
		m.Step()
	}
	m.Bus.WRAM[0x100] = 0x99

	if err := Load(&buf, m, rom); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got := m.Snapshot()

	if got.Cycles != want.Cycles {
		t.Fatalf("Cycles mismatch: got %d, want %d", got.Cycles, want.Cycles)
	}
	if got.WRAM != want.WRAM {
		t.Fatalf("WRAM mismatch after round trip")
	}
	if got.CPU != want.CPU {
		t.Fatalf("CPU state mismatch after round trip")
	}
}

func TestLoadRejectsWrongROM(t *testing.T) {
	rom := nopROM()
	m := scheduler.New(rom, scheduler.NTSC)

	var buf bytes.Buffer
	if err := Save(&buf, m, rom); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	otherROM := nopROM()
	otherROM[0x500] ^= 0xFF

	err := Load(&buf, m, otherROM)
	if err == nil {
		t.Fatalf("expected Load to reject a save state against a different ROM")
	}
	se, ok := err.(*Error)
	if !ok || se.Kind != KindInvariantViolation {
		t.Fatalf("expected KindInvariantViolation, got %#v", err)
	}
}

func TestLoadRejectsTruncatedStream(t *testing.T) {
	rom := nopROM()
	m := scheduler.New(rom, scheduler.NTSC)

	var buf bytes.Buffer
	if err := Save(&buf, m, rom); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	corrupt := buf.Bytes()
	err := Load(bytes.NewReader(corrupt[:len(corrupt)/2]), m, rom)
	if err == nil {
		t.Fatalf("expected Load to reject a truncated stream")
	}
}
