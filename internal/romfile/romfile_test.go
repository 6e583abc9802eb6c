package romfile

import (
	"testing"

	"github.com/genesis-core/megacore/internal/bus"
)

func baseImage() []byte {
	img := make([]byte, 0x4000)
	copy(img[headerOffset:], []byte("SEGA GENESIS    "))
	copy(img[0x120:], []byte("TEST DOMESTIC NAME"))
	copy(img[0x183:], []byte("GM 00000000-00"))
	return img
}

func TestLoadRejectsMissingHeader(t *testing.T) {
	img := make([]byte, 0x4000)
	_, err := Load(img)
	if err == nil {
		t.Fatalf("expected an error for a missing SEGA header")
	}
	le, ok := err.(*LoadError)
	if !ok || le.Reason != ReasonMissingHeader {
		t.Fatalf("expected ReasonMissingHeader, got %#v", err)
	}
}

func TestLoadRejectsOversizedImage(t *testing.T) {
	img := make([]byte, maxROMSize+1)
	copy(img[headerOffset:], []byte("SEGA GENESIS    "))
	_, err := Load(img)
	if err == nil {
		t.Fatalf("expected an error for an oversized image")
	}
	if err.(*LoadError).Reason != ReasonTooLarge {
		t.Fatalf("expected ReasonTooLarge, got %#v", err)
	}
}

func TestLoadParsesSRAMWindow(t *testing.T) {
	img := baseImage()
	copy(img[sramInfoOffset:], []byte("RA"))
	info := img[sramInfoOffset : sramInfoOffset+12]
	info[2], info[3] = 0xF8, 0x20 // type/flags, unused by this parser
	putBE32(info[4:8], 0x200000)
	putBE32(info[8:12], 0x200FFF)

	c, err := Load(img)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !c.SRAMEnabled {
		t.Fatalf("expected SRAM to be enabled")
	}
	if c.SRAMStart != bus.SRAMStart {
		t.Fatalf("SRAMStart = %#x, want %#x", c.SRAMStart, bus.SRAMStart)
	}

	b := bus.New(c.ROM)
	c.Attach(b)
	if !b.SRAM_enabled || len(b.SRAM) != 0x1000 {
		t.Fatalf("expected a 4KiB SRAM region attached to the bus, got enabled=%v len=%d", b.SRAM_enabled, len(b.SRAM))
	}
}

func TestLoadWithoutSRAMMagicLeavesItDisabled(t *testing.T) {
	img := baseImage()
	c, err := Load(img)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.SRAMEnabled {
		t.Fatalf("expected SRAM to stay disabled without the RA magic")
	}
}

func putBE32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
