// Package romfile loads a Mega Drive cartridge image, parses its
// header, and establishes the fixed SRAM window the documented
// battery-backed-RAM mapper exposes at $200000-$20FFFF. File format
// and header parsing are thin, ROM-fault-only collaborators around
// the core: a bad header never touches running machine state.
package romfile

import (
	"bytes"
	"fmt"

	"github.com/genesis-core/megacore/internal/bus"
)

const (
	maxROMSize = 4 * 1024 * 1024

	headerOffset   = 0x100
	headerMagicLen = 16

	sramInfoOffset = 0x1B0
	sramMagic      = "RA"
)

// Reason taxonomizes why a ROM failed to load.
type Reason int

const (
	ReasonMissingHeader Reason = iota
	ReasonTooLarge
	ReasonBadSRAMRange
)

// LoadError reports a ROM fault: the core is left in its power-on
// state and nothing about the attempted cartridge is applied.
type LoadError struct {
	Reason Reason
	Msg    string
}

func (e *LoadError) Error() string { return e.Msg }

// Cartridge is a parsed ROM image plus the SRAM window its header
// declares, ready to be wired onto a bus.Bus.
type Cartridge struct {
	ROM []byte

	DomesticName, OverseasName, Serial string

	SRAMEnabled       bool
	SRAMStart, SRAMEnd uint32
}

// Load parses a raw cartridge image. It never mutates data — the
// returned Cartridge's ROM aliases image.
func Load(image []byte) (*Cartridge, error) {
	if len(image) > maxROMSize {
		return nil, &LoadError{Reason: ReasonTooLarge, Msg: fmt.Sprintf("romfile: image is %d bytes, exceeds the %d-byte single-bank limit", len(image), maxROMSize)}
	}
	if len(image) < headerOffset+0x1C0 {
		return nil, &LoadError{Reason: ReasonMissingHeader, Msg: "romfile: image too short to contain a header"}
	}

	magic := image[headerOffset : headerOffset+headerMagicLen]
	if !bytes.HasPrefix(magic, []byte("SEGA")) {
		return nil, &LoadError{Reason: ReasonMissingHeader, Msg: fmt.Sprintf("romfile: missing SEGA header magic at $%X", headerOffset)}
	}

	c := &Cartridge{
		ROM:           image,
		DomesticName:  trimField(image[0x120:0x150]),
		OverseasName:  trimField(image[0x150:0x180]),
		Serial:        trimField(image[0x183:0x18B]),
	}

	if err := c.parseSRAM(image); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Cartridge) parseSRAM(image []byte) error {
	info := image[sramInfoOffset : sramInfoOffset+12]
	if string(info[0:2]) != sramMagic {
		return nil // no battery-backed SRAM declared
	}

	start := be32(info[4:8])
	end := be32(info[8:12])
	if end < start || end-start > uint32(bus.SRAMEnd-bus.SRAMStart) {
		return &LoadError{Reason: ReasonBadSRAMRange, Msg: fmt.Sprintf("romfile: SRAM range $%X-$%X is invalid or exceeds the fixed window", start, end)}
	}

	c.SRAMEnabled = true
	c.SRAMStart = bus.SRAMStart
	c.SRAMEnd = bus.SRAMStart + (end - start)
	return nil
}

// Attach wires the cartridge onto b: installs the ROM image and, if
// the header declared one, allocates the SRAM window and enables it.
func (c *Cartridge) Attach(b *bus.Bus) {
	b.ROM = c.ROM
	if c.SRAMEnabled {
		size := c.SRAMEnd - c.SRAMStart + 1
		b.SRAM = make([]byte, size)
		b.SRAM_enabled = true
	}
}

func trimField(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == 0) {
		end--
	}
	return string(b[:end])
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
