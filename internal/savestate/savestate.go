// Package savestate implements a versioned encoding/gob codec over a
// scheduler.Machine's full snapshot, with a taxonomized error on a
// malformed or incompatible load so a caller can tell a stale-version
// file from a wrong-ROM file from outright corruption, and leave the
// running machine untouched on any of them.
package savestate

import (
	"encoding/gob"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/genesis-core/megacore/internal/scheduler"
)

// CurrentVersion is bumped whenever scheduler.State's shape changes in
// a way gob cannot decode forward-compatibly.
const CurrentVersion = 1

type envelope struct {
	Version     uint32
	ROMChecksum uint32
	ROMLength   int
	Payload     scheduler.State
}

// Kind taxonomizes why a load failed.
type Kind int

const (
	KindVersionMismatch Kind = iota
	KindLengthMismatch
	KindInvariantViolation
)

// Error reports a load failure; Kind lets the caller distinguish a
// stale file format from a wrong-cartridge file from a corrupt stream.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Save encodes the machine's current state, tagged with a checksum of
// the ROM it was running so Load can refuse to restore it onto a
// different cartridge.
func Save(w io.Writer, m *scheduler.Machine, rom []byte) error {
	env := envelope{
		Version:     CurrentVersion,
		ROMChecksum: crc32.ChecksumIEEE(rom),
		ROMLength:   len(rom),
		Payload:     m.Snapshot(),
	}
	return gob.NewEncoder(w).Encode(&env)
}

// Load decodes a save state and restores it onto m, which must already
// be running the same rom. On any failure m is left untouched and the
// returned error's Kind names why: a decode failure or version skew is
// KindVersionMismatch/KindLengthMismatch, a mismatched ROM or
// incompatible SRAM size is KindInvariantViolation.
func Load(r io.Reader, m *scheduler.Machine, rom []byte) error {
	var env envelope
	if err := gob.NewDecoder(r).Decode(&env); err != nil {
		return &Error{Kind: KindLengthMismatch, Msg: fmt.Sprintf("savestate: malformed stream: %v", err)}
	}
	if env.Version != CurrentVersion {
		return &Error{Kind: KindVersionMismatch, Msg: fmt.Sprintf("savestate: file version %d, runtime expects %d", env.Version, CurrentVersion)}
	}
	if env.ROMLength != len(rom) || env.ROMChecksum != crc32.ChecksumIEEE(rom) {
		return &Error{Kind: KindInvariantViolation, Msg: "savestate: file does not match the loaded cartridge"}
	}
	if !m.Restore(env.Payload) {
		return &Error{Kind: KindInvariantViolation, Msg: "savestate: SRAM region size does not match the running machine"}
	}
	return nil
}
