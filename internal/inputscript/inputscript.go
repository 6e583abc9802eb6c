// Package inputscript parses and plays back a CSV recording of
// controller input against frame numbers, the deterministic-replay
// collaborator spec.md names as an external, fixed-interface wrapper
// around the core's controller state mutator.
package inputscript

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/genesis-core/megacore/internal/controller"
)

var buttonAlphabet = map[string]controller.Button{
	"Up": controller.Up, "Down": controller.Down,
	"Left": controller.Left, "Right": controller.Right,
	"A": controller.A, "B": controller.B, "C": controller.C,
	"Start": controller.Start,
	"X":     controller.X, "Y": controller.Y, "Z": controller.Z,
	"Mode": controller.Mode,
}

// Event is one row of the script: at Frame, Port's held-button mask
// becomes Buttons.
type Event struct {
	Frame   int
	Port    int
	Buttons controller.Button
}

// Script is a parsed recording, sorted by frame, ready to be replayed
// frame-by-frame against a set of live controller ports.
type Script struct {
	events []Event
	pos    int
}

// Parse reads a three-column CSV (frame,port,buttons) where buttons is
// a "|"-separated list drawn from the 12-button alphabet (Up, Down,
// Left, Right, A, B, C, Start, X, Y, Z, Mode). Port is 1-indexed
// (1, 2, or 3 for the expansion port).
func Parse(r io.Reader) (*Script, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	var events []Event
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("inputscript: %w", err)
		}

		frame, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("inputscript: bad frame number %q: %w", rec[0], err)
		}
		port, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("inputscript: bad port number %q: %w", rec[1], err)
		}

		var mask controller.Button
		for _, name := range strings.Split(rec[2], "|") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			b, ok := buttonAlphabet[name]
			if !ok {
				return nil, fmt.Errorf("inputscript: unknown button %q", name)
			}
			mask |= b
		}

		events = append(events, Event{Frame: frame, Port: port, Buttons: mask})
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Frame < events[j].Frame })
	return &Script{events: events}, nil
}

// Apply pushes every event scheduled for frame (or earlier, if Apply
// has skipped frames) into ports, keyed by Event.Port. Calling Apply
// with frames in increasing order drains the script exactly once.
func (s *Script) Apply(frame int, ports map[int]*controller.Pad) {
	for s.pos < len(s.events) && s.events[s.pos].Frame <= frame {
		ev := s.events[s.pos]
		if pad, ok := ports[ev.Port]; ok {
			pad.Buttons = ev.Buttons
		}
		s.pos++
	}
}

// Done reports whether every event in the script has been applied.
func (s *Script) Done() bool { return s.pos >= len(s.events) }

// Reset rewinds playback to the first event.
func (s *Script) Reset() { s.pos = 0 }
