package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// statusLine prints a single overwritten progress line to stdout,
// putting the terminal into raw mode first so carriage returns move
// the cursor without the shell echoing a new prompt line underneath.
// Mirrors the raw-mode save/restore discipline used elsewhere in this
// codebase for interactive terminal I/O.
type statusLine struct {
	fd       int
	oldState *term.State
	active   bool
}

func newStatusLine() *statusLine {
	s := &statusLine{fd: int(os.Stdout.Fd())}
	if !term.IsTerminal(s.fd) {
		return s
	}
	old, err := term.MakeRaw(s.fd)
	if err != nil {
		return s
	}
	s.oldState = old
	s.active = true
	return s
}

func (s *statusLine) update(frame, total int, cycles int64) {
	line := fmt.Sprintf("frame %d/%d  cycles %d", frame+1, total, cycles)
	if s.active {
		fmt.Fprintf(os.Stdout, "\r%s\r", line)
	} else {
		fmt.Fprintln(os.Stdout, line)
	}
}

func (s *statusLine) finish() {
	if s.active {
		fmt.Fprintln(os.Stdout)
	}
}

func (s *statusLine) restore() {
	if s.active && s.oldState != nil {
		term.Restore(s.fd, s.oldState)
		s.active = false
	}
}
