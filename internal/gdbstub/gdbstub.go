// Package gdbstub implements the subset of the GDB remote serial
// protocol this module needs to drive the M68K core from an external
// debugger: read/write registers, read/write memory, continue, step,
// and software breakpoints. It is a thin adapter around the core's
// observer/mutator API — the command dispatch shape (a single-letter
// command table over a mutex-guarded machine handle) follows the same
// monitor-loop idiom used elsewhere in this codebase's debug tooling.
package gdbstub

import (
	"bufio"
	"fmt"
	"net"
	"sync"

	"github.com/genesis-core/megacore/internal/scheduler"
)

// Stub serves one GDB remote-serial session over a single net.Conn.
type Stub struct {
	mu      sync.Mutex
	conn    net.Conn
	r       *bufio.Reader
	machine *scheduler.Machine

	breakpoints map[uint32]bool
}

// New wraps conn around machine. Serve blocks processing packets until
// the connection closes or ctx-equivalent cancellation happens via
// conn.Close from another goroutine.
func New(conn net.Conn, machine *scheduler.Machine) *Stub {
	return &Stub{
		conn:        conn,
		r:           bufio.NewReader(conn),
		machine:     machine,
		breakpoints: make(map[uint32]bool),
	}
}

// Serve processes packets until the connection errors or closes.
func (s *Stub) Serve() error {
	for {
		pkt, err := s.readPacket()
		if err != nil {
			return err
		}
		reply := s.dispatch(pkt)
		if err := s.writePacket(reply); err != nil {
			return err
		}
	}
}

func (s *Stub) dispatch(pkt string) string {
	if len(pkt) == 0 {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch pkt[0] {
	case '?':
		return "S05" // SIGTRAP: report as though stopped by a breakpoint/step
	case 'g':
		return s.readRegisters()
	case 'G':
		return s.writeRegisters(pkt[1:])
	case 'm':
		return s.readMemory(pkt[1:])
	case 'M':
		return s.writeMemory(pkt[1:])
	case 'c':
		return s.continueExec()
	case 's':
		return s.stepOne()
	case 'Z':
		return s.setBreakpoint(pkt[1:])
	case 'z':
		return s.clearBreakpoint(pkt[1:])
	default:
		return "" // unsupported: GDB treats an empty reply as "unimplemented"
	}
}

func (s *Stub) readPacket() (string, error) {
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return "", err
		}
		switch b {
		case '+', '-':
			continue // ack/nack from a previous reply, ignore
		case 0x03:
			return "?", nil // Ctrl-C: treat as a halt query
		case '$':
		default:
			continue
		}
		break
	}

	var body []byte
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '#' {
			break
		}
		body = append(body, b)
	}
	// Consume and ignore the 2-hex checksum trailer.
	if _, err := s.r.Discard(2); err != nil {
		return "", err
	}
	if _, err := s.conn.Write([]byte{'+'}); err != nil {
		return "", err
	}
	return string(body), nil
}

func (s *Stub) writePacket(body string) error {
	checksum := 0
	for i := 0; i < len(body); i++ {
		checksum += int(body[i])
	}
	_, err := fmt.Fprintf(s.conn, "$%s#%02x", body, checksum&0xFF)
	return err
}
