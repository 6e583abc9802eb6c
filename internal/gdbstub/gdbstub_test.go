package gdbstub

import (
	"bufio"
	"encoding/hex"
	"net"
	"strings"
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

// client is a minimal GDB-remote-serial peer for exercising Stub
// without a real debugger attached.
type client struct {
	conn net.Conn
	r    *bufio.Reader
}

func newClient(conn net.Conn) *client {
	return &client{conn: conn, r: bufio.NewReader(conn)}
}

func (c *client) send(body string) string {
	checksum := 0
	for i := 0; i < len(body); i++ {
		checksum += int(body[i])
	}
	c.conn.Write([]byte("$" + body + "#"))
	c.conn.Write([]byte(hex.EncodeToString([]byte{byte(checksum)})))

	// consume the '+' ack
	c.r.ReadByte()

	reply, _ := c.r.ReadString('#')
	reply = strings.TrimPrefix(reply, "$")
	reply = strings.TrimSuffix(reply, "#")
	c.r.Discard(2) // reply checksum
	return reply
}

func TestReadRegistersRoundTrip(t *testing.T) {
	m := scheduler.New(nopROM(), scheduler.NTSC)
	serverConn, clientConn := net.Pipe()
	stub := New(serverConn, m)
	go stub.Serve()

	c := newClient(clientConn)
	reply := c.send("g")

	raw, err := hex.DecodeString(reply)
	if err != nil {
		t.Fatalf("reply was not valid hex: %v", err)
	}
	if len(raw) != numRegisters*4 {
		t.Fatalf("expected %d register bytes, got %d", numRegisters*4, len(raw))
	}

	pc := readBE32(raw[17*4:])
	if pc != m.CPU.Registers().PC {
		t.Fatalf("PC in register dump = %#x, want %#x", pc, m.CPU.Registers().PC)
	}
}

func TestSetAndHitBreakpoint(t *testing.T) {
	m := scheduler.New(nopROM(), scheduler.NTSC)
	serverConn, clientConn := net.Pipe()
	stub := New(serverConn, m)
	go stub.Serve()

	c := newClient(clientConn)
	reply := c.send("Z0,402,1")
	if reply != "OK" {
		t.Fatalf("expected OK setting breakpoint, got %q", reply)
	}

	reply = c.send("c")
	if reply != "S05" {
		t.Fatalf("expected S05 after hitting the breakpoint, got %q", reply)
	}
	if m.CPU.Registers().PC != 0x402 {
		t.Fatalf("PC = %#x, want 0x402", m.CPU.Registers().PC)
	}
}

func TestReadMemoryReflectsBusContents(t *testing.T) {
	m := scheduler.New(nopROM(), scheduler.NTSC)
	serverConn, clientConn := net.Pipe()
	stub := New(serverConn, m)
	go stub.Serve()

	c := newClient(clientConn)
	reply := c.send("m400,4")
	raw, err := hex.DecodeString(reply)
	if err != nil || len(raw) != 4 {
		t.Fatalf("expected 4 bytes of hex memory, got %q (err=%v)", reply, err)
	}
	if raw[0] != 0x4E || raw[1] != 0x71 {
		t.Fatalf("expected the NOP-filled ROM at $400, got % x", raw)
	}
}
