package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/genesis-core/megacore/internal/scheduler"
)

// console wraps a Lua state bound to a running Machine; every binding
// is guarded by mu since the machine's own Run goroutine mutates the
// same state concurrently.
type console struct {
	mu sync.Mutex
	m  *scheduler.Machine
	L  *lua.LState
}

func newConsole(m *scheduler.Machine) *console {
	c := &console{m: m, L: lua.NewState()}
	c.registerMachine()
	c.registerCPU()
	c.registerZ80()
	c.registerVDP()
	c.registerYM()
	c.registerBus()
	return c
}

// repl reads one Lua statement per line from r and prints its result
// or error, until ctx is canceled or the input stream ends.
func (c *console) repl(ctx context.Context, scanner *bufio.Scanner) error {
	fmt.Println("scriptconsole ready — machine, cpu, z80, vdp, ym, bus tables are bound")
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.eval(line)
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (c *console) eval(src string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.L.DoString(src); err != nil {
		fmt.Println("error:", err)
	}
}

func (c *console) registerFn(table *lua.LTable, name string, fn lua.LGFunction) {
	c.L.SetField(table, name, c.L.NewFunction(fn))
}
