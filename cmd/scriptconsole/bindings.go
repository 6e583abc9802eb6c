package main

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/genesis-core/megacore/internal/scheduler"
)

// registerMachine exposes machine.cycles(), machine.region(), and
// machine.step() for stepping by hand. The background Run goroutine is
// not paused while a script runs, so scripts mostly read state it is
// already advancing, but a single-stepped Step() is still useful from
// the console when debugging a stall.
func (c *console) registerMachine() {
	t := c.L.NewTable()
	c.registerFn(t, "cycles", func(L *lua.LState) int {
		L.Push(lua.LNumber(c.m.Cycles()))
		return 1
	})
	c.registerFn(t, "region", func(L *lua.LState) int {
		name := "NTSC"
		if c.m.Region == scheduler.PAL {
			name = "PAL"
		}
		L.Push(lua.LString(name))
		return 1
	})
	c.registerFn(t, "step", func(L *lua.LState) int {
		L.Push(lua.LNumber(c.m.Step()))
		return 1
	})
	c.L.SetGlobal("machine", t)
}

func (c *console) registerCPU() {
	t := c.L.NewTable()
	c.registerFn(t, "d", func(L *lua.LState) int {
		i := L.CheckInt(1)
		L.Push(lua.LNumber(c.m.CPU.Registers().D[i]))
		return 1
	})
	c.registerFn(t, "setd", func(L *lua.LState) int {
		i := L.CheckInt(1)
		v := uint32(L.CheckNumber(2))
		r := c.m.CPU.Registers()
		r.D[i] = v
		c.m.CPU.SetState(r)
		return 0
	})
	c.registerFn(t, "a", func(L *lua.LState) int {
		i := L.CheckInt(1)
		L.Push(lua.LNumber(c.m.CPU.Registers().A[i]))
		return 1
	})
	c.registerFn(t, "seta", func(L *lua.LState) int {
		i := L.CheckInt(1)
		v := uint32(L.CheckNumber(2))
		r := c.m.CPU.Registers()
		r.A[i] = v
		c.m.CPU.SetState(r)
		return 0
	})
	c.registerFn(t, "pc", func(L *lua.LState) int {
		L.Push(lua.LNumber(c.m.CPU.Registers().PC))
		return 1
	})
	c.registerFn(t, "sr", func(L *lua.LState) int {
		L.Push(lua.LNumber(c.m.CPU.Registers().SR))
		return 1
	})
	c.L.SetGlobal("cpu", t)
}

func (c *console) registerZ80() {
	t := c.L.NewTable()
	c.registerFn(t, "pc", func(L *lua.LState) int {
		L.Push(lua.LNumber(c.m.Z80.PC))
		return 1
	})
	c.registerFn(t, "af", func(L *lua.LState) int {
		L.Push(lua.LNumber(c.m.Z80.AF()))
		return 1
	})
	c.registerFn(t, "hl", func(L *lua.LState) int {
		L.Push(lua.LNumber(c.m.Z80.HL()))
		return 1
	})
	c.registerFn(t, "halted", func(L *lua.LState) int {
		L.Push(lua.LBool(c.m.Z80.Halted))
		return 1
	})
	c.L.SetGlobal("z80", t)
}

func (c *console) registerVDP() {
	t := c.L.NewTable()
	c.registerFn(t, "reg", func(L *lua.LState) int {
		i := L.CheckInt(1)
		L.Push(lua.LNumber(c.m.VDP.Reg[i]))
		return 1
	})
	c.registerFn(t, "pixel", func(L *lua.LState) int {
		x := L.CheckInt(1)
		y := L.CheckInt(2)
		L.Push(lua.LNumber(c.m.VDP.Framebuffer[y*320+x]))
		return 1
	})
	c.L.SetGlobal("vdp", t)
}

func (c *console) registerYM() {
	t := c.L.NewTable()
	c.registerFn(t, "status", func(L *lua.LState) int {
		L.Push(lua.LNumber(c.m.YM.ReadStatus()))
		return 1
	})
	c.registerFn(t, "left", func(L *lua.LState) int {
		L.Push(lua.LNumber(c.m.YM.Left))
		return 1
	})
	c.registerFn(t, "right", func(L *lua.LState) int {
		L.Push(lua.LNumber(c.m.YM.Right))
		return 1
	})
	c.L.SetGlobal("ym", t)
}

func (c *console) registerBus() {
	t := c.L.NewTable()
	c.registerFn(t, "readbyte", func(L *lua.LState) int {
		addr := uint32(L.CheckNumber(1))
		L.Push(lua.LNumber(c.m.Bus.ReadByte(addr)))
		return 1
	})
	c.registerFn(t, "writebyte", func(L *lua.LState) int {
		addr := uint32(L.CheckNumber(1))
		v := uint8(L.CheckNumber(2))
		c.m.Bus.WriteByte(addr, v)
		return 0
	})
	c.registerFn(t, "readword", func(L *lua.LState) int {
		addr := uint32(L.CheckNumber(1))
		L.Push(lua.LNumber(c.m.Bus.ReadWord(addr)))
		return 1
	})
	c.registerFn(t, "writeword", func(L *lua.LState) int {
		addr := uint32(L.CheckNumber(1))
		v := uint16(L.CheckNumber(2))
		c.m.Bus.WriteWord(addr, v)
		return 0
	})
	c.L.SetGlobal("bus", t)
}
