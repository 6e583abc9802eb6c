package ym2612

import "testing"

func TestBusyAssertedAfterDataWrite(t *testing.T) {
	c := New()
	if c.ReadStatus()&0x80 != 0 {
		t.Fatalf("BUSY must be clear at power-on")
	}
	c.WriteAddress(0, 0x30)
	c.WriteData(0, 0x11)
	if c.ReadStatus()&0x80 == 0 {
		t.Fatalf("BUSY must be set immediately after a data-port write")
	}
	c.Step(busyHoldYM2612 - 1)
	if c.ReadStatus()&0x80 == 0 {
		t.Fatalf("BUSY must still be held just before the hold time elapses")
	}
	c.Step(1)
	if c.ReadStatus()&0x80 != 0 {
		t.Fatalf("BUSY must clear once the hold time elapses")
	}
}

func TestFNumLatchIsAtomicOnLowWrite(t *testing.T) {
	c := New()

	c.WriteAddress(0, 0xA4)
	c.WriteData(0, 0x12) // block 2, fnum-high 2

	fnum, block := c.FNum(0)
	if fnum != 0 || block != 0 {
		t.Fatalf("high/block write must not take effect before the paired low write: got fnum=%#x block=%d", fnum, block)
	}

	c.WriteAddress(0, 0xA0)
	c.WriteData(0, 0x34)

	fnum, block = c.FNum(0)
	if fnum != 0x234 || block != 2 {
		t.Fatalf("fnum=%#x block=%d, want fnum=0x234 block=2", fnum, block)
	}
}

func TestTimerAOverflowFlag(t *testing.T) {
	c := New()
	c.WriteAddress(0, 0x24)
	c.WriteData(0, 0xFF) // timer A load high bits, keeps the counter close to overflow
	c.WriteAddress(0, 0x25)
	c.WriteData(0, 0x03)
	c.WriteAddress(0, 0x27)
	c.WriteData(0, 0x01) // start timer A

	if c.ReadStatus()&0x01 != 0 {
		t.Fatalf("timer A overflow flag must start clear")
	}

	for i := 0; i < 24*64 && c.ReadStatus()&0x01 == 0; i++ {
		c.Step(1)
	}
	if c.ReadStatus()&0x01 == 0 {
		t.Fatalf("timer A overflow flag must eventually set while counting from a near-overflow load")
	}

	c.WriteAddress(0, 0x27)
	c.WriteData(0, 0x11) // reset the overflow flag, keep timer A running
	if c.ReadStatus()&0x01 != 0 {
		t.Fatalf("bit 4 of register $27 must clear the timer A overflow flag")
	}
}

func TestDACModeReplacesChannelSixOutput(t *testing.T) {
	c := New()
	c.WriteAddress(0, 0x2A)
	c.WriteData(0, 0xFF)
	c.WriteAddress(0, 0x2B)
	c.WriteData(0, 0x80) // DAC enable

	if !c.dacEnable {
		t.Fatalf("register $2B bit 7 must enable DAC passthrough")
	}
	if c.dacSample != 0xFF {
		t.Fatalf("register $2A must latch the DAC sample byte")
	}

	c.Step(24) // one sample period
	if c.Left == 0 && c.Right == 0 {
		t.Fatalf("a non-center DAC sample with channel 6 panned to both sides must produce non-zero output")
	}
}

func TestKeyOnStartsEnvelopeFromAttack(t *testing.T) {
	c := New()
	c.channels[0].ops[0].ar = 10
	c.channels[0].keyOn(0x01)
	if c.channels[0].ops[0].envPhaseSt != envAttack {
		t.Fatalf("key-on with a non-maximal attack rate must enter the attack phase")
	}
	if !c.channels[0].ops[0].keyOn {
		t.Fatalf("key-on must mark the operator as keyed on")
	}
	c.channels[0].keyOff(0x01)
	if c.channels[0].ops[0].envPhaseSt != envRelease {
		t.Fatalf("key-off must enter the release phase")
	}
}
