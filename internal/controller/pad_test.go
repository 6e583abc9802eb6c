package controller

import "testing"

func TestSixButtonDetectedAfterThreeRapidTHTransitions(t *testing.T) {
	p := NewPad()
	p.WriteCtrl(0x40) // TH configured as output

	th := true
	for i := 0; i < 6; i++ {
		th = !th
		var v uint8
		if th {
			v = 0x40
		}
		p.WriteData(v)
		p.Step(100) // well inside the timeout
	}

	if !p.SixButton() {
		t.Fatalf("expected 6-button mode after three TH transition pairs")
	}
}

func TestSixButtonCollapsesAfterIdleTimeout(t *testing.T) {
	p := NewPad()
	p.WriteCtrl(0x40)

	th := true
	for i := 0; i < 6; i++ {
		th = !th
		var v uint8
		if th {
			v = 0x40
		}
		p.WriteData(v)
		p.Step(10)
	}
	if !p.SixButton() {
		t.Fatalf("setup failed: expected 6-button mode before the idle test")
	}

	p.Step(extendedTimeoutCycles + 1)

	if p.SixButton() {
		t.Fatalf("expected the pad to collapse back to 3-button mode after the idle timeout")
	}
}

func TestReadDataReflectsHeldButtonsInThreeButtonMode(t *testing.T) {
	p := NewPad()
	p.WriteCtrl(0x40)
	p.Buttons = Up | Start

	p.WriteData(0x40) // TH high: directions + B/C
	high := p.ReadData()
	if high&0x01 != 0 {
		t.Fatalf("Up should read as 0 (pressed) on bit 0, got %08b", high)
	}

	p.WriteData(0x00) // TH low: directions + A/Start
	low := p.ReadData()
	if low&0x20 != 0 {
		t.Fatalf("Start should read as 0 (pressed) on bit 5, got %08b", low)
	}
}

func TestIOBlockDispatchesByPort(t *testing.T) {
	io := NewIOBlock()
	io.Port1.Buttons = A
	io.WriteByte(0xA10009, 0x40) // ctrl1: TH output
	io.WriteByte(0xA10003, 0x00) // data1: TH low -> A/Start nibble visible
	v := io.ReadByte(0xA10003)
	if v&0x10 != 0 {
		t.Fatalf("expected port 1 to report A held, got %08b", v)
	}

	io.WriteByte(0xA1000B, 0x40)
	io.WriteByte(0xA10005, 0x00)
	if io.Port2.ReadData()&0x10 == 0 {
		t.Fatalf("port 2 must not see port 1's buttons: %08b", io.Port2.ReadData())
	}
}
