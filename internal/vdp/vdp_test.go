package vdp

import "testing"

func TestDMAFillCompletes(t *testing.T) {
	v := New()
	v.Reg[1] = 0x10  // DMA enable
	v.Reg[15] = 1    // auto-increment by 1
	v.Reg[19] = 0x10 // length low: 16 bytes
	v.Reg[20] = 0x00
	v.Reg[23] = 0x80 // DMA mode bits 7-6 = 10 (fill)

	v.writeControl(0x5000) // first latch word: addr bits + code bit0
	v.writeControl(0x0080) // second latch word: completes addr/code, arms DMA

	if !v.dma.fillArmed {
		t.Fatalf("expected fill-mode DMA to be armed after control latch completes")
	}
	if v.status&StatusDMA == 0 {
		t.Fatalf("expected status DMA bit set once armed")
	}

	v.writeData(0x5A5A) // fill byte arrives, first byte written immediately

	v.Step(32) // drain the remaining bytes

	if v.DMAActive() {
		t.Fatalf("expected DMA to complete within the stepped budget")
	}
	if v.status&StatusDMA != 0 {
		t.Fatalf("expected status DMA bit cleared on completion")
	}
	for i := uint16(0x1000); i < 0x1010; i++ {
		if v.VRAM[i] != 0x5A {
			t.Fatalf("VRAM[%#x] = %#x, want 0x5A", i, v.VRAM[i])
		}
	}
	if v.VRAM[0x1010] != 0 {
		t.Fatalf("fill must not overrun past the programmed length")
	}
}

func TestControlLatchClearsOnCompletion(t *testing.T) {
	v := New()

	v.writeControl(0x4000)
	if !v.latched {
		t.Fatalf("first control word must arm the latch")
	}

	v.writeControl(0x0000)
	if v.latched {
		t.Fatalf("second control word must clear the latch")
	}
}

func TestControlLatchClearsOnDataAccess(t *testing.T) {
	v := New()
	v.writeControl(0x4000)
	if !v.latched {
		t.Fatalf("expected latch armed after first control word")
	}
	v.writeData(0x1234)
	if v.latched {
		t.Fatalf("a data-port access must not leave a stale control latch armed")
	}
}

func TestImmediateRegisterWriteBypassesLatch(t *testing.T) {
	v := New()
	v.writeControl(0x8013) // register 0 = 0x13
	if v.latched {
		t.Fatalf("immediate register write must not arm the two-word latch")
	}
	if v.Reg[0] != 0x13 {
		t.Fatalf("Reg[0] = %#x, want 0x13", v.Reg[0])
	}
}

func TestStatusReadClearsFlagsButNotVBlank(t *testing.T) {
	v := New()
	v.status = StatusF | StatusVBlank | StatusSpriteOvf
	s := v.readStatus()
	if s&StatusF == 0 || s&StatusVBlank == 0 {
		t.Fatalf("status read should return the bits as they were before clearing")
	}
	if v.status&StatusF != 0 || v.status&StatusSpriteOvf != 0 {
		t.Fatalf("status read must clear F and sprite-overflow/collision bits")
	}
	if v.status&StatusVBlank == 0 {
		t.Fatalf("VBlank is cleared by the H/V counter, not by a status read")
	}
}

func TestVInterruptRaisedAtActiveLineBoundary(t *testing.T) {
	v := New()
	v.Reg[1] = 0x20 // V-interrupt enable
	for i := 0; i < v.scanlineTotal()*(v.activeLines()+1); i++ {
		v.tickPixel()
	}
	if v.PendingIRQLevel() != 6 {
		t.Fatalf("PendingIRQLevel() = %d, want 6 after entering V-blank", v.PendingIRQLevel())
	}
	v.AckIRQ()
	if v.PendingIRQLevel() != 0 {
		t.Fatalf("AckIRQ must clear the pending level")
	}
}
