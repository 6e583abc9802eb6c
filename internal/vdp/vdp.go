// Package vdp implements the Mega Drive's Video Display Processor: its
// VRAM/CRAM/VSRAM memory, the control-port address/code latch, the H/V
// counters and their interrupts, the three DMA modes, and the plane/
// sprite compositing pipeline that produces one framebuffer per field.
package vdp

// Region selects the master-clock-relative scanline geometry.
type Region int

const (
	NTSC Region = iota
	PAL
)

// HMode is the horizontal resolution mode selected by register 12 bit 0.
type HMode int

const (
	H32 HMode = iota
	H40
)

const (
	VRAMSize  = 0x10000
	CRAMSize  = 128
	VSRAMSize = 80
)

// Status register bits (read via the control port).
const (
	StatusFIFOEmpty = 1 << 9
	StatusFIFOFull  = 1 << 8
	StatusF         = 1 << 7 // V-interrupt pending, cleared on status read
	StatusSpriteOvf = 1 << 6
	StatusSpriteCol = 1 << 5
	StatusOddFrame  = 1 << 4
	StatusVBlank    = 1 << 3
	StatusHBlank    = 1 << 2
	StatusDMA       = 1 << 1
	StatusPAL       = 1 << 0
)

// VDP owns the display-side state of the console: chip memories, the
// 24 numbered registers, the control-port latch, and the DMA engine.
// PSG register writes are decoded (the address falls within the VDP's
// port window) but sunk rather than synthesized: the PSG is ambient
// plumbing the component table never budgets, unlike the YM2612.
type VDP struct {
	VRAM  [VRAMSize]byte
	CRAM  [CRAMSize]byte
	VSRAM [VSRAMSize]byte

	Reg [24]uint8

	latched   bool
	firstWord uint16
	code      uint8
	addr      uint16

	readBuffer     uint16
	readBufferSet  bool
	status         uint16

	HCounter int
	VCounter int
	Region   Region

	hIntCounter int
	pendingIRQ  int

	dma dmaEngine

	// SourceRead is installed by the scheduler so mem-to-VRAM DMA can
	// pull bytes from the 68K's physical address space without the
	// VDP owning a reference to the bus.
	SourceRead func(addr uint32) uint8

	psgLatch uint8

	Framebuffer [320 * 240]uint32
}

func New() *VDP {
	v := &VDP{}
	v.Reset()
	return v
}

func (v *VDP) Reset() {
	v.Reg = [24]uint8{}
	v.latched = false
	v.code = 0
	v.addr = 0
	v.readBufferSet = false
	v.status = StatusFIFOEmpty
	v.HCounter = 0
	v.VCounter = 0
	v.dma = dmaEngine{}
}

func (v *VDP) hMode() HMode {
	if v.Reg[12]&0x01 != 0 {
		return H40
	}
	return H32
}

func (v *VDP) scanlineTotal() int {
	if v.hMode() == H40 {
		return 420
	}
	return 342
}

func (v *VDP) fieldTotal() int {
	if v.Region == PAL {
		return 313
	}
	return 262
}

func (v *VDP) activeLines() int {
	if v.Reg[1]&0x08 != 0 {
		return 240
	}
	return 224
}

// DMAActive reports whether a DMA transfer is still in flight; the
// scheduler checks it once per quantum to decide whether to charge a
// DMA stall to the 68K.
func (v *VDP) DMAActive() bool { return v.dma.active }

// DMAStallCycles is charged by the scheduler to the 68K quantum while a
// DMA transfer to VRAM/CRAM/VSRAM is still running; the access argument
// does not change the figure.
func (v *VDP) DMAStallCycles(access uint32) int {
	if !v.dma.active {
		return 0
	}
	return 16
}

// PendingIRQLevel returns the highest-priority interrupt level the VDP
// currently asserts to the 68K: 6 for V-interrupt, 4 for H-interrupt,
// 0 for none.
func (v *VDP) PendingIRQLevel() int { return v.pendingIRQ }

// Step advances the VDP by the given number of VDP-pixel ticks (the
// scheduler hands it cycles already divided by the 4:1 master-to-pixel
// ratio), updating the H/V counters, raising H/V interrupts at their
// documented points, latching VBlank, and servicing any in-flight DMA.
func (v *VDP) Step(pixelCycles int) {
	for i := 0; i < pixelCycles; i++ {
		v.tickPixel()
	}
	if v.dma.active {
		v.dma.run(v, pixelCycles)
	}
}

func (v *VDP) tickPixel() {
	total := v.scanlineTotal()
	v.HCounter++
	if v.HCounter == total/2 {
		v.status |= StatusHBlank
	}
	if v.HCounter >= total {
		v.HCounter = 0
		v.status &^= StatusHBlank
		v.endOfLine()
	}
}

func (v *VDP) endOfLine() {
	active := v.activeLines()
	v.VCounter++

	if v.VCounter < active {
		if v.hIntCounter == 0 {
			v.hIntCounter = int(v.Reg[10])
			if v.Reg[0]&0x10 != 0 {
				v.raiseIRQ(4)
			}
		} else {
			v.hIntCounter--
		}
	} else {
		v.hIntCounter = int(v.Reg[10])
	}

	if v.VCounter == active {
		v.status |= StatusVBlank | StatusF
		if v.Reg[1]&0x20 != 0 {
			v.raiseIRQ(6)
		}
		v.renderFrame()
	}

	if v.VCounter >= v.fieldTotal() {
		v.VCounter = 0
		v.status &^= StatusVBlank
		v.status ^= StatusOddFrame
	}
}

func (v *VDP) raiseIRQ(level int) {
	if level > v.pendingIRQ {
		v.pendingIRQ = level
	}
}

// AckIRQ is called by the scheduler once it has delivered the pending
// level to the 68K.
func (v *VDP) AckIRQ() { v.pendingIRQ = 0 }
