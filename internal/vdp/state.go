package vdp

// State is the complete VDP state a save-state needs: the three
// memory regions, all 24 registers, the control-port latch state
// machine, the H/V counters, the interrupt countdown, and the
// in-flight DMA engine. The Framebuffer is not included: it is wholly
// derived from VRAM/CRAM/VSRAM/Reg and is rebuilt by the next Step
// that crosses a scanline boundary.
type State struct {
	VRAM  [VRAMSize]byte
	CRAM  [CRAMSize]byte
	VSRAM [VSRAMSize]byte
	Reg   [24]uint8

	Latched   bool
	FirstWord uint16
	Code      uint8
	Addr      uint16

	ReadBuffer    uint16
	ReadBufferSet bool
	Status        uint16

	HCounter int
	VCounter int

	HIntCounter int
	PendingIRQ  int

	DMAActiveFlag bool
	DMAFillArmed  bool
	DMAMode       int
	DMALength     int
	DMASrcAddr    uint32
	DMADestCode   uint8
	DMAFillByte   uint8

	PSGLatch uint8
}

// Snapshot captures the full VDP state.
func (v *VDP) Snapshot() State {
	return State{
		VRAM: v.VRAM, CRAM: v.CRAM, VSRAM: v.VSRAM, Reg: v.Reg,
		Latched: v.latched, FirstWord: v.firstWord, Code: v.code, Addr: v.addr,
		ReadBuffer: v.readBuffer, ReadBufferSet: v.readBufferSet, Status: v.status,
		HCounter: v.HCounter, VCounter: v.VCounter,
		HIntCounter: v.hIntCounter, PendingIRQ: v.pendingIRQ,
		DMAActiveFlag: v.dma.active, DMAFillArmed: v.dma.fillArmed, DMAMode: v.dma.mode,
		DMALength: v.dma.length, DMASrcAddr: v.dma.srcAddr, DMADestCode: v.dma.destCode,
		DMAFillByte: v.dma.fillByte,
		PSGLatch:    v.psgLatch,
	}
}

// Restore re-establishes a previously captured state. SourceRead and
// Region, being wiring rather than emulated state, are left untouched.
func (v *VDP) Restore(s State) {
	v.VRAM, v.CRAM, v.VSRAM, v.Reg = s.VRAM, s.CRAM, s.VSRAM, s.Reg
	v.latched, v.firstWord, v.code, v.addr = s.Latched, s.FirstWord, s.Code, s.Addr
	v.readBuffer, v.readBufferSet, v.status = s.ReadBuffer, s.ReadBufferSet, s.Status
	v.HCounter, v.VCounter = s.HCounter, s.VCounter
	v.hIntCounter, v.pendingIRQ = s.HIntCounter, s.PendingIRQ
	v.dma.active, v.dma.fillArmed, v.dma.mode = s.DMAActiveFlag, s.DMAFillArmed, s.DMAMode
	v.dma.length, v.dma.srcAddr, v.dma.destCode = s.DMALength, s.DMASrcAddr, s.DMADestCode
	v.dma.fillByte = s.DMAFillByte
	v.psgLatch = s.PSGLatch
}
