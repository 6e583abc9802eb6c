package ym2612

// OperatorState mirrors one operator's full register file plus its
// running phase/envelope state.
type OperatorState struct {
	DT, MUL, TL, RS, AR      uint8
	AM                       bool
	D1R, D2R, D1L, RR, SSGEG uint8

	Phase        uint32
	PhaseInc     uint32
	Attenuation  int
	EnvPhaseSt   envPhase
	SSGInvert    bool
	KeyOn        bool
	LastOut      int32
	LastOutPrev  int32
}

func (op *operator) snapshot() OperatorState {
	return OperatorState{
		DT: op.dt, MUL: op.mul, TL: op.tl, RS: op.rs, AR: op.ar, AM: op.am,
		D1R: op.d1r, D2R: op.d2r, D1L: op.d1l, RR: op.rr, SSGEG: op.ssgeg,
		Phase: op.phase, PhaseInc: op.phaseInc, Attenuation: op.attenuation,
		EnvPhaseSt: op.envPhaseSt, SSGInvert: op.ssgInvert, KeyOn: op.keyOn,
		LastOut: op.lastOut, LastOutPrev: op.lastOutPrev,
	}
}

func (op *operator) restore(s OperatorState) {
	op.dt, op.mul, op.tl, op.rs, op.ar, op.am = s.DT, s.MUL, s.TL, s.RS, s.AR, s.AM
	op.d1r, op.d2r, op.d1l, op.rr, op.ssgeg = s.D1R, s.D2R, s.D1L, s.RR, s.SSGEG
	op.phase, op.phaseInc, op.attenuation = s.Phase, s.PhaseInc, s.Attenuation
	op.envPhaseSt, op.ssgInvert, op.keyOn = s.EnvPhaseSt, s.SSGInvert, s.KeyOn
	op.lastOut, op.lastOutPrev = s.LastOut, s.LastOutPrev
}

// ChannelState mirrors one channel's routing, pan, and cached-frequency
// state plus its four operators.
type ChannelState struct {
	Ops [numOperators]OperatorState

	Algorithm, Feedback uint8
	PanL, PanR          bool
	AMS, PMS            uint8

	FNum  uint16
	Block uint8

	FNumLatchHigh   uint16
	BlockLatchHigh  uint8
	HaveLatchedHigh bool

	Ch3Special   bool
	SpecialFNum  [numOperators]uint16
	SpecialBlock [numOperators]uint8
}

func (ch *channel) snapshot() ChannelState {
	s := ChannelState{
		Algorithm: ch.algorithm, Feedback: ch.feedback,
		PanL: ch.panL, PanR: ch.panR, AMS: ch.ams, PMS: ch.pms,
		FNum: ch.fnum, Block: ch.block,
		FNumLatchHigh: ch.fnumLatchHigh, BlockLatchHigh: ch.blockLatchHigh,
		HaveLatchedHigh: ch.haveLatchedHigh, Ch3Special: ch.ch3Special,
		SpecialFNum: ch.specialFnum, SpecialBlock: ch.specialBlock,
	}
	for i := range ch.ops {
		s.Ops[i] = ch.ops[i].snapshot()
	}
	return s
}

func (ch *channel) restore(s ChannelState) {
	ch.algorithm, ch.feedback = s.Algorithm, s.Feedback
	ch.panL, ch.panR, ch.ams, ch.pms = s.PanL, s.PanR, s.AMS, s.PMS
	ch.fnum, ch.block = s.FNum, s.Block
	ch.fnumLatchHigh, ch.blockLatchHigh = s.FNumLatchHigh, s.BlockLatchHigh
	ch.haveLatchedHigh, ch.ch3Special = s.HaveLatchedHigh, s.Ch3Special
	ch.specialFnum, ch.specialBlock = s.SpecialFNum, s.SpecialBlock
	for i := range ch.ops {
		ch.ops[i].restore(s.Ops[i])
	}
}

// State is the complete chip state: every channel/operator plus the
// timers, LFO, DAC latch, and BUSY deadline.
type State struct {
	Profile Profile

	Channels [numChannels]ChannelState

	AddrLatch [2]uint8

	LFOEnable  bool
	LFOFreqSel uint8
	LFOCounter int
	LFOStep    int

	TimerAValue, TimerALoad int
	TimerAEnable, TimerAOverflow bool

	TimerBValue, TimerBLoad int
	TimerBEnable, TimerBOverflow bool
	SampleCount16 int

	Ch3SpecialMode bool

	DACEnable bool
	DACSample uint8

	BusyDeadline int64
	Cycle        int64

	InternalAccum int
}

// Snapshot captures the full chip state.
func (c *Chip) Snapshot() State {
	s := State{
		Profile: c.Profile, AddrLatch: c.addrLatch,
		LFOEnable: c.lfoEnable, LFOFreqSel: c.lfoFreqSel,
		LFOCounter: c.lfoCounter, LFOStep: c.lfoStep,
		TimerAValue: c.timerAValue, TimerALoad: c.timerALoad,
		TimerAEnable: c.timerAEnable, TimerAOverflow: c.timerAOverflow,
		TimerBValue: c.timerBValue, TimerBLoad: c.timerBLoad,
		TimerBEnable: c.timerBEnable, TimerBOverflow: c.timerBOverflow,
		SampleCount16: c.sampleCount16, Ch3SpecialMode: c.ch3SpecialMode,
		DACEnable: c.dacEnable, DACSample: c.dacSample,
		BusyDeadline: c.busyDeadline, Cycle: c.cycle,
		InternalAccum: c.internalAccum,
	}
	for i := range c.channels {
		s.Channels[i] = c.channels[i].snapshot()
	}
	return s
}

// Restore re-establishes a previously captured chip state.
func (c *Chip) Restore(s State) {
	c.Profile, c.addrLatch = s.Profile, s.AddrLatch
	c.lfoEnable, c.lfoFreqSel = s.LFOEnable, s.LFOFreqSel
	c.lfoCounter, c.lfoStep = s.LFOCounter, s.LFOStep
	c.timerAValue, c.timerALoad = s.TimerAValue, s.TimerALoad
	c.timerAEnable, c.timerAOverflow = s.TimerAEnable, s.TimerAOverflow
	c.timerBValue, c.timerBLoad = s.TimerBValue, s.TimerBLoad
	c.timerBEnable, c.timerBOverflow = s.TimerBEnable, s.TimerBOverflow
	c.sampleCount16, c.ch3SpecialMode = s.SampleCount16, s.Ch3SpecialMode
	c.dacEnable, c.dacSample = s.DACEnable, s.DACSample
	c.busyDeadline, c.cycle = s.BusyDeadline, s.Cycle
	c.internalAccum = s.InternalAccum
	for i := range c.channels {
		c.channels[i].restore(s.Channels[i])
	}
}
