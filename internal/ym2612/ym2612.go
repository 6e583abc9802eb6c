// Package ym2612 implements the Mega Drive's FM sound chip: six
// four-operator FM channels, two hardware timers, the LFO, DAC
// passthrough on channel 6, and the two-address-port/one-data-port
// write protocol with its BUSY timing contract.
package ym2612

// Profile selects between the discrete YM2612's documented BUSY hold
// time and ladder-DAC quantization effect and the integrated YM3438's
// shorter hold and clean DAC, an Open Question spec.md leaves to the
// implementer to expose as a switch.
type Profile int

const (
	ProfileYM2612 Profile = iota
	ProfileYM3438
)

const (
	busyHoldYM2612 = 32
	busyHoldYM3438 = 12

	numChannels = 6
	numOperators = 4

	// lfoDividerTable is indexed by the 3-bit LFO frequency select in
	// register $22 bits 0-2.
)

var lfoDividerTable = [8]int{108, 77, 71, 67, 62, 44, 8, 5}

// Chip is the complete YM2612 register file and synthesis state.
type Chip struct {
	Profile Profile

	channels [numChannels]channel

	addrLatch [2]uint8 // last address-port write per register group

	lfoEnable bool
	lfoFreqSel uint8
	lfoCounter int
	lfoStep    int

	timerAValue  int // 10-bit counter, counts up from timerALoad
	timerALoad   int
	timerAEnable bool
	timerAOverflow bool

	timerBValue    int
	timerBLoad     int
	timerBEnable   bool
	timerBOverflow bool
	sampleCount16  int

	ch3SpecialMode bool

	dacEnable bool
	dacSample uint8

	busyDeadline int64 // internal-cycle timestamp; chip is busy while cycle < busyDeadline
	cycle        int64

	internalAccum int // fractional counter toward the 24-internal-cycle sample period

	Left, Right int16
}

func New() *Chip {
	c := &Chip{}
	c.Reset()
	return c
}

// Reset restores power-on defaults: both-channel panning, DAC
// disabled, timers stopped, LFO off, BUSY clear.
func (c *Chip) Reset() {
	*c = Chip{Profile: c.Profile}
	for i := range c.channels {
		c.channels[i].panL = true
		c.channels[i].panR = true
	}
}

func (c *Chip) busyHold() int64 {
	if c.Profile == ProfileYM3438 {
		return busyHoldYM3438
	}
	return busyHoldYM2612
}

// ReadStatus returns the two-bit timer-overflow status and BUSY flag
// in bit 7, matching the real port 0/2 status read.
func (c *Chip) ReadStatus() uint8 {
	var s uint8
	if c.timerAOverflow {
		s |= 1 << 0
	}
	if c.timerBOverflow {
		s |= 1 << 1
	}
	if c.cycle < c.busyDeadline {
		s |= 1 << 7
	}
	return s
}

// FNum returns the currently effective F-num/block pair for a channel
// (0-5); a paired $A4-$A7 write only lands here once the matching
// $A0-$A3 low write arrives.
func (c *Chip) FNum(channel int) (fnum uint16, block uint8) {
	ch := &c.channels[channel]
	return ch.fnum, ch.block
}

// WriteAddress latches the target register within the given group
// (0 = ports $A0-$A1 = channels 1-3, 1 = ports $A2-$A3 = channels 4-6).
func (c *Chip) WriteAddress(group int, reg uint8) {
	c.addrLatch[group] = reg
}

// WriteData commits val to the latched address in the given group and
// extends the BUSY deadline by the profile's hold time.
func (c *Chip) WriteData(group int, val uint8) {
	c.writeRegister(group, c.addrLatch[group], val)
	c.busyDeadline = c.cycle + c.busyHold()
}

// Step advances internal-cycle time; every 24 internal cycles it
// generates one output sample pair and ticks the timers and LFO.
func (c *Chip) Step(internalCycles int) {
	for i := 0; i < internalCycles; i++ {
		c.cycle++
		c.internalAccum++
		if c.internalAccum >= 24 {
			c.internalAccum -= 24
			c.tickSample()
		}
	}
}

func (c *Chip) tickSample() {
	c.tickTimerA()
	c.sampleCount16++
	if c.sampleCount16 >= 16 {
		c.sampleCount16 = 0
		c.tickTimerB()
	}
	if c.lfoEnable {
		c.lfoCounter++
		if c.lfoCounter >= lfoDividerTable[c.lfoFreqSel] {
			c.lfoCounter = 0
			c.lfoStep = (c.lfoStep + 1) & 0x7F
		}
	}
	c.mixSample()
}

func (c *Chip) tickTimerA() {
	if !c.timerAEnable {
		return
	}
	c.timerAValue++
	if c.timerAValue >= 1024 {
		c.timerAValue = c.timerALoad
		c.timerAOverflow = true
	}
}

func (c *Chip) tickTimerB() {
	if !c.timerBEnable {
		return
	}
	c.timerBValue++
	if c.timerBValue >= 256 {
		c.timerBValue = c.timerBLoad
		c.timerBOverflow = true
	}
}

// mixSample evaluates every channel's algorithm output for this
// sample and sums carriers into Left/Right, per the documented 9-bit
// truncation and ladder bias.
func (c *Chip) mixSample() {
	var left, right int32
	for i := range c.channels {
		ch := &c.channels[i]
		var sample int32
		if i == 5 && c.dacEnable {
			sample = (int32(c.dacSample) - 128) << 5
		} else {
			sample = ch.render(c.lfoStep, c.lfoEnable)
		}

		s9 := sample >> 5
		if c.Profile == ProfileYM2612 {
			if s9 >= 0 {
				s9++
			} else {
				s9--
			}
		}

		if ch.panL {
			left += s9
		}
		if ch.panR {
			right += s9
		}
	}
	c.Left = clamp16(left << 5)
	c.Right = clamp16(right << 5)
}

func clamp16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
