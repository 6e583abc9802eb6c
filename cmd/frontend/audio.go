package main

import (
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/genesis-core/megacore/internal/scheduler"
)

// ymInternalCyclesPerSample and ratioYM mirror ym2612's own sample
// cadence (tickSample fires every 24 internal cycles) and the
// scheduler's master-to-internal cycle ratio, giving the chip's true
// output sample rate.
const (
	ymInternalCyclesPerSample = 24
	ratioYM                   = 42
)

// audioRing is a single-producer/single-consumer FIFO of interleaved
// stereo float32 samples: the emulation loop pushes one pair every
// time it drains the chip, oto's player goroutine reads them out in
// order, holding the last sample on underrun rather than blocking.
// Read (oto's player goroutine) and push (the emulation loop) take the
// same mutex.
type audioRing struct {
	mu    sync.Mutex
	buf   []float32 // interleaved L,R, capacity pairs
	write int
	read  int
	last  [2]float32
}

func newAudioRing(capacityPairs int) *audioRing {
	return &audioRing{buf: make([]float32, capacityPairs*2)}
}

func (r *audioRing) pairs() int { return len(r.buf) / 2 }

func (r *audioRing) push(left, right int16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot := r.write % r.pairs()
	r.buf[slot*2] = float32(left) / 32768
	r.buf[slot*2+1] = float32(right) / 32768
	r.write++
	if r.write-r.read > r.pairs() {
		r.read = r.write - r.pairs() // drop the oldest unread sample on overflow
	}
}

// Read implements io.Reader for oto.Player.
func (r *audioRing) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(p) / 8 // 2 channels * 4 bytes/float32
	for i := 0; i < n; i++ {
		var l, rr float32
		if r.read < r.write {
			slot := r.read % r.pairs()
			l, rr = r.buf[slot*2], r.buf[slot*2+1]
			r.read++
			r.last = [2]float32{l, rr}
		} else {
			l, rr = r.last[0], r.last[1]
		}
		writeFloat32LE(p[i*8:], l)
		writeFloat32LE(p[i*8+4:], rr)
	}
	return n * 8, nil
}

func writeFloat32LE(p []byte, v float32) {
	bits := math.Float32bits(v)
	p[0] = byte(bits)
	p[1] = byte(bits >> 8)
	p[2] = byte(bits >> 16)
	p[3] = byte(bits >> 24)
}

// audioPlayer owns the oto context/player pair and the ring buffer the
// emulation loop feeds every time the YM2612 produces a new sample.
type audioPlayer struct {
	ctx    *oto.Context
	player *oto.Player
	ring   *audioRing
	m      *scheduler.Machine
}

func sampleRateFor(m *scheduler.Machine) int {
	return int(m.Region.MasterClockHz() / (ratioYM * ymInternalCyclesPerSample))
}

func newAudioPlayer(m *scheduler.Machine) (*audioPlayer, error) {
	ring := newAudioRing(8192)
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRateFor(m),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	return &audioPlayer{ctx: ctx, ring: ring, m: m}, nil
}

func (a *audioPlayer) Start() {
	a.player = a.ctx.NewPlayer(a.ring)
	a.player.Play()
}

// Drain pushes the chip's current output sample into the ring; the
// core exposes only the most recently computed Left/Right pair rather
// than a full sample history, so this is called once per Step() to
// approximate the chip's real output cadence rather than once per
// video frame.
func (a *audioPlayer) Drain() {
	a.ring.push(a.m.YM.Left, a.m.YM.Right)
}

func (a *audioPlayer) Close() {
	if a.player != nil {
		a.player.Close()
	}
}
