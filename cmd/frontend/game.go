package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/genesis-core/megacore/internal/romfile"
	"github.com/genesis-core/megacore/internal/scheduler"
)

// game implements ebiten.Game, driving the machine one video frame's
// worth of master cycles per Update call and presenting the VDP's
// framebuffer each Draw call.
type game struct {
	m     *scheduler.Machine
	cart  *romfile.Cartridge
	audio *audioPlayer

	frameCycles int64

	rgba       []byte
	img        *ebiten.Image
	input      *inputRouter
	showHUD    bool
	frameCount uint64
}

func newGame(m *scheduler.Machine, cart *romfile.Cartridge, audio *audioPlayer) *game {
	fps := 60.0
	if m.Region == scheduler.PAL {
		fps = 50.0
	}
	return &game{
		m:           m,
		cart:        cart,
		audio:       audio,
		frameCycles: int64(m.Region.MasterClockHz() / fps),
		rgba:        make([]byte, 320*240*4),
		input:       newInputRouter(m.IO, fmt.Sprintf("%s [%s]", cart.DomesticName, cart.Serial)),
		showHUD:     true,
	}
}

func (g *game) Update() error {
	g.input.poll()

	var advanced int64
	for advanced < g.frameCycles {
		advanced += g.m.Step()
		g.audio.Drain()
	}
	g.frameCount++
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(320, 240)
	}
	fb := g.m.VDP.Framebuffer
	for i, px := range fb {
		o := i * 4
		g.rgba[o] = byte(px >> 16)   // R
		g.rgba[o+1] = byte(px >> 8)  // G
		g.rgba[o+2] = byte(px)       // B
		g.rgba[o+3] = byte(px >> 24) // A
	}
	g.img.WritePixels(g.rgba)
	screen.DrawImage(g.img, nil)

	if g.showHUD {
		drawHUD(screen, fmt.Sprintf("%s  frame %d", g.cart.Serial, g.frameCount))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 320, 240
}
