// Command frontend is the windowed, real-time presentation of the
// core: an ebiten window driven by the VDP framebuffer, oto/v3 audio
// streamed from the YM2612's output samples, keyboard-to-pad input,
// and a clipboard shortcut for copying the running cartridge's title.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/genesis-core/megacore/internal/romfile"
	"github.com/genesis-core/megacore/internal/savestate"
	"github.com/genesis-core/megacore/internal/scheduler"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "frontend: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	romPath := flag.String("rom", "", "cartridge ROM image")
	pal := flag.Bool("pal", false, "run in PAL (50Hz) instead of NTSC (60Hz)")
	scale := flag.Int("scale", 2, "integer window scale factor")
	loadPath := flag.String("load", "", "load a save state before starting")
	flag.Parse()

	if *romPath == "" {
		return fmt.Errorf("-rom is required")
	}

	image, err := os.ReadFile(*romPath)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}
	cart, err := romfile.Load(image)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	region := scheduler.NTSC
	if *pal {
		region = scheduler.PAL
	}
	m := scheduler.New(cart.ROM, region)
	cart.Attach(m.Bus)

	if *loadPath != "" {
		f, err := os.Open(*loadPath)
		if err != nil {
			return fmt.Errorf("opening save state: %w", err)
		}
		err = savestate.Load(f, m, cart.ROM)
		f.Close()
		if err != nil {
			return fmt.Errorf("loading save state: %w", err)
		}
	}

	audio, err := newAudioPlayer(m)
	if err != nil {
		return fmt.Errorf("initializing audio: %w", err)
	}
	audio.Start()
	defer audio.Close()

	g := newGame(m, cart, audio)

	title := fmt.Sprintf("%s [%s]", cart.DomesticName, cart.Serial)
	if title == " []" {
		title = "megacore"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(320*(*scale), 240*(*scale))
	ebiten.SetWindowResizable(true)
	ebiten.SetVsyncEnabled(true)

	return ebiten.RunGame(g)
}
