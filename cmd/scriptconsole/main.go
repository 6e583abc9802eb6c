// Command scriptconsole runs a cartridge under an interactive Lua
// console: the machine advances on its own goroutine while a REPL
// reads Lua statements from stdin and evaluates them against tables
// bound to the live cpu68k, z80, vdp, ym2612, bus, and machine state.
// Supervision of the two goroutines follows the same
// single-errgroup-creation-point pattern the scheduler package itself
// uses: one place creates them, one place reports their failure.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"github.com/genesis-core/megacore/internal/romfile"
	"github.com/genesis-core/megacore/internal/scheduler"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "scriptconsole: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	romPath := flag.String("rom", "", "cartridge ROM image")
	pal := flag.Bool("pal", false, "run in PAL (50Hz) instead of NTSC (60Hz)")
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

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	m.Run(ctx, g)

	console := newConsole(m)
	g.Go(func() error {
		return console.repl(ctx, bufio.NewScanner(os.Stdin))
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
