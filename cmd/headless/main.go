// Command headless runs a cartridge image with no video or audio
// presentation: it steps the machine for a fixed frame budget (an
// optional input script is replayed along the way but does not end the
// run early), printing a raw-mode
// status line as it goes, and exits with a status code reflecting
// whether the run completed cleanly.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/genesis-core/megacore/internal/controller"
	"github.com/genesis-core/megacore/internal/gdbstub"
	"github.com/genesis-core/megacore/internal/inputscript"
	"github.com/genesis-core/megacore/internal/romfile"
	"github.com/genesis-core/megacore/internal/savestate"
	"github.com/genesis-core/megacore/internal/scheduler"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "headless: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	romPath := flag.String("rom", "", "cartridge ROM image")
	pal := flag.Bool("pal", false, "run in PAL (50Hz) instead of NTSC (60Hz)")
	frames := flag.Int("frames", 600, "number of video frames to run before exiting")
	scriptPath := flag.String("script", "", "optional input script (see internal/inputscript)")
	savePath := flag.String("save", "", "write a save state here after the run completes")
	loadPath := flag.String("load", "", "load a save state before the run starts")
	quiet := flag.Bool("quiet", false, "suppress the status line")
	gdbAddr := flag.String("gdb", "", "if set, listen here and serve a GDB remote-serial session instead of free-running")
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

	var script *inputscript.Script
	if *scriptPath != "" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			return fmt.Errorf("opening input script: %w", err)
		}
		script, err = inputscript.Parse(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("parsing input script: %w", err)
		}
	}

	if *gdbAddr != "" {
		return serveGDB(*gdbAddr, m)
	}

	ports := map[int]*controller.Pad{1: m.IO.Port1, 2: m.IO.Port2}

	var status *statusLine
	if !*quiet {
		status = newStatusLine()
		defer status.restore()
	}

	framesPerSecond := 60.0
	if *pal {
		framesPerSecond = 50.0
	}
	frameCycles := int64(m.Region.MasterClockHz() / framesPerSecond)

	for frame := 0; frame < *frames; frame++ {
		if script != nil {
			script.Apply(frame, ports)
		}
		var advanced int64
		for advanced < frameCycles {
			advanced += m.Step()
		}
		if status != nil {
			status.update(frame, *frames, m.Cycles())
		}
	}
	if status != nil {
		status.finish()
	}

	if *savePath != "" {
		f, err := os.Create(*savePath)
		if err != nil {
			return fmt.Errorf("creating save state: %w", err)
		}
		err = savestate.Save(f, m, cart.ROM)
		f.Close()
		if err != nil {
			return fmt.Errorf("writing save state: %w", err)
		}
	}

	return nil
}

// serveGDB accepts a single GDB remote-serial client and runs until it
// disconnects. Only one session at a time: the debugger owns the
// machine for the duration of the connection.
func serveGDB(addr string, m *scheduler.Machine) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening for a GDB client: %w", err)
	}
	defer ln.Close()

	fmt.Fprintf(os.Stdout, "waiting for a GDB remote-serial client on %s\n", addr)
	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accepting GDB client: %w", err)
	}
	defer conn.Close()

	stub := gdbstub.New(conn, m)
	if err := stub.Serve(); err != nil {
		fmt.Fprintf(os.Stderr, "GDB session ended: %v\n", err)
	}
	return nil
}
