package main

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/genesis-core/megacore/internal/controller"
)

// inputRouter maps host keyboard state onto port 1's button mask each
// frame, plus a Ctrl+Shift+C shortcut that copies the running
// cartridge's name and serial to the system clipboard.
// Port 1 only: a second human player would need a second physical
// input device this module has no way to distinguish from the first.
type inputRouter struct {
	io    *controller.IOBlock
	label string

	clipboardOnce sync.Once
	clipboardOK   bool
}

func newInputRouter(io *controller.IOBlock, label string) *inputRouter {
	return &inputRouter{io: io, label: label}
}

var keyMap = map[ebiten.Key]controller.Button{
	ebiten.KeyArrowUp:    controller.Up,
	ebiten.KeyArrowDown:  controller.Down,
	ebiten.KeyArrowLeft:  controller.Left,
	ebiten.KeyArrowRight: controller.Right,
	ebiten.KeyZ:          controller.A,
	ebiten.KeyX:          controller.B,
	ebiten.KeyC:          controller.C,
	ebiten.KeyA:          controller.X,
	ebiten.KeyS:          controller.Y,
	ebiten.KeyD:          controller.Z,
	ebiten.KeyEnter:      controller.Start,
	ebiten.KeyBackspace:  controller.Mode,
}

func (r *inputRouter) poll() {
	var held controller.Button
	for key, button := range keyMap {
		if ebiten.IsKeyPressed(key) {
			held |= button
		}
	}
	r.io.Port1.Buttons = held

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		r.copyLabelToClipboard()
	}
}

func (r *inputRouter) copyLabelToClipboard() {
	r.clipboardOnce.Do(func() {
		r.clipboardOK = clipboard.Init() == nil
	})
	if !r.clipboardOK {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(r.label))
}
