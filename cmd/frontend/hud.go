package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawHUD renders a single line of status text in the top-left corner
// using x/image's bundled 7x13 bitmap font, the way debug_overlay.go
// renders its monitor text onto an ebiten.Image — but sourced from
// golang.org/x/image's basicfont package instead of a hand-rolled glyph
// table, since this HUD has no need for a custom bitmap font.
func drawHUD(screen *ebiten.Image, text string) {
	face := basicfont.Face7x13
	bounds, _ := font.BoundString(face, text)
	width := (bounds.Max.X - bounds.Min.X).Ceil()
	height := face.Metrics().Height.Ceil()
	if width <= 0 || height <= 0 {
		return
	}

	img := image.NewRGBA(image.Rect(0, 0, width+4, height+4))
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{0, 255, 0, 255}),
		Face: face,
		Dot:  fixed.P(2, height),
	}
	drawer.DrawString(text)

	hud := ebiten.NewImageFromImage(img)
	screen.DrawImage(hud, nil)
}
