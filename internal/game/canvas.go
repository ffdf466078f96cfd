package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/birthday-card/internal/config"
)

var pixel *ebiten.Image

// whitePixel is a 1x1 white image taken from the middle of a 3x3 one so that
// scaled draws do not bleed the edges.
func whitePixel() *ebiten.Image {
	if pixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		pixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return pixel
}

// canvas is the offscreen confetti layer, sized like the window.
type canvas struct {
	img  *ebiten.Image
	w, h int
}

func (c *canvas) Size() (int, int) { return c.w, c.h }

func (c *canvas) Clear() {
	if c.img != nil {
		c.img.Clear()
	}
}

func (c *canvas) FillRotatedRect(cx, cy, w, h, deg float64, clr color.RGBA) {
	if c.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(w, h)
	op.GeoM.Rotate(deg * config.DegreesToRadians)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	c.img.DrawImage(whitePixel(), op)
}

// resize reallocates the layer, dropping what was drawn, like a canvas
// whose width is reassigned.
func (c *canvas) resize(w, h int) {
	if c.img != nil {
		c.img.Deallocate()
		c.img = nil
	}
	c.w, c.h = w, h
	if w > 0 && h > 0 {
		c.img = ebiten.NewImage(w, h)
	}
}
