package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/birthday-card/internal/card"
	"github.com/iburimskiy/birthday-card/internal/config"
)

// Cake dimensions
const (
	cakeWidth    = 260
	cakeHeight   = 120
	frostingH    = 28
	plateOverlap = 30
	candleWidth  = 14
	candleHeight = 70
	flameRadius  = 11
)

var (
	cakeColor     = color.RGBA{R: 0xe1, G: 0x70, B: 0x55, A: 0xff}
	frostingColor = color.RGBA{R: 0xff, G: 0xf5, B: 0xf7, A: 0xff}
	plateColor    = color.RGBA{R: 0xdf, G: 0xe6, B: 0xe9, A: 0xff}
	candleColor   = color.RGBA{R: 0x74, G: 0xb9, B: 0xff, A: 0xff}
	wickColor     = color.RGBA{R: 0x2d, G: 0x34, B: 0x36, A: 0xff}
)

// cakeLayout positions the cake in the middle of the lower half of the window.
type cakeLayout struct {
	x, y       float64 // top-left of the cake body
	candleX    float64 // left edge of the candle
	candleTop  float64
	flameX     float64
	flameY     float64
	plateWidth float64
}

func layoutCake(w, h int) cakeLayout {
	x := float64(w)/2 - cakeWidth/2
	y := float64(h)*0.62 - cakeHeight/2
	candleTop := y - candleHeight
	return cakeLayout{
		x:          x,
		y:          y,
		candleX:    float64(w)/2 - candleWidth/2,
		candleTop:  candleTop,
		flameX:     float64(w) / 2,
		flameY:     candleTop - flameRadius - 4,
		plateWidth: cakeWidth + 2*plateOverlap,
	}
}

func (g *Game) drawCake(screen *ebiten.Image, l cakeLayout) {
	// Plate
	vector.DrawFilledRect(screen, float32(l.x-plateOverlap), float32(l.y+cakeHeight-6), float32(l.plateWidth), 12, plateColor, true)

	// Body and frosting
	vector.DrawFilledRect(screen, float32(l.x), float32(l.y), cakeWidth, cakeHeight, cakeColor, true)
	vector.DrawFilledRect(screen, float32(l.x), float32(l.y), cakeWidth, frostingH, frostingColor, true)
	for i := 0; i < 6; i++ {
		cx := l.x + 22 + float64(i)*43
		vector.DrawFilledCircle(screen, float32(cx), float32(l.y+frostingH), 12, frostingColor, true)
	}

	// Candle and wick
	vector.DrawFilledRect(screen, float32(l.candleX), float32(l.candleTop), candleWidth, candleHeight, candleColor, true)
	vector.StrokeLine(screen, float32(l.flameX), float32(l.candleTop), float32(l.flameX), float32(l.candleTop-6), 2, wickColor, true)
}

// drawFlame draws the candle flame; once blown it fades out over config.FlameFadeTime.
func (g *Game) drawFlame(screen *ebiten.Image, l cakeLayout, el *card.Elements) {
	alpha := 1.0
	if el.FlameOff {
		alpha = 1 - progress(g.loop.Now()-el.FlameOffAt, config.FlameFadeTime)
	}
	if alpha <= 0 {
		return
	}

	t := g.loop.Now().Seconds()
	flicker := math.Sin(t*13) * math.Sin(t*7.3)
	r, gv, b := hsvToRgb(38+8*flicker, 0.85, 1)
	outer := color.RGBA{R: r, G: gv, B: b, A: 255}
	inner := color.RGBA{R: 255, G: 250, B: 220, A: 255}

	radius := flameRadius * (1 + 0.08*flicker)
	drawFaded(screen, l.flameX, l.flameY, radius, outer, alpha)
	drawFaded(screen, l.flameX, l.flameY-radius*0.6, radius*0.7, outer, alpha)
	drawFaded(screen, l.flameX, l.flameY+radius*0.2, radius*0.45, inner, alpha)
}

// drawSmoke draws the puff rising from the wick. Its size follows the
// loudness of the blow sound when audio is available.
func (g *Game) drawSmoke(screen *ebiten.Image, l cakeLayout, el *card.Elements) {
	if !el.SmokePuff {
		return
	}
	p := progress(g.loop.Now()-el.SmokeAt, config.SmokePuffTime)
	if p >= 1 {
		return
	}

	level := 0.0
	if g.player != nil {
		level = g.player.Level()
	}

	grey := color.RGBA{R: 0xb2, G: 0xbe, B: 0xc3, A: 255}
	for i := 0; i < 3; i++ {
		offset := float64(i) * 0.15
		q := clamp01(p - offset)
		if q <= 0 {
			continue
		}
		rise := q * 90
		drift := math.Sin(q*math.Pi*2+float64(i)) * 10
		radius := (6 + 20*q) * (1 + level)
		drawFaded(screen, l.flameX+drift, l.candleTop-8-rise, radius, grey, (1-q)*0.8)
	}
}

func drawFaded(screen *ebiten.Image, x, y, r float64, c color.RGBA, alpha float64) {
	a := clamp01(alpha)
	// vector expects premultiplied colors
	faded := color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), faded, true)
}
