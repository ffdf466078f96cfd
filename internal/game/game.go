// Package game renders the greeting card with ebiten and feeds it input.
package game

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/birthday-card/internal/audio"
	"github.com/iburimskiy/birthday-card/internal/card"
	"github.com/iburimskiy/birthday-card/internal/config"
	"github.com/iburimskiy/birthday-card/internal/confetti"
	"github.com/iburimskiy/birthday-card/internal/notify"
	"github.com/iburimskiy/birthday-card/internal/sched"
)

type Game struct {
	card     *config.Card
	loop     *sched.Loop
	ctrl     *card.Controller
	engine   *confetti.Engine
	canvas   *canvas
	player   *audio.Player
	notifier *notify.Notifier

	titleFont *text.GoTextFaceSource
	bodyFont  *text.GoTextFaceSource

	// window size as last reported by Layout
	outsideW, outsideH int
	reportedW          int
	reportedH          int
	sized              bool

	// input edge detection
	prevKey map[ebiten.Key]bool

	showDebug bool
	lastErr   error
}

// NewGame wires the card. player and notifier may be nil.
func NewGame(c *config.Card, player *audio.Player, notifier *notify.Notifier) (*Game, error) {
	titleFont, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load title font: %w", err)
	}
	bodyFont, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load body font: %w", err)
	}

	g := &Game{
		card:      c,
		loop:      sched.NewLoop(),
		canvas:    &canvas{},
		player:    player,
		notifier:  notifier,
		titleFont: titleFont,
		bodyFont:  bodyFont,
		prevKey:   map[ebiten.Key]bool{},
	}
	g.engine = confetti.NewEngine(g.canvas, g.loop, c.Confetti.Colors, nil)
	g.ctrl = card.NewController(c, g.loop, g.engine, card.Hooks{
		OnBlow:      g.onBlow,
		OnCelebrate: g.onCelebrate,
		OnResize:    g.canvas.resize,
	})
	return g, nil
}

func (g *Game) onBlow() {
	if g.player != nil {
		g.player.PlayPuff()
	}
}

func (g *Game) onCelebrate(msg string) {
	if g.player != nil {
		g.player.PlayCelebration()
	}
	if g.notifier != nil {
		g.notifier.Celebrate(msg)
	}
}

func (g *Game) Update() error {

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeyF1) {
		g.showDebug = !g.showDebug
	}

	g.trackWindowSize()

	// The whole card is the click target
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		g.ctrl.Click()
	}

	g.loop.Advance(time.Second / time.Duration(ebiten.TPS()))

	if g.notifier != nil {
		if err := g.notifier.Err(); err != nil {
			g.lastErr = err
		}
	}
	return nil
}

// trackWindowSize sizes the confetti layer on the first tick and debounces
// every later change.
func (g *Game) trackWindowSize() {
	w, h := g.outsideW, g.outsideH
	if w == 0 || h == 0 {
		return
	}
	if !g.sized {
		g.ctrl.SetSurfaceSize(w, h)
		g.reportedW, g.reportedH, g.sized = w, h, true
		return
	}
	if w != g.reportedW || h != g.reportedH {
		g.reportedW, g.reportedH = w, h
		g.ctrl.Resize(w, h)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.card.BackgroundColor)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	el := &g.ctrl.Context().Elements
	l := layoutCake(w, h)

	g.drawCake(screen, l)
	g.drawFlame(screen, l, el)
	g.drawSmoke(screen, l, el)
	g.drawTexts(screen, w, h, el)

	if g.canvas.img != nil {
		screen.DrawImage(g.canvas.img, nil)
	}

	if g.showDebug || g.lastErr != nil {
		g.drawStatus(screen)
	}
}

func (g *Game) drawTexts(screen *ebiten.Image, w, h int, el *card.Elements) {
	title := &text.GoTextFace{Source: g.titleFont, Size: el.TitleSize}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(w)/2, float64(h)*0.18)
	op.ColorScale.ScaleWithColor(el.TitleColor)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, el.TitleText, title, op)

	if el.InstructionHidden {
		return
	}
	body := &text.GoTextFace{Source: g.bodyFont, Size: config.InstructionSize}
	op = &text.DrawOptions{}
	op.GeoM.Translate(float64(w)/2, float64(h)*0.18+el.TitleSize*1.6)
	op.ColorScale.ScaleWithColor(el.InstructionColor)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, el.InstructionText, body, op)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	cw, ch := g.canvas.Size()
	status := fmt.Sprintf("t=%s  surface=%dx%d  pieces=%d  visible=%d  active=%v  TPS=%.0f",
		formatDuration(g.loop.Now()), cw, ch,
		len(g.engine.Particles()), g.engine.Visible(), g.engine.Active(), ebiten.ActualTPS())
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, config.DebugStatusLineY)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return config.WindowWidth, config.WindowHeight
	}
	g.outsideW, g.outsideH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// SetError records a non-fatal error to show on the status line.
func (g *Game) SetError(err error) { g.lastErr = err }
