// Package card holds the state of the greeting card and reacts to clicks
// and window resizes.
package card

import (
	"image/color"
	"log"
	"time"

	"github.com/iburimskiy/birthday-card/internal/config"
	"github.com/iburimskiy/birthday-card/internal/sched"
)

// Elements is what the renderer shows besides the confetti.
type Elements struct {
	FlameOff   bool
	FlameOffAt time.Duration
	SmokePuff  bool
	SmokeAt    time.Duration

	TitleText  string
	TitleColor color.RGBA
	TitleSize  float64

	InstructionText   string
	InstructionColor  color.RGBA
	InstructionHidden bool
}

// Context is the whole mutable state of the card. It is owned by a
// Controller and only touched from the loop goroutine.
type Context struct {
	Blown    bool
	Elements Elements

	SurfaceWidth  int
	SurfaceHeight int
}

// Burster starts a confetti burst.
type Burster interface {
	StartBurst()
}

// Hooks are optional side effects. They run on the loop goroutine.
type Hooks struct {
	OnBlow      func()
	OnCelebrate func(text string)
	OnResize    func(w, h int)
}

type Controller struct {
	ctx    Context
	card   *config.Card
	loop   *sched.Loop
	burst  Burster
	hooks  Hooks
	resize *sched.Debouncer

	pendingW, pendingH int
}

func NewController(card *config.Card, loop *sched.Loop, burst Burster, hooks Hooks) *Controller {
	c := &Controller{
		card:  card,
		loop:  loop,
		burst: burst,
		hooks: hooks,
		ctx: Context{
			Elements: Elements{
				TitleText:        card.Title.Text,
				TitleColor:       card.Title.RGBA,
				TitleSize:        config.TitleSize,
				InstructionText:  card.Instruction.Text,
				InstructionColor: card.Instruction.RGBA,
			},
		},
	}
	c.resize = sched.NewDebouncer(loop, config.ResizeDebounce, c.applyResize)
	return c
}

// Context returns the current card state.
func (c *Controller) Context() *Context { return &c.ctx }

// Click blows the candle out. Only the first click has an effect; it reports
// whether this call did anything.
func (c *Controller) Click() bool {
	if c.ctx.Blown {
		return false
	}

	now := c.loop.Now()
	el := &c.ctx.Elements
	el.FlameOff, el.FlameOffAt = true, now
	el.SmokePuff, el.SmokeAt = true, now
	c.ctx.Blown = true
	log.Printf("Candle blown out at %v", now)

	if c.hooks.OnBlow != nil {
		c.hooks.OnBlow()
	}

	// wait for the flame transition before celebrating
	c.loop.AfterFunc(config.TitleDelay, c.celebrate)
	return true
}

func (c *Controller) celebrate() {
	el := &c.ctx.Elements
	el.TitleText = c.card.Title.CelebrationText
	el.TitleColor = c.card.Title.CelebrationRGBA

	c.loop.RequestFrame(func() {
		el.TitleSize = config.TitleShrunkSize
		el.InstructionHidden = true
	})

	c.burst.StartBurst()
	log.Printf("Confetti burst started at %v", c.loop.Now())

	if c.hooks.OnCelebrate != nil {
		c.hooks.OnCelebrate(el.TitleText)
	}
}

// SetSurfaceSize sizes the drawing surface immediately. Used once at startup.
func (c *Controller) SetSurfaceSize(w, h int) {
	c.pendingW, c.pendingH = w, h
	c.applyResize()
}

// Resize records a new window size; the surface follows once the size has
// been stable for config.ResizeDebounce.
func (c *Controller) Resize(w, h int) {
	c.pendingW, c.pendingH = w, h
	c.resize.Trigger()
}

func (c *Controller) applyResize() {
	if c.pendingW == c.ctx.SurfaceWidth && c.pendingH == c.ctx.SurfaceHeight {
		return
	}
	c.ctx.SurfaceWidth, c.ctx.SurfaceHeight = c.pendingW, c.pendingH
	if c.hooks.OnResize != nil {
		c.hooks.OnResize(c.pendingW, c.pendingH)
	}
}
