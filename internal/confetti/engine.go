// Package confetti simulates a burst of falling paper pieces.
package confetti

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/birthday-card/internal/config"
	"github.com/iburimskiy/birthday-card/internal/sched"
)

// Particle is one piece of confetti. Its identity is its index in the burst.
type Particle struct {
	X, Y          float64
	W, H          float64
	Color         color.RGBA
	SpeedX        float64
	SpeedY        float64
	Rotation      float64 // degrees
	RotationSpeed float64 // degrees per frame

	retired bool
}

// Retired reports whether the piece fell off the surface after the burst
// stopped recycling.
func (p *Particle) Retired() bool { return p.retired }

// Surface is the drawing target of the engine.
type Surface interface {
	Size() (w, h int)
	Clear()
	// FillRotatedRect fills a w×h rectangle centred on (cx, cy), rotated by deg degrees.
	FillRotatedRect(cx, cy, w, h, deg float64, c color.RGBA)
}

// Scheduler is the part of sched.Loop the engine needs.
type Scheduler interface {
	RequestFrame(fn func()) sched.Handle
	CancelFrame(h sched.Handle)
	AfterFunc(d time.Duration, fn func()) sched.Handle
	Stop(h sched.Handle) bool
}

type Engine struct {
	surface Surface
	sched   Scheduler
	rng     *rand.Rand
	palette []color.RGBA

	particles []Particle
	active    bool
	visible   int
	frames    int

	frameID    sched.Handle
	lifetimeID sched.Handle
}

func NewEngine(surface Surface, s Scheduler, palette []color.RGBA, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{
		surface:   surface,
		sched:     s,
		rng:       rng,
		palette:   palette,
		particles: make([]Particle, 0, config.ConfettiCount),
	}
}

// uniform returns a value in [lo, hi).
func (e *Engine) uniform(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

// StartBurst replaces the current set with a fresh burst and keeps recycling
// fallen pieces for config.BurstLifetime.
func (e *Engine) StartBurst() {
	w, h := e.surface.Size()
	width, height := float64(w), float64(h)

	e.particles = e.particles[:0]
	e.active = true
	for i := 0; i < config.ConfettiCount; i++ {
		e.particles = append(e.particles, Particle{
			X:             e.rng.Float64() * width,
			Y:             e.rng.Float64()*height - height,
			W:             e.uniform(config.MinPieceWidth, config.MaxPieceWidth),
			H:             e.uniform(config.MinPieceHeight, config.MaxPieceHeight),
			Color:         e.pickColor(),
			SpeedY:        e.uniform(config.MinFallSpeed, config.MaxFallSpeed),
			SpeedX:        e.uniform(-config.MaxDriftSpeed, config.MaxDriftSpeed),
			Rotation:      e.rng.Float64() * config.FullTurnDegrees,
			RotationSpeed: e.uniform(-config.MaxSpinSpeed, config.MaxSpinSpeed),
		})
	}
	e.visible = len(e.particles)

	if e.lifetimeID != 0 {
		e.sched.Stop(e.lifetimeID)
	}
	e.lifetimeID = e.sched.AfterFunc(config.BurstLifetime, func() {
		e.lifetimeID = 0
		e.active = false
	})

	// a burst started while frames are still running reuses that loop
	if e.frameID == 0 {
		e.frameID = e.sched.RequestFrame(e.AdvanceFrame)
	}
}

func (e *Engine) pickColor() color.RGBA {
	if len(e.palette) == 0 {
		return color.RGBA{A: 255}
	}
	return e.palette[e.rng.IntN(len(e.palette))]
}

// AdvanceFrame moves, draws and recycles every piece, then decides whether
// another frame is needed.
func (e *Engine) AdvanceFrame() {
	e.frameID = 0
	e.frames++
	e.surface.Clear()

	w, h := e.surface.Size()
	width, height := float64(w), float64(h)

	visible := 0
	for i := range e.particles {
		p := &e.particles[i]
		if p.retired {
			continue
		}
		p.Y += p.SpeedY
		p.X += p.SpeedX
		p.Rotation += p.RotationSpeed

		e.surface.FillRotatedRect(p.X, p.Y, p.W, p.H, p.Rotation, p.Color)

		if p.Y > height {
			if e.active {
				p.Y = config.RecycleY
				p.X = e.rng.Float64() * width
				visible++
			} else {
				p.retired = true
			}
		} else {
			visible++
		}
	}
	e.visible = visible

	if e.active || visible > 0 {
		e.frameID = e.sched.RequestFrame(e.AdvanceFrame)
		return
	}
	e.Stop()
}

// Stop cancels the pending frame and leaves the surface blank.
func (e *Engine) Stop() {
	if e.frameID != 0 {
		e.sched.CancelFrame(e.frameID)
		e.frameID = 0
	}
	e.surface.Clear()
}

func (e *Engine) Active() bool { return e.active }

// Running reports whether a frame is scheduled.
func (e *Engine) Running() bool { return e.frameID != 0 }

// Visible returns the number of pieces counted as on screen by the last frame.
func (e *Engine) Visible() int { return e.visible }

// Frames returns how many frames have been advanced since the engine was created.
func (e *Engine) Frames() int { return e.frames }

// Particles exposes the current set. The slice is owned by the engine.
func (e *Engine) Particles() []Particle { return e.particles }
