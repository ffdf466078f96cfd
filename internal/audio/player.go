// Package audio plays the card's sound effects through the beep speaker.
package audio

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/birthday-card/internal/config"
)

const puffLength = 450 * time.Millisecond

// Player owns the speaker. A Player that failed to initialize stays usable
// and simply plays nothing.
type Player struct {
	format beep.Format
	rng    *rand.Rand
	tap    *levelTap
	ready  bool
	level  float64
}

func NewPlayer() *Player {
	return &Player{
		format: beep.Format{SampleRate: beep.SampleRate(config.SampleRate), NumChannels: 2, Precision: 2},
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Init opens the audio device.
func (p *Player) Init() error {
	sr := p.format.SampleRate
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	p.ready = true
	return nil
}

func (p *Player) Ready() bool { return p.ready }

// PlayPuff plays the blow-out sound and starts feeding Level.
func (p *Player) PlayPuff() {
	if !p.ready {
		return
	}
	t := newLevelTap(puffNoise(p.format.SampleRate, puffLength, p.rng), config.LevelRingSize)
	p.tap = t
	speaker.Play(beep.Seq(t, beep.Callback(t.silence)))
}

// PlayCelebration plays the fanfare.
func (p *Player) PlayCelebration() {
	if !p.ready {
		return
	}
	speaker.Play(fanfare(p.format.SampleRate))
}

// Level returns the smoothed loudness of the puff in [0, 1].
func (p *Player) Level() float64 {
	if p.tap == nil {
		return 0
	}
	mag := math.Pow(p.tap.rms(config.LevelWindow), 0.5)
	p.level = config.SmoothingFactor*p.level + (1-config.SmoothingFactor)*mag
	return clamp01(p.level)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
