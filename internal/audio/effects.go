package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// decayingTone is a sine at freq Hz whose amplitude halves every halfLife.
func decayingTone(sr beep.SampleRate, freq float64, length, halfLife time.Duration) beep.Streamer {
	total := sr.N(length)
	k := math.Ln2 / (halfLife.Seconds() * float64(sr))
	step := 2 * math.Pi * freq / float64(sr)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := min(len(samples), total-pos)
		for i := 0; i < n; i++ {
			v := math.Sin(step*float64(pos)) * math.Exp(-k*float64(pos))
			samples[i] = [2]float64{v, v}
			pos++
		}
		return n, true
	})
}

// puffNoise is a short breath: low-passed white noise with a fast attack and
// exponential release.
func puffNoise(sr beep.SampleRate, length time.Duration, rng *rand.Rand) beep.Streamer {
	total := sr.N(length)
	attack := sr.N(20 * time.Millisecond)
	k := 5.0 / float64(total)
	var lp float64
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := min(len(samples), total-pos)
		for i := 0; i < n; i++ {
			env := math.Exp(-k * float64(pos))
			if pos < attack {
				env *= float64(pos) / float64(attack)
			}
			lp += 0.15 * (rng.Float64()*2 - 1 - lp)
			v := lp * env
			samples[i] = [2]float64{v, v}
			pos++
		}
		return n, true
	})
}

// fanfare plays a rising major arpeggio followed by the full chord.
func fanfare(sr beep.SampleRate) beep.Streamer {
	notes := []float64{523.25, 659.25, 783.99, 1046.50}
	var seq []beep.Streamer
	for _, f := range notes[:3] {
		seq = append(seq, decayingTone(sr, f, 120*time.Millisecond, 60*time.Millisecond))
	}
	var chord []beep.Streamer
	for _, f := range notes {
		chord = append(chord, decayingTone(sr, f, 900*time.Millisecond, 250*time.Millisecond))
	}
	seq = append(seq, beep.Mix(chord...))

	return &effects.Volume{
		Streamer: beep.Seq(seq...),
		Base:     2,
		Volume:   -2.5,
	}
}
