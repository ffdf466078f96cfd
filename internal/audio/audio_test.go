package audio

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/faiface/beep"
)

// constant streams n samples of value v.
func constant(v float64, n int) beep.Streamer {
	left := n
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left == 0 {
			return 0, false
		}
		k := min(len(samples), left)
		for i := 0; i < k; i++ {
			samples[i] = [2]float64{v, v}
		}
		left -= k
		return k, true
	})
}

// drain streams s to the end and returns the number of samples and the peak.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Max(math.Abs(smp[0]), math.Abs(smp[1])))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestLevelTapRMS(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		count  int
		window int
		want   float64
	}{
		{"empty", 0.5, 0, 128, 0},
		{"full window", 0.5, 256, 128, 0.5},
		{"partially filled", 0.25, 64, 128, 0.25},
		{"wrapped ring", 0.8, 1000, 300, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tap := newLevelTap(constant(tt.value, tt.count), 512)
			drain(tap)
			got := tap.rms(tt.window)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("rms(%d) = %v, want %v", tt.window, got, tt.want)
			}
		})
	}
}

func TestLevelTapSilence(t *testing.T) {
	tap := newLevelTap(constant(1, 100), 64)
	drain(tap)
	tap.silence()
	if got := tap.rms(64); got != 0 {
		t.Errorf("rms after silence = %v, want 0", got)
	}
}

func TestEffectsEnd(t *testing.T) {
	sr := beep.SampleRate(44100)
	rng := rand.New(rand.NewPCG(3, 4))

	tests := []struct {
		name string
		s    beep.Streamer
		want int
	}{
		{"tone", decayingTone(sr, 440, 100*time.Millisecond, 50*time.Millisecond), sr.N(100 * time.Millisecond)},
		{"puff", puffNoise(sr, puffLength, rng), sr.N(puffLength)},
		{"fanfare", fanfare(sr), 3*sr.N(120*time.Millisecond) + sr.N(900*time.Millisecond)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, peak := drain(tt.s)
			if n != tt.want {
				t.Errorf("streamed %d samples, want %d", n, tt.want)
			}
			if peak == 0 || math.IsNaN(peak) {
				t.Errorf("peak = %v, want audible output", peak)
			}
		})
	}
}

func TestPlayerWithoutDevice(t *testing.T) {
	p := NewPlayer()
	p.PlayPuff()
	p.PlayCelebration()
	if p.Ready() {
		t.Error("Ready() = true without Init")
	}
	if got := p.Level(); got != 0 {
		t.Errorf("Level() = %v, want 0", got)
	}
}
