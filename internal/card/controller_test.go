package card

import (
	"image/color"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/iburimskiy/birthday-card/internal/config"
	"github.com/iburimskiy/birthday-card/internal/confetti"
	"github.com/iburimskiy/birthday-card/internal/sched"
)

const tick = 10 * time.Millisecond

type countingBurster struct{ starts int }

func (b *countingBurster) StartBurst() { b.starts++ }

type nullSurface struct{ w, h int }

func (s *nullSurface) Size() (int, int)                                    { return s.w, s.h }
func (s *nullSurface) Clear()                                              {}
func (s *nullSurface) FillRotatedRect(_, _, _, _, _ float64, _ color.RGBA) {}

func testCard(t *testing.T) *config.Card {
	t.Helper()
	card, err := config.DefaultCard()
	if err != nil {
		t.Fatalf("DefaultCard() error = %v", err)
	}
	return card
}

func TestClickTimeline(t *testing.T) {
	card := testCard(t)
	loop := sched.NewLoop()
	burst := &countingBurster{}
	blows, celebrations := 0, 0
	c := NewController(card, loop, burst, Hooks{
		OnBlow:      func() { blows++ },
		OnCelebrate: func(string) { celebrations++ },
	})
	el := &c.Context().Elements

	if !c.Click() {
		t.Fatal("first Click() = false")
	}
	if !el.FlameOff || !el.SmokePuff {
		t.Fatal("flame/smoke not toggled immediately")
	}
	if el.TitleText != card.Title.Text {
		t.Errorf("title changed before the delay: %q", el.TitleText)
	}

	for loop.Now() < config.TitleDelay-tick {
		loop.Advance(tick)
	}
	if el.TitleText != card.Title.Text || burst.starts != 0 {
		t.Fatalf("celebration started early at %v", loop.Now())
	}

	// the refresh reaching 300ms fires the timer, which queues the title frame
	loop.Advance(tick)
	if el.TitleText != card.Title.CelebrationText {
		t.Errorf("title = %q, want %q", el.TitleText, card.Title.CelebrationText)
	}
	if el.TitleColor != card.Title.CelebrationRGBA {
		t.Errorf("title color = %v, want %v", el.TitleColor, card.Title.CelebrationRGBA)
	}
	if el.TitleSize != config.TitleSize || el.InstructionHidden {
		t.Error("title shrank before the next refresh")
	}
	if burst.starts != 1 {
		t.Errorf("burst started %d times, want 1", burst.starts)
	}

	loop.Advance(tick)
	if el.TitleSize != config.TitleShrunkSize {
		t.Errorf("title size = %v, want %v", el.TitleSize, config.TitleShrunkSize)
	}
	if !el.InstructionHidden {
		t.Error("instruction still visible")
	}
	if blows != 1 || celebrations != 1 {
		t.Errorf("hooks ran blow=%d celebrate=%d, want 1 and 1", blows, celebrations)
	}
}

func TestClickIsIdempotent(t *testing.T) {
	card := testCard(t)
	loop := sched.NewLoop()
	burst := &countingBurster{}
	blows := 0
	c := NewController(card, loop, burst, Hooks{OnBlow: func() { blows++ }})

	c.Click()
	flameAt := c.Context().Elements.FlameOffAt
	loop.Advance(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		if c.Click() {
			t.Fatalf("Click() #%d after the first returned true", i+2)
		}
	}
	for i := 0; i < 100; i++ {
		loop.Advance(tick)
	}

	if blows != 1 {
		t.Errorf("OnBlow ran %d times, want 1", blows)
	}
	if burst.starts != 1 {
		t.Errorf("burst started %d times, want 1", burst.starts)
	}
	if c.Context().Elements.FlameOffAt != flameAt {
		t.Error("flame state mutated by a later click")
	}
}

func TestResizeIsDebounced(t *testing.T) {
	card := testCard(t)
	loop := sched.NewLoop()
	var sizes [][2]int
	c := NewController(card, loop, &countingBurster{}, Hooks{
		OnResize: func(w, h int) { sizes = append(sizes, [2]int{w, h}) },
	})
	c.SetSurfaceSize(800, 600)

	for i := 0; i < 10; i++ {
		c.Resize(800+i*10, 600+i*5)
		loop.Advance(tick)
	}
	if len(sizes) != 1 {
		t.Fatalf("surface resized %d times during the burst of events, want only the initial size", len(sizes))
	}

	for i := 0; i < 20; i++ {
		loop.Advance(tick)
	}
	if len(sizes) != 2 {
		t.Fatalf("resize actions = %d, want 2 (initial + debounced)", len(sizes))
	}
	if sizes[1] != [2]int{890, 645} {
		t.Errorf("last size = %v, want [890 645]", sizes[1])
	}
	ctx := c.Context()
	if ctx.SurfaceWidth != 890 || ctx.SurfaceHeight != 645 {
		t.Errorf("surface = %dx%d, want 890x645", ctx.SurfaceWidth, ctx.SurfaceHeight)
	}
}

func TestEndToEndBurst(t *testing.T) {
	card := testCard(t)
	loop := sched.NewLoop()
	surface := &nullSurface{w: 640, h: 480}
	engine := confetti.NewEngine(surface, loop, card.Confetti.Colors, rand.New(rand.NewPCG(7, 11)))
	c := NewController(card, loop, engine, Hooks{})

	const frame = time.Second / 60
	c.Click()

	var burstAt time.Duration
	for i := 0; i < 60 && burstAt == 0; i++ {
		loop.Advance(frame)
		if len(engine.Particles()) > 0 {
			burstAt = loop.Now()
		}
	}
	if burstAt < config.TitleDelay {
		t.Fatalf("burst began at %v, before the title delay", burstAt)
	}
	if got := len(engine.Particles()); got != config.ConfettiCount {
		t.Fatalf("burst has %d particles, want %d", got, config.ConfettiCount)
	}

	var decayStart time.Duration
	for i := 0; i < 1000 && engine.Running(); i++ {
		loop.Advance(frame)
		if decayStart == 0 && engine.Visible() < config.ConfettiCount {
			decayStart = loop.Now()
		}
	}
	if engine.Running() {
		t.Fatal("confetti never finished")
	}
	if decayStart-burstAt < config.BurstLifetime {
		t.Errorf("pieces started disappearing %v after the burst, want at least %v", decayStart-burstAt, config.BurstLifetime)
	}
}
