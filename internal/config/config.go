package config

import (
	"math"
	"time"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Confetti burst
	ConfettiCount    = 300
	BurstLifetime    = 3000 * time.Millisecond
	RecycleY         = -20.0
	MinPieceWidth    = 5.0
	MaxPieceWidth    = 15.0
	MinPieceHeight   = 4.0
	MaxPieceHeight   = 12.0
	MinFallSpeed     = 2.0
	MaxFallSpeed     = 5.0
	MaxDriftSpeed    = 2.0
	MaxSpinSpeed     = 5.0
	FullTurnDegrees  = 360.0
	DegreesToRadians = math.Pi / 180

	// Interaction timings
	TitleDelay     = 300 * time.Millisecond
	ResizeDebounce = 150 * time.Millisecond
	FlameFadeTime  = 300 * time.Millisecond
	SmokePuffTime  = 1200 * time.Millisecond

	// Title sizes in px
	TitleSize        = 36.0
	TitleShrunkSize  = 24.0
	InstructionSize  = 18.0
	DebugStatusLineY = 12

	// Audio
	SampleRate      = 44100
	LevelRingSize   = 4096
	LevelWindow     = 1024
	SmoothingFactor = 0.6
)
