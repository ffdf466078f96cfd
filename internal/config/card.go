package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed card.yaml
var cardYAML []byte

// PaletteSize is the number of confetti colors a card must define.
const PaletteSize = 6

// Card holds the text and colors of the greeting card.
//
// Colors are written as "#rrggbb" in card.yaml and resolved by Validate.
type Card struct {
	Window      WindowConfig      `yaml:"window"`
	Title       TitleConfig       `yaml:"title"`
	Instruction InstructionConfig `yaml:"instruction"`
	Background  string            `yaml:"background"`
	Confetti    ConfettiConfig    `yaml:"confetti"`

	BackgroundColor color.RGBA `yaml:"-"`
}

type WindowConfig struct {
	Title string `yaml:"title"`
}

type TitleConfig struct {
	Text             string `yaml:"text"`
	Color            string `yaml:"color"`
	CelebrationText  string `yaml:"celebrationText"`
	CelebrationColor string `yaml:"celebrationColor"`

	RGBA            color.RGBA `yaml:"-"`
	CelebrationRGBA color.RGBA `yaml:"-"`
}

type InstructionConfig struct {
	Text  string `yaml:"text"`
	Color string `yaml:"color"`

	RGBA color.RGBA `yaml:"-"`
}

type ConfettiConfig struct {
	Palette []string `yaml:"palette"`

	Colors []color.RGBA `yaml:"-"`
}

// DefaultCard parses the card content compiled into the binary.
func DefaultCard() (*Card, error) {
	return ParseCard(cardYAML)
}

// ParseCard decodes and validates card content.
func ParseCard(data []byte) (*Card, error) {
	var card Card
	if err := yaml.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("failed to parse card config: %w", err)
	}
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("invalid card config: %w", err)
	}
	return &card, nil
}

// Validate checks required fields and resolves every hex color.
func (c *Card) Validate() error {
	if strings.TrimSpace(c.Title.CelebrationText) == "" {
		return errors.New("title.celebrationText is empty")
	}
	if len(c.Confetti.Palette) != PaletteSize {
		return fmt.Errorf("confetti.palette has %d colors, want %d", len(c.Confetti.Palette), PaletteSize)
	}

	var err error
	if c.BackgroundColor, err = ParseHexColor(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if c.Title.RGBA, err = ParseHexColor(c.Title.Color); err != nil {
		return fmt.Errorf("title.color: %w", err)
	}
	if c.Title.CelebrationRGBA, err = ParseHexColor(c.Title.CelebrationColor); err != nil {
		return fmt.Errorf("title.celebrationColor: %w", err)
	}
	if c.Instruction.RGBA, err = ParseHexColor(c.Instruction.Color); err != nil {
		return fmt.Errorf("instruction.color: %w", err)
	}

	c.Confetti.Colors = make([]color.RGBA, len(c.Confetti.Palette))
	for i, s := range c.Confetti.Palette {
		if c.Confetti.Colors[i], err = ParseHexColor(s); err != nil {
			return fmt.Errorf("confetti.palette[%d]: %w", i, err)
		}
	}
	return nil
}

// ParseHexColor parses "#rrggbb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
