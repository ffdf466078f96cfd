package main

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/birthday-card/internal/audio"
	"github.com/iburimskiy/birthday-card/internal/config"
	"github.com/iburimskiy/birthday-card/internal/game"
	"github.com/iburimskiy/birthday-card/internal/notify"
)

func main() {
	card, err := config.DefaultCard()
	if err != nil {
		log.Fatal(err)
	}

	player := audio.NewPlayer()
	audioErr := player.Init()
	if audioErr != nil {
		log.Printf("Warning: audio disabled: %v", audioErr)
	}

	g, err := game.NewGame(card, player, notify.NewNotifier(card.Title.Text))
	if err != nil {
		log.Fatal(err)
	}
	if audioErr != nil {
		g.SetError(audioErr)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(card.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
