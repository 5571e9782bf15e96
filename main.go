package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"topoarena/game"
)

func main() {
	cfg := game.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	g, err := game.NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle("Topo Arena")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
