package main

import (
	"flag"
	"log"
	"os"

	"github.com/Draymode/Veil-Runner/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var seed int64
	var levelPath string
	flag.Int64Var(&seed, "seed", 0, "level generation seed (0 = random)")
	flag.StringVar(&levelPath, "level", "", "path to a level code file (overrides -seed)")
	flag.Parse()

	var g *game.Game
	if levelPath != "" {
		data, err := os.ReadFile(levelPath)
		if err != nil {
			log.Fatal(err)
		}
		lv, err := game.DecodeLevel(string(data))
		if err != nil {
			log.Fatal(err)
		}
		g = game.NewFromLevel(lv, seed)
	} else {
		g = game.New(seed)
	}

	ebiten.SetWindowTitle("Veil Runner")
	ebiten.SetWindowSize(g.Layout(0, 0))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
