//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"bwlife/internal/app"
	"bwlife/internal/core"
	_ "bwlife/internal/sims/torus"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (have %v)", cfg.Sim, core.SimNames())
	}

	sim := factory(cfg.SimOptions())
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.Seed)
	if cfg.Board != "" {
		b, err := core.ParseBoard(cfg.Board)
		if err != nil {
			log.Fatal(err)
		}
		if !game.SetStart(b) {
			log.Fatalf("sim %q does not accept a starting board", cfg.Sim)
		}
	}
	size := sim.Size()

	ebiten.SetWindowTitle("bwlife: " + sim.Name() + " " + cfg.Rule)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
