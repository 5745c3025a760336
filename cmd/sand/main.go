//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"sandfall/internal/app"
	"sandfall/internal/core"
	_ "sandfall/internal/sims/sand"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		slog.Error("unknown sim", "sim", cfg.Sim, "known", core.Names())
		os.Exit(2)
	}

	sim := factory(cfg.SimOptions())
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("sandfall - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("run", "err", err)
		os.Exit(1)
	}
}
