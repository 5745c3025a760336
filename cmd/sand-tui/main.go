package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/app"
	"sandfall/internal/sims/sand"
	"sandfall/internal/tui"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	width := flag.Int("w", 0, "grid width, 0 fits the terminal")
	height := flag.Int("h", 0, "grid height, 0 fits the terminal")
	flag.Parse()

	if err := run(cfg, *width, *height); err != nil {
		slog.Error("sand-tui", "err", err)
		os.Exit(1)
	}
}

func run(cfg *app.Config, width, height int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	cols, rows := screen.Size()
	if width <= 0 {
		width = cols
	}
	if height <= 0 {
		// one status line, two grid rows per terminal row
		height = max(rows-1, 1) * 2
	}

	opts := cfg.SimOptions()
	opts["w"] = strconv.Itoa(width)
	opts["h"] = strconv.Itoa(height)
	world := sand.NewWithConfig(sand.FromMap(opts))
	world.Reset(cfg.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tui.New(screen, world, cfg.TPS).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
