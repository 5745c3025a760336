package tui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/sims/sand"
)

func newTestViewer(t *testing.T) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 12)

	cfg := sand.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Scene = 20, 10, "empty"
	world := sand.NewWithConfig(cfg)
	world.Reset(0)
	return New(screen, world, 60), screen
}

func TestDrawUsesParticleColors(t *testing.T) {
	v, screen := newTestViewer(t)
	v.world.Spawn(sand.Stone, 0, 3, true)
	v.world.Spawn(sand.Water, 1, 3, true)
	v.Draw()

	r, _, style, _ := screen.GetContent(3, 0)
	if r != halfBlock {
		t.Fatalf("cell rune %q, want half block", r)
	}
	fg, bg, _ := style.Decompose()
	if fg != toColor(v.world.ColorAt(0, 3)) {
		t.Fatal("foreground should show the upper particle")
	}
	if bg != toColor(v.world.ColorAt(1, 3)) {
		t.Fatal("background should show the lower particle")
	}

	if r, _, _, _ := screen.GetContent(1, 11); r != 't' {
		t.Fatalf("status line starts with %q, want tick counter", r)
	}
}

func TestHandleKey(t *testing.T) {
	v, _ := newTestViewer(t)

	if !v.handleKey(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) || !v.Paused() {
		t.Fatal("space should pause")
	}
	v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	if v.world.Tick() != 1 {
		t.Fatalf("n should single-step while paused, tick = %d", v.world.Tick())
	}

	first := v.Material()
	v.handleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	if v.Material() == first {
		t.Fatal("tab should select the next material")
	}
	v.handleKey(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone))
	if v.Material() != first {
		t.Fatal("backtab should return to the previous material")
	}

	for i := 0; i < 2*maxBrush; i++ {
		v.handleKey(tcell.NewEventKey(tcell.KeyRune, ']', tcell.ModNone))
	}
	if v.brush != maxBrush {
		t.Fatalf("brush %d, want clamp at %d", v.brush, maxBrush)
	}

	if v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q should quit")
	}
	if v.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should quit")
	}
}

func TestHandleMousePaintsAndErases(t *testing.T) {
	v, _ := newTestViewer(t)
	v.brush = 0

	v.handleMouse(tcell.NewEventMouse(5, 2, tcell.ButtonPrimary, tcell.ModNone))
	got := v.world.At(4, 5).Kind.String()
	if got != v.Material() {
		t.Fatalf("painted %s, want %s", got, v.Material())
	}

	v.handleMouse(tcell.NewEventMouse(5, 2, tcell.ButtonSecondary, tcell.ModNone))
	if v.world.At(4, 5).Kind != sand.Empty {
		t.Fatal("secondary button should erase")
	}
}

func TestPumpStopsWhenDone(t *testing.T) {
	v, screen := newTestViewer(t)
	for screen.HasPendingEvent() {
		screen.PollEvent()
	}
	done := make(chan struct{})
	events := v.pumpEvents(done, 0)
	close(done)

	// Nobody reads events; the pump must drop this one and exit.
	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); err != nil {
		t.Fatalf("post event: %v", err)
	}
	select {
	case ev, ok := <-events:
		if ok {
			t.Fatalf("pump delivered %T after done", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pump still running after done was closed")
	}
}
