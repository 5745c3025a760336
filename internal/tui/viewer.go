// Package tui renders a sand world in a terminal with tcell. Each terminal
// cell shows two grid rows using an upper half block: the foreground is the
// upper particle and the background the lower one.
package tui

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/core"
	"sandfall/internal/sims/sand"
)

const (
	halfBlock = '▀'
	maxBrush  = 8
	frameRate = 16 * time.Millisecond
)

// Viewer owns the terminal screen and the world it draws.
type Viewer struct {
	screen tcell.Screen
	world  *sand.World
	timer  *core.FixedStep

	paused    bool
	brush     int
	material  int
	materials []string
	colors    []tcell.Color
}

// New binds a viewer to an initialised screen.
func New(screen tcell.Screen, world *sand.World, tps int) *Viewer {
	v := &Viewer{
		screen:    screen,
		world:     world,
		timer:     core.NewFixedStep(tps),
		brush:     1,
		materials: world.Materials(),
	}
	v.colors = make([]tcell.Color, len(world.Palette()))
	for i, c := range world.Palette() {
		v.colors[i] = toColor(c)
	}
	return v
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Material returns the name of the material the mouse paints.
func (v *Viewer) Material() string { return v.materials[v.material] }

// Paused reports whether the world is frozen.
func (v *Viewer) Paused() bool { return v.paused }

// Draw renders the world and the status line into the back buffer.
func (v *Viewer) Draw() {
	v.screen.Clear()
	sw, sh := v.screen.Size()
	size := v.world.Size()
	cells := v.world.Cells()

	rows := min(sh-1, (size.H+1)/2)
	cols := min(sw, size.W)
	for y := 0; y < rows; y++ {
		top := 2 * y
		for x := 0; x < cols; x++ {
			fg := v.colors[cells[top*size.W+x]]
			bg := tcell.ColorBlack
			if top+1 < size.H {
				bg = v.colors[cells[(top+1)*size.W+x]]
			}
			v.screen.SetContent(x, y, halfBlock, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
	v.drawStatus(sh - 1)
}

func (v *Viewer) drawStatus(y int) {
	state := "running"
	if v.paused {
		state = "paused"
	}
	line := fmt.Sprintf(" tick %d  %s  [%s] brush %d  tab:material [/]:brush space:pause n:step r:reset q:quit",
		v.world.Tick(), state, v.Material(), v.brush)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for x, r := range []rune(line) {
		v.screen.SetContent(x, y, r, nil, style)
	}
}

// handleKey applies a key press and reports whether the viewer should keep
// running.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		v.material = (v.material + 1) % len(v.materials)
		return true
	case tcell.KeyBacktab:
		v.material = (v.material + len(v.materials) - 1) % len(v.materials)
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		v.paused = !v.paused
	case 'n':
		if v.paused {
			v.world.Step()
		}
	case 'r':
		v.world.Reset(0)
	case '[':
		v.brush = max(0, v.brush-1)
	case ']':
		v.brush = min(maxBrush, v.brush+1)
	}
	return true
}

// handleMouse paints with the primary button and erases with the
// secondary one. Terminal row y covers grid rows 2y and 2y+1.
func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	row := 2 * y
	switch btn := ev.Buttons(); {
	case btn&tcell.ButtonPrimary != 0:
		v.world.PaintNamed(v.Material(), x, row, v.brush, false)
	case btn&tcell.ButtonSecondary != 0:
		v.world.Erase(x, row, v.brush)
	}
}

// pumpEvents forwards screen events until the screen is finalised or done
// is closed. The returned channel is closed when the pump stops.
func (v *Viewer) pumpEvents(done <-chan struct{}, size int) <-chan tcell.Event {
	events := make(chan tcell.Event, size)
	go func() {
		defer close(events)
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case <-done:
				return
			default:
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

// Run drives the world at the configured tick rate until the user quits or
// ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	v.screen.EnableMouse()
	v.screen.HideCursor()

	done := make(chan struct{})
	defer close(done)
	events := v.pumpEvents(done, 100)

	ticker := time.NewTicker(frameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.handleKey(ev) {
					return nil
				}
			case *tcell.EventMouse:
				v.handleMouse(ev)
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case <-ticker.C:
			steps := v.timer.Pending()
			if !v.paused {
				for i := 0; i < steps; i++ {
					v.world.Step()
				}
			}
			v.Draw()
			v.screen.Show()
		}
	}
}
