package sand

import "sort"

// scenes lay out the initial grid after a reset. Coordinates scale with the
// world size so every scene works on any grid.
var scenes = map[string]func(*World){
	"empty": func(*World) {},
	"demo":  demoScene,
}

// SceneNames lists the available scenes in sorted order.
func SceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// demoScene exercises every interaction: a sand heap over a stone floor, a
// water reservoir next to a steel shelf, a burning tree and a lava pocket.
func demoScene(w *World) {
	rows, cols := w.grid.rows, w.grid.cols
	floor := rows - max(1, rows/30)

	w.fillRect(Stone, floor, 0, rows, cols)
	w.fillRect(Sand, rows/10, cols/10, rows/3, cols/4)
	w.fillRect(Dirt, floor-max(1, rows/12), 0, floor, cols/3)

	w.fillRect(Steel, rows/3, cols*2/5, rows/3+1, cols*3/5)
	w.fillRect(Water, rows/8, cols*2/5, rows/3, cols*3/5)

	trunk := cols * 3 / 4
	w.fillRect(Wood, rows*3/5, trunk, floor, trunk+max(1, cols/40))
	w.fillRect(Leaf, rows/2, trunk-cols/20, rows*3/5, trunk+cols/20)
	w.Spawn(Fire, floor-1, trunk-1, true)

	w.fillRect(Lava, rows/10, cols*17/20, rows/5, cols*19/20)
}

// fillRect spawns k over rows [r0, r1) and columns [c0, c1).
func (w *World) fillRect(k Kind, r0, c0, r1, c1 int) {
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			w.Spawn(k, r, c, true)
		}
	}
}
