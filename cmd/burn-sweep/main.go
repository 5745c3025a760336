package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"sandfall/internal/sims/sand"
	"sandfall/internal/telemetry"
)

type job struct {
	chance float64
	seed   int64
}

type result struct {
	chance float64
	ticks  int
	ok     bool
}

func main() {
	kindName := flag.String("kind", "wood", "flammable material to ignite")
	seeds := flag.Int("seeds", 200, "runs per chance value")
	limit := flag.Int("limit", 20000, "tick cap per run")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	out := flag.String("out", "", "optional CSV file for the per-chance summaries")
	flag.Parse()

	kind, ok := sand.ParseKind(*kindName)
	if !ok {
		slog.Error("unknown kind", "kind", *kindName)
		os.Exit(2)
	}
	base := sand.DefaultConfig()
	if !base.Materials.Get(kind).Flammable {
		slog.Error("kind is not flammable", "kind", kind)
		os.Exit(2)
	}

	chances := []float64{0.002, 0.004, 0.006, 0.01, 0.02, 0.05}
	fmt.Printf("Sweeping %d chance values x %d seeds (%d workers)\n", len(chances), *seeds, *workers)

	jobs := make(chan job)
	results := make(chan result)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- runScenario(base, kind, j, *limit)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, c := range chances {
			for s := 1; s <= *seeds; s++ {
				jobs <- job{chance: c, seed: int64(s)}
			}
		}
		close(jobs)
	}()

	start := time.Now()
	byChance := make(map[float64][]float64)
	misses := make(map[float64]int)
	for res := range results {
		if !res.ok {
			misses[res.chance]++
			continue
		}
		byChance[res.chance] = append(byChance[res.chance], float64(res.ticks))
	}

	sort.Float64s(chances)
	summaries := make([]telemetry.Summary, 0, len(chances))
	fmt.Printf("\nIgnition ticks (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for _, c := range chances {
		s := telemetry.Summarize(fmt.Sprintf("%s@%g", kind, c), byChance[c])
		summaries = append(summaries, s)
		fmt.Printf("chance=%-6g expected=%8.1f mean=%8.1f std=%8.1f p50=%7.0f p90=%7.0f misses=%d\n",
			c, 1/c, s.Mean, s.StdDev, s.P50, s.P90, misses[c])
	}

	if *out != "" {
		if err := telemetry.WriteSummaries(*out, summaries); err != nil {
			slog.Error("write summaries", "path", *out, "err", err)
			os.Exit(1)
		}
	}
}

// runScenario places one flammable particle beside a fire that never burns
// out and counts the ticks until it catches.
func runScenario(base sand.Config, kind sand.Kind, j job, limit int) result {
	cfg := base
	cfg.Width, cfg.Height = 2, 1
	cfg.Scene = "empty"
	cfg.Materials[sand.Fire].Lifetime = 1 << 30
	cfg.Materials[sand.Fire].LifetimeJitter = 0
	cfg.Materials[kind].ChanceToCatch = j.chance

	world := sand.NewWithConfig(cfg)
	world.Reset(j.seed)
	world.Spawn(sand.Fire, 0, 0, true)
	world.Spawn(kind, 0, 1, true)

	for tick := 1; tick <= limit; tick++ {
		world.Step()
		if world.At(0, 1).OnFire {
			return result{chance: j.chance, ticks: tick, ok: true}
		}
	}
	return result{chance: j.chance}
}
