package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/watchparty/typed"
	"github.com/delaneyj/watchparty/vine"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

type stressTestConfig struct {
	name        string
	width       int
	totalLayers int
	nSources    int
	iterations  int
}

func main() {
	log.Print("Starting watchparty stress run, please wait...")
	defer log.Print("Finished watchparty stress run")

	cfgs := []stressTestConfig{
		{
			name:        "simple component",
			width:       10,
			totalLayers: 5,
			nSources:    2,
			iterations:  60_000,
		},
		{
			name:        "large web app",
			width:       1000,
			totalLayers: 12,
			nSources:    4,
			iterations:  700,
		},
		{
			name:        "wide dense",
			width:       1000,
			totalLayers: 5,
			nSources:    8,
			iterations:  300,
		},
		{
			name:        "deep",
			width:       5,
			totalLayers: 500,
			nSources:    3,
			iterations:  500,
		},
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{
		"config", "width", "layers", "nSources",
		"iterations", "callbacks", "time", "updateRate",
	})

	testRepeats := 5
	for _, cfg := range cfgs {
		log.Printf("Running %q config", cfg.name)

		var best time.Duration
		var callbacks int64
		for r := 0; r < testRepeats; r++ {
			d, n := runGraph(cfg)
			if best == 0 || d < best {
				best = d
			}
			callbacks = n
		}

		rate := float64(callbacks) / best.Seconds()
		tbl.Append([]string{
			cfg.name,
			humanize.Comma(int64(cfg.width)),
			humanize.Comma(int64(cfg.totalLayers)),
			humanize.Comma(int64(cfg.nSources)),
			humanize.Comma(int64(cfg.iterations)),
			humanize.Comma(callbacks),
			best.String(),
			fmt.Sprintf("%s/s", humanize.Comma(int64(rate))),
		})
	}

	tbl.Render()
}

// runGraph builds a layered memo graph over one scope, drives it with
// batched writes to the source row, and reports the wall time plus how many
// leaf callbacks fired.
func runGraph(cfg stressTestConfig) (time.Duration, int64) {
	rt := vine.NewRuntime(func(_ *vine.Watcher, err error, label string) {
		log.Panicf("%s: %v", label, err)
	})

	data := make(map[string]any, cfg.width)
	for i := 0; i < cfg.width; i++ {
		data[sourceKey(i)] = 1
	}
	sc := rt.NewScope(data)

	// layer zero reads the sources directly, every later layer reads
	// nSources memos of the layer before it
	prev := make([]*typed.Memo[int], cfg.width)
	for i := 0; i < cfg.width; i++ {
		key := sourceKey(i)
		prev[i] = typed.NewMemo(sc, func(s *vine.Scope) int {
			return s.Data().Get(key).(int)
		})
	}
	for layer := 1; layer < cfg.totalLayers; layer++ {
		cur := make([]*typed.Memo[int], cfg.width)
		for i := 0; i < cfg.width; i++ {
			sources := make([]*typed.Memo[int], cfg.nSources)
			for k := 0; k < cfg.nSources; k++ {
				sources[k] = prev[(i+k)%cfg.width]
			}
			cur[i] = typed.NewMemo(sc, func(s *vine.Scope) int {
				sum := 0
				for _, src := range sources {
					sum += src.Value()
				}
				return sum
			})
		}
		prev = cur
	}

	var callbacks int64
	for _, leaf := range prev {
		src := leaf
		typed.Watch1(sc,
			func(s *vine.Scope) int { return src.Value() },
			func(v int) int { return v },
			func(newVal, oldVal int) { callbacks++ },
			vine.WatcherOptions{},
		)
	}

	start := time.Now()
	for i := 0; i < cfg.iterations; i++ {
		n := i
		rt.Batch(func() {
			sc.Data().Set(sourceKey(n%cfg.width), n+2)
		})
	}
	elapsed := time.Since(start)

	sc.Teardown()
	return elapsed, callbacks
}

func sourceKey(i int) string {
	return fmt.Sprintf("s%d", i)
}
