package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/watchparty/vine"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

func main() {
	flag.Parse()

	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")

	benchmarkComputedChains(true)
	benchmarkPathWatchers(true)
	benchmarkDeepWatchers(true)
}

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func benchmarkComputedChains(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Computed Chains")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := vine.NewRuntime(func(_ *vine.Watcher, err error, label string) {
				log.Panicf("%s: %v", label, err)
			})
			sc := rt.NewScope(map[string]any{"src": 1})

			for i := 0; i < w; i++ {
				last := vine.NewComputed(sc, func(s *vine.Scope) any {
					return s.Data().Get("src").(int) + 1
				})
				for j := 1; j < h; j++ {
					prev := last
					last = vine.NewComputed(sc, func(s *vine.Scope) any {
						return prev.Value().(int) + 1
					})
				}

				final := last
				sc.Watch(func(s *vine.Scope) any {
					return final.Value()
				}, func(newVal, oldVal any) {}, vine.WatcherOptions{})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				sc.Data().Set("src", sc.Data().Peek("src").(int)+1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func benchmarkPathWatchers(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Path Watchers")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		rt := vine.NewRuntime(func(_ *vine.Watcher, err error, label string) {
			log.Panicf("%s: %v", label, err)
		})
		sc := rt.NewScope(map[string]any{
			"user": map[string]any{"profile": map[string]any{"hits": 0}},
		})

		for i := 0; i < w; i++ {
			sc.Watch("user.profile.hits", func(newVal, oldVal any) {}, vine.WatcherOptions{})
		}
		hits := sc.Data().Peek("user").(*vine.Map).Peek("profile").(*vine.Map)

		for i := 0; i < iters; i++ {
			start := time.Now()
			hits.Set("hits", i+1)
			tach.AddTime(time.Since(start))
		}

		calc := tach.Calc()
		tbl.AppendRows([]table.Row{
			{
				fmt.Sprintf("fanout: %d watchers", w),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			},
		})
	}

	if shouldRender {
		tbl.Render()
	}
}

func benchmarkDeepWatchers(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Deep Watchers")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, h := range hh {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		rt := vine.NewRuntime(func(_ *vine.Watcher, err error, label string) {
			log.Panicf("%s: %v", label, err)
		})

		// one nested map per level, mutation happens at the bottom
		leaf := map[string]any{"v": 0}
		root := leaf
		for j := 1; j < h; j++ {
			root = map[string]any{"child": root}
		}
		sc := rt.NewScope(map[string]any{"tree": root})

		sc.Watch("tree", func(newVal, oldVal any) {}, vine.WatcherOptions{Deep: true})

		bottom := sc.Data().Peek("tree").(*vine.Map)
		for {
			next, ok := bottom.Peek("child").(*vine.Map)
			if !ok {
				break
			}
			bottom = next
		}

		for i := 0; i < iters; i++ {
			start := time.Now()
			bottom.Set("v", i+1)
			tach.AddTime(time.Since(start))
		}

		calc := tach.Calc()
		tbl.AppendRows([]table.Row{
			{
				fmt.Sprintf("deep: %d levels", h),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			},
		})
	}

	if shouldRender {
		tbl.Render()
	}
}
