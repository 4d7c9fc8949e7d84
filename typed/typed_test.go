package typed_test

import (
	"testing"

	"github.com/delaneyj/watchparty/typed"
	"github.com/delaneyj/watchparty/vine"
	"github.com/stretchr/testify/assert"
)

func TestWatch2ComputesFromTypedDeps(t *testing.T) {
	rt := vine.NewRuntime(nil)
	sc := rt.NewScope(map[string]any{"w": 2, "h": 3})

	var area, prev int
	runs := 0
	unwatch := typed.Watch2(sc,
		typed.Key[int]("w"),
		typed.Key[int]("h"),
		func(w, h int) int { return w * h },
		func(newVal, oldVal int) {
			runs++
			area, prev = newVal, oldVal
		},
		vine.WatcherOptions{},
	)

	sc.Data().Set("w", 4)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 12, area)
	assert.Equal(t, 6, prev)

	rt.Batch(func() {
		sc.Data().Set("w", 5)
		sc.Data().Set("h", 5)
	})
	assert.Equal(t, 2, runs)
	assert.Equal(t, 25, area)

	unwatch()
	sc.Data().Set("w", 100)
	assert.Equal(t, 2, runs)
}

func TestWatch1NestedPath(t *testing.T) {
	rt := vine.NewRuntime(nil)
	sc := rt.NewScope(map[string]any{
		"user": map[string]any{"name": "ada"},
	})

	var got string
	typed.Watch1(sc,
		typed.Key[string]("user.name"),
		func(name string) string { return "hello " + name },
		func(newVal, oldVal string) { got = newVal },
		vine.WatcherOptions{},
	)

	sc.Data().Peek("user").(*vine.Map).Set("name", "grace")
	assert.Equal(t, "hello grace", got)
}

func TestKeyZeroValueOnMissingOrMistyped(t *testing.T) {
	rt := vine.NewRuntime(nil)
	sc := rt.NewScope(map[string]any{"n": 1, "list": []any{"x"}})

	assert.Equal(t, 0, typed.Key[int]("missing")(sc))
	assert.Equal(t, "", typed.Key[string]("n")(sc), "int slot read as string")
	assert.Equal(t, "x", typed.Key[string]("list.0")(sc))
	assert.Equal(t, "", typed.Key[string]("list.nope")(sc))
	assert.Equal(t, 0, typed.Key[int]("n.deeper")(sc), "walking through a scalar")
}

func TestMemoRecomputesOnlyWhenStale(t *testing.T) {
	rt := vine.NewRuntime(nil)
	sc := rt.NewScope(map[string]any{"n": 3})

	evals := 0
	square := typed.NewMemo(sc, func(s *vine.Scope) int {
		evals++
		n := s.Data().Get("n").(int)
		return n * n
	})

	assert.Equal(t, 9, square.Value())
	assert.Equal(t, 9, square.Value())
	assert.Equal(t, 1, evals)

	sc.Data().Set("n", 4)
	assert.Equal(t, 1, evals, "invalidation alone must not recompute")
	assert.Equal(t, 16, square.Value())
	assert.Equal(t, 2, evals)
}

func TestMemoFeedsTypedWatcher(t *testing.T) {
	rt := vine.NewRuntime(nil)
	sc := rt.NewScope(map[string]any{"n": 2})

	double := typed.NewMemo(sc, func(s *vine.Scope) int {
		return s.Data().Get("n").(int) * 2
	})

	var got int
	typed.Watch1(sc,
		func(s *vine.Scope) int { return double.Value() },
		func(d int) int { return d + 1 },
		func(newVal, oldVal int) { got = newVal },
		vine.WatcherOptions{},
	)

	sc.Data().Set("n", 10)
	assert.Equal(t, 21, got)
}
