package vine_test

import (
	"testing"

	"github.com/delaneyj/watchparty/vine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraverseTerminatesOnCycle(t *testing.T) {
	rt := vine.NewRuntime(nil)
	sc := rt.NewScope(map[string]any{
		"root": map[string]any{
			"name":  "a",
			"child": map[string]any{"x": 1},
		},
	})

	root := sc.Data().Peek("root").(*vine.Map)
	child := root.Peek("child").(*vine.Map)
	child.Set("back", root)

	runs := 0
	sc.Watch("root", func(newVal, oldVal any) { runs++ }, vine.WatcherOptions{Deep: true})

	// traversal visited the whole cycle without looping, so a write deep
	// inside still fires
	child.Set("x", 2)
	assert.Equal(t, 1, runs)
	root.Set("name", "b")
	assert.Equal(t, 2, runs)
}

func TestTraverseSharedSubstructure(t *testing.T) {
	rt := vine.NewRuntime(nil)

	shared := rt.Observe(map[string]any{"v": 1}).(*vine.Map)
	sc := rt.NewScope(map[string]any{
		"doc": map[string]any{"left": shared, "right": shared},
	})

	doc := sc.Data().Peek("doc").(*vine.Map)
	require.Same(t, doc.Peek("left"), doc.Peek("right"))

	runs := 0
	sc.Watch("doc", func(newVal, oldVal any) { runs++ }, vine.WatcherOptions{Deep: true})

	shared.Set("v", 2)
	assert.Equal(t, 1, runs, "one write to the shared child is one re-run")
}

func TestTraverseReachesSliceElements(t *testing.T) {
	rt := vine.NewRuntime(nil)
	sc := rt.NewScope(map[string]any{
		"rows": []any{
			map[string]any{"cells": []any{map[string]any{"v": 1}}},
		},
	})

	runs := 0
	sc.Watch("rows", func(newVal, oldVal any) { runs++ }, vine.WatcherOptions{Deep: true})

	rows := sc.Data().Peek("rows").(*vine.Slice)
	cell := rows.Peek(0).(*vine.Map).Peek("cells").(*vine.Slice).Peek(0).(*vine.Map)
	cell.Set("v", 2)
	assert.Equal(t, 1, runs)
}

// two deep watchers evaluated back to back must each collect the full
// structure; the seen set resets between top-level traversals
func TestTraverseSeenSetResetsBetweenWatchers(t *testing.T) {
	rt := vine.NewRuntime(nil)
	sc := rt.NewScope(map[string]any{"b": map[string]any{"c": 1}})

	aRuns, bRuns := 0, 0
	sc.Watch("b", func(newVal, oldVal any) { aRuns++ }, vine.WatcherOptions{Deep: true})
	sc.Watch("b", func(newVal, oldVal any) { bRuns++ }, vine.WatcherOptions{Deep: true})

	sc.Data().Peek("b").(*vine.Map).Set("c", 2)
	assert.Equal(t, 1, aRuns)
	assert.Equal(t, 1, bRuns)
}
