package vine_test

import (
	"math"
	"testing"

	"github.com/delaneyj/watchparty/vine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveIdempotent(t *testing.T) {
	rt := vine.NewRuntime(nil)

	m := rt.Observe(map[string]any{"a": 1}).(*vine.Map)
	again := rt.Observe(m)
	assert.Same(t, m, again)

	s := rt.Observe([]any{1, 2, 3}).(*vine.Slice)
	assert.Same(t, s, rt.Observe(s))
}

func TestKindOf(t *testing.T) {
	rt := vine.NewRuntime(nil)

	assert.Equal(t, vine.KindScalar, vine.KindOf(1))
	assert.Equal(t, vine.KindScalar, vine.KindOf("x"))
	assert.Equal(t, vine.KindScalar, vine.KindOf(nil))
	assert.Equal(t, vine.KindKeyedMap, vine.KindOf(map[string]any{}))
	assert.Equal(t, vine.KindSequence, vine.KindOf([]any{}))
	assert.Equal(t, vine.KindObserved, vine.KindOf(rt.Observe(map[string]any{})))
}

func TestNestedValuesAreObservedEagerly(t *testing.T) {
	rt := vine.NewRuntime(nil)
	m := rt.Observe(map[string]any{
		"child": map[string]any{"x": 1},
		"list":  []any{map[string]any{"y": 2}},
	}).(*vine.Map)

	child, ok := m.Peek("child").(*vine.Map)
	require.True(t, ok)
	assert.Equal(t, 1, child.Peek("x"))

	list, ok := m.Peek("list").(*vine.Slice)
	require.True(t, ok)
	_, ok = list.Peek(0).(*vine.Map)
	assert.True(t, ok)
}

// identical scalar writes must not notify, including NaN over NaN
func TestScalarWriteNoop(t *testing.T) {
	rt := vine.NewRuntime(nil)
	sc := rt.NewScope(map[string]any{"a": 1.0})

	runs := 0
	sc.Watch("a", func(newVal, oldVal any) { runs++ }, vine.WatcherOptions{})

	sc.Data().Set("a", 1.0)
	assert.Equal(t, 0, runs)

	sc.Data().Set("a", math.NaN())
	assert.Equal(t, 1, runs)

	sc.Data().Set("a", math.NaN())
	assert.Equal(t, 1, runs, "NaN over NaN is a no-op")

	sc.Data().Set("a", 2.0)
	assert.Equal(t, 2, runs)
}

// keys unknown at wrap time are added through Set, which installs the
// accessor record and announces the shape change
func TestNewKeyThroughSet(t *testing.T) {
	rt := vine.NewRuntime(nil)
	sc := rt.NewScope(map[string]any{"cfg": map[string]any{}})

	var got any
	runs := 0
	sc.Watch("cfg.retries", func(newVal, oldVal any) {
		runs++
		got = newVal
	}, vine.WatcherOptions{})

	cfg := sc.Data().Peek("cfg").(*vine.Map)
	cfg.Set("retries", 5)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 5, got)

	cfg.Set("retries", 6)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 6, got)
}

func TestDeleteNotifies(t *testing.T) {
	rt := vine.NewRuntime(nil)
	sc := rt.NewScope(map[string]any{"cfg": map[string]any{"token": "abc"}})

	var got any = "sentinel"
	sc.Watch("cfg.token", func(newVal, oldVal any) { got = newVal }, vine.WatcherOptions{})

	cfg := sc.Data().Peek("cfg").(*vine.Map)
	cfg.Delete("token")
	assert.Nil(t, got)
	assert.False(t, cfg.Has("token"))

	// absent key delete is a no-op
	cfg.Delete("token")
}

// root data refuses shape changes; collaborators hold direct references to
// its top level
func TestRootKeyAddAndDeleteRefused(t *testing.T) {
	var errs []error
	rt := vine.NewRuntime(func(w *vine.Watcher, err error, label string) {
		errs = append(errs, err)
	})
	sc := rt.NewScope(map[string]any{"a": 1})

	sc.Data().Set("b", 2)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], vine.ErrRootKey)
	assert.False(t, sc.Data().Has("b"))

	sc.Data().Delete("a")
	require.Len(t, errs, 2)
	assert.True(t, sc.Data().Has("a"))
}

func TestSliceMutatorsNotifyOncePerOperation(t *testing.T) {
	rt := vine.NewRuntime(nil)
	sc := rt.NewScope(map[string]any{"list": []any{3, 1, 2}})

	runs := 0
	sc.Watch(func(s *vine.Scope) any {
		return s.Data().Get("list").(*vine.Slice).Len()
	}, func(newVal, oldVal any) { runs++ }, vine.WatcherOptions{})

	list := sc.Data().Peek("list").(*vine.Slice)

	list.Push(4, 5)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 5, list.Peek(4))

	assert.Equal(t, 5, list.Pop())
	assert.Equal(t, 2, runs)

	list.Unshift(0)
	assert.Equal(t, 3, runs)
	assert.Equal(t, 0, list.Peek(0))

	assert.Equal(t, 0, list.Shift())
	assert.Equal(t, 4, runs)

	removed := list.Splice(1, 2, 9)
	assert.Equal(t, []any{1, 2}, removed)
	assert.Equal(t, 5, runs)

	// sort and reverse change no lengths but still announce the shape;
	// the length watcher's scalar value is unchanged so it does not fire
	list.Sort(func(a, b any) bool { return a.(int) < b.(int) })
	list.Reverse()
	assert.Equal(t, 5, runs)
}

func TestSliceSetIndexNotifies(t *testing.T) {
	rt := vine.NewRuntime(nil)
	sc := rt.NewScope(map[string]any{"list": []any{1, 2}})

	runs := 0
	sc.Watch(func(s *vine.Scope) any {
		return s.Data().Get("list").(*vine.Slice).Get(0)
	}, func(newVal, oldVal any) { runs++ }, vine.WatcherOptions{})

	list := sc.Data().Peek("list").(*vine.Slice)
	list.SetIndex(0, 10)
	assert.Equal(t, 1, runs)

	// grows the sequence when the index is past the end
	list.SetIndex(4, 99)
	assert.Equal(t, 5, list.Len())
	assert.Equal(t, 99, list.Peek(4))
}

func TestSliceInsertedElementsAreObserved(t *testing.T) {
	rt := vine.NewRuntime(nil)
	sc := rt.NewScope(map[string]any{"list": []any{}})

	list := sc.Data().Peek("list").(*vine.Slice)
	list.Push(map[string]any{"x": 1})

	elem, ok := list.Peek(0).(*vine.Map)
	require.True(t, ok, "pushed raw map should be wrapped")

	runs := 0
	sc.Watch(func(s *vine.Scope) any {
		return s.Data().Get("list").(*vine.Slice).Get(0).(*vine.Map).Get("x")
	}, func(newVal, oldVal any) { runs++ }, vine.WatcherOptions{})

	elem.Set("x", 2)
	assert.Equal(t, 1, runs)
}

// Define's custom setter hook fires on every write, before the no-op check
func TestDefineCustomSetter(t *testing.T) {
	rt := vine.NewRuntime(nil)
	m := rt.Observe(map[string]any{}).(*vine.Map)

	var olds, nexts []any
	m.Define("prop", 1, func(old, next any) {
		olds = append(olds, old)
		nexts = append(nexts, next)
	})

	m.Set("prop", 2)
	m.Set("prop", 2) // value no-op, hook still fires
	assert.Equal(t, []any{1, 2}, olds)
	assert.Equal(t, []any{2, 2}, nexts)
	assert.Equal(t, 2, m.Peek("prop"))
}
