package typed

import (
	"strconv"
	"strings"

	"github.com/delaneyj/watchparty/vine"
)

// DepFunc reads one typed dependency from a scope. The read happens while a
// watcher is the active target, so whatever slots it touches become that
// watcher's deps.
type DepFunc[T any] func(*vine.Scope) T

// Key reads a dot path from the scope's root data, returning the zero value
// when the path is missing or holds a different type.
func Key[T any](path string) DepFunc[T] {
	segs := strings.Split(path, ".")
	return func(sc *vine.Scope) T {
		var zero T
		var cur any = sc.Data()
		for _, seg := range segs {
			switch c := cur.(type) {
			case *vine.Map:
				cur = c.Get(seg)
			case *vine.Slice:
				i, err := strconv.Atoi(seg)
				if err != nil {
					return zero
				}
				cur = c.Get(i)
			default:
				return zero
			}
		}
		v, ok := cur.(T)
		if !ok {
			return zero
		}
		return v
	}
}

// Memo is a typed wrapper over a memoized lazy watcher.
type Memo[O any] struct {
	c *vine.Computed
}

// NewMemo registers fn as a lazy watcher in sc. fn re-runs only when one of
// the slots it read has changed since the last Value call.
func NewMemo[O any](sc *vine.Scope, fn func(*vine.Scope) O) *Memo[O] {
	return &Memo[O]{
		c: vine.NewComputed(sc, func(s *vine.Scope) any { return fn(s) }),
	}
}

// Value returns the memoized result, recomputing if stale.
func (m *Memo[O]) Value() O {
	var zero O
	v, ok := m.c.Value().(O)
	if !ok {
		return zero
	}
	return v
}

// Teardown disposes the underlying watcher.
func (m *Memo[O]) Teardown() {
	m.c.Teardown()
}

func adapt[O any](cb func(newVal, oldVal O)) vine.CallbackFunc {
	if cb == nil {
		return nil
	}
	return func(newVal, oldVal any) {
		var next, prev O
		if v, ok := newVal.(O); ok {
			next = v
		}
		if v, ok := oldVal.(O); ok {
			prev = v
		}
		cb(next, prev)
	}
}
