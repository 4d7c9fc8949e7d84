package vine

// Computed wraps a lazy watcher into a memoized value. Reading it
// re-evaluates only when dirty and hands the underlying deps to whichever
// watcher is currently active, so invalidation chains through computed
// values without the computed re-subscribing itself.
type Computed struct {
	w *Watcher
}

// NewComputed registers a lazy watcher over fn in scope. Nothing is
// evaluated until the first Value call.
func NewComputed(scope *Scope, fn GetterFunc) *Computed {
	return &Computed{w: NewWatcher(scope, fn, nil, WatcherOptions{Lazy: true})}
}

// Value returns the memoized result, recomputing if a dependency changed
// since the last read.
func (c *Computed) Value() any {
	if c.w.dirty {
		c.w.Evaluate()
	}
	if c.w.rt.target() != nil {
		c.w.Depend()
	}
	return c.w.value
}

// Watcher exposes the underlying lazy watcher.
func (c *Computed) Watcher() *Watcher {
	return c.w
}

// Teardown disposes the underlying watcher.
func (c *Computed) Teardown() {
	c.w.Teardown()
}
