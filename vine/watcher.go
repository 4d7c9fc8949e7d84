package vine

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// GetterFunc is a watcher's read function, evaluated against the owning
// scope while the watcher is the active target.
type GetterFunc func(*Scope) any

// CallbackFunc receives the new and previous value after a watcher re-runs.
type CallbackFunc func(newVal, oldVal any)

// WatcherOptions select the evaluation mode.
type WatcherOptions struct {
	// Deep forces a full recursive read on every evaluation, so the watcher
	// depends on everything reachable through its value.
	Deep bool
	// User marks the getter and callback as user-supplied: errors and panics
	// are recovered and routed to the runtime error hook instead of
	// propagating.
	User bool
	// Lazy makes the watcher memoized: invalidation only marks it dirty,
	// recomputation waits until Evaluate is called.
	Lazy bool
	// Sync bypasses the scheduler and re-runs immediately on invalidation.
	Sync bool
}

// Watcher evaluates a read function, collects the deps it touched, and
// reacts to their notifications. After every evaluation its dep set exactly
// equals the set of deps read during that evaluation; nothing stale is ever
// retained.
type Watcher struct {
	rt         *Runtime
	scope      *Scope
	id         uint64
	expression string
	getter     GetterFunc
	cb         CallbackFunc

	deep, user, lazy, sync bool

	active bool
	dirty  bool
	value  any

	deps      []*Dep
	newDeps   []*Dep
	depIDs    mapset.Set[uint64]
	newDepIDs mapset.Set[uint64]
}

// NewWatcher constructs a watcher over a read function or a dot-path
// expression string and registers it with the owning scope. Non-lazy
// watchers evaluate immediately. A malformed expression degrades to a no-op
// read with a routed warning.
func NewWatcher(scope *Scope, exprOrFn any, cb CallbackFunc, opts WatcherOptions) *Watcher {
	rt := scope.rt
	w := &Watcher{
		rt:        rt,
		scope:     scope,
		id:        rt.nextWatcherID(),
		cb:        cb,
		deep:      opts.Deep,
		user:      opts.User,
		lazy:      opts.Lazy,
		sync:      opts.Sync,
		active:    true,
		dirty:     opts.Lazy,
		depIDs:    mapset.NewSet[uint64](),
		newDepIDs: mapset.NewSet[uint64](),
	}

	switch g := exprOrFn.(type) {
	case GetterFunc:
		w.getter = g
		w.expression = "fn"
	case func(*Scope) any:
		w.getter = g
		w.expression = "fn"
	case string:
		w.expression = g
		getter, err := rt.parsePath(g)
		if err != nil {
			w.getter = func(*Scope) any { return nil }
			rt.handleError(w, err, fmt.Sprintf("failed watching path %q", g))
		} else {
			w.getter = getter
		}
	default:
		w.getter = func(*Scope) any { return nil }
		rt.handleError(w, ErrBadExpression,
			fmt.Sprintf("watcher expects a GetterFunc or path string, got %T", exprOrFn))
	}

	scope.register(w)
	if !w.lazy {
		w.value = w.get()
	}
	return w
}

// ID is the watcher's creation-ordered identifier; the scheduler flushes in
// ascending ID order.
func (w *Watcher) ID() uint64 {
	return w.id
}

// Value returns the last computed value.
func (w *Watcher) Value() any {
	return w.value
}

// Dirty reports whether a lazy watcher has been invalidated since its last
// evaluation.
func (w *Watcher) Dirty() bool {
	return w.dirty
}

// Active reports whether the watcher has not been torn down.
func (w *Watcher) Active() bool {
	return w.active
}

// Expression is the path string the watcher was built from, or "fn".
func (w *Watcher) Expression() string {
	return w.expression
}

// get evaluates the getter with this watcher as the active target and then
// reconciles the dep sets. This is the only place dependencies are
// collected, and it replaces the previous set entirely every time.
func (w *Watcher) get() any {
	w.rt.pushTarget(w)
	defer func() {
		w.rt.popTarget()
		w.cleanupDeps()
		// a getter may write; flushes that deferred on this evaluation run
		// once the outermost frame unwinds
		w.rt.afterWrite()
	}()

	var value any
	if w.user {
		value = w.rt.invokeUser(w, func() any { return w.getter(w.scope) },
			fmt.Sprintf("getter for watcher %q", w.expression))
	} else {
		value = w.getter(w.scope)
	}
	if w.deep {
		w.rt.Traverse(value)
	}
	return value
}

// addDep records a dep touched during the current evaluation. Duplicate
// reads within one evaluation are collapsed; the dep is only told to
// subscribe when this watcher has never seen it before.
func (w *Watcher) addDep(d *Dep) {
	if w.newDepIDs.Contains(d.id) {
		return
	}
	w.newDepIDs.Add(d.id)
	w.newDeps = append(w.newDeps, d)
	if !w.depIDs.Contains(d.id) {
		d.addSub(w)
	}
}

// cleanupDeps unsubscribes from deps not read during the evaluation that
// just finished, then swaps the freshly collected set in. Conditional reads
// that stopped happening unsubscribe promptly, so stale deps never
// re-trigger this watcher.
func (w *Watcher) cleanupDeps() {
	for _, d := range w.deps {
		if !w.newDepIDs.Contains(d.id) {
			d.removeSub(w)
		}
	}
	w.deps, w.newDeps = w.newDeps, w.deps[:0]
	w.depIDs, w.newDepIDs = w.newDepIDs, w.depIDs
	w.newDepIDs.Clear()
}

// Update is the invalidation entry point called by a notified dep. Lazy
// watchers just go dirty, sync watchers run immediately, everything else is
// queued for the next flush.
func (w *Watcher) Update() {
	switch {
	case w.lazy:
		w.dirty = true
	case w.sync:
		w.Run()
	default:
		w.rt.queueWatcher(w)
	}
}

// Run re-evaluates and fires the callback when the value changed. Container
// values compare by reference and may have mutated in place, so they fire
// even when the reference is unchanged, as do deep watchers. Torn-down
// watchers are no-ops.
func (w *Watcher) Run() {
	if !w.active {
		return
	}
	value := w.get()
	if !sameValue(value, w.value) || KindOf(value) == KindObserved || w.deep {
		old := w.value
		w.value = value
		if w.cb == nil {
			return
		}
		if w.user {
			w.rt.invokeUser(w, func() any {
				w.cb(value, old)
				return nil
			}, fmt.Sprintf("callback for watcher %q", w.expression))
		} else {
			w.cb(value, old)
		}
	}
}

// Evaluate recomputes a lazy watcher's value on demand and clears the dirty
// flag.
func (w *Watcher) Evaluate() {
	w.value = w.get()
	w.dirty = false
}

// Depend registers this watcher's current deps with the active watcher, so
// whoever reads a memoized value inherits its dependencies and invalidation
// chains transitively.
func (w *Watcher) Depend() {
	for _, d := range w.deps {
		d.Depend()
	}
}

// Teardown unsubscribes from every dep, removes the watcher from its scope
// and marks it inactive. Repeated calls are no-ops. The scope list removal
// is skipped while the scope itself is tearing down.
func (w *Watcher) Teardown() {
	if !w.active {
		return
	}
	if !w.scope.tearingDown {
		w.scope.remove(w)
	}
	for _, d := range w.deps {
		d.removeSub(w)
	}
	w.deps = w.deps[:0]
	w.depIDs.Clear()
	w.active = false
}
