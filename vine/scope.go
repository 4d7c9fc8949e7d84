package vine

// Scope owns watchers and optionally a root data container. Tearing a scope
// down tears down everything it owns; consumers that outlive their data
// graph use scopes to avoid leaking subscriptions.
type Scope struct {
	rt          *Runtime
	data        *Map
	watchers    []*Watcher
	tearingDown bool
}

// NewScope creates a scope. data, when non-nil, is observed as root data and
// becomes the resolution target for dot-path watch expressions.
func (rt *Runtime) NewScope(data map[string]any) *Scope {
	sc := &Scope{rt: rt}
	if data != nil {
		sc.data = rt.ObserveRoot(data)
	}
	return sc
}

// Runtime returns the owning runtime.
func (sc *Scope) Runtime() *Runtime {
	return sc.rt
}

// Data returns the scope's observed root container, nil when the scope was
// created without data.
func (sc *Scope) Data() *Map {
	return sc.data
}

func (sc *Scope) register(w *Watcher) {
	sc.watchers = append(sc.watchers, w)
}

func (sc *Scope) remove(w *Watcher) {
	for i, other := range sc.watchers {
		if other.id == w.id {
			sc.watchers = append(sc.watchers[:i], sc.watchers[i+1:]...)
			return
		}
	}
}

// Watch registers a user watcher over a read function or dot-path string and
// returns its unwatch function. User mode is forced on: errors from the
// getter and callback are recoverable and routed, never propagated.
func (sc *Scope) Watch(exprOrFn any, cb CallbackFunc, opts WatcherOptions) func() {
	opts.User = true
	w := NewWatcher(sc, exprOrFn, cb, opts)
	return w.Teardown
}

// Teardown disposes every watcher the scope owns and releases the root data
// marking. Idempotent.
func (sc *Scope) Teardown() {
	if sc.tearingDown {
		return
	}
	sc.tearingDown = true
	for _, w := range sc.watchers {
		w.Teardown()
	}
	sc.watchers = nil
	if sc.data != nil {
		sc.data.ob.vmCount--
	}
}
