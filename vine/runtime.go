package vine

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Runtime owns every piece of process-wide state the engine needs: the
// active-watcher stack, id counters, the scheduler queue and the error hook.
// Nothing in this package touches a bare global, so several runtimes can
// coexist in one process and reentrancy stays testable.
//
// A Runtime is single-threaded by design. All reads, writes and flushes must
// happen on one goroutine; "concurrency" here is reentrancy and deferred
// batching, never parallelism.
type Runtime struct {
	onError OnErrorFunc

	// active-watcher stack, top is the watcher currently evaluating
	targetStack []*Watcher

	watcherUID uint64
	depUID     uint64

	// scheduler state
	queue      []*Watcher
	queued     mapset.Set[uint64]
	circular   map[uint64]int
	flushing   bool
	waiting    bool
	index      int
	flushHooks []func()

	// deferred callbacks, drained when the outermost mutation unwinds
	ticks      []func()
	draining   bool
	batchDepth int

	// traversal scratch state
	seen       mapset.Set[uint64]
	traversing bool

	// parsed dot-path expressions keyed by xxhash of the source string
	pathCache map[uint64][]string
}

// NewRuntime creates a runtime. onError receives errors raised by
// user-supplied getters and callbacks plus non-fatal warnings like runaway
// update loops; pass nil for the default non-fatal log handler.
func NewRuntime(onError OnErrorFunc) *Runtime {
	return &Runtime{
		onError:   onError,
		queued:    mapset.NewSet[uint64](),
		circular:  map[uint64]int{},
		seen:      mapset.NewSet[uint64](),
		pathCache: map[uint64][]string{},
	}
}

func (rt *Runtime) nextWatcherID() uint64 {
	rt.watcherUID++
	return rt.watcherUID
}

func (rt *Runtime) nextDepID() uint64 {
	rt.depUID++
	return rt.depUID
}

// pushTarget makes w the active watcher. Evaluations nest (a getter may read
// a lazy watcher's value, which evaluates it), so this is a stack: the inner
// evaluation pushes, evaluates and pops, restoring the outer context.
func (rt *Runtime) pushTarget(w *Watcher) {
	rt.targetStack = append(rt.targetStack, w)
}

func (rt *Runtime) popTarget() {
	rt.targetStack = rt.targetStack[:len(rt.targetStack)-1]
}

// target returns the watcher currently evaluating, or nil.
func (rt *Runtime) target() *Watcher {
	if len(rt.targetStack) == 0 {
		return nil
	}
	return rt.targetStack[len(rt.targetStack)-1]
}

// StartBatch suspends flushing until the matching EndBatch. Batches nest.
func (rt *Runtime) StartBatch() {
	rt.batchDepth++
}

// EndBatch closes the innermost batch. When the outermost batch ends, every
// watcher invalidated inside it runs in a single flush.
func (rt *Runtime) EndBatch() {
	rt.batchDepth--
	if rt.batchDepth == 0 {
		rt.drainTicks()
	}
}

// Batch runs cb with flushing suspended. Writes to any number of reactive
// slots inside cb produce exactly one flush.
func (rt *Runtime) Batch(cb func()) {
	rt.StartBatch()
	defer rt.EndBatch()
	cb()
}

// NextTick schedules cb to run after the pending flush completes. Outside a
// batch or flush with nothing queued it runs immediately.
func (rt *Runtime) NextTick(cb func()) {
	rt.nextTick(cb)
	rt.afterWrite()
}

func (rt *Runtime) nextTick(cb func()) {
	rt.ticks = append(rt.ticks, cb)
}

// afterWrite drains deferred work once the outermost mutation unwinds.
// Inside a batch, a flush, or an active evaluation it does nothing; the
// drain happens when that outer frame finishes.
func (rt *Runtime) afterWrite() {
	if rt.batchDepth > 0 || rt.draining || len(rt.targetStack) > 0 {
		return
	}
	rt.drainTicks()
}

// drainTicks runs deferred callbacks until none remain. Callbacks scheduled
// while draining (a flush re-invalidating watchers, post-flush hooks queueing
// more work) are picked up in the same drain.
func (rt *Runtime) drainTicks() {
	if rt.draining {
		return
	}
	rt.draining = true
	defer func() { rt.draining = false }()

	for len(rt.ticks) > 0 {
		cbs := rt.ticks
		rt.ticks = nil
		for _, cb := range cbs {
			cb()
		}
	}
}
