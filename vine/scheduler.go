package vine

import (
	"fmt"
	"sort"
)

// maxUpdateCount is the circuit-breaker threshold: how many times one
// watcher may be processed within a single flush before it is suppressed
// for the remainder of that flush.
const maxUpdateCount = 100

// queueWatcher enqueues w for the next flush, deduplicated by id. The first
// enqueue into an empty queue schedules one deferred flush; later enqueues
// in the same turn coalesce into it. During an active flush the watcher is
// spliced into the unprocessed tail at its id-sorted position, so a chain of
// re-invalidations converges within the same flush instead of needing one
// tick per link.
func (rt *Runtime) queueWatcher(w *Watcher) {
	if rt.queued.Contains(w.id) {
		return
	}
	rt.queued.Add(w.id)

	if !rt.flushing {
		rt.queue = append(rt.queue, w)
	} else {
		i := len(rt.queue) - 1
		for i > rt.index && rt.queue[i].id > w.id {
			i--
		}
		rt.queue = append(rt.queue, nil)
		copy(rt.queue[i+2:], rt.queue[i+1:])
		rt.queue[i+1] = w
	}

	if !rt.waiting {
		rt.waiting = true
		rt.nextTick(rt.flushSchedulerQueue)
	}
}

// flushSchedulerQueue runs every queued watcher in ascending id order, which
// is creation order, so parents run before the children created under them.
// The sort happens once up front; entries spliced in mid-flush keep the
// order by construction. Iteration uses an explicit cursor because the queue
// can grow while it runs.
func (rt *Runtime) flushSchedulerQueue() {
	rt.flushing = true
	sort.Slice(rt.queue, func(i, j int) bool { return rt.queue[i].id < rt.queue[j].id })

	for rt.index = 0; rt.index < len(rt.queue); rt.index++ {
		w := rt.queue[rt.index]
		rt.queued.Remove(w.id)

		rt.circular[w.id]++
		if rt.circular[w.id] > maxUpdateCount {
			if rt.circular[w.id] == maxUpdateCount+1 {
				rt.handleError(w, ErrRunawayUpdate,
					fmt.Sprintf("watcher %q re-ran %d times in one flush", w.expression, maxUpdateCount))
			}
			continue
		}

		w.Run()
	}

	rt.resetSchedulerState()

	hooks := make([]func(), len(rt.flushHooks))
	copy(hooks, rt.flushHooks)
	for _, hook := range hooks {
		hook()
	}
}

func (rt *Runtime) resetSchedulerState() {
	rt.queue = rt.queue[:0]
	rt.index = 0
	rt.queued.Clear()
	for id := range rt.circular {
		delete(rt.circular, id)
	}
	rt.flushing = false
	rt.waiting = false
}

// OnFlush registers a hook invoked after every completed flush, once the
// scheduler state has been reset. Collaborators use it for lifecycle
// notifications that must observe a settled graph.
func (rt *Runtime) OnFlush(hook func()) {
	rt.flushHooks = append(rt.flushHooks, hook)
}
