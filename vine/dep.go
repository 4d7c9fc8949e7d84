package vine

import "sort"

// Dep is the dependency subject: one per reactive slot, plus one per
// observed container for its own shape. It holds the watchers that read the
// slot and pokes them when the slot is written. A watcher appears at most
// once. Deps own nothing and cannot fail; they merely index subscribers.
type Dep struct {
	rt   *Runtime
	id   uint64
	subs []*Watcher
}

func newDep(rt *Runtime) *Dep {
	return &Dep{rt: rt, id: rt.nextDepID()}
}

// ID is the dep's creation-ordered identifier.
func (d *Dep) ID() uint64 {
	return d.id
}

func (d *Dep) addSub(w *Watcher) {
	for _, sub := range d.subs {
		if sub.id == w.id {
			return
		}
	}
	d.subs = append(d.subs, w)
}

func (d *Dep) removeSub(w *Watcher) {
	for i, sub := range d.subs {
		if sub.id == w.id {
			d.subs = append(d.subs[:i], d.subs[i+1:]...)
			return
		}
	}
}

// Depend records this dep on the watcher currently evaluating, if any. A
// plain read with no evaluation in progress costs a single nil check.
func (d *Dep) Depend() {
	if t := d.rt.target(); t != nil {
		t.addDep(d)
	}
}

// Notify invalidates a stable snapshot of the current subscribers, in
// creation order so synchronous watchers fire parent-before-child.
// Subscribing or unsubscribing mid-notify affects later notifies only.
func (d *Dep) Notify() {
	subs := make([]*Watcher, len(d.subs))
	copy(subs, d.subs)
	sort.Slice(subs, func(i, j int) bool { return subs[i].id < subs[j].id })
	for _, w := range subs {
		w.Update()
	}
}
