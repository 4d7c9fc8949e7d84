package vine

// Traverse force-reads every nested slot reachable from value so the active
// watcher depends on the whole structure. Its only effect is the reads.
// Visited containers are remembered by their own-shape dep id, which stops
// both cycles and re-visits of shared substructure. The seen set belongs to
// the runtime and is cleared at the start of each top-level call; nested
// calls during an ongoing traversal share it.
func (rt *Runtime) Traverse(value any) {
	if rt.traversing {
		rt.traverse(value)
		return
	}
	rt.traversing = true
	rt.seen.Clear()
	rt.traverse(value)
	rt.traversing = false
}

func (rt *Runtime) traverse(value any) {
	switch v := value.(type) {
	case *Map:
		if rt.seen.Contains(v.ob.dep.id) {
			return
		}
		rt.seen.Add(v.ob.dep.id)
		for _, k := range v.Keys() {
			rt.traverse(v.Get(k))
		}
	case *Slice:
		if rt.seen.Contains(v.ob.dep.id) {
			return
		}
		rt.seen.Add(v.ob.dep.id)
		for i := 0; i < len(v.items); i++ {
			rt.traverse(v.Get(i))
		}
	case map[string]any:
		// unobserved structure returned straight from a getter, nothing to
		// register but observed containers may hide inside
		for _, e := range v {
			rt.traverse(e)
		}
	case []any:
		for _, e := range v {
			rt.traverse(e)
		}
	}
}
