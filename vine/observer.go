package vine

import (
	"fmt"
	"math"
	"reflect"
	"sort"
)

// Kind classifies a value for the wrapping decision. The shape is decided
// once per value; there is no duck typing anywhere else in the engine.
type Kind uint8

const (
	KindScalar Kind = iota
	KindSequence
	KindKeyedMap
	KindObserved
)

// KindOf reports how Observe will treat a value.
func KindOf(v any) Kind {
	switch v.(type) {
	case *Map, *Slice:
		return KindObserved
	case map[string]any:
		return KindKeyedMap
	case []any:
		return KindSequence
	default:
		return KindScalar
	}
}

// Observer marks a container as instrumented. dep is the container's
// own-shape subject, notified on collection mutation and key add/remove.
// vmCount counts the scopes using the container as root data, so top-level
// shape changes can be refused later.
type Observer struct {
	rt      *Runtime
	dep     *Dep
	vmCount int
	value   any
}

// slot is the accessor record for one Map key: the backing value, the key's
// dep and an optional custom setter hook. Every read and write goes through
// this record, never raw field access.
type slot struct {
	value        any
	dep          *Dep
	customSetter func(old, next any)
}

// Map is an observed keyed container.
type Map struct {
	rt    *Runtime
	ob    *Observer
	slots map[string]*slot
}

// Slice is an observed sequence. Elements share the container's own-shape
// dep; the mutating operations notify it once per operation.
type Slice struct {
	rt    *Runtime
	ob    *Observer
	items []any
}

// Observe wraps a value so its reads and writes become visible to watchers.
// Scalars pass through untouched and already observed containers are
// returned as-is, so wrapping is idempotent. Raw maps and slices are
// converted eagerly, recursing into nested values.
func (rt *Runtime) Observe(value any) any {
	switch KindOf(value) {
	case KindObserved:
		return value
	case KindKeyedMap:
		return rt.newMap(value.(map[string]any))
	case KindSequence:
		return rt.newSlice(value.([]any))
	default:
		return value
	}
}

// ObserveRoot wraps a root data container and marks it as scope-owned. Key
// adds and deletes on a root container are refused with a routed warning,
// because consumers hold direct references to its top level.
func (rt *Runtime) ObserveRoot(raw map[string]any) *Map {
	m := rt.Observe(raw).(*Map)
	m.ob.vmCount++
	return m
}

func (rt *Runtime) newMap(raw map[string]any) *Map {
	m := &Map{rt: rt, slots: make(map[string]*slot, len(raw))}
	m.ob = &Observer{rt: rt, dep: newDep(rt), value: m}

	// sorted keys so dep ids are deterministic across runs
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		m.slots[k] = &slot{value: rt.Observe(raw[k]), dep: newDep(rt)}
	}
	return m
}

func (rt *Runtime) newSlice(raw []any) *Slice {
	s := &Slice{rt: rt, items: make([]any, len(raw))}
	s.ob = &Observer{rt: rt, dep: newDep(rt), value: s}
	for i, v := range raw {
		s.items[i] = rt.Observe(v)
	}
	return s
}

func observerOf(v any) *Observer {
	switch c := v.(type) {
	case *Map:
		return c.ob
	case *Slice:
		return c.ob
	}
	return nil
}

// Get returns the value stored under key, registering the key's dep with the
// active watcher. When the stored value is itself observed, the child
// container's own-shape dep is registered too, recursing through nested
// sequences, so replacing or mutating the nested container re-triggers the
// reader. Reads of absent keys register the container's shape.
func (m *Map) Get(key string) any {
	s, ok := m.slots[key]
	if !ok {
		m.ob.dep.Depend()
		return nil
	}
	s.dep.Depend()
	if child := observerOf(s.value); child != nil {
		child.dep.Depend()
		if nested, ok := s.value.(*Slice); ok {
			nested.dependElements()
		}
	}
	return s.value
}

// Peek returns the value stored under key without registering anything.
func (m *Map) Peek(key string) any {
	if s, ok := m.slots[key]; ok {
		return s.value
	}
	return nil
}

// Set writes key. Writes of an identical scalar (including NaN over NaN) are
// no-ops. A key unknown at wrap time is installed as a fresh accessor record
// and announced through the container's shape dep; accessor instrumentation
// can only cover keys known at wrap time, so this is the one way to add one.
func (m *Map) Set(key string, value any) {
	if s, ok := m.slots[key]; ok {
		if s.customSetter != nil {
			s.customSetter(s.value, value)
		}
		if sameValue(s.value, value) {
			return
		}
		s.value = m.rt.Observe(value)
		s.dep.Notify()
		m.rt.afterWrite()
		return
	}

	if m.ob.vmCount > 0 {
		m.rt.handleError(nil, ErrRootKey, fmt.Sprintf("set of new key %q", key))
		return
	}
	m.slots[key] = &slot{value: m.rt.Observe(value), dep: newDep(m.rt)}
	m.ob.dep.Notify()
	m.rt.afterWrite()
}

// Delete removes key and notifies both the key's dep and the container's
// shape dep. Deleting from root data is refused, absent keys are no-ops.
func (m *Map) Delete(key string) {
	s, ok := m.slots[key]
	if !ok {
		return
	}
	if m.ob.vmCount > 0 {
		m.rt.handleError(nil, ErrRootKey, fmt.Sprintf("delete of key %q", key))
		return
	}
	delete(m.slots, key)
	s.dep.Notify()
	m.ob.dep.Notify()
	m.rt.afterWrite()
}

// Define installs a single reactive key with an optional custom setter hook,
// fired on every write before the value is compared or stored. Existing keys
// are redefined in place.
func (m *Map) Define(key string, value any, customSetter func(old, next any)) {
	if s, ok := m.slots[key]; ok {
		s.value = m.rt.Observe(value)
		s.customSetter = customSetter
		return
	}
	m.slots[key] = &slot{
		value:        m.rt.Observe(value),
		dep:          newDep(m.rt),
		customSetter: customSetter,
	}
}

// Has reports whether key exists, registering the container's shape.
func (m *Map) Has(key string) bool {
	m.ob.dep.Depend()
	_, ok := m.slots[key]
	return ok
}

// Len registers the container's shape and returns the key count.
func (m *Map) Len() int {
	m.ob.dep.Depend()
	return len(m.slots)
}

// Keys registers the container's shape and returns the keys sorted.
func (m *Map) Keys() []string {
	m.ob.dep.Depend()
	keys := make([]string, 0, len(m.slots))
	for k := range m.slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dep exposes the container's own-shape dep.
func (m *Map) Dep() *Dep {
	return m.ob.dep
}

// Get returns the element at index i, registering the container's shape with
// the active watcher. Out-of-range reads return nil.
func (s *Slice) Get(i int) any {
	s.ob.dep.Depend()
	if i < 0 || i >= len(s.items) {
		return nil
	}
	v := s.items[i]
	if child := observerOf(v); child != nil {
		child.dep.Depend()
		if nested, ok := v.(*Slice); ok {
			nested.dependElements()
		}
	}
	return v
}

// Peek returns the element at index i without registering anything.
func (s *Slice) Peek(i int) any {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	return s.items[i]
}

// Len registers the container's shape and returns the element count.
func (s *Slice) Len() int {
	s.ob.dep.Depend()
	return len(s.items)
}

// Values registers the container's shape and returns a snapshot copy.
func (s *Slice) Values() []any {
	s.ob.dep.Depend()
	out := make([]any, len(s.items))
	copy(out, s.items)
	return out
}

// Dep exposes the container's own-shape dep.
func (s *Slice) Dep() *Dep {
	return s.ob.dep
}

// dependElements registers every nested observed element with the active
// watcher. Sequence elements have no per-index dep, so a reader of the
// sequence depends on the shape of everything reachable through it.
func (s *Slice) dependElements() {
	for _, e := range s.items {
		if child := observerOf(e); child != nil {
			child.dep.Depend()
		}
		if nested, ok := e.(*Slice); ok {
			nested.dependElements()
		}
	}
}

// Push appends items, observing each, and notifies once.
func (s *Slice) Push(items ...any) {
	for _, v := range items {
		s.items = append(s.items, s.rt.Observe(v))
	}
	s.ob.dep.Notify()
	s.rt.afterWrite()
}

// Pop removes and returns the last element, nil when empty.
func (s *Slice) Pop() any {
	if len(s.items) == 0 {
		return nil
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	s.ob.dep.Notify()
	s.rt.afterWrite()
	return v
}

// Shift removes and returns the first element, nil when empty.
func (s *Slice) Shift() any {
	if len(s.items) == 0 {
		return nil
	}
	v := s.items[0]
	s.items = append(s.items[:0], s.items[1:]...)
	s.ob.dep.Notify()
	s.rt.afterWrite()
	return v
}

// Unshift prepends items, observing each, and notifies once.
func (s *Slice) Unshift(items ...any) {
	observed := make([]any, len(items))
	for i, v := range items {
		observed[i] = s.rt.Observe(v)
	}
	s.items = append(observed, s.items...)
	s.ob.dep.Notify()
	s.rt.afterWrite()
}

// Splice removes deleteCount elements at start, inserts items in their
// place, and returns the removed elements. Bounds are clamped. The container
// dep is notified once regardless of how much changed.
func (s *Slice) Splice(start, deleteCount int, items ...any) []any {
	n := len(s.items)
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if start+deleteCount > n {
		deleteCount = n - start
	}

	removed := make([]any, deleteCount)
	copy(removed, s.items[start:start+deleteCount])

	observed := make([]any, len(items))
	for i, v := range items {
		observed[i] = s.rt.Observe(v)
	}

	tail := make([]any, n-start-deleteCount)
	copy(tail, s.items[start+deleteCount:])
	s.items = append(s.items[:start], append(observed, tail...)...)

	s.ob.dep.Notify()
	s.rt.afterWrite()
	return removed
}

// SetIndex replaces the element at index i, the splice-like single-element
// form. Out-of-range indexes grow the sequence.
func (s *Slice) SetIndex(i int, v any) {
	if i < 0 {
		return
	}
	for len(s.items) <= i {
		s.items = append(s.items, nil)
	}
	s.items[i] = s.rt.Observe(v)
	s.ob.dep.Notify()
	s.rt.afterWrite()
}

// Sort orders the elements by less and notifies once.
func (s *Slice) Sort(less func(a, b any) bool) {
	sort.SliceStable(s.items, func(i, j int) bool { return less(s.items[i], s.items[j]) })
	s.ob.dep.Notify()
	s.rt.afterWrite()
}

// Reverse reverses the elements in place and notifies once.
func (s *Slice) Reverse() {
	for i, j := 0, len(s.items)-1; i < j; i, j = i+1, j-1 {
		s.items[i], s.items[j] = s.items[j], s.items[i]
	}
	s.ob.dep.Notify()
	s.rt.afterWrite()
}

// sameValue is the write no-op check: nils match, NaN matches NaN, values of
// different or uncomparable types never match, everything else compares with
// ==. Containers are pointers here, so identity compare falls out of ==.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if isNaN(a) && isNaN(b) {
		return true
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func isNaN(v any) bool {
	switch f := v.(type) {
	case float64:
		return math.IsNaN(f)
	case float32:
		return math.IsNaN(float64(f))
	}
	return false
}
