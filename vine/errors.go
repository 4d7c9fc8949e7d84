package vine

import (
	"errors"
	"fmt"
	"log"
)

var (
	// ErrBadExpression marks an unparseable watch expression. The watcher
	// degrades to a no-op read.
	ErrBadExpression = errors.New("vine: bad watch expression")

	// ErrRunawayUpdate marks a watcher that was re-invalidated past the
	// per-flush limit. It is skipped for the rest of that flush only.
	ErrRunawayUpdate = errors.New("vine: possible infinite update loop")

	// ErrRootKey marks a refused key add or delete on root data.
	ErrRootKey = errors.New("vine: avoid adding or deleting keys on root data")
)

// OnErrorFunc receives every routed error: user getter/callback failures,
// bad expressions, runaway update warnings, root key refusals. w is the
// watcher involved, nil for container-level warnings.
type OnErrorFunc func(w *Watcher, err error, label string)

// handleError routes through the configured hook, else logs non-fatally.
// Only user-supplied code and recoverable warnings come through here; a
// defect in the engine itself propagates and fails loudly.
func (rt *Runtime) handleError(w *Watcher, err error, label string) {
	if rt.onError != nil {
		rt.onError(w, err, label)
		return
	}
	log.Printf("vine: %s: %v", label, err)
}

// invokeUser runs a user-supplied function, converting panics to errors and
// routing them. Evaluation continues as if the function returned nil.
func (rt *Runtime) invokeUser(w *Watcher, fn func() any, label string) (value any) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			rt.handleError(w, err, label)
			value = nil
		}
	}()
	return fn()
}
