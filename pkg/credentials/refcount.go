package credentials

import (
	"sync/atomic"

	"github.com/sufield/tlscreds/internal/assert"
)

// refCounted implements the shared-ownership lifecycle common to all
// credential variants.
//
// A credential starts at refcount 1 (owned by the caller of its factory).
// Every additional holder takes a reference with ref and drops it with unref.
// The goroutine whose unref moves the count to zero runs destruct, exactly
// once; the classic atomic-refcount discipline makes that transition
// race-free without locks, because everything else about a credential is
// immutable after construction.
type refCounted struct {
	refs     atomic.Int32
	destruct func()

	// destroyed is observable state for debug-build checks: no operation may
	// run on a credential after destruct begins.
	destroyed atomic.Bool
}

// initRef arms the lifecycle with refcount 1 and the variant's destruct hook.
func (r *refCounted) initRef(destruct func()) {
	r.refs.Store(1)
	r.destruct = destruct
}

// ref takes an additional reference.
func (r *refCounted) ref() {
	n := r.refs.Add(1)
	assert.Invariant(n > 1, "credential referenced after teardown began")
}

// unref drops a reference and runs destruct on the transition to zero.
func (r *refCounted) unref() {
	n := r.refs.Add(-1)
	assert.Invariant(n >= 0, "credential released more times than acquired")
	if n == 0 {
		r.destroyed.Store(true)
		if r.destruct != nil {
			r.destruct()
		}
	}
}

// alive reports whether teardown has not begun. Used by debug-build checks in
// operations that must not observe a destroyed credential.
func (r *refCounted) alive() bool {
	return !r.destroyed.Load()
}
