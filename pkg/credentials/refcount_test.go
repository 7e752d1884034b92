package credentials

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRefCounted_Invariant_DestructExactlyOnce tests the lifecycle
// invariant: for N acquires and N matching releases across arbitrary
// goroutine interleavings, destruct fires exactly once, after the final
// release.
func TestRefCounted_Invariant_DestructExactlyOnce(t *testing.T) {
	t.Parallel()

	const holders = 64

	var destructs atomic.Int32
	var r refCounted
	r.initRef(func() { destructs.Add(1) })

	// Take the holders' references up front, then release them (plus the
	// factory's own reference) concurrently.
	for i := 0; i < holders; i++ {
		r.ref()
	}

	var wg sync.WaitGroup
	for i := 0; i < holders+1; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.unref()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), destructs.Load(), "destruct must fire exactly once")
	assert.False(t, r.alive())
}

func TestRefCounted_DestructNotBeforeFinalRelease(t *testing.T) {
	t.Parallel()

	var destructed bool
	var r refCounted
	r.initRef(func() { destructed = true })

	r.ref()
	r.unref()
	assert.False(t, destructed, "destruct must not fire while references remain")
	assert.True(t, r.alive())

	r.unref()
	assert.True(t, destructed)
}
