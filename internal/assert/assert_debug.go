//go:build debug

package assert

import "fmt"

// Invariant checks an invariant condition and panics if violated in debug builds.
// Invariants represent conditions that must always be true for the system to be correct.
// Use this for internal sanity checks on credential state, not for validating
// caller input (caller contract violations are reported as typed errors).
//
// Examples:
//
//	// Lifecycle invariant (refcount discipline)
//	assert.Invariant(refs >= 0, "credential released more times than acquired")
//
//	// Postcondition (property established by construction)
//	assert.Invariant(!pair.IsZero(), "construction must not produce an empty key/cert pair")
func Invariant(ok bool, msg string) {
	if !ok {
		panic(fmt.Sprintf("INVARIANT VIOLATION: %s", msg))
	}
}
