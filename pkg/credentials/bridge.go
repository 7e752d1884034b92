package credentials

import (
	"fmt"
	"sync"
)

// verifyBridge adapts a caller-supplied VerifyPeerCallback to the calling
// convention the TLS layer expects: a plain synchronous function that never
// fails in ways the handshake stack cannot unwind.
//
// The bridge owns the callback's teardown contract. Release runs the Teardown
// hook exactly once, and the owning credential calls it only at refcount
// zero, when no new handshake can reach the callback anymore. An in-flight
// Verify call keeps its captured state reachable until it returns; Release
// does not reclaim anything out from under it.
type verifyBridge struct {
	callback VerifyPeerCallback
	teardown func()

	// releaseOnce enforces the at-most-once teardown contract.
	releaseOnce sync.Once
}

// newVerifyBridge wraps the callback and teardown hook from opts. The
// returned bridge is non-nil even when no callback is installed, so callers
// can release unconditionally.
func newVerifyBridge(opts VerifyPeerOptions) *verifyBridge {
	return &verifyBridge{
		callback: opts.Callback,
		teardown: opts.Teardown,
	}
}

// hasCallback reports whether an external callback is installed.
func (b *verifyBridge) hasCallback() bool {
	return b != nil && b.callback != nil
}

// verify invokes the external callback synchronously. A nil bridge or absent
// callback accepts the peer. A panicking callback is absorbed and converted
// into a reject decision; the panic never propagates into the handshake
// stack.
func (b *verifyBridge) verify(serverName, certPEM string) (err error) {
	if !b.hasCallback() {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("peer verification callback failed: %v", r)
		}
	}()
	return b.callback(serverName, certPEM)
}

// release runs the teardown hook. Safe to call on a nil bridge and safe to
// call more than once; the hook itself runs at most once.
func (b *verifyBridge) release() {
	if b == nil {
		return
	}
	b.releaseOnce.Do(func() {
		if b.teardown != nil {
			b.teardown()
		}
	})
}
