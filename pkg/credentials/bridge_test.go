package credentials

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyBridge_AcceptAndReject(t *testing.T) {
	t.Parallel()

	rejection := errors.New("untrusted peer")
	b := newVerifyBridge(VerifyPeerOptions{
		Callback: func(serverName, certPEM string) error {
			if serverName == "bad.example.org" {
				return rejection
			}
			return nil
		},
	})

	assert.NoError(t, b.verify("good.example.org", "cert"))
	assert.ErrorIs(t, b.verify("bad.example.org", "cert"), rejection)
}

// TestVerifyBridge_PanickingCallbackRejects tests that a failing external
// callback is absorbed into a reject decision rather than propagated into
// the handshake path.
func TestVerifyBridge_PanickingCallbackRejects(t *testing.T) {
	t.Parallel()

	b := newVerifyBridge(VerifyPeerOptions{
		Callback: func(serverName, certPEM string) error {
			panic("host runtime exploded")
		},
	})

	var err error
	require.NotPanics(t, func() {
		err = b.verify("example.org", "cert")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host runtime exploded")
}

func TestVerifyBridge_NoCallbackAccepts(t *testing.T) {
	t.Parallel()

	b := newVerifyBridge(VerifyPeerOptions{})
	assert.False(t, b.hasCallback())
	assert.NoError(t, b.verify("example.org", "cert"))

	var nilBridge *verifyBridge
	assert.NoError(t, nilBridge.verify("example.org", "cert"))
}

// TestVerifyBridge_Invariant_TeardownAtMostOnce tests the destruction
// contract: the teardown hook runs at most once, no matter how many times
// release is called or from how many goroutines.
func TestVerifyBridge_Invariant_TeardownAtMostOnce(t *testing.T) {
	t.Parallel()

	var calls int
	b := newVerifyBridge(VerifyPeerOptions{
		Teardown: func() { calls++ },
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.release()
		}()
	}
	wg.Wait()
	b.release()

	assert.Equal(t, 1, calls)
}

func TestVerifyBridge_ReleaseWithoutTeardown(t *testing.T) {
	t.Parallel()

	b := newVerifyBridge(VerifyPeerOptions{})
	assert.NotPanics(t, func() {
		b.release()
		b.release()
	})

	var nilBridge *verifyBridge
	assert.NotPanics(t, func() { nilBridge.release() })
}
