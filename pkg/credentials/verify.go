package credentials

// VerifyPeerCallback is an externally supplied peer-certificate decision
// consulted during the handshake, beyond standard chain validation.
//
// serverName is the name the connection targets (after any target-name
// override); it may be empty on the server side. certPEM is the peer's leaf
// certificate in PEM form, passed through as an opaque payload.
//
// A nil return accepts the peer; a non-nil return rejects it with the given
// reason. The callback is invoked synchronously on whichever goroutine runs
// the handshake and blocks it until the callback returns.
//
// Callbacks that cross into an embedding host must not let failures escape:
// the credentials layer absorbs a panicking callback and converts it into a
// reject decision (see bridge.go), so the handshake stack never has to unwind
// a foreign failure.
type VerifyPeerCallback func(serverName, certPEM string) error

// VerifyPeerOptions configures peer verification for a channel credential.
//
// The options are copied by value at construction. Callback and Teardown are
// function values: any state they capture stays owned by the caller-supplied
// closure, and Teardown is the hook through which that state is released.
type VerifyPeerOptions struct {
	// Callback, if set, is consulted for every handshake performed through
	// connectors created from the owning credential.
	Callback VerifyPeerCallback

	// Teardown, if set, is invoked exactly once when the owning credential
	// is destroyed, after the verification path can no longer be invoked.
	// It releases whatever state the Callback captured.
	Teardown func()

	// SkipHostnameVerification disables hostname verification against the
	// peer certificate. Chain validation still applies.
	SkipHostnameVerification bool
}
