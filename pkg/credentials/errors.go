package credentials

import "errors"

// Sentinel errors for caller contract violations.
// Use with errors.Is() for checking and fmt.Errorf("%w", ...) for wrapping with context.

var (
	// ErrMismatchedKeyCertPair indicates a key/cert pair with exactly one of
	// its two components set. A pair is all-or-nothing: both the private key
	// and the certificate chain must be present.
	ErrMismatchedKeyCertPair = errors.New("key/cert pair must set both private key and certificate chain")

	// ErrEmptyKeyCertPair indicates a key/cert pair with neither component
	// set. Callers that have no identity to present should omit the pair
	// entirely rather than pass an empty one.
	ErrEmptyKeyCertPair = errors.New("key/cert pair cannot be empty")

	// ErrNilCredentials indicates a nil credential where a live one is
	// required, e.g. composing with a nil channel credential.
	ErrNilCredentials = errors.New("credentials cannot be nil")

	// ErrNilConnectorBuilder indicates a credential factory was invoked
	// without a connector builder.
	ErrNilConnectorBuilder = errors.New("connector builder cannot be nil")

	// ErrInvalidClientCertPolicy indicates a client-certificate request
	// policy outside the defined enum range.
	ErrInvalidClientCertPolicy = errors.New("invalid client certificate policy")
)

// Compile-time check that errors implement error interface
var (
	_ error = ErrMismatchedKeyCertPair
	_ error = ErrEmptyKeyCertPair
	_ error = ErrNilCredentials
	_ error = ErrNilConnectorBuilder
	_ error = ErrInvalidClientCertPolicy
)
