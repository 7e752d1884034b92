package credentials

// RawKeyCertPair is a caller-supplied private key and certificate chain in
// PEM form. It is an input type only: credential factories deep-copy both
// buffers, so the caller is free to mutate or discard them once the factory
// returns.
type RawKeyCertPair struct {
	// PrivateKeyPEM is the PEM-encoded private key.
	PrivateKeyPEM []byte

	// CertChainPEM is the PEM-encoded certificate chain, leaf first.
	CertChainPEM []byte
}

// KeyCertPair is an immutable private-key / certificate-chain pair owned by a
// credential. Both components are always present: a single-sided pair cannot
// be constructed.
//
// The PEM payloads are opaque to this package; parsing happens in the TLS
// layer behind the ConnectorBuilder port.
type KeyCertPair struct {
	privateKeyPEM string
	certChainPEM  string
}

// NewKeyCertPair builds a KeyCertPair from caller buffers, copying both.
//
// Returns ErrMismatchedKeyCertPair if exactly one component is set and
// ErrEmptyKeyCertPair if neither is. Callers with no identity to present
// should omit the pair rather than construct an empty one.
func NewKeyCertPair(raw RawKeyCertPair) (KeyCertPair, error) {
	hasKey := len(raw.PrivateKeyPEM) > 0
	hasChain := len(raw.CertChainPEM) > 0
	switch {
	case !hasKey && !hasChain:
		return KeyCertPair{}, ErrEmptyKeyCertPair
	case hasKey != hasChain:
		return KeyCertPair{}, ErrMismatchedKeyCertPair
	}
	// string() conversions copy; the pair never aliases the caller's buffers.
	return KeyCertPair{
		privateKeyPEM: string(raw.PrivateKeyPEM),
		certChainPEM:  string(raw.CertChainPEM),
	}, nil
}

// newKeyCertPairs validates and copies every element of raw into an
// independently owned slice. Order is preserved. An empty input is legal and
// yields a nil slice.
func newKeyCertPairs(raw []RawKeyCertPair) ([]KeyCertPair, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	pairs := make([]KeyCertPair, 0, len(raw))
	for _, r := range raw {
		pair, err := NewKeyCertPair(r)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// PrivateKeyPEM returns the PEM-encoded private key.
func (p KeyCertPair) PrivateKeyPEM() string { return p.privateKeyPEM }

// CertChainPEM returns the PEM-encoded certificate chain.
func (p KeyCertPair) CertChainPEM() string { return p.certChainPEM }

// IsZero reports whether the pair is the zero value (no constructed pair).
func (p KeyCertPair) IsZero() bool {
	return p.privateKeyPEM == "" && p.certChainPEM == ""
}
