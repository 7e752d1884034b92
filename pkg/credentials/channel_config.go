package credentials

// ChannelTLSConfig is the immutable TLS configuration carried by a channel
// credential: optional trust roots, an optional single identity pair, and the
// peer-verification policy.
//
// Instances are built by the channel credential factory, which deep-copies
// every caller buffer. Accessors perform read-only access and are safe for
// concurrent use.
type ChannelTLSConfig struct {
	rootCertsPEM  string
	keyCertPair   KeyCertPair
	hasPair       bool
	verifyOptions VerifyPeerOptions
}

// newChannelTLSConfig validates and deep-copies the caller-supplied material.
//
// rootCertsPEM may be nil (use the connector builder's default trust roots).
// pair may be nil (no identity to present); when present, both of its
// components are required. opts may be nil (zero-value verification policy);
// when present it is copied by value, so the function pointers are shared but
// the options struct itself is not aliased.
func newChannelTLSConfig(rootCertsPEM []byte, pair *RawKeyCertPair, opts *VerifyPeerOptions) (*ChannelTLSConfig, error) {
	cfg := &ChannelTLSConfig{}
	if len(rootCertsPEM) > 0 {
		cfg.rootCertsPEM = string(rootCertsPEM)
	}
	if pair != nil {
		kp, err := NewKeyCertPair(*pair)
		if err != nil {
			return nil, err
		}
		cfg.keyCertPair = kp
		cfg.hasPair = true
	}
	if opts != nil {
		cfg.verifyOptions = *opts
	}
	return cfg, nil
}

// RootCertsPEM returns the PEM-encoded root certificates, or "" if none were
// supplied.
func (c *ChannelTLSConfig) RootCertsPEM() string { return c.rootCertsPEM }

// HasRootCerts reports whether root certificates were supplied.
func (c *ChannelTLSConfig) HasRootCerts() bool { return c.rootCertsPEM != "" }

// KeyCertPair returns the identity pair and true if one was supplied.
func (c *ChannelTLSConfig) KeyCertPair() (KeyCertPair, bool) {
	return c.keyCertPair, c.hasPair
}

// VerifyOptions returns the peer-verification policy by value.
func (c *ChannelTLSConfig) VerifyOptions() VerifyPeerOptions { return c.verifyOptions }
