package credentials

import "fmt"

// ClientCertPolicy controls whether and how a server requests client
// certificates during the handshake.
type ClientCertPolicy int

const (
	// DontRequestClientCert: no client certificate is requested.
	DontRequestClientCert ClientCertPolicy = iota
	// RequestClientCertNoVerify: a client certificate is requested but not
	// verified; the handshake proceeds either way.
	RequestClientCertNoVerify
	// RequestClientCertAndVerify: a client certificate is requested and
	// verified if presented; absence is tolerated.
	RequestClientCertAndVerify
	// RequireClientCertNoVerify: a client certificate is required but not
	// verified.
	RequireClientCertNoVerify
	// RequireClientCertAndVerify: a client certificate is required and
	// verified (full mutual TLS).
	RequireClientCertAndVerify
)

// Valid reports whether the policy is one of the defined enum values.
func (p ClientCertPolicy) Valid() bool {
	return p >= DontRequestClientCert && p <= RequireClientCertAndVerify
}

// String returns the policy's configuration-file spelling.
func (p ClientCertPolicy) String() string {
	switch p {
	case DontRequestClientCert:
		return "dont-request"
	case RequestClientCertNoVerify:
		return "request-no-verify"
	case RequestClientCertAndVerify:
		return "request-and-verify"
	case RequireClientCertNoVerify:
		return "require-no-verify"
	case RequireClientCertAndVerify:
		return "require-and-verify"
	default:
		return fmt.Sprintf("ClientCertPolicy(%d)", int(p))
	}
}

// ParseClientCertPolicy parses the configuration-file spelling of a policy.
// An empty string maps to DontRequestClientCert.
func ParseClientCertPolicy(s string) (ClientCertPolicy, error) {
	switch s {
	case "", "dont-request":
		return DontRequestClientCert, nil
	case "request-no-verify":
		return RequestClientCertNoVerify, nil
	case "request-and-verify":
		return RequestClientCertAndVerify, nil
	case "require-no-verify":
		return RequireClientCertNoVerify, nil
	case "require-and-verify":
		return RequireClientCertAndVerify, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidClientCertPolicy, s)
	}
}

// ServerTLSConfig is the immutable TLS configuration carried by a server
// credential: optional trust roots for client verification, zero or more
// identity pairs, and the client-certificate policy.
type ServerTLSConfig struct {
	rootCertsPEM     string
	keyCertPairs     []KeyCertPair
	clientCertPolicy ClientCertPolicy
}

// newServerTLSConfig validates and deep-copies the caller-supplied material.
// Every element of pairs must carry both components; an empty pairs slice is
// legal (the server declares no identity).
func newServerTLSConfig(rootCertsPEM []byte, pairs []RawKeyCertPair, policy ClientCertPolicy) (*ServerTLSConfig, error) {
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidClientCertPolicy, int(policy))
	}
	kps, err := newKeyCertPairs(pairs)
	if err != nil {
		return nil, err
	}
	cfg := &ServerTLSConfig{
		keyCertPairs:     kps,
		clientCertPolicy: policy,
	}
	if len(rootCertsPEM) > 0 {
		cfg.rootCertsPEM = string(rootCertsPEM)
	}
	return cfg, nil
}

// RootCertsPEM returns the PEM-encoded root certificates, or "" if none were
// supplied.
func (c *ServerTLSConfig) RootCertsPEM() string { return c.rootCertsPEM }

// HasRootCerts reports whether root certificates were supplied.
func (c *ServerTLSConfig) HasRootCerts() bool { return c.rootCertsPEM != "" }

// KeyCertPairs returns a copy of the identity pairs in their original order.
func (c *ServerTLSConfig) KeyCertPairs() []KeyCertPair {
	if len(c.keyCertPairs) == 0 {
		return nil
	}
	out := make([]KeyCertPair, len(c.keyCertPairs))
	copy(out, c.keyCertPairs)
	return out
}

// NumKeyCertPairs returns the number of identity pairs.
func (c *ServerTLSConfig) NumKeyCertPairs() int { return len(c.keyCertPairs) }

// ClientCertPolicy returns the client-certificate request policy.
func (c *ServerTLSConfig) ClientCertPolicy() ClientCertPolicy { return c.clientCertPolicy }
