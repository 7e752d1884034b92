package credentials

import (
	"github.com/sufield/tlscreds/internal/assert"
	"github.com/sufield/tlscreds/internal/debug"
)

// ServerCredentials is the server-side credential contract. The lifecycle
// rules are the same as for ChannelCredentials: immutable after construction,
// shared by reference count, torn down exactly once at refcount zero.
type ServerCredentials interface {
	// Type returns the variant's discriminant tag.
	Type() Type

	// Ref takes an additional shared reference.
	Ref()

	// Release drops a reference; the last release triggers teardown.
	Release()

	// NewSecurityConnector produces the live connector for accepting
	// connections. The server side performs no argument augmentation; there
	// is no outbound HTTP scheme to declare. On error the result is nil and
	// the credential remains valid for a subsequent attempt.
	NewSecurityConnector() (ServerConnector, error)
}

// tlsServerCredentials is the concrete TLS server credential.
type tlsServerCredentials struct {
	refCounted
	builder ConnectorBuilder
	config  *ServerTLSConfig
}

// NewServerTLS creates a TLS server credential.
//
// rootCertsPEM optionally supplies the roots used to verify client
// certificates; pairs supplies zero or more server identities, each requiring
// both components; policy controls client-certificate handling. All material
// is deep-copied. The returned credential has refcount 1.
//
// Returns an error wrapping ErrNilConnectorBuilder, ErrMismatchedKeyCertPair,
// ErrEmptyKeyCertPair or ErrInvalidClientCertPolicy on caller contract
// violations.
func NewServerTLS(builder ConnectorBuilder, rootCertsPEM []byte, pairs []RawKeyCertPair, policy ClientCertPolicy) (ServerCredentials, error) {
	if builder == nil {
		return nil, ErrNilConnectorBuilder
	}
	cfg, err := newServerTLSConfig(rootCertsPEM, pairs, policy)
	if err != nil {
		return nil, err
	}
	c := &tlsServerCredentials{
		builder: builder,
		config:  cfg,
	}
	c.initRef(c.destroy)
	debug.GetLogger().Tracef(
		"server TLS credentials created (roots=%t pairs=%d policy=%s)",
		cfg.HasRootCerts(), cfg.NumKeyCertPairs(), policy,
	)
	return c, nil
}

// NewServerTLSForceClientAuth is the convenience form of NewServerTLS for
// callers that only distinguish "mutual TLS" from "server-only TLS":
// forceClientAuth maps true to RequireClientCertAndVerify and false to
// DontRequestClientCert.
func NewServerTLSForceClientAuth(builder ConnectorBuilder, rootCertsPEM []byte, pairs []RawKeyCertPair, forceClientAuth bool) (ServerCredentials, error) {
	policy := DontRequestClientCert
	if forceClientAuth {
		policy = RequireClientCertAndVerify
	}
	return NewServerTLS(builder, rootCertsPEM, pairs, policy)
}

func (c *tlsServerCredentials) Type() Type { return TypeTLS }

func (c *tlsServerCredentials) Ref() { c.ref() }

func (c *tlsServerCredentials) Release() { c.unref() }

// destroy runs at refcount zero. Server credentials install no verify
// bridge; config memory is reclaimed by the runtime once unreachable.
func (c *tlsServerCredentials) destroy() {}

func (c *tlsServerCredentials) NewSecurityConnector() (ServerConnector, error) {
	assert.Invariant(c.alive(), "security connector requested from destroyed server credentials")
	return c.builder.BuildServerConnector(c.config)
}
