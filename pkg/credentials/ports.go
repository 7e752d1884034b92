package credentials

import (
	"context"
	"crypto/tls"
)

// ChannelConnector is the live security object produced from a channel
// credential. The transport layer uses it to secure an outbound connection.
type ChannelConnector interface {
	// Target returns the connection target the connector was built for.
	Target() string

	// ClientTLSConfig returns the TLS configuration to use when dialing.
	// Implementations return a configuration the caller may mutate freely
	// without affecting the connector or the credential it came from.
	ClientTLSConfig() *tls.Config

	// CallCredentials returns the per-call credentials the transport must
	// apply on this connection, or nil if there are none.
	CallCredentials() CallCredentials
}

// ServerConnector is the live security object produced from a server
// credential.
type ServerConnector interface {
	// ServerTLSConfig returns the TLS configuration to use when accepting.
	// Implementations return a configuration the caller may mutate freely
	// without affecting the connector or the credential it came from.
	ServerTLSConfig() *tls.Config
}

// ConnectorBuilder is the outbound port to the TLS layer. Given a deep-copied
// credential configuration it builds the live connector; the handshake
// machinery behind it is a black box to this package.
//
// Error contract: builders return a nil connector and a non-nil error on any
// failure, with no partial results. Errors are propagated verbatim to the
// connection-establishment caller; the credential that requested the build
// stays valid and reusable.
//
// Builders must treat the configuration as read-only; it is shared by
// concurrent connection attempts.
type ConnectorBuilder interface {
	// BuildChannelConnector builds the client-side connector.
	//
	// verifyPeer, when non-nil, is the credential's bridged verification
	// callback; the builder arranges for it to be consulted during the
	// handshake with the effective server name and the peer's leaf
	// certificate PEM. targetNameOverride is "" when no override applies.
	// call may be nil.
	BuildChannelConnector(cfg *ChannelTLSConfig, verifyPeer VerifyPeerCallback, call CallCredentials, target, targetNameOverride string) (ChannelConnector, error)

	// BuildServerConnector builds the server-side connector.
	BuildServerConnector(cfg *ServerTLSConfig) (ServerConnector, error)
}

// CallCredentials attaches per-call authorization state to requests flowing
// over a secured channel. Its internals (token acquisition, caching, ...)
// are outside this package's scope; channel credentials only carry call
// credentials through composition and hand them to the connector.
type CallCredentials interface {
	// Name identifies the call-credential implementation, for tracing.
	Name() string

	// RequestMetadata returns the authorization metadata to attach to a
	// request against target. Implementations may block (e.g. token
	// refresh) and must honor ctx.
	RequestMetadata(ctx context.Context, target string) (map[string]string, error)
}
