package credentials

import (
	"github.com/sufield/tlscreds/internal/assert"
	"github.com/sufield/tlscreds/internal/debug"
	"github.com/sufield/tlscreds/pkg/channelargs"
)

// Channel-argument keys the credentials layer reads and writes.
const (
	// TargetNameOverrideArg overrides the target name used for peer
	// verification on a channel. String-typed; the first matching argument
	// wins.
	TargetNameOverrideArg = "tls.target-name-override"

	// HTTPSchemeArg is appended to the argument set of every successfully
	// secured channel, forcing the HTTP scheme indicator to "https".
	HTTPSchemeArg = "http.scheme"
)

// httpsScheme is the value appended under HTTPSchemeArg.
const httpsScheme = "https"

// Type is the discriminant tag carried by every credential variant.
type Type string

const (
	// TypeTLS tags the concrete TLS channel and server credentials.
	TypeTLS Type = "tls"
	// TypeComposite tags a channel credential composed with call
	// credentials.
	TypeComposite Type = "composite-channel"
)

// ChannelCredentials is the client-side credential contract.
//
// Implementations are immutable after construction and shared by reference
// count: every holder beyond the factory's caller must take a reference with
// Ref and drop it with Release. When the last reference is released the
// credential tears down exactly once, after which it must not be used.
//
// NewSecurityConnector is safe for concurrent use from any number of
// goroutines holding references.
type ChannelCredentials interface {
	// Type returns the variant's discriminant tag.
	Type() Type

	// Ref takes an additional shared reference.
	Ref()

	// Release drops a reference; the last release triggers teardown.
	Release()

	// NewSecurityConnector produces the live connector for a connection to
	// target, plus an augmented copy of args carrying the https scheme
	// indicator. The input argument set is never mutated.
	//
	// call optionally supplies per-call credentials to compose at the
	// transport layer; it may be nil. On error both results are nil, no
	// augmentation has happened, and the credential remains valid for a
	// subsequent attempt.
	NewSecurityConnector(call CallCredentials, target string, args *channelargs.Set) (ChannelConnector, *channelargs.Set, error)
}

// tlsChannelCredentials is the concrete TLS channel credential.
type tlsChannelCredentials struct {
	refCounted
	builder ConnectorBuilder
	config  *ChannelTLSConfig
	bridge  *verifyBridge
}

// NewChannelTLS creates a TLS channel credential.
//
// rootCertsPEM optionally supplies the trust roots (nil = builder default);
// pair optionally supplies the client identity, requiring both components;
// opts optionally supplies the peer-verification policy. All material is
// deep-copied; the caller's buffers may be reused immediately.
//
// The returned credential has refcount 1, owned by the caller.
//
// Returns an error wrapping ErrNilConnectorBuilder, ErrMismatchedKeyCertPair
// or ErrEmptyKeyCertPair on caller contract violations.
func NewChannelTLS(builder ConnectorBuilder, rootCertsPEM []byte, pair *RawKeyCertPair, opts *VerifyPeerOptions) (ChannelCredentials, error) {
	if builder == nil {
		return nil, ErrNilConnectorBuilder
	}
	cfg, err := newChannelTLSConfig(rootCertsPEM, pair, opts)
	if err != nil {
		return nil, err
	}
	c := &tlsChannelCredentials{
		builder: builder,
		config:  cfg,
		bridge:  newVerifyBridge(cfg.VerifyOptions()),
	}
	c.initRef(c.destroy)
	debug.GetLogger().Tracef(
		"channel TLS credentials created (roots=%t pair=%t verify_callback=%t skip_hostname=%t)",
		cfg.HasRootCerts(), pair != nil, c.bridge.hasCallback(), cfg.VerifyOptions().SkipHostnameVerification,
	)
	return c, nil
}

func (c *tlsChannelCredentials) Type() Type { return TypeTLS }

func (c *tlsChannelCredentials) Ref() { c.ref() }

func (c *tlsChannelCredentials) Release() { c.unref() }

// destroy runs at refcount zero. Config memory is reclaimed by the runtime;
// the observable teardown obligation is the verify bridge's teardown hook.
func (c *tlsChannelCredentials) destroy() {
	c.bridge.release()
}

func (c *tlsChannelCredentials) NewSecurityConnector(call CallCredentials, target string, args *channelargs.Set) (ChannelConnector, *channelargs.Set, error) {
	assert.Invariant(c.alive(), "security connector requested from destroyed channel credentials")

	override, _ := args.FindString(TargetNameOverrideArg)

	var verify VerifyPeerCallback
	if c.bridge.hasCallback() {
		verify = c.bridge.verify
	}
	connector, err := c.builder.BuildChannelConnector(c.config, verify, call, target, override)
	if err != nil {
		return nil, nil, err
	}

	newArgs := args.CopyAndAppend(channelargs.String(HTTPSchemeArg, httpsScheme))
	debug.GetLogger().Tracef("channel security connector created (target=%q override=%q)", target, override)
	return connector, newArgs, nil
}
