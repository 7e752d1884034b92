package credentials

import (
	"context"
	"fmt"

	"github.com/sufield/tlscreds/internal/assert"
	"github.com/sufield/tlscreds/internal/debug"
	"github.com/sufield/tlscreds/pkg/channelargs"
)

// compositeChannelCredentials combines a channel credential with call
// credentials into one object satisfying the channel-credential contract.
// Connector creation delegates to the inner channel credential with the
// composed call credentials attached.
type compositeChannelCredentials struct {
	refCounted
	channel ChannelCredentials
	call    CallCredentials
}

// Compose combines channel and call credentials.
//
// Both operands must satisfy their contracts: composing with a nil channel
// credential (no transport security) or a nil call credential is a caller
// contract violation reported via ErrNilCredentials, never silently coerced.
// On error nothing has been retained: the call credential is not leaked into
// a half-built composite.
//
// On success the composite holds its own reference on the inner channel
// credential, released at the composite's teardown. The caller keeps its own
// reference and releases it independently.
func Compose(channel ChannelCredentials, call CallCredentials) (ChannelCredentials, error) {
	if channel == nil {
		return nil, fmt.Errorf("cannot compose with nil channel credentials: %w", ErrNilCredentials)
	}
	if call == nil {
		return nil, fmt.Errorf("cannot compose with nil call credentials: %w", ErrNilCredentials)
	}
	channel.Ref()
	c := &compositeChannelCredentials{
		channel: channel,
		call:    call,
	}
	c.initRef(c.destroy)
	debug.GetLogger().Tracef("composite channel credentials created (inner=%s call=%s)", channel.Type(), call.Name())
	return c, nil
}

func (c *compositeChannelCredentials) Type() Type { return TypeComposite }

func (c *compositeChannelCredentials) Ref() { c.ref() }

func (c *compositeChannelCredentials) Release() { c.unref() }

// destroy drops the composite's reference on the inner channel credential.
// The call credential's lifecycle stays with its supplier.
func (c *compositeChannelCredentials) destroy() {
	c.channel.Release()
}

// NewSecurityConnector delegates to the inner channel credential. When the
// caller supplies additional call credentials for this connection, they are
// combined with the composite's own, preserving order: the composite's call
// credentials apply first.
func (c *compositeChannelCredentials) NewSecurityConnector(call CallCredentials, target string, args *channelargs.Set) (ChannelConnector, *channelargs.Set, error) {
	assert.Invariant(c.alive(), "security connector requested from destroyed composite credentials")

	effective := c.call
	if call != nil {
		effective = &compositeCallCredentials{creds: []CallCredentials{c.call, call}}
	}
	return c.channel.NewSecurityConnector(effective, target, args)
}

// compositeCallCredentials merges the request metadata of several call
// credentials, in order. Later credentials win on key collisions.
type compositeCallCredentials struct {
	creds []CallCredentials
}

func (c *compositeCallCredentials) Name() string { return "composite-call" }

func (c *compositeCallCredentials) RequestMetadata(ctx context.Context, target string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, cred := range c.creds {
		md, err := cred.RequestMetadata(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("call credentials %q: %w", cred.Name(), err)
		}
		for k, v := range md {
			merged[k] = v
		}
	}
	return merged, nil
}
