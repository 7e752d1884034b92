package credentials_test

import (
	"context"
	"crypto/tls"
	"sync"

	"github.com/sufield/tlscreds/pkg/credentials"
)

// fakeBuilder is a ConnectorBuilder test double recording the inputs of the
// most recent build and optionally failing.
type fakeBuilder struct {
	mu sync.Mutex

	channelCalls int
	serverCalls  int

	lastVerify   credentials.VerifyPeerCallback
	lastCall     credentials.CallCredentials
	lastTarget   string
	lastOverride string

	err error
}

func (f *fakeBuilder) BuildChannelConnector(cfg *credentials.ChannelTLSConfig, verify credentials.VerifyPeerCallback, call credentials.CallCredentials, target, override string) (credentials.ChannelConnector, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.channelCalls++
	f.lastVerify = verify
	f.lastCall = call
	f.lastTarget = target
	f.lastOverride = override

	if f.err != nil {
		return nil, f.err
	}
	return &fakeConnector{target: target, call: call}, nil
}

func (f *fakeBuilder) BuildServerConnector(cfg *credentials.ServerTLSConfig) (credentials.ServerConnector, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.serverCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &fakeServerConnector{}, nil
}

type fakeConnector struct {
	target string
	call   credentials.CallCredentials
}

func (c *fakeConnector) Target() string { return c.target }

func (c *fakeConnector) ClientTLSConfig() *tls.Config { return &tls.Config{MinVersion: tls.VersionTLS12} }

func (c *fakeConnector) CallCredentials() credentials.CallCredentials { return c.call }

type fakeServerConnector struct{}

func (c *fakeServerConnector) ServerTLSConfig() *tls.Config {
	return &tls.Config{MinVersion: tls.VersionTLS12}
}

// staticCallCredentials returns fixed metadata under a fixed name.
type staticCallCredentials struct {
	name string
	md   map[string]string
	err  error
}

func (s *staticCallCredentials) Name() string { return s.name }

func (s *staticCallCredentials) RequestMetadata(ctx context.Context, target string) (map[string]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]string, len(s.md))
	for k, v := range s.md {
		out[k] = v
	}
	return out, nil
}
