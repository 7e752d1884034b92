package tlsconn

import (
	"crypto/tls"

	"github.com/sufield/tlscreds/pkg/credentials"
)

// channelConnector is the client-side security connector produced by the
// builder. It is immutable; accessors hand out clones so callers cannot
// reach back into shared state.
type channelConnector struct {
	target string
	call   credentials.CallCredentials
	cfg    *tls.Config
}

var _ credentials.ChannelConnector = (*channelConnector)(nil)

func (c *channelConnector) Target() string { return c.target }

func (c *channelConnector) ClientTLSConfig() *tls.Config { return c.cfg.Clone() }

func (c *channelConnector) CallCredentials() credentials.CallCredentials { return c.call }

// serverConnector is the server-side security connector.
type serverConnector struct {
	cfg *tls.Config
}

var _ credentials.ServerConnector = (*serverConnector)(nil)

func (s *serverConnector) ServerTLSConfig() *tls.Config { return s.cfg.Clone() }
