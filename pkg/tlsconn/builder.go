// Package tlsconn is the production connector builder behind the
// credentials.ConnectorBuilder port, implemented on crypto/tls.
//
// The builder turns a credential's deep-copied configuration into live TLS
// configurations for dialing and accepting. When a credential installs a
// verify-peer callback or skips hostname verification, the builder replaces
// the standard library's verification with its own VerifyPeerCertificate
// chain: certificate-chain validation against the configured roots, optional
// hostname check, then the credential's bridged callback with the effective
// server name and the peer's leaf certificate PEM.
package tlsconn

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sufield/tlscreds/pkg/credentials"
)

// Sentinel errors for configuration material the TLS layer cannot consume.
// Connector creation failures are recoverable: the credential that requested
// the build stays valid.
var (
	// ErrInvalidRootCerts indicates the PEM root certificates could not be
	// parsed into a certificate pool.
	ErrInvalidRootCerts = errors.New("root certificates could not be parsed")

	// ErrInvalidKeyCertPair indicates a private-key / cert-chain pair the
	// TLS layer could not load.
	ErrInvalidKeyCertPair = errors.New("key/cert pair could not be loaded")
)

// Builder implements credentials.ConnectorBuilder on crypto/tls.
//
// The zero value is not usable; construct with NewBuilder. A Builder is
// stateless and safe for concurrent use.
type Builder struct {
	// minVersion is the minimum TLS version for built connectors.
	minVersion uint16
}

// NewBuilder returns a connector builder enforcing TLS 1.2 minimum.
func NewBuilder() *Builder {
	return &Builder{minVersion: tls.VersionTLS12}
}

// Compile-time check that Builder satisfies the port.
var _ credentials.ConnectorBuilder = (*Builder)(nil)

// BuildChannelConnector builds the client-side connector for target.
//
// The server name used for SNI and peer verification is target, unless
// targetNameOverride is non-empty, in which case the override wins verbatim.
// A trailing port is stripped for verification purposes.
func (b *Builder) BuildChannelConnector(cfg *credentials.ChannelTLSConfig, verifyPeer credentials.VerifyPeerCallback, call credentials.CallCredentials, target, targetNameOverride string) (credentials.ChannelConnector, error) {
	serverName := target
	if targetNameOverride != "" {
		serverName = targetNameOverride
	}
	host := hostOnly(serverName)

	roots, err := rootPool(cfg.RootCertsPEM())
	if err != nil {
		return nil, err
	}

	tlsCfg := &tls.Config{
		MinVersion: b.minVersion,
		ServerName: host,
		RootCAs:    roots,
	}

	if pair, ok := cfg.KeyCertPair(); ok {
		cert, err := tls.X509KeyPair([]byte(pair.CertChainPEM()), []byte(pair.PrivateKeyPEM()))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKeyCertPair, err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	opts := cfg.VerifyOptions()
	if opts.SkipHostnameVerification || verifyPeer != nil {
		// The standard verifier can neither skip only the hostname check nor
		// consult an external callback, so verification moves entirely into
		// VerifyPeerCertificate.
		tlsCfg.InsecureSkipVerify = true
		tlsCfg.VerifyPeerCertificate = clientVerifyFunc(roots, host, opts.SkipHostnameVerification, verifyPeer)
	}

	return &channelConnector{
		target: target,
		call:   call,
		cfg:    tlsCfg,
	}, nil
}

// BuildServerConnector builds the server-side connector.
func (b *Builder) BuildServerConnector(cfg *credentials.ServerTLSConfig) (credentials.ServerConnector, error) {
	tlsCfg := &tls.Config{
		MinVersion: b.minVersion,
		ClientAuth: clientAuthType(cfg.ClientCertPolicy()),
	}

	for i, pair := range cfg.KeyCertPairs() {
		cert, err := tls.X509KeyPair([]byte(pair.CertChainPEM()), []byte(pair.PrivateKeyPEM()))
		if err != nil {
			return nil, fmt.Errorf("%w: pair %d: %v", ErrInvalidKeyCertPair, i, err)
		}
		tlsCfg.Certificates = append(tlsCfg.Certificates, cert)
	}

	if cfg.HasRootCerts() {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM([]byte(cfg.RootCertsPEM())) {
			return nil, ErrInvalidRootCerts
		}
		tlsCfg.ClientCAs = pool
	}

	return &serverConnector{cfg: tlsCfg}, nil
}

// clientVerifyFunc builds the custom handshake verification used when the
// standard verifier is bypassed: chain validation against roots, optional
// hostname check, then the credential's verify-peer callback.
func clientVerifyFunc(roots *x509.CertPool, host string, skipHostname bool, verifyPeer credentials.VerifyPeerCallback) func(rawCerts [][]byte, verifiedChains [][]*x509.Certificate) error {
	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		if len(rawCerts) == 0 {
			return errors.New("no peer certificate presented")
		}
		leaf, err := x509.ParseCertificate(rawCerts[0])
		if err != nil {
			return fmt.Errorf("failed to parse peer leaf certificate: %w", err)
		}
		intermediates := x509.NewCertPool()
		for _, raw := range rawCerts[1:] {
			cert, err := x509.ParseCertificate(raw)
			if err != nil {
				return fmt.Errorf("failed to parse peer intermediate certificate: %w", err)
			}
			intermediates.AddCert(cert)
		}

		opts := x509.VerifyOptions{
			Roots:         roots,
			Intermediates: intermediates,
			CurrentTime:   time.Now(),
			KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		}
		if !skipHostname {
			opts.DNSName = host
		}
		if _, err := leaf.Verify(opts); err != nil {
			return fmt.Errorf("peer certificate verification failed: %w", err)
		}

		if verifyPeer != nil {
			leafPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: rawCerts[0]})
			if err := verifyPeer(host, string(leafPEM)); err != nil {
				return fmt.Errorf("peer rejected by verify callback: %w", err)
			}
		}
		return nil
	}
}

// rootPool parses the configured roots, or returns the system pool when the
// credential supplied none.
func rootPool(rootCertsPEM string) (*x509.CertPool, error) {
	if rootCertsPEM == "" {
		pool, err := x509.SystemCertPool()
		if err != nil {
			return nil, fmt.Errorf("failed to load system root certificates: %w", err)
		}
		return pool, nil
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM([]byte(rootCertsPEM)) {
		return nil, ErrInvalidRootCerts
	}
	return pool, nil
}

// clientAuthType maps the credential policy onto crypto/tls client-auth
// handling.
func clientAuthType(policy credentials.ClientCertPolicy) tls.ClientAuthType {
	switch policy {
	case credentials.RequestClientCertNoVerify:
		return tls.RequestClientCert
	case credentials.RequestClientCertAndVerify:
		return tls.VerifyClientCertIfGiven
	case credentials.RequireClientCertNoVerify:
		return tls.RequireAnyClientCert
	case credentials.RequireClientCertAndVerify:
		return tls.RequireAndVerifyClientCert
	default:
		return tls.NoClientCert
	}
}

// hostOnly strips a trailing port. Names that do not parse as host:port are
// used as-is.
func hostOnly(name string) string {
	host, _, err := net.SplitHostPort(name)
	if err != nil {
		return name
	}
	return host
}
