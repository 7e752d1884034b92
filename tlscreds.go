// Package tlscreds provides a config-file-driven API for building
// transport-security credential objects.
//
// This package wraps the lower-level pkg/credentials, pkg/tlsconn and
// pkg/spiffeverify packages, turning a small YAML file that references PEM
// material on disk into a ready-to-use credential. The PEM payloads are read
// once at load time and deep-copied into the credential; the files can be
// rotated or removed afterwards without affecting live credentials.
//
// Quick Start:
//
// Client side:
//
//	creds, err := tlscreds.LoadChannelCredentials("channel.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer creds.Release()
//
//	connector, args, err := creds.NewSecurityConnector(nil, "api.example.org:8443", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	conn, err := tls.Dial("tcp", connector.Target(), connector.ClientTLSConfig())
//	_ = args // carries the https scheme indicator for the channel
//
// Server side:
//
//	creds, err := tlscreds.LoadServerCredentials("server.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer creds.Release()
//
//	connector, err := creds.NewSecurityConnector()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	listener, err := tls.Listen("tcp", ":8443", connector.ServerTLSConfig())
//
// Channel credential file:
//
//	tls:
//	  root_certs_file: /etc/pki/roots.pem
//	  key_cert_pair:
//	    cert_file: /etc/pki/client.crt
//	    key_file: /etc/pki/client.key
//	verify:
//	  expected_peer_trust_domain: "example.org"
//
// Server credential file:
//
//	tls:
//	  root_certs_file: /etc/pki/roots.pem
//	  key_cert_pairs:
//	    - cert_file: /etc/pki/server.crt
//	      key_file: /etc/pki/server.key
//	  client_cert_policy: require-and-verify
package tlscreds

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sufield/tlscreds/internal/config"
	"github.com/sufield/tlscreds/pkg/credentials"
	"github.com/sufield/tlscreds/pkg/spiffeverify"
	"github.com/sufield/tlscreds/pkg/tlsconn"
)

// LoadChannelCredentials builds a channel credential from a YAML config file.
//
// The returned credential has refcount 1, owned by the caller; release it
// with Release when done.
func LoadChannelCredentials(path string) (credentials.ChannelCredentials, error) {
	cfg, err := config.LoadChannel(path)
	if err != nil {
		return nil, err
	}

	roots, err := readOptional(cfg.TLS.RootCertsFile)
	if err != nil {
		return nil, err
	}

	var pair *credentials.RawKeyCertPair
	if sec := cfg.TLS.KeyCertPair; sec != nil {
		p, err := readPair(*sec)
		if err != nil {
			return nil, err
		}
		pair = &p
	}

	opts := &credentials.VerifyPeerOptions{
		SkipHostnameVerification: cfg.Verify.SkipHostnameVerification,
	}
	if cfg.Verify.ExpectedPeerSPIFFEID != "" || cfg.Verify.ExpectedPeerTrustDomain != "" {
		callback, err := spiffeverify.NewCallback(spiffeverify.Policy{
			ExpectedPeerID:          cfg.Verify.ExpectedPeerSPIFFEID,
			ExpectedPeerTrustDomain: cfg.Verify.ExpectedPeerTrustDomain,
		})
		if err != nil {
			return nil, fmt.Errorf("invalid verify policy: %w", err)
		}
		opts.Callback = callback
	}

	return credentials.NewChannelTLS(tlsconn.NewBuilder(), roots, pair, opts)
}

// LoadServerCredentials builds a server credential from a YAML config file.
//
// The returned credential has refcount 1, owned by the caller.
func LoadServerCredentials(path string) (credentials.ServerCredentials, error) {
	cfg, err := config.LoadServer(path)
	if err != nil {
		return nil, err
	}

	roots, err := readOptional(cfg.TLS.RootCertsFile)
	if err != nil {
		return nil, err
	}

	pairs := make([]credentials.RawKeyCertPair, 0, len(cfg.TLS.KeyCertPairs))
	for _, sec := range cfg.TLS.KeyCertPairs {
		p, err := readPair(sec)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}

	policy, err := credentials.ParseClientCertPolicy(cfg.TLS.ClientCertPolicy)
	if err != nil {
		return nil, err
	}

	return credentials.NewServerTLS(tlsconn.NewBuilder(), roots, pairs, policy)
}

// readOptional reads a PEM file, treating an empty path as "not supplied".
func readOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 - PEM file path comes from trusted config
	if err != nil {
		return nil, fmt.Errorf("failed to read PEM file: %w", err)
	}
	return data, nil
}

// readPair reads both components of a key/cert pair.
func readPair(sec config.KeyCertPairSection) (credentials.RawKeyCertPair, error) {
	cert, err := os.ReadFile(filepath.Clean(sec.CertFile)) // #nosec G304 - PEM file path comes from trusted config
	if err != nil {
		return credentials.RawKeyCertPair{}, fmt.Errorf("failed to read cert file: %w", err)
	}
	key, err := os.ReadFile(filepath.Clean(sec.KeyFile)) // #nosec G304 - PEM file path comes from trusted config
	if err != nil {
		return credentials.RawKeyCertPair{}, fmt.Errorf("failed to read key file: %w", err)
	}
	return credentials.RawKeyCertPair{PrivateKeyPEM: key, CertChainPEM: cert}, nil
}
