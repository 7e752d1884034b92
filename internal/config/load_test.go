package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufield/tlscreds/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadChannel(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "channel.yaml", `
version: 1
tls:
  root_certs_file: /etc/certs/roots.pem
  key_cert_pair:
    cert_file: /etc/certs/client.pem
    key_file: /etc/certs/client-key.pem
verify:
  skip_hostname_verification: true
  expected_peer_spiffe_id: spiffe://example.org/api
`)

		cfg, err := config.LoadChannel(path)
		require.NoError(t, err)
		assert.Equal(t, "/etc/certs/roots.pem", cfg.TLS.RootCertsFile)
		require.NotNil(t, cfg.TLS.KeyCertPair)
		assert.Equal(t, "/etc/certs/client.pem", cfg.TLS.KeyCertPair.CertFile)
		assert.Equal(t, "/etc/certs/client-key.pem", cfg.TLS.KeyCertPair.KeyFile)
		assert.True(t, cfg.Verify.SkipHostnameVerification)
		assert.Equal(t, "spiffe://example.org/api", cfg.Verify.ExpectedPeerSPIFFEID)
	})

	t.Run("minimal config", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.LoadChannel(writeFile(t, "channel.yaml", "tls: {}\n"))
		require.NoError(t, err)
		assert.Empty(t, cfg.TLS.RootCertsFile)
		assert.Nil(t, cfg.TLS.KeyCertPair)
	})

	t.Run("one-sided pair rejected", func(t *testing.T) {
		t.Parallel()

		_, err := config.LoadChannel(writeFile(t, "channel.yaml", `
tls:
  key_cert_pair:
    cert_file: /etc/certs/client.pem
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cert_file and key_file must be set together")
	})

	t.Run("empty pair section rejected", func(t *testing.T) {
		t.Parallel()

		_, err := config.LoadChannel(writeFile(t, "channel.yaml", `
tls:
  key_cert_pair: {}
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "omit it instead")
	})

	t.Run("conflicting verify policies rejected", func(t *testing.T) {
		t.Parallel()

		_, err := config.LoadChannel(writeFile(t, "channel.yaml", `
tls: {}
verify:
  expected_peer_spiffe_id: spiffe://example.org/api
  expected_peer_trust_domain: example.org
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := config.LoadChannel(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := config.LoadChannel(writeFile(t, "channel.yaml", "tls: [not a map"))
		assert.Error(t, err)
	})
}

func TestLoadServer(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "server.yaml", `
version: 1
tls:
  root_certs_file: /etc/certs/client-roots.pem
  key_cert_pairs:
    - cert_file: /etc/certs/server.pem
      key_file: /etc/certs/server-key.pem
    - cert_file: /etc/certs/alt.pem
      key_file: /etc/certs/alt-key.pem
  client_cert_policy: require-and-verify
`)

		cfg, err := config.LoadServer(path)
		require.NoError(t, err)
		assert.Equal(t, "/etc/certs/client-roots.pem", cfg.TLS.RootCertsFile)
		require.Len(t, cfg.TLS.KeyCertPairs, 2)
		assert.Equal(t, "/etc/certs/alt-key.pem", cfg.TLS.KeyCertPairs[1].KeyFile)
		assert.Equal(t, "require-and-verify", cfg.TLS.ClientCertPolicy)
	})

	t.Run("invalid pair reports its index", func(t *testing.T) {
		t.Parallel()

		_, err := config.LoadServer(writeFile(t, "server.yaml", `
tls:
  key_cert_pairs:
    - cert_file: /etc/certs/server.pem
      key_file: /etc/certs/server-key.pem
    - key_file: /etc/certs/orphan-key.pem
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key_cert_pairs[1]")
	})

	t.Run("no pairs is legal", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.LoadServer(writeFile(t, "server.yaml", "tls: {}\n"))
		require.NoError(t, err)
		assert.Empty(t, cfg.TLS.KeyCertPairs)
		assert.Empty(t, cfg.TLS.ClientCertPolicy)
	})
}
