// Package config defines the credential configuration file formats and their
// loaders. Files reference PEM material on disk; the actual payloads are read
// and deep-copied by the credential factories in the root package.
package config

// TLSSection contains the PEM material locations shared by channel and
// server credential files.
type TLSSection struct {
	// RootCertsFile is the path to the PEM-encoded trust roots.
	// Optional: if empty, the system trust roots are used on the channel
	// side and no client verification roots are installed on the server
	// side.
	RootCertsFile string `yaml:"root_certs_file"`
}

// KeyCertPairSection references one private-key / certificate-chain pair on
// disk. Both files must be set together; a single-sided pair is rejected at
// validation time.
type KeyCertPairSection struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// VerifySection contains the channel-side peer-verification policy.
type VerifySection struct {
	// SkipHostnameVerification disables hostname verification against the
	// peer certificate. Chain validation still applies.
	SkipHostnameVerification bool `yaml:"skip_hostname_verification"`

	// ExpectedPeerSPIFFEID restricts the peer to this exact SPIFFE ID.
	// Example: "spiffe://example.org/api"
	//
	// Mutually exclusive with ExpectedPeerTrustDomain.
	ExpectedPeerSPIFFEID string `yaml:"expected_peer_spiffe_id"`

	// ExpectedPeerTrustDomain accepts any peer in the given trust domain.
	// Example: "example.org"
	//
	// Mutually exclusive with ExpectedPeerSPIFFEID.
	ExpectedPeerTrustDomain string `yaml:"expected_peer_trust_domain"`
}

// ChannelFileConfig represents a channel (client-side) credential file.
//
// The config format is versioned to support future evolution without
// breaking changes.
type ChannelFileConfig struct {
	// Version is the config file format version (optional, currently always 1)
	Version int `yaml:"version,omitempty"`

	TLS struct {
		TLSSection `yaml:",inline"`

		// KeyCertPair optionally supplies the client identity.
		KeyCertPair *KeyCertPairSection `yaml:"key_cert_pair,omitempty"`
	} `yaml:"tls"`

	Verify VerifySection `yaml:"verify"`
}

// ServerFileConfig represents a server credential file.
type ServerFileConfig struct {
	// Version is the config file format version (optional, currently always 1)
	Version int `yaml:"version,omitempty"`

	TLS struct {
		TLSSection `yaml:",inline"`

		// KeyCertPairs supplies zero or more server identities.
		KeyCertPairs []KeyCertPairSection `yaml:"key_cert_pairs"`

		// ClientCertPolicy is one of: dont-request, request-no-verify,
		// request-and-verify, require-no-verify, require-and-verify.
		// Empty means dont-request.
		ClientCertPolicy string `yaml:"client_cert_policy"`
	} `yaml:"tls"`
}
