package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadChannel reads, parses and validates a channel credential file.
func LoadChannel(path string) (ChannelFileConfig, error) {
	var cfg ChannelFileConfig
	if err := load(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid channel credential config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadServer reads, parses and validates a server credential file.
func LoadServer(path string) (ServerFileConfig, error) {
	var cfg ServerFileConfig
	if err := load(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid server credential config %s: %w", path, err)
	}
	return cfg, nil
}

func load(path string, out any) error {
	// Clean the path to prevent directory traversal attacks
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304 - Config file path is trusted (from admin/user)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Validate checks the channel file for contract violations that should fail
// before any PEM material is read.
func (c ChannelFileConfig) Validate() error {
	if pair := c.TLS.KeyCertPair; pair != nil {
		if err := validatePairSection(*pair); err != nil {
			return err
		}
	}
	if c.Verify.ExpectedPeerSPIFFEID != "" && c.Verify.ExpectedPeerTrustDomain != "" {
		return fmt.Errorf("verify.expected_peer_spiffe_id and verify.expected_peer_trust_domain are mutually exclusive")
	}
	return nil
}

// Validate checks the server file for contract violations.
func (c ServerFileConfig) Validate() error {
	for i, pair := range c.TLS.KeyCertPairs {
		if err := validatePairSection(pair); err != nil {
			return fmt.Errorf("key_cert_pairs[%d]: %w", i, err)
		}
	}
	return nil
}

func validatePairSection(pair KeyCertPairSection) error {
	if (pair.CertFile == "") != (pair.KeyFile == "") {
		return fmt.Errorf("cert_file and key_file must be set together")
	}
	if pair.CertFile == "" && pair.KeyFile == "" {
		return fmt.Errorf("key/cert pair cannot be empty; omit it instead")
	}
	return nil
}
