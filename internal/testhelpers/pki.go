// Package testhelpers provides test utilities for exercising credentials
// against real PEM material.
//
// The helpers build a throwaway in-memory PKI: a self-signed CA plus leaf
// certificates issued for DNS names or SPIFFE URIs. Everything is generated
// per test; nothing touches disk unless the test writes it there.
package testhelpers

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net/url"
	"testing"
	"time"
)

// TestCA is a self-signed certificate authority for tests.
//
// Example usage:
//
//	ca := testhelpers.NewCA(t)
//	certPEM, keyPEM := ca.IssueServer(t, "localhost")
//	rootsPEM := ca.RootPEM()
type TestCA struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
	pem  []byte
}

// NewCA generates a fresh self-signed CA.
func NewCA(t *testing.T) *TestCA {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate CA key: %v", err)
	}

	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "tlscreds test CA"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("failed to create CA certificate: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("failed to parse CA certificate: %v", err)
	}

	return &TestCA{
		cert: cert,
		key:  key,
		pem:  pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
	}
}

// RootPEM returns the CA certificate in PEM form, suitable as a credential's
// root certificates.
func (ca *TestCA) RootPEM() []byte {
	out := make([]byte, len(ca.pem))
	copy(out, ca.pem)
	return out
}

// IssueServer issues a leaf certificate for the given DNS names, returning
// the certificate and key in PEM form.
func (ca *TestCA) IssueServer(t *testing.T, dnsNames ...string) (certPEM, keyPEM []byte) {
	t.Helper()
	template := leafTemplate()
	template.DNSNames = dnsNames
	return ca.issue(t, template)
}

// IssueSPIFFE issues a leaf certificate carrying the given SPIFFE ID as a
// URI SAN.
func (ca *TestCA) IssueSPIFFE(t *testing.T, spiffeID string) (certPEM, keyPEM []byte) {
	t.Helper()
	uri, err := url.Parse(spiffeID)
	if err != nil {
		t.Fatalf("failed to parse SPIFFE ID %q: %v", spiffeID, err)
	}
	template := leafTemplate()
	template.URIs = []*url.URL{uri}
	return ca.issue(t, template)
}

func leafTemplate() *x509.Certificate {
	return &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{CommonName: "tlscreds test leaf"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
	}
}

func (ca *TestCA) issue(t *testing.T, template *x509.Certificate) (certPEM, keyPEM []byte) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate leaf key: %v", err)
	}
	der, err := x509.CreateCertificate(rand.Reader, template, ca.cert, &key.PublicKey, ca.key)
	if err != nil {
		t.Fatalf("failed to create leaf certificate: %v", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("failed to marshal leaf key: %v", err)
	}

	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	return certPEM, keyPEM
}
