// Package spiffeverify builds verify-peer callbacks that enforce SPIFFE
// identity policy on the peer certificate.
//
// The callbacks plug into credentials.VerifyPeerOptions and make their
// accept/reject decision from the SPIFFE ID carried in the peer's leaf
// certificate: either an exact ID match or trust-domain membership,
// mirroring the authorizer policies of the go-spiffe SDK.
package spiffeverify

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/spiffe/go-spiffe/v2/spiffeid"
	"github.com/spiffe/go-spiffe/v2/spiffetls/tlsconfig"
	"github.com/spiffe/go-spiffe/v2/svid/x509svid"

	"github.com/sufield/tlscreds/pkg/credentials"
)

// Policy selects the SPIFFE identity check applied to the peer.
//
// Exactly one field must be set.
type Policy struct {
	// ExpectedPeerID requires the peer's SPIFFE ID to match exactly.
	// Example: "spiffe://example.org/api"
	//
	// Mutually exclusive with ExpectedPeerTrustDomain.
	ExpectedPeerID string

	// ExpectedPeerTrustDomain accepts any peer in the given trust domain.
	// Example: "example.org"
	//
	// Mutually exclusive with ExpectedPeerID.
	ExpectedPeerTrustDomain string
}

// NewCallback builds a verify-peer callback enforcing the policy.
//
// Returns an error if:
//   - Neither ExpectedPeerID nor ExpectedPeerTrustDomain is set
//   - Both are set
//   - ExpectedPeerID is not a valid SPIFFE ID
//   - ExpectedPeerTrustDomain is not a valid trust domain
func NewCallback(p Policy) (credentials.VerifyPeerCallback, error) {
	if p.ExpectedPeerID == "" && p.ExpectedPeerTrustDomain == "" {
		return nil, errors.New("either ExpectedPeerID or ExpectedPeerTrustDomain must be set")
	}
	if p.ExpectedPeerID != "" && p.ExpectedPeerTrustDomain != "" {
		return nil, errors.New("ExpectedPeerID and ExpectedPeerTrustDomain are mutually exclusive")
	}

	var authorizer tlsconfig.Authorizer
	switch {
	case p.ExpectedPeerID != "":
		id, err := spiffeid.FromString(p.ExpectedPeerID)
		if err != nil {
			return nil, fmt.Errorf("invalid ExpectedPeerID: %w", err)
		}
		authorizer = tlsconfig.AuthorizeID(id)
	default:
		td, err := spiffeid.TrustDomainFromString(p.ExpectedPeerTrustDomain)
		if err != nil {
			return nil, fmt.Errorf("invalid ExpectedPeerTrustDomain: %w", err)
		}
		authorizer = tlsconfig.AuthorizeMemberOf(td)
	}

	return func(_, certPEM string) error {
		id, err := peerIDFromPEM(certPEM)
		if err != nil {
			return err
		}
		return authorizer(id, nil)
	}, nil
}

// peerIDFromPEM extracts the SPIFFE ID from a PEM-encoded leaf certificate.
func peerIDFromPEM(certPEM string) (spiffeid.ID, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil || block.Type != "CERTIFICATE" {
		return spiffeid.ID{}, errors.New("peer certificate is not valid PEM")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return spiffeid.ID{}, fmt.Errorf("failed to parse peer certificate: %w", err)
	}
	id, err := x509svid.IDFromCert(cert)
	if err != nil {
		return spiffeid.ID{}, fmt.Errorf("peer certificate carries no SPIFFE ID: %w", err)
	}
	return id, nil
}
