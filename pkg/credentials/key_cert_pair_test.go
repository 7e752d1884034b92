package credentials_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufield/tlscreds/pkg/credentials"
)

// TestNewKeyCertPair_Invariant_AllOrNothing tests the pairing invariant:
// both components present, or the pair cannot be constructed.
func TestNewKeyCertPair_Invariant_AllOrNothing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     []byte
		chain   []byte
		wantErr error
	}{
		{"both set", []byte("key"), []byte("chain"), nil},
		{"key only", []byte("key"), nil, credentials.ErrMismatchedKeyCertPair},
		{"chain only", nil, []byte("chain"), credentials.ErrMismatchedKeyCertPair},
		{"both empty", nil, nil, credentials.ErrEmptyKeyCertPair},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pair, err := credentials.NewKeyCertPair(credentials.RawKeyCertPair{
				PrivateKeyPEM: tt.key,
				CertChainPEM:  tt.chain,
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, pair.IsZero())
				return
			}
			require.NoError(t, err)
			assert.False(t, pair.IsZero())
			assert.Equal(t, "key", pair.PrivateKeyPEM())
			assert.Equal(t, "chain", pair.CertChainPEM())
		})
	}
}

// TestNewKeyCertPair_DeepCopy tests that the pair owns copies: mutating the
// caller's buffers after construction must not change the pair.
func TestNewKeyCertPair_DeepCopy(t *testing.T) {
	t.Parallel()

	key := []byte("private-key-pem")
	chain := []byte("cert-chain-pem")

	pair, err := credentials.NewKeyCertPair(credentials.RawKeyCertPair{
		PrivateKeyPEM: key,
		CertChainPEM:  chain,
	})
	require.NoError(t, err)

	for i := range key {
		key[i] = 'x'
	}
	for i := range chain {
		chain[i] = 'x'
	}

	assert.Equal(t, "private-key-pem", pair.PrivateKeyPEM())
	assert.Equal(t, "cert-chain-pem", pair.CertChainPEM())
}
