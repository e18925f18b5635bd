package keypair

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/wallet"
)

func newEd25519(t *testing.T) (*wallet.InMemoryWallet, *WalletKeyPair) {
	t.Helper()
	w := wallet.NewInMemoryWallet()
	info, err := w.CreateKey(crypto.KeyTypeEd25519, nil)
	require.NoError(t, err)
	return w, FromKeyInfo(w, info)
}

func TestWalletKeyPair(t *testing.T) {
	ctx := context.Background()
	_, kp := newEd25519(t)

	assert.True(t, kp.CanSign())
	assert.Equal(t, crypto.KeyTypeEd25519, kp.KeyType())

	sig, err := kp.Sign(ctx, []byte("data"))
	require.NoError(t, err)

	ok, err := kp.Verify(ctx, []byte("data"), sig)
	require.NoError(t, err)
	assert.True(t, ok)

	verifier := NewVerifier(crypto.KeyTypeEd25519, kp.PublicKey())
	assert.False(t, verifier.CanSign())
	ok, err = verifier.Verify(ctx, []byte("data"), sig)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = verifier.Sign(ctx, []byte("data"))
	assert.True(t, errors.Is(err, errdefs.ErrUnsupportedOperation))
}

func TestVerificationMethod(t *testing.T) {
	_, kp := newEd25519(t)
	did, err := crypto.DIDKey(crypto.KeyTypeEd25519, kp.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, crypto.DIDKeyVerificationMethod(did), kp.VerificationMethod())

	assert.Empty(t, New(nil, crypto.KeyTypeEd25519, nil).VerificationMethod())
}

func TestFromVerificationMethod(t *testing.T) {
	w, kp := newEd25519(t)
	unbound := New(w, crypto.KeyTypeEd25519, nil)
	pub := kp.PublicKey()
	mb, err := crypto.EncodePublicKeyMultibase(crypto.KeyTypeEd25519, pub)
	require.NoError(t, err)
	jwk, err := crypto.PublicKeyJWK(crypto.KeyTypeEd25519, pub)
	require.NoError(t, err)

	tests := []struct {
		name    string
		vm      map[string]interface{}
		wantErr error
	}{
		{
			name: "publicKeyBase58",
			vm:   map[string]interface{}{"type": crypto.Ed25519VerificationKey2018, "publicKeyBase58": crypto.EncodeBase58(pub)},
		},
		{
			name: "publicKeyMultibase",
			vm:   map[string]interface{}{"type": crypto.Ed25519VerificationKey2020, "publicKeyMultibase": mb},
		},
		{
			name: "publicKeyHex",
			vm:   map[string]interface{}{"type": crypto.Ed25519VerificationKey2018, "publicKeyHex": hex.EncodeToString(pub)},
		},
		{
			name: "publicKeyJwk",
			vm:   map[string]interface{}{"type": crypto.JSONWebKey2020, "publicKeyJwk": jwk},
		},
		{
			name:    "jwk of another curve",
			vm:      map[string]interface{}{"type": crypto.JSONWebKey2020, "publicKeyJwk": map[string]interface{}{"kty": "EC", "crv": "P-256", "x": "AA", "y": "AA"}},
			wantErr: errdefs.ErrUnsupportedKeyType,
		},
		{
			name:    "jwk missing",
			vm:      map[string]interface{}{"type": crypto.JSONWebKey2020},
			wantErr: errdefs.ErrVerificationMethodResolution,
		},
		{
			name:    "wrong key type",
			vm:      map[string]interface{}{"type": crypto.EcdsaSecp256k1VerificationKey2019, "publicKeyBase58": crypto.EncodeBase58(pub)},
			wantErr: errdefs.ErrUnsupportedKeyType,
		},
		{
			name:    "unknown type",
			vm:      map[string]interface{}{"type": "RsaVerificationKey2018", "publicKeyPem": "---"},
			wantErr: errdefs.ErrUnsupportedKeyType,
		},
		{
			name:    "no key material",
			vm:      map[string]interface{}{"type": crypto.Ed25519VerificationKey2018},
			wantErr: errdefs.ErrVerificationMethodResolution,
		},
		{
			name:    "truncated key",
			vm:      map[string]interface{}{"type": crypto.Ed25519VerificationKey2018, "publicKeyBase58": crypto.EncodeBase58(pub[:16])},
			wantErr: errdefs.ErrUnsupportedKeyType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier, err := unbound.FromVerificationMethod(tt.vm)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.False(t, verifier.CanSign())
			assert.Equal(t, []byte(pub), verifier.PublicKey())
		})
	}
}

func TestSecp256k1FromVerificationMethod(t *testing.T) {
	w := wallet.NewInMemoryWallet()
	info, err := w.CreateKey(crypto.KeyTypeSecp256k1, nil)
	require.NoError(t, err)
	kp := FromKeyInfo(w, info)

	sig, err := kp.Sign(context.Background(), []byte("data"))
	require.NoError(t, err)

	verifier, err := New(w, crypto.KeyTypeSecp256k1, nil).FromVerificationMethod(map[string]interface{}{
		"type":         crypto.EcdsaSecp256k1VerificationKey2019,
		"publicKeyHex": "0x" + hex.EncodeToString(info.PublicKey),
	})
	require.NoError(t, err)

	ok, err := verifier.Verify(context.Background(), []byte("data"), sig)
	require.NoError(t, err)
	assert.True(t, ok)
}
