package jws

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/keypair"
	"github.com/pilacorp/go-ldproof/credential/common/wallet"
)

func newKeyPair(t *testing.T, kt crypto.KeyType) keypair.KeyPair {
	t.Helper()
	w := wallet.NewInMemoryWallet()
	info, err := w.CreateKey(kt, nil)
	require.NoError(t, err)
	return keypair.FromKeyInfo(w, info)
}

func TestSignVerify(t *testing.T) {
	tests := []struct {
		name   string
		method *SigningMethodKeyPair
		kt     crypto.KeyType
		header string
	}{
		{name: "EdDSA", method: EdDSA, kt: crypto.KeyTypeEd25519, header: `{"alg":"EdDSA","b64":false,"crit":["b64"]}`},
		{name: "ES256K", method: ES256K, kt: crypto.KeyTypeSecp256k1, header: `{"alg":"ES256K","b64":false,"crit":["b64"]}`},
	}

	ctx := context.Background()
	payload := []byte{0x00, 0xff, 0x10, 0x80}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kp := newKeyPair(t, tt.kt)

			sig, err := Sign(ctx, tt.method, kp, payload)
			require.NoError(t, err)

			parts := strings.Split(sig, ".")
			require.Len(t, parts, 3)
			assert.Empty(t, parts[1])
			header, err := base64.RawURLEncoding.DecodeString(parts[0])
			require.NoError(t, err)
			assert.Equal(t, tt.header, string(header))

			assert.NoError(t, Verify(ctx, tt.method, kp, sig, payload))

			err = Verify(ctx, tt.method, kp, sig, []byte("tampered"))
			assert.True(t, errors.Is(err, errdefs.ErrSignatureMismatch))
		})
	}
}

func TestVerifyMalformed(t *testing.T) {
	ctx := context.Background()
	kp := newKeyPair(t, crypto.KeyTypeEd25519)
	sig, err := Sign(ctx, EdDSA, kp, []byte("payload"))
	require.NoError(t, err)
	parts := strings.Split(sig, ".")

	attached := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"EdDSA"}`))

	tests := map[string]string{
		"not three parts":  "abc",
		"attached payload": parts[0] + ".cGF5bG9hZA." + parts[2],
		"bad header":       "!!!.." + parts[2],
		"encoded payload":  attached + ".." + parts[2],
		"bad signature":    parts[0] + "..!!!",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			err := Verify(ctx, EdDSA, kp, value, []byte("payload"))
			assert.True(t, errors.Is(err, errdefs.ErrMalformedProof), "got %v", err)
		})
	}

	t.Run("algorithm mismatch", func(t *testing.T) {
		err := Verify(ctx, ES256K, newKeyPair(t, crypto.KeyTypeSecp256k1), sig, []byte("payload"))
		assert.True(t, errors.Is(err, errdefs.ErrMalformedProof))
	})
}

func TestSignWrongKeyType(t *testing.T) {
	_, err := Sign(context.Background(), ES256K, newKeyPair(t, crypto.KeyTypeEd25519), []byte("payload"))
	assert.True(t, errors.Is(err, errdefs.ErrUnsupportedKeyType))
}

func TestGetSigningMethod(t *testing.T) {
	assert.Equal(t, EdDSA, GetSigningMethod("EdDSA"))
	assert.Equal(t, ES256K, GetSigningMethod("ES256K"))
	assert.Nil(t, GetSigningMethod("HS256"))
}
