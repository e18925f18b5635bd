package crypto

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
)

var (
	testSeed          = bytes.Repeat([]byte{0x01}, 32)
	testSecp256k1Priv = []byte{
		0xe5, 0x7a, 0x0b, 0x4c, 0x1d, 0x2e, 0x3f, 0x40, 0x51, 0x62, 0x73, 0x84, 0x95, 0xa6, 0xb7, 0xc8,
		0xd9, 0xea, 0xfb, 0x0c, 0x1d, 0x2e, 0x3f, 0x40, 0x51, 0x62, 0x73, 0x84, 0x95, 0xa6, 0xb7, 0xc8,
	}
)

func TestSignVerify(t *testing.T) {
	edPub, edPriv, err := Ed25519FromSeed(testSeed)
	require.NoError(t, err)

	secpPub, err := Secp256k1PublicKey(testSecp256k1Priv)
	require.NoError(t, err)
	require.Len(t, secpPub, 33)

	tests := []struct {
		name string
		kt   KeyType
		priv []byte
		pub  []byte
	}{
		{name: "ed25519", kt: KeyTypeEd25519, priv: edPriv, pub: edPub},
		{name: "ed25519 seed", kt: KeyTypeEd25519, priv: testSeed, pub: edPub},
		{name: "secp256k1", kt: KeyTypeSecp256k1, priv: testSecp256k1Priv, pub: secpPub},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := []byte("verify data")
			sig, err := Sign(tt.kt, tt.priv, msg)
			require.NoError(t, err)

			ok, err := Verify(tt.kt, tt.pub, msg, sig)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = Verify(tt.kt, tt.pub, []byte("other data"), sig)
			require.NoError(t, err)
			assert.False(t, ok)

			tampered := append([]byte{}, sig...)
			tampered[10] ^= 0xff
			ok, err = Verify(tt.kt, tt.pub, msg, tampered)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestVerifyRejectsWrongKeyLength(t *testing.T) {
	_, err := VerifyEd25519([]byte{1, 2, 3}, []byte("msg"), make([]byte, 64))
	assert.True(t, errors.Is(err, errdefs.ErrUnsupportedKeyType))

	_, err = Verify(KeyType("rsa"), nil, nil, nil)
	assert.True(t, errors.Is(err, errdefs.ErrUnsupportedKeyType))
}

func TestDIDKey(t *testing.T) {
	edPub, _, err := Ed25519FromSeed(testSeed)
	require.NoError(t, err)
	secpPub, err := Secp256k1PublicKey(testSecp256k1Priv)
	require.NoError(t, err)

	edDID, err := DIDKey(KeyTypeEd25519, edPub)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(edDID, "did:key:z6Mk"))

	secpDID, err := DIDKey(KeyTypeSecp256k1, secpPub)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(secpDID, "did:key:zQ3s"))

	vm := DIDKeyVerificationMethod(edDID)
	assert.Equal(t, edDID+"#"+strings.TrimPrefix(edDID, "did:key:"), vm)

	kt, pub, err := ParseDIDKey(vm)
	require.NoError(t, err)
	assert.Equal(t, KeyTypeEd25519, kt)
	assert.Equal(t, []byte(edPub), pub)

	kt, pub, err = ParseDIDKey(secpDID)
	require.NoError(t, err)
	assert.Equal(t, KeyTypeSecp256k1, kt)
	assert.Equal(t, secpPub, pub)

	_, _, err = ParseDIDKey("did:web:example.com")
	assert.Error(t, err)
}

func TestMultibase(t *testing.T) {
	data := []byte("hello world")
	enc := EncodeMultibase(data)
	assert.Equal(t, byte('z'), enc[0])

	dec, err := DecodeMultibase(enc)
	require.NoError(t, err)
	assert.Equal(t, data, dec)

	_, err = DecodeMultibase("mSGVsbG8=")
	assert.Error(t, err)

	_, err = DecodeMultibase("z0OIl")
	assert.Error(t, err)
}

func TestCompressPublicKey(t *testing.T) {
	priv, err := ParsePrivateKey(testSecp256k1Priv)
	require.NoError(t, err)

	uncompressed := make([]byte, 0, 65)
	uncompressed = append(uncompressed, 0x04)
	uncompressed = append(uncompressed, priv.PublicKey.X.FillBytes(make([]byte, 32))...)
	uncompressed = append(uncompressed, priv.PublicKey.Y.FillBytes(make([]byte, 32))...)

	compressed, err := CompressPublicKey(uncompressed)
	require.NoError(t, err)

	expected, err := Secp256k1PublicKey(testSecp256k1Priv)
	require.NoError(t, err)
	assert.Equal(t, expected, compressed)
}

func TestKeyTypeForVerificationMethod(t *testing.T) {
	kt, err := KeyTypeForVerificationMethod(Ed25519VerificationKey2020)
	require.NoError(t, err)
	assert.Equal(t, KeyTypeEd25519, kt)

	kt, err = KeyTypeForVerificationMethod(EcdsaSecp256k1VerificationKey2019)
	require.NoError(t, err)
	assert.Equal(t, KeyTypeSecp256k1, kt)

	_, err = KeyTypeForVerificationMethod("RsaVerificationKey2018")
	assert.True(t, errors.Is(err, errdefs.ErrUnsupportedKeyType))
}

func TestPublicKeyJWK(t *testing.T) {
	edPub, _, err := Ed25519FromSeed(testSeed)
	require.NoError(t, err)
	secpPub, err := Secp256k1PublicKey(testSecp256k1Priv)
	require.NoError(t, err)

	tests := []struct {
		name string
		kt   KeyType
		pub  []byte
		kty  string
	}{
		{"ed25519", KeyTypeEd25519, edPub, "OKP"},
		{"secp256k1", KeyTypeSecp256k1, secpPub, "EC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwk, err := PublicKeyJWK(tt.kt, tt.pub)
			require.NoError(t, err)
			assert.Equal(t, tt.kty, jwk["kty"])

			kt, pub, err := PublicKeyFromJWK(jwk)
			require.NoError(t, err)
			assert.Equal(t, tt.kt, kt)
			assert.Equal(t, tt.pub, pub)
		})
	}

	_, _, err = PublicKeyFromJWK(map[string]interface{}{"kty": "RSA", "n": "AQAB"})
	assert.True(t, errors.Is(err, errdefs.ErrUnsupportedKeyType))

	_, _, err = PublicKeyFromJWK(map[string]interface{}{"kty": "OKP", "crv": "Ed25519", "x": "not base64url!"})
	assert.True(t, errors.Is(err, errdefs.ErrVerificationMethodResolution))
}
