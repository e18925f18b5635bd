package crypto

import (
	"encoding/base64"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
)

// PublicKeyJWK encodes publicKey as the publicKeyJwk of a JsonWebKey2020
// verification method.
func PublicKeyJWK(kt KeyType, publicKey []byte) (map[string]interface{}, error) {
	switch kt {
	case KeyTypeEd25519:
		return map[string]interface{}{
			"kty": "OKP",
			"crv": "Ed25519",
			"x":   base64.RawURLEncoding.EncodeToString(publicKey),
		}, nil
	case KeyTypeSecp256k1:
		pub, err := btcec.ParsePubKey(publicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse secp256k1 public key: %v: %w", err, errdefs.ErrUnsupportedKeyType)
		}
		uncompressed := pub.SerializeUncompressed()
		return map[string]interface{}{
			"kty": "EC",
			"crv": "secp256k1",
			"x":   base64.RawURLEncoding.EncodeToString(uncompressed[1:33]),
			"y":   base64.RawURLEncoding.EncodeToString(uncompressed[33:]),
		}, nil
	default:
		return nil, fmt.Errorf("jwk for key type %q: %w", kt, errdefs.ErrUnsupportedKeyType)
	}
}

// PublicKeyFromJWK returns the key type and the public key held by jwk.
// secp256k1 keys are returned compressed.
func PublicKeyFromJWK(jwk map[string]interface{}) (KeyType, []byte, error) {
	kty, _ := jwk["kty"].(string)
	crv, _ := jwk["crv"].(string)

	switch {
	case kty == "OKP" && crv == "Ed25519":
		x, err := jwkCoordinate(jwk, "x")
		if err != nil {
			return "", nil, err
		}
		return KeyTypeEd25519, x, nil

	case kty == "EC" && crv == "secp256k1":
		x, err := jwkCoordinate(jwk, "x")
		if err != nil {
			return "", nil, err
		}
		y, err := jwkCoordinate(jwk, "y")
		if err != nil {
			return "", nil, err
		}
		if len(x) != 32 || len(y) != 32 {
			return "", nil, fmt.Errorf("secp256k1 jwk coordinates must be 32 bytes: %w", errdefs.ErrUnsupportedKeyType)
		}
		uncompressed := append([]byte{0x04}, x...)
		uncompressed = append(uncompressed, y...)
		pub, err := CompressPublicKey(uncompressed)
		if err != nil {
			return "", nil, err
		}
		return KeyTypeSecp256k1, pub, nil

	default:
		return "", nil, fmt.Errorf("jwk kty %q crv %q: %w", kty, crv, errdefs.ErrUnsupportedKeyType)
	}
}

func jwkCoordinate(jwk map[string]interface{}, name string) ([]byte, error) {
	s, _ := jwk[name].(string)
	if s == "" {
		return nil, fmt.Errorf("jwk has no %q member: %w", name, errdefs.ErrVerificationMethodResolution)
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode jwk %q: %v: %w", name, err, errdefs.ErrVerificationMethodResolution)
	}
	return b, nil
}
