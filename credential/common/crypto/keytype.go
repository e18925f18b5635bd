// Package crypto holds the signature primitives and key encodings used by the
// proof suites: ed25519 and secp256k1 signing, multibase base58btc and did:key.
package crypto

import (
	"fmt"

	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
)

// KeyType identifies a signature algorithm family.
type KeyType string

const (
	KeyTypeEd25519   KeyType = "ed25519"
	KeyTypeSecp256k1 KeyType = "secp256k1"
)

// Verification method types that carry each key type.
const (
	Ed25519VerificationKey2018        = "Ed25519VerificationKey2018"
	Ed25519VerificationKey2020        = "Ed25519VerificationKey2020"
	EcdsaSecp256k1VerificationKey2019 = "EcdsaSecp256k1VerificationKey2019"
	JSONWebKey2020                    = "JsonWebKey2020"
)

// multicodec varint prefixes for public keys.
var (
	ed25519PubCodec   = []byte{0xed, 0x01}
	secp256k1PubCodec = []byte{0xe7, 0x01}
)

// PublicKeySize returns the encoded public key length for the key type.
func (t KeyType) PublicKeySize() int {
	switch t {
	case KeyTypeEd25519:
		return 32
	case KeyTypeSecp256k1:
		return 33
	default:
		return 0
	}
}

func (t KeyType) codec() ([]byte, error) {
	switch t {
	case KeyTypeEd25519:
		return ed25519PubCodec, nil
	case KeyTypeSecp256k1:
		return secp256k1PubCodec, nil
	default:
		return nil, fmt.Errorf("no multicodec for key type %q: %w", t, errdefs.ErrUnsupportedKeyType)
	}
}

// KeyTypeForVerificationMethod maps a verification method type to the key type it carries.
func KeyTypeForVerificationMethod(vmType string) (KeyType, error) {
	switch vmType {
	case Ed25519VerificationKey2018, Ed25519VerificationKey2020:
		return KeyTypeEd25519, nil
	case EcdsaSecp256k1VerificationKey2019:
		return KeyTypeSecp256k1, nil
	default:
		return "", fmt.Errorf("verification method type %q: %w", vmType, errdefs.ErrUnsupportedKeyType)
	}
}

// Sign signs message with a private key of the given type.
func Sign(kt KeyType, privateKey, message []byte) ([]byte, error) {
	switch kt {
	case KeyTypeEd25519:
		return SignEd25519(privateKey, message)
	case KeyTypeSecp256k1:
		return SignSecp256k1(privateKey, message)
	default:
		return nil, fmt.Errorf("sign with key type %q: %w", kt, errdefs.ErrUnsupportedKeyType)
	}
}

// Verify reports whether signature is valid for message under publicKey.
func Verify(kt KeyType, publicKey, message, signature []byte) (bool, error) {
	switch kt {
	case KeyTypeEd25519:
		return VerifyEd25519(publicKey, message, signature)
	case KeyTypeSecp256k1:
		return VerifySecp256k1(publicKey, message, signature)
	default:
		return false, fmt.Errorf("verify with key type %q: %w", kt, errdefs.ErrUnsupportedKeyType)
	}
}
