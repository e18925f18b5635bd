package crypto

import (
	"crypto/ed25519"
	"fmt"

	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
)

// Ed25519FromSeed derives a key pair from a 32 byte seed.
func Ed25519FromSeed(seed []byte) (ed25519.PublicKey, ed25519.PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, nil, fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return priv.Public().(ed25519.PublicKey), priv, nil
}

// SignEd25519 signs message with a 64 byte private key or a 32 byte seed.
func SignEd25519(privateKey, message []byte) ([]byte, error) {
	switch len(privateKey) {
	case ed25519.PrivateKeySize:
	case ed25519.SeedSize:
		privateKey = ed25519.NewKeyFromSeed(privateKey)
	default:
		return nil, fmt.Errorf("invalid ed25519 private key length %d: %w", len(privateKey), errdefs.ErrUnsupportedKeyType)
	}
	return ed25519.Sign(ed25519.PrivateKey(privateKey), message), nil
}

// VerifyEd25519 reports whether signature is a valid ed25519 signature of message.
func VerifyEd25519(publicKey, message, signature []byte) (bool, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return false, fmt.Errorf("invalid ed25519 public key length %d: %w", len(publicKey), errdefs.ErrUnsupportedKeyType)
	}
	if len(signature) != ed25519.SignatureSize {
		return false, nil
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature), nil
}
