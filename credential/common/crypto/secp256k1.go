package crypto

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
)

// KeyToBytes converts a hex string with prefix 0x to a byte array.
func KeyToBytes(key string) ([]byte, error) {
	if !strings.HasPrefix(key, "0x") {
		return nil, errors.New("key is not in hex format")
	}

	return hex.DecodeString(key[2:])
}

// ParsePrivateKey parses a private key of type secp256k1 from bytes
// The length of the private key is 32 bytes.
func ParsePrivateKey(privateKeyBytes []byte) (*ecdsa.PrivateKey, error) {
	if len(privateKeyBytes) != 32 {
		return nil, errors.New("private key must be 32 bytes")
	}

	privKey, err := crypto.ToECDSA(privateKeyBytes)
	if err != nil {
		return nil, err
	}

	return privKey, nil
}

// Secp256k1PublicKey returns the compressed public key of a 32 byte private key.
func Secp256k1PublicKey(privateKey []byte) ([]byte, error) {
	privKey, err := ParsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return crypto.CompressPubkey(&privKey.PublicKey), nil
}

// CompressPublicKey normalizes a secp256k1 public key to its 33 byte form.
// Both compressed and uncompressed encodings are accepted.
func CompressPublicKey(publicKey []byte) ([]byte, error) {
	pub, err := btcec.ParsePubKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse secp256k1 public key: %v: %w", err, errdefs.ErrUnsupportedKeyType)
	}
	return pub.SerializeCompressed(), nil
}

// SignSecp256k1 signs the SHA-256 hash of message and returns the 64 byte
// [R || S] signature used by ES256K.
func SignSecp256k1(privateKey, message []byte) ([]byte, error) {
	hash := sha256.Sum256(message)

	privKey, err := ParsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	signature, err := crypto.Sign(hash[:], privKey)
	if err != nil {
		return nil, fmt.Errorf("secp256k1: sign error: %w", err)
	}

	// drop the recovery byte
	return signature[:64], nil
}

// VerifySecp256k1 verifies a secp256k1 signature over the SHA-256 hash of message.
// The signature may be [R || S] or carry the recovery byte.
func VerifySecp256k1(publicKey, message, signature []byte) (bool, error) {
	pub, err := CompressPublicKey(publicKey)
	if err != nil {
		return false, err
	}

	switch len(signature) {
	case 64:
	case 65:
		signature = signature[:64]
	default:
		return false, nil
	}

	hash := sha256.Sum256(message)
	return crypto.VerifySignature(pub, hash[:], signature), nil
}
