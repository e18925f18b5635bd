package crypto

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
)

const (
	multibaseBase58BTC = 'z'
	didKeyPrefix       = "did:key:"
)

// EncodeMultibase encodes data as multibase base58btc.
func EncodeMultibase(data []byte) string {
	return string(multibaseBase58BTC) + base58.Encode(data)
}

// DecodeMultibase decodes a multibase base58btc string.
func DecodeMultibase(s string) ([]byte, error) {
	if len(s) < 2 || s[0] != multibaseBase58BTC {
		return nil, fmt.Errorf("unsupported multibase encoding %q", truncate(s))
	}
	data, err := base58.Decode(s[1:])
	if err != nil {
		return nil, fmt.Errorf("failed to decode base58btc: %w", err)
	}
	return data, nil
}

// EncodeBase58 encodes data as plain base58 (publicKeyBase58).
func EncodeBase58(data []byte) string {
	return base58.Encode(data)
}

// DecodeBase58 decodes a plain base58 string.
func DecodeBase58(s string) ([]byte, error) {
	return base58.Decode(s)
}

// EncodePublicKeyMultibase prefixes publicKey with its multicodec and encodes
// it as multibase base58btc.
func EncodePublicKeyMultibase(kt KeyType, publicKey []byte) (string, error) {
	codec, err := kt.codec()
	if err != nil {
		return "", err
	}
	if len(publicKey) != kt.PublicKeySize() {
		return "", fmt.Errorf("%s public key must be %d bytes, got %d: %w", kt, kt.PublicKeySize(), len(publicKey), errdefs.ErrUnsupportedKeyType)
	}
	return EncodeMultibase(append(append([]byte{}, codec...), publicKey...)), nil
}

// DecodePublicKeyMultibase reverses EncodePublicKeyMultibase.
func DecodePublicKeyMultibase(s string) (KeyType, []byte, error) {
	data, err := DecodeMultibase(s)
	if err != nil {
		return "", nil, err
	}
	for _, kt := range []KeyType{KeyTypeEd25519, KeyTypeSecp256k1} {
		codec, _ := kt.codec()
		if bytes.HasPrefix(data, codec) && len(data)-len(codec) == kt.PublicKeySize() {
			return kt, data[len(codec):], nil
		}
	}
	return "", nil, fmt.Errorf("unknown multicodec public key: %w", errdefs.ErrUnsupportedKeyType)
}

// DIDKey returns the did:key identifier of a public key.
func DIDKey(kt KeyType, publicKey []byte) (string, error) {
	mb, err := EncodePublicKeyMultibase(kt, publicKey)
	if err != nil {
		return "", err
	}
	return didKeyPrefix + mb, nil
}

// DIDKeyVerificationMethod returns the verification method id of a did:key,
// which is the DID with its multibase value repeated as fragment.
func DIDKeyVerificationMethod(did string) string {
	return did + "#" + strings.TrimPrefix(did, didKeyPrefix)
}

// ParseDIDKey extracts the key type and public key from a did:key DID or
// verification method id.
func ParseDIDKey(did string) (KeyType, []byte, error) {
	did, _, _ = strings.Cut(did, "#")
	if !strings.HasPrefix(did, didKeyPrefix) {
		return "", nil, fmt.Errorf("%q is not a did:key", truncate(did))
	}
	return DecodePublicKeyMultibase(strings.TrimPrefix(did, didKeyPrefix))
}

// IsDIDKey reports whether s is a did:key DID or DID URL.
func IsDIDKey(s string) bool {
	return strings.HasPrefix(s, didKeyPrefix)
}

func truncate(s string) string {
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}
