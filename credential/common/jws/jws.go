// Package jws creates and checks detached JSON Web Signatures with an
// unencoded payload (RFC 7797, "b64": false), as carried in the jws member of
// linked data proofs.
package jws

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/keypair"
)

// SigningKey is the key value handed to the signing methods of this package.
type SigningKey struct {
	Ctx     context.Context
	KeyPair keypair.KeyPair
}

// SigningMethodKeyPair implements jwt.SigningMethod on top of a key pair, so
// private keys stay inside their wallet.
type SigningMethodKeyPair struct {
	alg     string
	keyType crypto.KeyType
}

var _ jwt.SigningMethod = (*SigningMethodKeyPair)(nil)

var (
	// EdDSA signs with ed25519 keys.
	EdDSA = &SigningMethodKeyPair{alg: "EdDSA", keyType: crypto.KeyTypeEd25519}
	// ES256K signs the SHA-256 hash of the input with secp256k1 keys.
	ES256K = &SigningMethodKeyPair{alg: "ES256K", keyType: crypto.KeyTypeSecp256k1}
)

// GetSigningMethod returns the method registered for alg, or nil.
func GetSigningMethod(alg string) *SigningMethodKeyPair {
	switch alg {
	case EdDSA.alg:
		return EdDSA
	case ES256K.alg:
		return ES256K
	default:
		return nil
	}
}

// Alg returns the algorithm name
func (m *SigningMethodKeyPair) Alg() string {
	return m.alg
}

// KeyType returns the key type the method signs with.
func (m *SigningMethodKeyPair) KeyType() crypto.KeyType {
	return m.keyType
}

// Sign signs a string with a *SigningKey
func (m *SigningMethodKeyPair) Sign(signingString string, key interface{}) ([]byte, error) {
	sk, err := m.signingKey(key)
	if err != nil {
		return nil, err
	}
	return sk.KeyPair.Sign(sk.Ctx, []byte(signingString))
}

// Verify verifies a signature with a *SigningKey
func (m *SigningMethodKeyPair) Verify(signingString string, signature []byte, key interface{}) error {
	sk, err := m.signingKey(key)
	if err != nil {
		return err
	}
	ok, err := sk.KeyPair.Verify(sk.Ctx, []byte(signingString), signature)
	if err != nil {
		return err
	}
	if !ok {
		return jwt.ErrSignatureInvalid
	}
	return nil
}

func (m *SigningMethodKeyPair) signingKey(key interface{}) (*SigningKey, error) {
	sk, ok := key.(*SigningKey)
	if !ok || sk.KeyPair == nil {
		return nil, jwt.ErrInvalidKeyType
	}
	if sk.KeyPair.KeyType() != m.keyType {
		return nil, fmt.Errorf("%s needs a %s key, got %s: %w", m.alg, m.keyType, sk.KeyPair.KeyType(), errdefs.ErrUnsupportedKeyType)
	}
	if sk.Ctx == nil {
		sk.Ctx = context.Background()
	}
	return sk, nil
}

// Header returns the protected header of a detached JWS signed with alg.
func Header(alg string) map[string]interface{} {
	return map[string]interface{}{
		"alg":  alg,
		"b64":  false,
		"crit": []string{"b64"},
	}
}

// Sign creates a detached JWS over payload: base64url(header) + ".." + base64url(signature).
func Sign(ctx context.Context, method *SigningMethodKeyPair, kp keypair.KeyPair, payload []byte) (string, error) {
	headerJSON, err := json.Marshal(Header(method.Alg()))
	if err != nil {
		return "", fmt.Errorf("failed to marshal JWS header: %w", err)
	}

	encodedHeader := base64.RawURLEncoding.EncodeToString(headerJSON)
	signature, err := method.Sign(signingInput(encodedHeader, payload), &SigningKey{Ctx: ctx, KeyPair: kp})
	if err != nil {
		return "", fmt.Errorf("failed to sign JWS: %w", err)
	}

	return encodedHeader + ".." + base64.RawURLEncoding.EncodeToString(signature), nil
}

// Verify checks a detached JWS over payload. The header must name method's
// algorithm and declare the unencoded payload.
func Verify(ctx context.Context, method *SigningMethodKeyPair, kp keypair.KeyPair, jws string, payload []byte) error {
	parts := strings.Split(jws, ".")
	if len(parts) != 3 || parts[1] != "" {
		return fmt.Errorf("invalid detached JWS format: %w", errdefs.ErrMalformedProof)
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return fmt.Errorf("invalid JWS header encoding: %v: %w", err, errdefs.ErrMalformedProof)
	}
	var header struct {
		Alg  string   `json:"alg"`
		B64  *bool    `json:"b64"`
		Crit []string `json:"crit"`
	}
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return fmt.Errorf("invalid JWS header: %v: %w", err, errdefs.ErrMalformedProof)
	}
	if header.Alg != method.Alg() {
		return fmt.Errorf("JWS alg %q, expected %q: %w", header.Alg, method.Alg(), errdefs.ErrMalformedProof)
	}
	if header.B64 == nil || *header.B64 || !slices.Contains(header.Crit, "b64") {
		return fmt.Errorf("JWS payload must be declared unencoded: %w", errdefs.ErrMalformedProof)
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return fmt.Errorf("invalid JWS signature encoding: %v: %w", err, errdefs.ErrMalformedProof)
	}

	err = method.Verify(signingInput(parts[0], payload), signature, &SigningKey{Ctx: ctx, KeyPair: kp})
	if errors.Is(err, jwt.ErrSignatureInvalid) {
		return errdefs.ErrSignatureMismatch
	}
	return err
}

func signingInput(encodedHeader string, payload []byte) string {
	return encodedHeader + "." + string(payload)
}
