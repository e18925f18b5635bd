// Package keypair adapts wallet keys to the sign/verify handle used by proof suites.
package keypair

import (
	"context"
	"fmt"
	"strings"

	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/wallet"
)

// KeyPair is a handle on a key of one type. A handle without signing
// capability is verify-only.
type KeyPair interface {
	KeyType() crypto.KeyType
	// PublicKey returns the public key, or nil when the handle is not bound to one.
	PublicKey() []byte
	CanSign() bool
	Sign(ctx context.Context, message []byte) ([]byte, error)
	Verify(ctx context.Context, message, signature []byte) (bool, error)
	// VerificationMethod returns the did:key verification method of the
	// public key, or "" when no public key is bound.
	VerificationMethod() string
	// FromVerificationMethod returns a verify-only handle for the key
	// material of a resolved verification method.
	FromVerificationMethod(vm map[string]interface{}) (KeyPair, error)
}

// WalletKeyPair is a KeyPair whose private key is held by a wallet.
type WalletKeyPair struct {
	wallet    wallet.Wallet
	keyType   crypto.KeyType
	publicKey []byte
	canSign   bool
}

// New returns a signing handle for publicKey held by w. A nil publicKey yields
// an unbound handle that can only produce verify-only handles.
func New(w wallet.Wallet, kt crypto.KeyType, publicKey []byte) *WalletKeyPair {
	return &WalletKeyPair{
		wallet:    w,
		keyType:   kt,
		publicKey: publicKey,
		canSign:   w != nil && publicKey != nil,
	}
}

// NewVerifier returns a verify-only handle for a known public key.
func NewVerifier(kt crypto.KeyType, publicKey []byte) *WalletKeyPair {
	return &WalletKeyPair{keyType: kt, publicKey: publicKey}
}

// FromKeyInfo returns a signing handle for a key created by w.
func FromKeyInfo(w wallet.Wallet, info *wallet.KeyInfo) *WalletKeyPair {
	return New(w, info.KeyType, info.PublicKey)
}

func (k *WalletKeyPair) KeyType() crypto.KeyType { return k.keyType }

func (k *WalletKeyPair) PublicKey() []byte { return k.publicKey }

func (k *WalletKeyPair) CanSign() bool { return k.canSign }

func (k *WalletKeyPair) Sign(ctx context.Context, message []byte) ([]byte, error) {
	if !k.canSign {
		return nil, fmt.Errorf("%s key pair cannot sign: %w", k.keyType, errdefs.ErrUnsupportedOperation)
	}
	return k.wallet.Sign(ctx, k.publicKey, message)
}

func (k *WalletKeyPair) Verify(ctx context.Context, message, signature []byte) (bool, error) {
	if k.publicKey == nil {
		return false, fmt.Errorf("%s key pair has no public key: %w", k.keyType, errdefs.ErrUnsupportedOperation)
	}
	if k.wallet != nil {
		return k.wallet.Verify(ctx, k.keyType, k.publicKey, message, signature)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return crypto.Verify(k.keyType, k.publicKey, message, signature)
}

func (k *WalletKeyPair) VerificationMethod() string {
	if k.publicKey == nil {
		return ""
	}
	did, err := crypto.DIDKey(k.keyType, k.publicKey)
	if err != nil {
		return ""
	}
	return crypto.DIDKeyVerificationMethod(did)
}

func (k *WalletKeyPair) FromVerificationMethod(vm map[string]interface{}) (KeyPair, error) {
	vmType, _ := vm["type"].(string)
	kt, err := keyTypeOf(vmType, vm)
	if err != nil {
		return nil, err
	}
	if kt != k.keyType {
		return nil, fmt.Errorf("verification method type %s carries a %s key, need %s: %w", vmType, kt, k.keyType, errdefs.ErrUnsupportedKeyType)
	}

	pub, err := PublicKeyFromVerificationMethod(kt, vm)
	if err != nil {
		return nil, err
	}
	return &WalletKeyPair{wallet: k.wallet, keyType: kt, publicKey: pub}, nil
}

// keyTypeOf returns the key type carried by a verification method. A
// JsonWebKey2020 method carries whatever its publicKeyJwk holds.
func keyTypeOf(vmType string, vm map[string]interface{}) (crypto.KeyType, error) {
	if vmType != crypto.JSONWebKey2020 {
		return crypto.KeyTypeForVerificationMethod(vmType)
	}
	jwk, ok := vm["publicKeyJwk"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("%s verification method has no publicKeyJwk: %w", vmType, errdefs.ErrVerificationMethodResolution)
	}
	kt, _, err := crypto.PublicKeyFromJWK(jwk)
	return kt, err
}

// PublicKeyFromVerificationMethod extracts the public key of type kt from a
// verification method node. publicKeyBase58, publicKeyMultibase, publicKeyHex
// and publicKeyJwk are understood.
func PublicKeyFromVerificationMethod(kt crypto.KeyType, vm map[string]interface{}) ([]byte, error) {
	var (
		pub []byte
		err error
	)
	switch {
	case isString(vm["publicKeyBase58"]):
		pub, err = crypto.DecodeBase58(vm["publicKeyBase58"].(string))
	case isString(vm["publicKeyMultibase"]):
		mb := vm["publicKeyMultibase"].(string)
		var codecType crypto.KeyType
		if codecType, pub, err = crypto.DecodePublicKeyMultibase(mb); err == nil && codecType != kt {
			return nil, fmt.Errorf("publicKeyMultibase holds a %s key: %w", codecType, errdefs.ErrUnsupportedKeyType)
		}
		if err != nil {
			pub, err = crypto.DecodeMultibase(mb)
		}
	case isString(vm["publicKeyHex"]):
		pub, err = crypto.KeyToBytes("0x" + strings.TrimPrefix(vm["publicKeyHex"].(string), "0x"))
	case vm["publicKeyJwk"] != nil:
		jwk, ok := vm["publicKeyJwk"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("publicKeyJwk is not an object: %w", errdefs.ErrVerificationMethodResolution)
		}
		var jwkType crypto.KeyType
		if jwkType, pub, err = crypto.PublicKeyFromJWK(jwk); err != nil {
			return nil, err
		}
		if jwkType != kt {
			return nil, fmt.Errorf("publicKeyJwk holds a %s key: %w", jwkType, errdefs.ErrUnsupportedKeyType)
		}
	default:
		return nil, fmt.Errorf("verification method has no supported public key encoding: %w", errdefs.ErrVerificationMethodResolution)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %v: %w", err, errdefs.ErrVerificationMethodResolution)
	}

	if kt == crypto.KeyTypeSecp256k1 {
		if pub, err = crypto.CompressPublicKey(pub); err != nil {
			return nil, err
		}
	}
	if len(pub) != kt.PublicKeySize() {
		return nil, fmt.Errorf("%s public key must be %d bytes, got %d: %w", kt, kt.PublicKeySize(), len(pub), errdefs.ErrUnsupportedKeyType)
	}
	return pub, nil
}

func isString(v interface{}) bool {
	s, ok := v.(string)
	return ok && s != ""
}
