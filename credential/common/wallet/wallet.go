// Package wallet holds private keys and exposes signing by public key.
package wallet

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
)

// Wallet is a key-custody backend. Private keys never leave it.
type Wallet interface {
	// Sign signs message with the private key matching publicKey.
	Sign(ctx context.Context, publicKey, message []byte) ([]byte, error)
	// Verify checks signature over message under publicKey.
	Verify(ctx context.Context, kt crypto.KeyType, publicKey, message, signature []byte) (bool, error)
}

// KeyInfo describes a key held by a wallet.
type KeyInfo struct {
	KeyType   crypto.KeyType
	PublicKey []byte
	// DID is the did:key identifier of the public key.
	DID string
	// VerificationMethod is the did:key verification method id.
	VerificationMethod string
}

type entry struct {
	info       KeyInfo
	privateKey []byte
}

// InMemoryWallet keeps keys in memory in a thread-safe manner.
type InMemoryWallet struct {
	keys map[string]*entry
	mu   sync.RWMutex
}

// NewInMemoryWallet initializes an empty InMemoryWallet.
func NewInMemoryWallet() *InMemoryWallet {
	return &InMemoryWallet{
		keys: make(map[string]*entry),
	}
}

// CreateKey derives a key of type kt from a 32 byte seed, or from random
// bytes when seed is nil, and stores it.
func (w *InMemoryWallet) CreateKey(kt crypto.KeyType, seed []byte) (*KeyInfo, error) {
	if seed == nil {
		seed = make([]byte, 32)
		if _, err := rand.Read(seed); err != nil {
			return nil, fmt.Errorf("failed to generate seed: %w", err)
		}
	}

	switch kt {
	case crypto.KeyTypeEd25519:
		_, priv, err := crypto.Ed25519FromSeed(seed)
		if err != nil {
			return nil, err
		}
		return w.ImportKey(kt, priv)
	case crypto.KeyTypeSecp256k1:
		if len(seed) != 32 {
			return nil, fmt.Errorf("secp256k1 seed must be 32 bytes, got %d", len(seed))
		}
		priv := secp256k1.PrivKeyFromBytes(seed)
		return w.ImportKey(kt, priv.Serialize())
	default:
		return nil, fmt.Errorf("create key of type %q: %w", kt, errdefs.ErrUnsupportedKeyType)
	}
}

// ImportKey stores an existing private key. Ed25519 keys are 64 bytes,
// secp256k1 keys 32 bytes.
func (w *InMemoryWallet) ImportKey(kt crypto.KeyType, privateKey []byte) (*KeyInfo, error) {
	var pub []byte
	switch kt {
	case crypto.KeyTypeEd25519:
		if len(privateKey) != 64 {
			return nil, fmt.Errorf("ed25519 private key must be 64 bytes, got %d", len(privateKey))
		}
		pub = append([]byte{}, privateKey[32:]...)
	case crypto.KeyTypeSecp256k1:
		var err error
		if pub, err = crypto.Secp256k1PublicKey(privateKey); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("import key of type %q: %w", kt, errdefs.ErrUnsupportedKeyType)
	}

	did, err := crypto.DIDKey(kt, pub)
	if err != nil {
		return nil, err
	}
	info := KeyInfo{
		KeyType:            kt,
		PublicKey:          pub,
		DID:                did,
		VerificationMethod: crypto.DIDKeyVerificationMethod(did),
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.keys[keyID(pub)] = &entry{info: info, privateKey: append([]byte{}, privateKey...)}
	c := info
	return &c, nil
}

// GetKey retrieves the key info for publicKey.
func (w *InMemoryWallet) GetKey(publicKey []byte) (*KeyInfo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	e, exists := w.keys[keyID(publicKey)]
	if !exists {
		return nil, fmt.Errorf("public key %s: %w", keyID(publicKey), errdefs.ErrKeyNotFound)
	}
	c := e.info
	return &c, nil
}

// DeleteKey removes the key for publicKey.
func (w *InMemoryWallet) DeleteKey(publicKey []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.keys[keyID(publicKey)]; !exists {
		return fmt.Errorf("public key %s: %w", keyID(publicKey), errdefs.ErrKeyNotFound)
	}
	delete(w.keys, keyID(publicKey))
	return nil
}

// Sign implements Wallet.
func (w *InMemoryWallet) Sign(ctx context.Context, publicKey, message []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w.mu.RLock()
	e, exists := w.keys[keyID(publicKey)]
	w.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("public key %s: %w", keyID(publicKey), errdefs.ErrKeyNotFound)
	}

	return crypto.Sign(e.info.KeyType, e.privateKey, message)
}

// Verify implements Wallet. It needs no stored key.
func (w *InMemoryWallet) Verify(ctx context.Context, kt crypto.KeyType, publicKey, message, signature []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return crypto.Verify(kt, publicKey, message, signature)
}

func keyID(publicKey []byte) string {
	return crypto.EncodeBase58(publicKey)
}
