// Package suite defines linked data signature suites and the shared machinery
// they are built from.
//
// A suite binds a proof type to a key type, the canonicalization and digest
// algorithms, and the encoding of the signature value inside the proof.
package suite

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/dto"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/keypair"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
)

const (
	CanonicalizationURDNA2015 = "URDNA2015"
	DigestSHA256              = "SHA-256"
)

// Descriptor describes a suite implementation.
type Descriptor struct {
	// ID is the proof type, e.g. "Ed25519Signature2018".
	ID string
	// KeyType is the only key type the suite signs and verifies with.
	KeyType crypto.KeyType
	// VerificationMethodTypes lists the verification method types whose key
	// material the suite accepts.
	VerificationMethodTypes []string
	// ProofContext is the @context given to the proof options when they are
	// canonicalized. Empty means the document's own context.
	ProofContext              string
	CanonicalizationAlgorithm string
	DigestAlgorithm           string
}

// SupportsVerificationMethod reports whether vmType is accepted by the suite.
func (d Descriptor) SupportsVerificationMethod(vmType string) bool {
	for _, t := range d.VerificationMethodTypes {
		if t == vmType {
			return true
		}
	}
	return false
}

// VerifyOutcome is the result of checking one proof's signature.
type VerifyOutcome struct {
	Verified bool
	// VerificationMethod is the resolved verification method node. It is set
	// whenever resolution succeeded, even if the signature did not match.
	VerificationMethod map[string]interface{}
}

// Suite creates and verifies proofs of one type.
type Suite interface {
	// SignatureType returns the proof type handled by the suite.
	SignatureType() string
	Descriptor() Descriptor
	// CreateProof signs doc, which must not carry a proof, and returns the
	// complete proof. options carries the purpose fields and the
	// verification method.
	CreateProof(ctx context.Context, doc jsonmap.JSONMap, options *dto.Proof, kp keypair.KeyPair, l loader.DocumentLoader) (*dto.Proof, error)
	// VerifyProof checks proof against doc, which must not carry a proof.
	// The verifying key is taken from the proof's verification method.
	VerifyProof(ctx context.Context, proof *dto.Proof, doc jsonmap.JSONMap, l loader.DocumentLoader) (*VerifyOutcome, error)
}

// DocumentPreparer is implemented by suites that need to amend a document
// before signing it, such as adding their context. The returned document is
// the one that gets signed and returned to the caller.
type DocumentPreparer interface {
	PrepareDocument(doc jsonmap.JSONMap) jsonmap.JSONMap
}

// Registry manages suites by proof type.
type Registry struct {
	mu     sync.RWMutex
	suites map[string]Suite
}

// NewRegistry creates a registry holding suites.
func NewRegistry(suites ...Suite) *Registry {
	r := &Registry{suites: make(map[string]Suite)}
	for _, s := range suites {
		r.Register(s)
	}
	return r
}

// Register adds s, replacing any suite of the same type.
func (r *Registry) Register(s Suite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suites[s.SignatureType()] = s
}

// Get returns the suite for proofType.
func (r *Registry) Get(proofType string) (Suite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.suites[proofType]
	if !ok {
		return nil, fmt.Errorf("no suite registered for %q", proofType)
	}
	return s, nil
}

// Suites returns every registered suite ordered by type.
func (r *Registry) Suites() []Suite {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Suite, 0, len(r.suites))
	for _, s := range r.suites {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SignatureType() < out[j].SignatureType() })
	return out
}
