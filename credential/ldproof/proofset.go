package ldproof

import (
	"github.com/pilacorp/go-ldproof/credential/common/dto"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
)

// ProofEntry is one member of a document's proof set.
type ProofEntry struct {
	// Raw is the proof as found in the document.
	Raw interface{}
	// Proof is the parsed proof, nil when Err is set.
	Proof *dto.Proof
	Err   error
}

// Proofs returns the proof set of doc in document order.
func Proofs(doc jsonmap.JSONMap) []ProofEntry {
	raw := doc.Proofs()
	entries := make([]ProofEntry, len(raw))
	for i, r := range raw {
		proof, err := dto.ParseProof(r)
		entries[i] = ProofEntry{Raw: r, Proof: proof, Err: err}
	}
	return entries
}

// RemoveProofs returns doc without the proofs of proofType.
func RemoveProofs(doc jsonmap.JSONMap, proofType string) jsonmap.JSONMap {
	return doc.WithProofs(otherProofs(doc, proofType))
}

// otherProofs returns the raw proofs of doc whose type is not proofType.
// Unparsable proofs are kept as they are.
func otherProofs(doc jsonmap.JSONMap, proofType string) []interface{} {
	var kept []interface{}
	for _, e := range Proofs(doc) {
		if e.Err == nil && e.Proof.Type == proofType {
			continue
		}
		kept = append(kept, e.Raw)
	}
	return kept
}
