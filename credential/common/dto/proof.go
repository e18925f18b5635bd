package dto

import (
	"fmt"
	"maps"

	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
)

// JSON field names of a linked data proof.
const (
	FieldContext            = "@context"
	FieldType               = "type"
	FieldCreated            = "created"
	FieldVerificationMethod = "verificationMethod"
	FieldProofPurpose       = "proofPurpose"
	FieldProofValue         = "proofValue"
	FieldJWS                = "jws"
	FieldSignatureValue     = "signatureValue"
	FieldChallenge          = "challenge"
	FieldDomain             = "domain"
	FieldNonce              = "nonce"
)

// Proof represents a Linked Data Proof embedded in a document.
type Proof struct {
	Type               string `json:"type"`
	Created            string `json:"created,omitempty"`
	VerificationMethod string `json:"verificationMethod,omitempty"`
	ProofPurpose       string `json:"proofPurpose,omitempty"`
	ProofValue         string `json:"proofValue,omitempty"`
	JWS                string `json:"jws,omitempty"`
	Challenge          string `json:"challenge,omitempty"`
	Domain             string `json:"domain,omitempty"`
	Nonce              string `json:"nonce,omitempty"`

	// Extra holds members this struct does not model. They are part of the
	// signed proof options and must survive a parse/serialize round trip.
	Extra map[string]interface{} `json:"-"`
}

// Clone returns a copy of the proof that shares no maps with p.
func (p *Proof) Clone() *Proof {
	if p == nil {
		return nil
	}
	c := *p
	if p.Extra != nil {
		c.Extra = maps.Clone(p.Extra)
	}
	return &c
}

// SignatureValue returns whichever signature member the proof carries.
func (p *Proof) SignatureValue() string {
	if p.JWS != "" {
		return p.JWS
	}
	return p.ProofValue
}

// ToMap converts the proof to its JSON object form, omitting empty members.
func (p *Proof) ToMap() map[string]interface{} {
	m := make(map[string]interface{}, 8+len(p.Extra))
	for k, v := range p.Extra {
		m[k] = v
	}
	set := func(key, value string) {
		if value != "" {
			m[key] = value
		}
	}
	set(FieldType, p.Type)
	set(FieldCreated, p.Created)
	set(FieldVerificationMethod, p.VerificationMethod)
	set(FieldProofPurpose, p.ProofPurpose)
	set(FieldProofValue, p.ProofValue)
	set(FieldJWS, p.JWS)
	set(FieldChallenge, p.Challenge)
	set(FieldDomain, p.Domain)
	set(FieldNonce, p.Nonce)
	return m
}

// ParseProof converts a proof object into a Proof. Only the type is required
// here; suites and purposes check the members they depend on.
func ParseProof(raw interface{}) (*Proof, error) {
	proofMap, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("failed to parse proof: expected object, got %T: %w", raw, errdefs.ErrMalformedProof)
	}

	var result Proof
	for k, v := range proofMap {
		var target *string
		switch k {
		case FieldType:
			target = &result.Type
		case FieldCreated:
			target = &result.Created
		case FieldVerificationMethod:
			// Embedded verification methods are referenced by their id.
			if vm, ok := v.(map[string]interface{}); ok {
				v = vm["id"]
			}
			target = &result.VerificationMethod
		case FieldProofPurpose:
			target = &result.ProofPurpose
		case FieldProofValue:
			target = &result.ProofValue
		case FieldJWS:
			target = &result.JWS
		case FieldChallenge:
			target = &result.Challenge
		case FieldDomain:
			target = &result.Domain
		case FieldNonce:
			target = &result.Nonce
		}
		if target == nil {
			if result.Extra == nil {
				result.Extra = make(map[string]interface{})
			}
			result.Extra[k] = v
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("failed to parse proof: %s must be a string, got %T: %w", k, v, errdefs.ErrMalformedProof)
		}
		*target = s
	}

	if result.Type == "" {
		return nil, fmt.Errorf("failed to parse proof: missing type: %w", errdefs.ErrMalformedProof)
	}
	return &result, nil
}
