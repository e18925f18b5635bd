// Package ed25519signature2018 implements the Ed25519Signature2018 suite: an
// ed25519 detached JWS (EdDSA) over URDNA2015 canonical forms.
package ed25519signature2018

import (
	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/jws"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
	"github.com/pilacorp/go-ldproof/credential/common/suite"
)

// SignatureType is the proof type produced by the suite.
const SignatureType = "Ed25519Signature2018"

var descriptor = suite.Descriptor{
	ID:                      SignatureType,
	KeyType:                 crypto.KeyTypeEd25519,
	VerificationMethodTypes: []string{crypto.Ed25519VerificationKey2018, crypto.JSONWebKey2020},
	ProofContext:            loader.SecurityV2ContextURI,
}

// New returns the suite.
func New(opts ...suite.Option) *suite.LinkedDataSignature {
	return suite.NewLinkedDataSignature(suite.Definition{
		Descriptor: descriptor,
		Codec:      suite.JWSCodec{Method: jws.EdDSA},
	}, opts...)
}
