// Package ed25519signature2020 implements the Ed25519Signature2020 suite. The
// signature is carried as a multibase proofValue, and the proof options are
// canonicalized in the document's own context, to which the suite context is
// added when missing.
package ed25519signature2020

import (
	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
	"github.com/pilacorp/go-ldproof/credential/common/suite"
)

// SignatureType is the proof type produced by the suite.
const SignatureType = "Ed25519Signature2020"

var descriptor = suite.Descriptor{
	ID:                      SignatureType,
	KeyType:                 crypto.KeyTypeEd25519,
	VerificationMethodTypes: []string{crypto.Ed25519VerificationKey2020, crypto.Ed25519VerificationKey2018, crypto.JSONWebKey2020},
}

// New returns the suite.
func New(opts ...suite.Option) *suite.LinkedDataSignature {
	return suite.NewLinkedDataSignature(suite.Definition{
		Descriptor:      descriptor,
		Codec:           suite.MultibaseCodec{},
		RequiredContext: loader.Ed25519V2020ContextURI,
	}, opts...)
}
