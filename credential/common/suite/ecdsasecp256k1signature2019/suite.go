// Package ecdsasecp256k1signature2019 implements the EcdsaSecp256k1Signature2019
// suite: a secp256k1 detached JWS (ES256K) over URDNA2015 canonical forms.
package ecdsasecp256k1signature2019

import (
	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/jws"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
	"github.com/pilacorp/go-ldproof/credential/common/suite"
)

// SignatureType is the proof type produced by the suite.
const SignatureType = "EcdsaSecp256k1Signature2019"

var descriptor = suite.Descriptor{
	ID:                      SignatureType,
	KeyType:                 crypto.KeyTypeSecp256k1,
	VerificationMethodTypes: []string{crypto.EcdsaSecp256k1VerificationKey2019, crypto.JSONWebKey2020},
	ProofContext:            loader.SecurityV2ContextURI,
}

// New returns the suite.
func New(opts ...suite.Option) *suite.LinkedDataSignature {
	return suite.NewLinkedDataSignature(suite.Definition{
		Descriptor: descriptor,
		Codec:      suite.JWSCodec{Method: jws.ES256K},
	}, opts...)
}
