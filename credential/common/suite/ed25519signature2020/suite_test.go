package ed25519signature2020

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
)

func TestPrepareDocument(t *testing.T) {
	s := New()

	t.Run("adds suite context", func(t *testing.T) {
		doc := jsonmap.JSONMap{"@context": loader.CredentialsV1ContextURI}
		prepared := s.PrepareDocument(doc)
		assert.Equal(t, []interface{}{loader.CredentialsV1ContextURI, loader.Ed25519V2020ContextURI}, prepared["@context"])
		assert.Equal(t, loader.CredentialsV1ContextURI, doc["@context"])
	})

	t.Run("keeps declared context", func(t *testing.T) {
		doc := jsonmap.JSONMap{"@context": []interface{}{loader.CredentialsV1ContextURI, loader.Ed25519V2020ContextURI}}
		assert.Equal(t, doc, s.PrepareDocument(doc))
	})
}

func TestDescriptor(t *testing.T) {
	d := New().Descriptor()
	assert.Equal(t, SignatureType, d.ID)
	assert.Equal(t, crypto.KeyTypeEd25519, d.KeyType)
	assert.Empty(t, d.ProofContext)
	assert.Equal(t, "URDNA2015", d.CanonicalizationAlgorithm)
	assert.True(t, d.SupportsVerificationMethod(crypto.Ed25519VerificationKey2018))
	assert.False(t, d.SupportsVerificationMethod(crypto.EcdsaSecp256k1VerificationKey2019))
}
