package purpose

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/dto"
	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
	"github.com/pilacorp/go-ldproof/credential/common/suite"
	"github.com/pilacorp/go-ldproof/credential/common/wallet"
)

const created = "2024-01-01T00:00:00Z"

// didKeyMethod creates a did:key and returns its DID and resolved verification method.
func didKeyMethod(t *testing.T, l loader.DocumentLoader) (string, map[string]interface{}) {
	t.Helper()
	info, err := wallet.NewInMemoryWallet().CreateKey(crypto.KeyTypeEd25519, nil)
	require.NoError(t, err)
	vm, err := suite.ResolveVerificationMethod(context.Background(), info.VerificationMethod, l)
	require.NoError(t, err)
	return info.DID, vm
}

func newLoader(t *testing.T, opts ...loader.Option) *loader.Loader {
	t.Helper()
	l, err := loader.New(opts...)
	require.NoError(t, err)
	return l
}

func TestBuildProofOptions(t *testing.T) {
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.FixedZone("ICT", 7*3600))

	options := NewAssertion().BuildProofOptions(at)
	assert.Equal(t, &dto.Proof{ProofPurpose: AssertionMethod, Created: "2024-01-01T02:00:00Z"}, options)

	auth, err := NewAuthentication("c-123", "example.org")
	require.NoError(t, err)
	options = auth.BuildProofOptions(at)
	assert.Equal(t, Authentication, options.ProofPurpose)
	assert.Equal(t, "c-123", options.Challenge)
	assert.Equal(t, "example.org", options.Domain)
}

func TestProofPurposeTerm(t *testing.T) {
	ctx := context.Background()
	p := NewProofPurpose(AssertionMethod)

	res := p.Validate(ctx, &dto.Proof{ProofPurpose: AssertionMethod, Created: created}, nil, nil, nil)
	assert.True(t, res.Valid)

	res = p.Validate(ctx, &dto.Proof{ProofPurpose: Authentication, Created: created}, nil, nil, nil)
	assert.False(t, res.Valid)
	assert.True(t, errors.Is(res.Err, errdefs.ErrPurposeMismatch))
}

func TestTimestampWindow(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		created string
		valid   bool
	}{
		{"inside", "2024-01-01T00:00:00Z", true},
		{"after reference inside", "2024-01-01T00:45:00Z", true},
		{"too old", "2023-12-31T23:00:00Z", false},
		{"unparsable", "yesterday", false},
	}
	p := NewProofPurpose(AssertionMethod, WithDate(date), WithMaxTimestampDelta(time.Hour))
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := p.Validate(ctx, &dto.Proof{ProofPurpose: AssertionMethod, Created: tc.created}, nil, nil, nil)
			assert.Equal(t, tc.valid, res.Valid)
			if !tc.valid {
				assert.True(t, errors.Is(res.Err, errdefs.ErrPurposeMismatch))
			}
		})
	}
}

func TestControllerProofPurpose(t *testing.T) {
	ctx := context.Background()
	l := newLoader(t)
	did, vm := didKeyMethod(t, l)

	t.Run("listed", func(t *testing.T) {
		res := NewAssertion().Validate(ctx, &dto.Proof{ProofPurpose: AssertionMethod, Created: created}, nil, vm, l)
		require.NoError(t, res.Err)
		assert.True(t, res.Valid)
		assert.Equal(t, did, res.Controller["id"])
	})

	t.Run("not listed", func(t *testing.T) {
		res := NewControllerProofPurpose("keyAgreement").Validate(ctx, &dto.Proof{ProofPurpose: "keyAgreement", Created: created}, nil, vm, l)
		assert.False(t, res.Valid)
		assert.True(t, errors.Is(res.Err, errdefs.ErrPurposeMismatch))
	})

	t.Run("no controller", func(t *testing.T) {
		orphan := jsonmap.JSONMap(vm).Copy()
		delete(orphan, "controller")
		res := NewAssertion().Validate(ctx, &dto.Proof{ProofPurpose: AssertionMethod, Created: created}, nil, orphan, l)
		assert.True(t, errors.Is(res.Err, errdefs.ErrPurposeMismatch))
	})

	t.Run("relative references", func(t *testing.T) {
		controller := map[string]interface{}{
			"@context": loader.DIDV1ContextURI,
			"id":       "did:example:issuer",
			"verificationMethod": []interface{}{
				map[string]interface{}{
					"id":              "#key-1",
					"type":            crypto.Ed25519VerificationKey2018,
					"controller":      "did:example:issuer",
					"publicKeyBase58": vm["publicKeyBase58"],
				},
			},
			"assertionMethod": []interface{}{"#key-1"},
		}
		l := newLoader(t, loader.WithDocument("did:example:issuer", controller))
		resolved, err := suite.ResolveVerificationMethod(ctx, "did:example:issuer#key-1", l)
		require.NoError(t, err)

		res := NewAssertion().Validate(ctx, &dto.Proof{ProofPurpose: AssertionMethod, Created: created}, nil, resolved, l)
		require.NoError(t, res.Err)
		assert.True(t, res.Valid)
	})
}

func TestAuthentication(t *testing.T) {
	ctx := context.Background()
	l := newLoader(t)
	_, vm := didKeyMethod(t, l)

	_, err := NewAuthentication("", "")
	assert.True(t, errors.Is(err, errdefs.ErrPurposeMismatch))

	p, err := NewAuthentication("c-123", "example.org")
	require.NoError(t, err)

	tests := []struct {
		name  string
		proof *dto.Proof
		valid bool
	}{
		{"match", &dto.Proof{ProofPurpose: Authentication, Created: created, Challenge: "c-123", Domain: "example.org"}, true},
		{"wrong challenge", &dto.Proof{ProofPurpose: Authentication, Created: created, Challenge: "c-999", Domain: "example.org"}, false},
		{"missing challenge", &dto.Proof{ProofPurpose: Authentication, Created: created, Domain: "example.org"}, false},
		{"wrong domain", &dto.Proof{ProofPurpose: Authentication, Created: created, Challenge: "c-123", Domain: "evil.example"}, false},
		{"wrong term", &dto.Proof{ProofPurpose: AssertionMethod, Created: created, Challenge: "c-123", Domain: "example.org"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := p.Validate(ctx, tc.proof, nil, vm, l)
			assert.Equal(t, tc.valid, res.Valid)
			if !tc.valid {
				assert.True(t, errors.Is(res.Err, errdefs.ErrPurposeMismatch))
			}
		})
	}

	t.Run("domain optional", func(t *testing.T) {
		p, err := NewAuthentication("c-123", "")
		require.NoError(t, err)
		res := p.Validate(ctx, &dto.Proof{ProofPurpose: Authentication, Created: created, Challenge: "c-123", Domain: "any.example"}, nil, vm, l)
		assert.True(t, res.Valid)
	})
}

func TestCredentialIssuance(t *testing.T) {
	ctx := context.Background()
	l := newLoader(t)
	did, vm := didKeyMethod(t, l)
	proof := &dto.Proof{ProofPurpose: AssertionMethod, Created: created}
	p := NewCredentialIssuance()

	tests := []struct {
		name   string
		issuer interface{}
		valid  bool
	}{
		{"issuer string", did, true},
		{"issuer object", map[string]interface{}{"id": did, "name": "Issuer"}, true},
		{"other issuer", "did:example:someone-else", false},
		{"missing issuer", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := jsonmap.JSONMap{"type": []interface{}{"VerifiableCredential"}}
			if tc.issuer != nil {
				doc["issuer"] = tc.issuer
			}
			res := p.Validate(ctx, proof, doc, vm, l)
			assert.Equal(t, tc.valid, res.Valid)
			if !tc.valid {
				assert.True(t, errors.Is(res.Err, errdefs.ErrPurposeMismatch))
			}
		})
	}
}

func TestByTerm(t *testing.T) {
	p, err := ByTerm(AssertionMethod)
	require.NoError(t, err)
	assert.Equal(t, AssertionMethod, p.Term())

	p, err = ByTerm(CapabilityInvocation)
	require.NoError(t, err)
	assert.Equal(t, CapabilityInvocation, p.Term())

	_, err = ByTerm(Authentication)
	assert.Error(t, err)
	_, err = ByTerm("")
	assert.Error(t, err)
}
