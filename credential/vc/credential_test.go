package vc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialstatus "github.com/pilacorp/go-ldproof/credential/common/credential-status"
	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/keypair"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
	"github.com/pilacorp/go-ldproof/credential/common/suite"
	"github.com/pilacorp/go-ldproof/credential/common/suite/ecdsasecp256k1signature2019"
	"github.com/pilacorp/go-ldproof/credential/common/suite/ed25519signature2018"
	"github.com/pilacorp/go-ldproof/credential/common/suite/ed25519signature2020"
	"github.com/pilacorp/go-ldproof/credential/common/util"
	"github.com/pilacorp/go-ldproof/credential/common/wallet"
)

var (
	issued    = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	checkedAt = issued.Add(time.Hour)
)

func newKeyPair(t *testing.T, kt crypto.KeyType) (keypair.KeyPair, string) {
	t.Helper()
	w := wallet.NewInMemoryWallet()
	info, err := w.CreateKey(kt, nil)
	require.NoError(t, err)
	kp := keypair.FromKeyInfo(w, info)
	did, err := crypto.DIDKey(kt, kp.PublicKey())
	require.NoError(t, err)
	return kp, did
}

func testContents(issuer string) CredentialContents {
	return CredentialContents{
		Context: []interface{}{map[string]interface{}{"@vocab": "https://example.org/vocab#"}},
		ID:      "urn:uuid:3978344f-8596-4c3a-a978-8fcaba3903c5",
		Types:   []string{"EmailCredential"},
		Issuer:  issuer,
		Subject: []Subject{{
			ID:           "did:example:holder",
			CustomFields: map[string]interface{}{"email": "a@example.com"},
		}},
		ValidFrom: issued,
	}
}

func issue(t *testing.T, s suite.Suite, kp keypair.KeyPair, contents CredentialContents) jsonmap.JSONMap {
	t.Helper()
	doc, err := New(contents)
	require.NoError(t, err)
	signed, err := Issue(context.Background(), doc, s, kp, WithCreated(issued))
	require.NoError(t, err)
	return signed
}

func TestNew(t *testing.T) {
	doc, err := New(CredentialContents{
		Issuer:  "did:example:issuer",
		Subject: []Subject{{ID: "did:example:holder"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []interface{}{loader.CredentialsV1ContextURI}, doc["@context"])
	assert.Equal(t, []interface{}{TypeVerifiableCredential}, doc["type"])
	assert.True(t, strings.HasPrefix(doc.ID(), "urn:uuid:"))
	assert.Equal(t, map[string]interface{}{"id": "did:example:holder"}, doc["credentialSubject"])

	_, err = New(CredentialContents{
		Context: []interface{}{42},
		Issuer:  "did:example:issuer",
		Subject: []Subject{{ID: "did:example:holder"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid context entry at index 0")
}

func TestParseCredential(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name: "valid",
			raw:  `{"@context":["https://www.w3.org/2018/credentials/v1"],"type":["VerifiableCredential"],"issuer":{"id":"did:example:issuer"},"credentialSubject":{"id":"did:example:holder"}}`,
		},
		{
			name:    "wrong first context",
			raw:     `{"@context":["https://example.org/ctx","https://www.w3.org/2018/credentials/v1"],"type":"VerifiableCredential","issuer":"did:example:issuer","credentialSubject":{}}`,
			wantErr: "first @context must be",
		},
		{
			name:    "missing type",
			raw:     `{"@context":"https://www.w3.org/2018/credentials/v1","type":"EmailCredential","issuer":"did:example:issuer","credentialSubject":{}}`,
			wantErr: "type must include VerifiableCredential",
		},
		{
			name:    "missing issuer",
			raw:     `{"@context":"https://www.w3.org/2018/credentials/v1","type":"VerifiableCredential","credentialSubject":{}}`,
			wantErr: "issuer is required",
		},
		{
			name:    "missing subject",
			raw:     `{"@context":"https://www.w3.org/2018/credentials/v1","type":"VerifiableCredential","issuer":"did:example:issuer"}`,
			wantErr: "credentialSubject is required",
		},
		{
			name:    "not json",
			raw:     `{`,
			wantErr: "failed to parse credential",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCredential([]byte(tt.raw))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseContents(t *testing.T) {
	contents := testContents("did:example:issuer")
	contents.ValidUntil = issued.AddDate(1, 0, 0)
	contents.Schemas = []Schema{{ID: "https://example.org/schema.json", Type: "JsonSchema"}}
	contents.CredentialStatus = []Status{{
		ID:                   "https://status.example/1#7",
		Type:                 "BitstringStatusListEntry",
		StatusPurpose:        credentialstatus.StatusPurposeRevocation,
		StatusListIndex:      "7",
		StatusListCredential: "https://status.example/1",
	}}

	doc, err := New(contents)
	require.NoError(t, err)

	raw, err := doc.ToJSON()
	require.NoError(t, err)
	parsed, err := ParseCredential(raw)
	require.NoError(t, err)

	got, err := ParseContents(parsed)
	require.NoError(t, err)
	assert.Equal(t, contents.ID, got.ID)
	assert.Equal(t, contents.Types, got.Types)
	assert.Equal(t, contents.Issuer, got.Issuer)
	assert.Equal(t, contents.Context, got.Context)
	assert.Equal(t, contents.Subject, got.Subject)
	assert.Equal(t, contents.Schemas, got.Schemas)
	assert.Equal(t, contents.CredentialStatus, got.CredentialStatus)
	assert.True(t, contents.ValidFrom.Equal(got.ValidFrom))
	assert.True(t, contents.ValidUntil.Equal(got.ValidUntil))
}

func TestIssueAndVerify(t *testing.T) {
	tests := []struct {
		name    string
		suite   suite.Suite
		keyType crypto.KeyType
	}{
		{"Ed25519Signature2018", ed25519signature2018.New(), crypto.KeyTypeEd25519},
		{"Ed25519Signature2020", ed25519signature2020.New(), crypto.KeyTypeEd25519},
		{"EcdsaSecp256k1Signature2019", ecdsasecp256k1signature2019.New(), crypto.KeyTypeSecp256k1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kp, did := newKeyPair(t, tt.keyType)
			doc := issue(t, tt.suite, kp, testContents(did))

			res, err := Verify(context.Background(), doc, WithDate(checkedAt))
			require.NoError(t, err)
			assert.True(t, res.Verified, "errors: %v", res.Errors)
			assert.Empty(t, res.Errors)
			require.Len(t, res.Proofs.Results, 1)
			assert.Equal(t, tt.name, res.Proofs.Results[0].SuiteID)
		})
	}
}

func TestIssueRejectsInvalidCredential(t *testing.T) {
	kp, _ := newKeyPair(t, crypto.KeyTypeEd25519)
	doc := jsonmap.JSONMap{
		"@context": []interface{}{loader.CredentialsV1ContextURI},
		"type":     []interface{}{TypeVerifiableCredential},
	}
	_, err := Issue(context.Background(), doc, ed25519signature2018.New(), kp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCredential))
}

func TestVerifyTamperedCredential(t *testing.T) {
	kp, did := newKeyPair(t, crypto.KeyTypeEd25519)
	doc := issue(t, ed25519signature2018.New(), kp, testContents(did))

	tampered := doc.Copy()
	tampered["credentialSubject"] = map[string]interface{}{
		"id":    "did:example:holder",
		"email": "b@example.com",
	}

	res, err := Verify(context.Background(), tampered, WithDate(checkedAt))
	require.NoError(t, err)
	assert.False(t, res.Verified)
	require.NotEmpty(t, res.Errors)
	assert.True(t, errors.Is(res.Errors[0], errdefs.ErrSignatureMismatch))
}

func TestIssuerMustControlKey(t *testing.T) {
	kp, _ := newKeyPair(t, crypto.KeyTypeEd25519)
	_, otherDID := newKeyPair(t, crypto.KeyTypeEd25519)
	doc := issue(t, ed25519signature2018.New(), kp, testContents(otherDID))

	res, err := Verify(context.Background(), doc, WithDate(checkedAt))
	require.NoError(t, err)
	assert.False(t, res.Verified)
	require.NotEmpty(t, res.Errors)
	assert.True(t, errors.Is(res.Errors[0], errdefs.ErrPurposeMismatch))
}

func TestVerifyWithoutProof(t *testing.T) {
	doc, err := New(testContents("did:example:issuer"))
	require.NoError(t, err)

	res, err := Verify(context.Background(), doc, WithDate(checkedAt))
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.NotEmpty(t, res.Errors)
}

func TestValidityPeriod(t *testing.T) {
	kp, did := newKeyPair(t, crypto.KeyTypeEd25519)
	contents := testContents(did)
	contents.ValidUntil = issued.AddDate(0, 1, 0)
	doc := issue(t, ed25519signature2018.New(), kp, contents)

	tests := []struct {
		name    string
		date    time.Time
		wantErr error
	}{
		{"within period", checkedAt, nil},
		{"before validFrom", issued.Add(-time.Hour), ErrNotYetValid},
		{"after validUntil", issued.AddDate(0, 2, 0), ErrExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Verify(context.Background(), doc, WithDate(tt.date))
			require.NoError(t, err)
			if tt.wantErr == nil {
				assert.True(t, res.Verified, "errors: %v", res.Errors)
				return
			}
			assert.False(t, res.Verified)
			require.Len(t, res.Errors, 1)
			assert.True(t, errors.Is(res.Errors[0], tt.wantErr))
			// the proof itself is still valid
			assert.True(t, res.Proofs.Verified)
		})
	}
}

func writeSchema(t *testing.T, schema string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(schema), 0o600))
	return "file://" + filepath.ToSlash(path)
}

func TestSchemaValidation(t *testing.T) {
	emailSchema := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["credentialSubject"],
		"properties": {
			"credentialSubject": {
				"type": "object",
				"required": ["email"],
				"properties": {"email": {"type": "string"}}
			}
		}
	}`
	ageSchema := `{
		"type": "object",
		"properties": {
			"credentialSubject": {"type": "object", "required": ["age"]}
		}
	}`

	tests := []struct {
		name    string
		schema  string
		wantErr bool
	}{
		{"matching schema", emailSchema, false},
		{"missing property", ageSchema, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kp, did := newKeyPair(t, crypto.KeyTypeEd25519)
			contents := testContents(did)
			contents.Schemas = []Schema{{ID: writeSchema(t, tt.schema), Type: "JsonSchema"}}
			doc := issue(t, ed25519signature2018.New(), kp, contents)

			res, err := Verify(context.Background(), doc, WithDate(checkedAt), WithSchemaValidation())
			require.NoError(t, err)
			if !tt.wantErr {
				assert.True(t, res.Verified, "errors: %v", res.Errors)
				return
			}
			assert.False(t, res.Verified)
			require.Len(t, res.Errors, 1)
			assert.True(t, errors.Is(res.Errors[0], ErrSchemaValidation))
			assert.Contains(t, res.Errors[0].Error(), "age")
		})
	}

	t.Run("no schema", func(t *testing.T) {
		kp, did := newKeyPair(t, crypto.KeyTypeEd25519)
		doc := issue(t, ed25519signature2018.New(), kp, testContents(did))

		res, err := Verify(context.Background(), doc, WithDate(checkedAt), WithSchemaValidation())
		require.NoError(t, err)
		assert.False(t, res.Verified)
	})
}

func statusListServer(t *testing.T, bits ...byte) *httptest.Server {
	t.Helper()
	encoded, err := util.CompressToBase64URL(bits)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(credentialstatus.StatusListCredential{
			ID:     "https://status.example/1",
			Issuer: "did:example:issuer",
			Type:   []string{"VerifiableCredential", "BitstringStatusListCredential"},
			CredentialSubject: credentialstatus.StatusListCredentialSubject{
				ID:            "https://status.example/1#list",
				Type:          "BitstringStatusList",
				StatusPurpose: credentialstatus.StatusPurposeRevocation,
				EncodedList:   encoded,
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStatusCheck(t *testing.T) {
	// position 0 is revoked
	srv := statusListServer(t, 0x01)
	client := credentialstatus.NewClient(credentialstatus.WithHTTPClient(srv.Client()))

	tests := []struct {
		name    string
		index   string
		wantErr error
	}{
		{"active", "1", nil},
		{"revoked", "0", ErrRevoked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kp, did := newKeyPair(t, crypto.KeyTypeEd25519)
			contents := testContents(did)
			contents.CredentialStatus = []Status{{
				ID:                   srv.URL + "/1#" + tt.index,
				Type:                 "BitstringStatusListEntry",
				StatusPurpose:        credentialstatus.StatusPurposeRevocation,
				StatusListIndex:      tt.index,
				StatusListCredential: srv.URL + "/1",
			}}
			doc := issue(t, ed25519signature2018.New(), kp, contents)

			res, err := Verify(context.Background(), doc, WithDate(checkedAt), WithStatusCheck(client))
			require.NoError(t, err)
			if tt.wantErr == nil {
				assert.True(t, res.Verified, "errors: %v", res.Errors)
				return
			}
			assert.False(t, res.Verified)
			require.Len(t, res.Errors, 1)
			assert.True(t, errors.Is(res.Errors[0], tt.wantErr))
		})
	}
}

type failingChecker struct{}

func (failingChecker) Check(context.Context, Status) (bool, error) {
	return false, errdefs.Wrap(errdefs.ErrLoader, "status service unavailable", nil)
}

func TestStatusCheckFailureIsReported(t *testing.T) {
	kp, did := newKeyPair(t, crypto.KeyTypeEd25519)
	contents := testContents(did)
	contents.CredentialStatus = []Status{{
		ID:                   "https://status.example/1#3",
		Type:                 "BitstringStatusListEntry",
		StatusPurpose:        credentialstatus.StatusPurposeRevocation,
		StatusListIndex:      "3",
		StatusListCredential: "https://status.example/1",
	}}
	doc := issue(t, ed25519signature2018.New(), kp, contents)

	res, err := Verify(context.Background(), doc, WithDate(checkedAt), WithStatusCheck(failingChecker{}))
	require.NoError(t, err)
	assert.False(t, res.Verified)
	require.Len(t, res.Errors, 1)
	assert.True(t, errors.Is(res.Errors[0], errdefs.ErrLoader))
}
