package jsonmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		errorMsg string
	}{
		{name: "Valid object", input: []byte(`{"id":"urn:uuid:1234"}`)},
		{name: "Empty JSON", input: []byte{}, errorMsg: "JSON string is empty"},
		{name: "Invalid JSON", input: []byte(`{invalid}`), errorMsg: "failed to unmarshal document"},
		{name: "Not an object", input: []byte(`null`), errorMsg: "document is not a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.input)
			if tt.errorMsg != "" {
				assert.ErrorContains(t, err, tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "urn:uuid:1234", m.ID())
		})
	}
}

func TestProofs(t *testing.T) {
	single := JSONMap{"proof": map[string]interface{}{"type": "A"}}
	assert.Len(t, single.Proofs(), 1)

	set := JSONMap{"proof": []interface{}{
		map[string]interface{}{"type": "A"},
		map[string]interface{}{"type": "B"},
	}}
	assert.Len(t, set.Proofs(), 2)

	assert.Empty(t, JSONMap{"id": "x"}.Proofs())
	assert.Empty(t, JSONMap{"proof": nil}.Proofs())
}

func TestWithProofsLeavesOriginalUntouched(t *testing.T) {
	original := JSONMap{
		"id":    "urn:uuid:1234",
		"proof": map[string]interface{}{"type": "A"},
	}

	updated := original.WithProofs([]interface{}{
		map[string]interface{}{"type": "A"},
		map[string]interface{}{"type": "B"},
	})

	assert.Len(t, updated.Proofs(), 2)
	assert.Equal(t, map[string]interface{}{"type": "A"}, original["proof"])

	stripped := original.WithoutProof()
	assert.NotContains(t, stripped, "proof")
	assert.Contains(t, original, "proof")

	assert.NotContains(t, original.WithProofs(nil), "proof")
}

func TestDeepCopy(t *testing.T) {
	original := JSONMap{
		"credentialSubject": map[string]interface{}{"name": "John Doe"},
		"type":              []interface{}{"VerifiableCredential"},
	}

	c := original.DeepCopy()
	c["credentialSubject"].(map[string]interface{})["name"] = "Jane Doe"
	c["type"].([]interface{})[0] = "Other"

	assert.Equal(t, "John Doe", original["credentialSubject"].(map[string]interface{})["name"])
	assert.Equal(t, "VerifiableCredential", original["type"].([]interface{})[0])
}

func TestContexts(t *testing.T) {
	m := JSONMap{"@context": []interface{}{"https://www.w3.org/2018/credentials/v1", map[string]interface{}{"@vocab": "https://example.org/"}}}
	assert.True(t, m.HasContext("https://www.w3.org/2018/credentials/v1"))
	assert.False(t, m.HasContext("https://w3id.org/security/v2"))
	assert.Len(t, m.Contexts(), 2)

	single := JSONMap{"@context": "https://w3id.org/security/v2"}
	assert.Equal(t, []interface{}{"https://w3id.org/security/v2"}, single.Contexts())
}

func TestToJSON(t *testing.T) {
	m := JSONMap{
		"@context": []interface{}{"https://www.w3.org/2018/credentials/v1"},
		"id":       "urn:uuid:1234",
	}
	result, err := m.ToJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"@context":["https://www.w3.org/2018/credentials/v1"],"id":"urn:uuid:1234"}`, string(result))

	var nilMap JSONMap
	_, err = nilMap.ToJSON()
	assert.Error(t, err)
}
