// Package vp creates, signs and verifies verifiable presentations secured
// with linked data proofs.
package vp

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
)

// TypeVerifiablePresentation is the base type of every presentation.
const TypeVerifiablePresentation = "VerifiablePresentation"

// PresentationContents represents the structured contents of a Presentation.
type PresentationContents struct {
	Context     []interface{}     // JSON-LD contexts after the credentials context
	ID          string            // Presentation identifier, generated when empty
	Types       []string          // Presentation types besides VerifiablePresentation
	Holder      string            // Holder identifier
	Credentials []jsonmap.JSONMap // Embedded verifiable credentials
}

// Create builds an unsigned presentation embedding the given credentials.
// The credentials are not verified.
func Create(contents PresentationContents) (jsonmap.JSONMap, error) {
	vpJSON := make(jsonmap.JSONMap)

	contexts := []interface{}{loader.CredentialsV1ContextURI}
	for i, ctx := range contents.Context {
		switch v := ctx.(type) {
		case string:
			if v != loader.CredentialsV1ContextURI {
				contexts = append(contexts, v)
			}
		case map[string]interface{}:
			contexts = append(contexts, v)
		default:
			return nil, fmt.Errorf("invalid context entry at index %d: must be string or map, got %T", i, v)
		}
	}
	vpJSON["@context"] = contexts

	vpJSON["id"] = contents.ID
	if contents.ID == "" {
		vpJSON["id"] = "urn:uuid:" + uuid.NewString()
	}

	types := []interface{}{TypeVerifiablePresentation}
	for _, t := range contents.Types {
		if t != TypeVerifiablePresentation {
			types = append(types, t)
		}
	}
	vpJSON["type"] = types

	if contents.Holder != "" {
		vpJSON["holder"] = contents.Holder
	}
	if len(contents.Credentials) > 0 {
		credentials := make([]interface{}, 0, len(contents.Credentials))
		for i, c := range contents.Credentials {
			if c == nil {
				return nil, fmt.Errorf("credential at index %d is nil", i)
			}
			credentials = append(credentials, map[string]interface{}(c.DeepCopy()))
		}
		vpJSON["verifiableCredential"] = credentials
	}
	return vpJSON, nil
}

// ParsePresentation parses a JSON presentation and checks its structure.
func ParsePresentation(raw []byte) (jsonmap.JSONMap, error) {
	m, err := jsonmap.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse presentation: %w", err)
	}
	if err := validateStructure(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseContents extracts the structured contents of a presentation.
func ParseContents(m jsonmap.JSONMap) (*PresentationContents, error) {
	contents := &PresentationContents{
		ID:     m.String("id"),
		Holder: holderID(m["holder"]),
	}
	for _, ctx := range m.Contexts() {
		switch v := ctx.(type) {
		case string:
			if v != loader.CredentialsV1ContextURI {
				contents.Context = append(contents.Context, v)
			}
		case map[string]interface{}:
			contents.Context = append(contents.Context, v)
		default:
			return nil, fmt.Errorf("unsupported context type: %T", v)
		}
	}
	for _, t := range typeList(m["type"]) {
		if t != TypeVerifiablePresentation {
			contents.Types = append(contents.Types, t)
		}
	}
	credentials, err := embeddedCredentials(m)
	if err != nil {
		return nil, err
	}
	contents.Credentials = credentials
	return contents, nil
}

func validateStructure(m jsonmap.JSONMap) error {
	contexts := m.Contexts()
	if len(contexts) == 0 || contexts[0] != loader.CredentialsV1ContextURI {
		return fmt.Errorf("first @context must be %s", loader.CredentialsV1ContextURI)
	}
	if !slices.Contains(typeList(m["type"]), TypeVerifiablePresentation) {
		return fmt.Errorf("type must include %s", TypeVerifiablePresentation)
	}
	return nil
}

// embeddedCredentials returns the credentials of verifiableCredential.
func embeddedCredentials(m jsonmap.JSONMap) ([]jsonmap.JSONMap, error) {
	var raw []interface{}
	switch v := m["verifiableCredential"].(type) {
	case nil:
		return nil, nil
	case []interface{}:
		raw = v
	default:
		raw = []interface{}{v}
	}

	credentials := make([]jsonmap.JSONMap, 0, len(raw))
	for i, item := range raw {
		c, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("credential at index %d is not an object: %T", i, item)
		}
		credentials = append(credentials, jsonmap.JSONMap(c))
	}
	return credentials, nil
}

func typeList(v interface{}) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func holderID(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]interface{}:
		return jsonmap.JSONMap(t).ID()
	}
	return ""
}
