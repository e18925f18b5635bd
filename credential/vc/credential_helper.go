package vc

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
)

// serializeCredentialContents serializes CredentialContents into a credential.
func serializeCredentialContents(vcc *CredentialContents) (jsonmap.JSONMap, error) {
	if vcc == nil {
		return nil, fmt.Errorf("credential contents is nil")
	}

	vcJSON := make(jsonmap.JSONMap)
	contexts, err := serializeContexts(vcc.Context)
	if err != nil {
		return nil, fmt.Errorf("invalid @context: %w", err)
	}
	vcJSON["@context"] = contexts

	vcJSON["id"] = vcc.ID
	if vcc.ID == "" {
		vcJSON["id"] = "urn:uuid:" + uuid.NewString()
	}

	types := []interface{}{TypeVerifiableCredential}
	for _, t := range vcc.Types {
		if t != TypeVerifiableCredential {
			types = append(types, t)
		}
	}
	vcJSON["type"] = types

	if len(vcc.Subject) > 0 {
		vcJSON["credentialSubject"] = serializeList(vcc.Subject, serializeSubject)
	}
	if vcc.Issuer != "" {
		vcJSON["issuer"] = vcc.Issuer
	}
	if len(vcc.Schemas) > 0 {
		vcJSON["credentialSchema"] = serializeList(vcc.Schemas, serializeSchema)
	}
	if len(vcc.CredentialStatus) > 0 {
		vcJSON[FieldCredentialStatus] = serializeList(vcc.CredentialStatus, serializeStatus)
	}
	if !vcc.ValidFrom.IsZero() {
		vcJSON["validFrom"] = vcc.ValidFrom.UTC().Format(time.RFC3339)
	}
	if !vcc.ValidUntil.IsZero() {
		vcJSON["validUntil"] = vcc.ValidUntil.UTC().Format(time.RFC3339)
	}
	return vcJSON, nil
}

// serializeContexts prefixes contexts with the credentials context and checks
// every entry is an IRI or a context object.
func serializeContexts(contexts []interface{}) ([]interface{}, error) {
	validated := []interface{}{loader.CredentialsV1ContextURI}
	for i, ctx := range contexts {
		switch v := ctx.(type) {
		case string:
			if v == "" {
				return nil, fmt.Errorf("context string at index %d is empty", i)
			}
			if v != loader.CredentialsV1ContextURI {
				validated = append(validated, v)
			}
		case map[string]interface{}:
			if _, nested := v["@context"]; nested {
				return nil, fmt.Errorf("context object at index %d must not contain nested @context", i)
			}
			validated = append(validated, v)
		case jsonmap.JSONMap:
			validated = append(validated, map[string]interface{}(v))
		default:
			return nil, fmt.Errorf("invalid context entry at index %d: must be string or map, got %T", i, v)
		}
	}
	return validated, nil
}

// serializeList returns a single object for one item and an array otherwise.
func serializeList[T any](items []T, fn func(T) map[string]interface{}) interface{} {
	if len(items) == 1 {
		return fn(items[0])
	}
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

func serializeSubject(subject Subject) map[string]interface{} {
	jsonObj := make(map[string]interface{}, len(subject.CustomFields)+1)
	for k, v := range subject.CustomFields {
		jsonObj[k] = v
	}
	if subject.ID != "" {
		jsonObj["id"] = subject.ID
	}
	return jsonObj
}

func serializeSchema(schema Schema) map[string]interface{} {
	return map[string]interface{}{
		"id":   schema.ID,
		"type": schema.Type,
	}
}

func serializeStatus(status Status) map[string]interface{} {
	result := make(map[string]interface{})
	if status.ID != "" {
		result["id"] = status.ID
	}
	if status.Type != "" {
		result["type"] = status.Type
	}
	if status.StatusPurpose != "" {
		result["statusPurpose"] = status.StatusPurpose
	}
	if status.StatusListIndex != "" {
		result["statusListIndex"] = status.StatusListIndex
	}
	if status.StatusListCredential != "" {
		result["statusListCredential"] = status.StatusListCredential
	}
	return result
}

// stringList returns the strings of a value that is either a string or an array.
func stringList(v interface{}) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
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

// issuerID returns the issuer IRI of an issuer given as an IRI or an object.
func issuerID(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]interface{}:
		return jsonmap.JSONMap(t).ID()
	}
	return ""
}

// parseContext extracts the contexts following the credentials context.
func parseContext(m jsonmap.JSONMap, contents *CredentialContents) error {
	for _, ctx := range m.Contexts() {
		switch v := ctx.(type) {
		case string:
			if v != loader.CredentialsV1ContextURI {
				contents.Context = append(contents.Context, v)
			}
		case map[string]interface{}:
			contents.Context = append(contents.Context, v)
		default:
			return fmt.Errorf("unsupported context type: %T", v)
		}
	}
	return nil
}

func parseID(m jsonmap.JSONMap, contents *CredentialContents) error {
	contents.ID = m.String("id")
	return nil
}

// parseTypes extracts the types besides VerifiableCredential.
func parseTypes(m jsonmap.JSONMap, contents *CredentialContents) error {
	types := stringList(m["type"])
	if types == nil {
		return fmt.Errorf("unsupported type field: %T", m["type"])
	}
	for _, t := range types {
		if t != TypeVerifiableCredential {
			contents.Types = append(contents.Types, t)
		}
	}
	return nil
}

func parseIssuer(m jsonmap.JSONMap, contents *CredentialContents) error {
	contents.Issuer = issuerID(m["issuer"])
	return nil
}

// parseDates extracts the validity period, accepting the v1 member names.
func parseDates(m jsonmap.JSONMap, contents *CredentialContents) error {
	var err error
	if contents.ValidFrom, err = parseDate(m, "validFrom", "issuanceDate"); err != nil {
		return err
	}
	if contents.ValidUntil, err = parseDate(m, "validUntil", "expirationDate"); err != nil {
		return err
	}
	return nil
}

func parseDate(m jsonmap.JSONMap, keys ...string) (time.Time, error) {
	for _, key := range keys {
		value := m.String(key)
		if value == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse %s: %w", key, err)
		}
		return t, nil
	}
	return time.Time{}, nil
}

// parseSubject extracts the credentialSubject field.
func parseSubject(m jsonmap.JSONMap, contents *CredentialContents) error {
	switch subject := m["credentialSubject"].(type) {
	case nil:
	case string:
		contents.Subject = []Subject{{ID: subject}}
	case map[string]interface{}:
		parsed, err := SubjectFromJSON(subject)
		if err != nil {
			return fmt.Errorf("failed to parse subject: %w", err)
		}
		contents.Subject = []Subject{parsed}
	case []interface{}:
		subjects := make([]Subject, 0, len(subject))
		for _, raw := range subject {
			sub, ok := raw.(map[string]interface{})
			if !ok {
				return fmt.Errorf("unsupported subject format: %T", raw)
			}
			parsed, err := SubjectFromJSON(sub)
			if err != nil {
				return fmt.Errorf("failed to parse subjects array: %w", err)
			}
			subjects = append(subjects, parsed)
		}
		contents.Subject = subjects
	default:
		return fmt.Errorf("unsupported subject format: %T", subject)
	}
	return nil
}

// SubjectFromJSON creates a credential subject from a JSON object.
func SubjectFromJSON(subjectObj map[string]interface{}) (Subject, error) {
	subject := Subject{CustomFields: make(map[string]interface{}, len(subjectObj))}
	for k, v := range subjectObj {
		if k != "id" {
			subject.CustomFields[k] = v
			continue
		}
		id, ok := v.(string)
		if !ok {
			return Subject{}, fmt.Errorf("field %q must be a string, got %T", k, v)
		}
		subject.ID = id
	}
	return subject, nil
}

func parseSchema(m jsonmap.JSONMap, contents *CredentialContents) error {
	for _, raw := range asList(m["credentialSchema"]) {
		parsed, err := parseSchemaEntry(raw)
		if err != nil {
			return fmt.Errorf("failed to parse schema: %w", err)
		}
		contents.Schemas = append(contents.Schemas, parsed)
	}
	return nil
}

func parseSchemaEntry(value interface{}) (Schema, error) {
	switch v := value.(type) {
	case string:
		return Schema{ID: v}, nil
	case map[string]interface{}:
		obj := jsonmap.JSONMap(v)
		return Schema{ID: obj.ID(), Type: obj.String("type")}, nil
	}
	return Schema{}, fmt.Errorf("invalid schema format: %T", value)
}

func parseStatus(m jsonmap.JSONMap, contents *CredentialContents) error {
	for _, raw := range asList(m[FieldCredentialStatus]) {
		status, ok := raw.(map[string]interface{})
		if !ok {
			return fmt.Errorf("unsupported status format: %T", raw)
		}
		obj := jsonmap.JSONMap(status)
		contents.CredentialStatus = append(contents.CredentialStatus, Status{
			ID:                   obj.ID(),
			Type:                 obj.String("type"),
			StatusPurpose:        obj.String("statusPurpose"),
			StatusListIndex:      obj.String("statusListIndex"),
			StatusListCredential: obj.String("statusListCredential"),
		})
	}
	return nil
}

// asList wraps a single value into a list.
func asList(v interface{}) []interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case []interface{}:
		return t
	default:
		return []interface{}{t}
	}
}
