package jsonmap

import (
	"encoding/json"
	"fmt"
)

// ProofKey is the reserved member that holds a document's proof set.
const ProofKey = "proof"

// ContextKey is the JSON-LD context member.
const ContextKey = "@context"

// JSONMap represents a JSON object as a map.
//
// Values reachable from a JSONMap are treated as immutable: operations that
// change a document return a new top-level map and replace whole members
// instead of writing into nested values shared with the original.
type JSONMap map[string]interface{}

// Parse decodes a JSON object into a JSONMap.
func Parse(raw []byte) (JSONMap, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("JSON string is empty")
	}
	var m JSONMap
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("document is not a JSON object")
	}
	return m, nil
}

// ToJSON serializes the JSONMap to JSON.
func (m JSONMap) ToJSON() ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("JSONMap is nil")
	}

	data, err := json.Marshal(map[string]interface{}(m))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSONMap: %w", err)
	}
	return data, nil
}

// Copy returns a shallow copy of the top-level members.
func (m JSONMap) Copy() JSONMap {
	c := make(JSONMap, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// DeepCopy returns a copy that shares no maps or slices with m.
func (m JSONMap) DeepCopy() JSONMap {
	if m == nil {
		return nil
	}
	return JSONMap(deepCopy(map[string]interface{}(m)).(map[string]interface{}))
}

// DeepCopyValue returns a copy of a decoded JSON value that shares no maps or
// slices with v.
func DeepCopyValue(v interface{}) interface{} {
	return deepCopy(v)
}

func deepCopy(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		c := make(map[string]interface{}, len(t))
		for k, val := range t {
			c[k] = deepCopy(val)
		}
		return c
	case JSONMap:
		return deepCopy(map[string]interface{}(t))
	case []interface{}:
		c := make([]interface{}, len(t))
		for i, val := range t {
			c[i] = deepCopy(val)
		}
		return c
	case []string:
		c := make([]interface{}, len(t))
		for i, val := range t {
			c[i] = val
		}
		return c
	default:
		return v
	}
}

// Proofs returns the raw proof objects held in the proof slot, in document order.
func (m JSONMap) Proofs() []interface{} {
	raw, ok := m[ProofKey]
	if !ok || raw == nil {
		return nil
	}
	switch p := raw.(type) {
	case []interface{}:
		return append([]interface{}(nil), p...)
	case []map[string]interface{}:
		proofs := make([]interface{}, len(p))
		for i := range p {
			proofs[i] = p[i]
		}
		return proofs
	default:
		return []interface{}{p}
	}
}

// WithoutProof returns a copy of the document with its proof slot removed.
func (m JSONMap) WithoutProof() JSONMap {
	c := m.Copy()
	delete(c, ProofKey)
	return c
}

// WithProofs returns a copy of the document whose proof slot holds proofs.
// A single proof is stored as an object and several as an array; an empty
// set removes the slot.
func (m JSONMap) WithProofs(proofs []interface{}) JSONMap {
	c := m.Copy()
	switch len(proofs) {
	case 0:
		delete(c, ProofKey)
	case 1:
		c[ProofKey] = proofs[0]
	default:
		c[ProofKey] = append([]interface{}(nil), proofs...)
	}
	return c
}

// Contexts returns the @context member as a list.
func (m JSONMap) Contexts() []interface{} {
	switch c := m[ContextKey].(type) {
	case nil:
		return nil
	case []interface{}:
		return append([]interface{}(nil), c...)
	case []string:
		out := make([]interface{}, len(c))
		for i := range c {
			out[i] = c[i]
		}
		return out
	default:
		return []interface{}{c}
	}
}

// HasContext reports whether iri is listed in the document's @context.
func (m JSONMap) HasContext(iri string) bool {
	for _, c := range m.Contexts() {
		if s, ok := c.(string); ok && s == iri {
			return true
		}
	}
	return false
}

// String returns the string member key, or "" when absent or not a string.
func (m JSONMap) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// ID returns the node identifier, accepting both "id" and "@id".
func (m JSONMap) ID() string {
	if id := m.String("id"); id != "" {
		return id
	}
	return m.String("@id")
}
