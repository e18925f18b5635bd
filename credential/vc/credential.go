// Package vc issues and verifies verifiable credentials secured with linked
// data proofs.
package vc

import (
	"fmt"
	"slices"
	"time"

	credentialstatus "github.com/pilacorp/go-ldproof/credential/common/credential-status"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
)

const (
	// TypeVerifiableCredential is the base type of every credential.
	TypeVerifiableCredential = "VerifiableCredential"
	// FieldCredentialStatus is the member holding credential status entries.
	FieldCredentialStatus = "credentialStatus"
)

// CredentialContents represents the structured contents of a Credential.
type CredentialContents struct {
	Context          []interface{} // JSON-LD contexts after the credentials context
	ID               string        // Credential identifier, generated when empty
	Types            []string      // Credential types besides VerifiableCredential
	Issuer           string        // Issuer identifier
	ValidFrom        time.Time     // Issuance date
	ValidUntil       time.Time     // Expiration date
	CredentialStatus []Status      // Credential status entries
	Subject          []Subject     // Credential subjects
	Schemas          []Schema      // Credential schemas
}

// Status is a credentialStatus entry.
type Status = credentialstatus.Status

// Subject represents the credentialSubject field.
type Subject struct {
	ID           string                 // Subject identifier
	CustomFields map[string]interface{} // Additional subject data
}

// Schema represents a credential schema with an ID and type.
type Schema struct {
	ID   string // Schema identifier
	Type string // Schema type
}

// New builds an unsigned credential from contents. The credentials context
// and the VerifiableCredential type are always present.
func New(contents CredentialContents) (jsonmap.JSONMap, error) {
	m, err := serializeCredentialContents(&contents)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize credential contents: %w", err)
	}
	if err := validateStructure(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseCredential parses a JSON credential and checks its structure.
func ParseCredential(raw []byte) (jsonmap.JSONMap, error) {
	m, err := jsonmap.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credential: %w", err)
	}
	if err := validateStructure(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseContents extracts the structured contents of a credential.
func ParseContents(m jsonmap.JSONMap) (*CredentialContents, error) {
	contents := &CredentialContents{}
	parsers := []func(jsonmap.JSONMap, *CredentialContents) error{
		parseContext,
		parseID,
		parseTypes,
		parseIssuer,
		parseDates,
		parseSubject,
		parseSchema,
		parseStatus,
	}
	for _, parse := range parsers {
		if err := parse(m, contents); err != nil {
			return nil, err
		}
	}
	return contents, nil
}

// validateStructure checks the members every credential must carry.
func validateStructure(m jsonmap.JSONMap) error {
	contexts := m.Contexts()
	if len(contexts) == 0 || contexts[0] != loader.CredentialsV1ContextURI {
		return fmt.Errorf("first @context must be %s", loader.CredentialsV1ContextURI)
	}
	if !slices.Contains(stringList(m["type"]), TypeVerifiableCredential) {
		return fmt.Errorf("type must include %s", TypeVerifiableCredential)
	}
	if issuer := issuerID(m["issuer"]); issuer == "" {
		return fmt.Errorf("issuer is required")
	}
	if m["credentialSubject"] == nil {
		return fmt.Errorf("credentialSubject is required")
	}
	return nil
}
