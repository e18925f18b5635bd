package vc

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
)

// validateSchemas validates the credential against each credentialSchema.
// Schemas are loaded by reference from their id.
func validateSchemas(doc jsonmap.JSONMap) error {
	contents := &CredentialContents{}
	if err := parseSchema(doc, contents); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if len(contents.Schemas) == 0 {
		return fmt.Errorf("%w: credentialSchema is required", ErrSchemaValidation)
	}

	credentialLoader := gojsonschema.NewGoLoader(map[string]interface{}(doc))
	for _, schema := range contents.Schemas {
		if schema.ID == "" {
			return fmt.Errorf("%w: credentialSchema.id must be a non-empty string", ErrSchemaValidation)
		}

		result, err := gojsonschema.Validate(gojsonschema.NewReferenceLoader(schema.ID), credentialLoader)
		if err != nil {
			return fmt.Errorf("%w: failed to validate against %s: %v", ErrSchemaValidation, schema.ID, err)
		}
		if !result.Valid() {
			msgs := make([]string, 0, len(result.Errors()))
			for _, e := range result.Errors() {
				msgs = append(msgs, e.String())
			}
			return fmt.Errorf("%w: %s", ErrSchemaValidation, strings.Join(msgs, "; "))
		}
	}
	return nil
}
