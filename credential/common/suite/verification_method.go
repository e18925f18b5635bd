package suite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
)

// verificationMethodSections are the members of a controller document that
// may embed verification methods.
var verificationMethodSections = []string{
	"verificationMethod",
	"publicKey",
	"assertionMethod",
	"authentication",
	"capabilityInvocation",
	"capabilityDelegation",
	"keyAgreement",
}

// ResolveVerificationMethod dereferences a verification method IRI through l
// and returns a copy of the node it identifies, with an absolute id.
//
// Transport failures of the loader are returned unchanged so callers can treat
// them as fatal. An unknown, missing or revoked method is reported as
// errdefs.ErrVerificationMethodResolution.
func ResolveVerificationMethod(ctx context.Context, iri string, l loader.DocumentLoader) (map[string]interface{}, error) {
	if l == nil {
		l = loader.Default()
	}

	rd, err := l.LoadDocument(ctx, iri)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, errdefs.ErrLoader) {
			return nil, err
		}
		return nil, errdefs.Wrap(errdefs.ErrVerificationMethodResolution, "failed to load "+iri, err)
	}

	doc, ok := rd.Document.(map[string]interface{})
	if !ok {
		return nil, errdefs.Wrap(errdefs.ErrVerificationMethodResolution,
			fmt.Sprintf("document for %s is %T, not an object", iri, rd.Document), nil)
	}

	node := FindNode(doc, iri)
	if node == nil {
		return nil, errdefs.Wrap(errdefs.ErrVerificationMethodResolution, iri+" is not defined by its controller document", nil)
	}
	if revoked, ok := node["revoked"]; ok && revoked != nil {
		return nil, errdefs.Wrap(errdefs.ErrVerificationMethodResolution, fmt.Sprintf("%s was revoked at %v", iri, revoked), nil)
	}

	vm := jsonmap.JSONMap(node).DeepCopy()
	vm["id"] = iri
	return vm, nil
}

// FindNode returns the node of doc whose id is iri. Relative ids such as
// "#key-1" are resolved against the id of doc.
func FindNode(doc map[string]interface{}, iri string) map[string]interface{} {
	base := jsonmap.JSONMap(doc).ID()
	if base == iri {
		return doc
	}

	for _, section := range verificationMethodSections {
		var entries []interface{}
		switch v := doc[section].(type) {
		case []interface{}:
			entries = v
		case map[string]interface{}:
			entries = []interface{}{v}
		default:
			continue
		}
		for _, entry := range entries {
			node, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			if AbsoluteID(base, jsonmap.JSONMap(node).ID()) == iri {
				return node
			}
		}
	}
	return nil
}

// AbsoluteID resolves a fragment-only id against the base document id.
func AbsoluteID(base, id string) string {
	if strings.HasPrefix(id, "#") {
		b, _, _ := strings.Cut(base, "#")
		return b + id
	}
	return id
}
