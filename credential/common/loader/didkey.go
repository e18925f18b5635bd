package loader

import (
	"fmt"
	"strings"

	"github.com/pilacorp/go-ldproof/credential/common/crypto"
)

// DIDKeyDocument expands a did:key DID (or DID URL) into its DID document.
// The document has a single verification method referenced from every
// verification relationship.
func DIDKeyDocument(didURL string) (map[string]interface{}, error) {
	did, _, _ := strings.Cut(didURL, "#")
	kt, pub, err := crypto.ParseDIDKey(did)
	if err != nil {
		return nil, err
	}

	var vmType string
	switch kt {
	case crypto.KeyTypeEd25519:
		vmType = crypto.Ed25519VerificationKey2018
	case crypto.KeyTypeSecp256k1:
		vmType = crypto.EcdsaSecp256k1VerificationKey2019
	default:
		return nil, fmt.Errorf("unsupported did:key type %s", kt)
	}

	vmID := crypto.DIDKeyVerificationMethod(did)
	ref := func() []interface{} { return []interface{}{vmID} }

	return map[string]interface{}{
		"@context": []interface{}{DIDV1ContextURI},
		"id":       did,
		"verificationMethod": []interface{}{
			map[string]interface{}{
				"id":              vmID,
				"type":            vmType,
				"controller":      did,
				"publicKeyBase58": crypto.EncodeBase58(pub),
			},
		},
		"authentication":       ref(),
		"assertionMethod":      ref(),
		"capabilityInvocation": ref(),
		"capabilityDelegation": ref(),
	}, nil
}
