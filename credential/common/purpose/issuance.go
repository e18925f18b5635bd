package purpose

import (
	"context"
	"fmt"

	"github.com/pilacorp/go-ldproof/credential/common/dto"
	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
)

// CredentialIssuancePurpose is the assertion purpose of a credential proof:
// the credential issuer must be the controller of the verification method.
type CredentialIssuancePurpose struct {
	*ControllerProofPurpose
}

// NewCredentialIssuance returns the credential issuance purpose.
func NewCredentialIssuance(opts ...Option) *CredentialIssuancePurpose {
	return &CredentialIssuancePurpose{ControllerProofPurpose: NewAssertion(opts...)}
}

func (p *CredentialIssuancePurpose) Validate(ctx context.Context, proof *dto.Proof, doc jsonmap.JSONMap, vm map[string]interface{}, l loader.DocumentLoader) *Result {
	res := p.ControllerProofPurpose.Validate(ctx, proof, doc, vm, l)
	if !res.Valid {
		return res
	}

	issuer := referenceID(doc["issuer"])
	if issuer == "" {
		return invalid(fmt.Errorf("credential issuer is required: %w", errdefs.ErrPurposeMismatch))
	}
	if controller := jsonmap.JSONMap(res.Controller).ID(); issuer != controller {
		return invalid(fmt.Errorf("credential issuer %s is not the verification method controller %s: %w", issuer, controller, errdefs.ErrPurposeMismatch))
	}
	return res
}
