package purpose

import (
	"context"
	"errors"
	"fmt"

	"github.com/pilacorp/go-ldproof/credential/common/dto"
	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
	"github.com/pilacorp/go-ldproof/credential/common/suite"
)

// ControllerProofPurpose additionally requires the controller of the
// verification method to list it under the purpose term.
type ControllerProofPurpose struct {
	*ProofPurpose
}

// NewControllerProofPurpose returns a controller purpose for term.
func NewControllerProofPurpose(term string, opts ...Option) *ControllerProofPurpose {
	return &ControllerProofPurpose{ProofPurpose: NewProofPurpose(term, opts...)}
}

func (p *ControllerProofPurpose) Validate(ctx context.Context, proof *dto.Proof, doc jsonmap.JSONMap, vm map[string]interface{}, l loader.DocumentLoader) *Result {
	if res := p.ProofPurpose.Validate(ctx, proof, doc, vm, l); !res.Valid {
		return res
	}

	vmID := jsonmap.JSONMap(vm).ID()
	controllerID := referenceID(vm["controller"])
	if controllerID == "" {
		return invalid(fmt.Errorf("verification method %s has no controller: %w", vmID, errdefs.ErrPurposeMismatch))
	}

	if l == nil {
		l = loader.Default()
	}
	rd, err := l.LoadDocument(ctx, controllerID)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, errdefs.ErrLoader) {
			return invalid(err)
		}
		return invalid(errdefs.Wrap(errdefs.ErrVerificationMethodResolution, "failed to load controller "+controllerID, err))
	}
	controller, ok := rd.Document.(map[string]interface{})
	if !ok {
		return invalid(errdefs.Wrap(errdefs.ErrVerificationMethodResolution, "controller document of "+controllerID+" is not an object", nil))
	}

	if !authorizes(controller, p.term, vmID) {
		return invalid(fmt.Errorf("verification method %s is not authorized by %s for %s: %w", vmID, controllerID, p.term, errdefs.ErrPurposeMismatch))
	}
	return &Result{Valid: true, Controller: jsonmap.JSONMap(controller).DeepCopy()}
}

// authorizes reports whether the term relationship of controller references
// or embeds vmID.
func authorizes(controller map[string]interface{}, term, vmID string) bool {
	var entries []interface{}
	switch v := controller[term].(type) {
	case []interface{}:
		entries = v
	case nil:
		return false
	default:
		entries = []interface{}{v}
	}

	base := jsonmap.JSONMap(controller).ID()
	for _, entry := range entries {
		if suite.AbsoluteID(base, referenceID(entry)) == vmID {
			return true
		}
	}
	return false
}

// referenceID returns the id of a reference that is either an IRI or a node.
func referenceID(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]interface{}:
		return jsonmap.JSONMap(t).ID()
	}
	return ""
}
