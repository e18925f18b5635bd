package purpose

import (
	"context"
	"fmt"
	"time"

	"github.com/pilacorp/go-ldproof/credential/common/dto"
	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
)

// AuthenticationProofPurpose binds a proof to a verifier supplied challenge
// and, optionally, a domain.
type AuthenticationProofPurpose struct {
	*ControllerProofPurpose
	challenge string
	domain    string
}

// NewAuthentication returns the authentication purpose. challenge is required.
func NewAuthentication(challenge, domain string, opts ...Option) (*AuthenticationProofPurpose, error) {
	if challenge == "" {
		return nil, fmt.Errorf("authentication purpose requires a challenge: %w", errdefs.ErrPurposeMismatch)
	}
	return &AuthenticationProofPurpose{
		ControllerProofPurpose: NewControllerProofPurpose(Authentication, opts...),
		challenge:              challenge,
		domain:                 domain,
	}, nil
}

func (p *AuthenticationProofPurpose) Challenge() string { return p.challenge }

func (p *AuthenticationProofPurpose) Domain() string { return p.domain }

func (p *AuthenticationProofPurpose) BuildProofOptions(created time.Time) *dto.Proof {
	options := p.ControllerProofPurpose.BuildProofOptions(created)
	options.Challenge = p.challenge
	options.Domain = p.domain
	return options
}

func (p *AuthenticationProofPurpose) Validate(ctx context.Context, proof *dto.Proof, doc jsonmap.JSONMap, vm map[string]interface{}, l loader.DocumentLoader) *Result {
	if proof != nil && proof.Challenge != p.challenge {
		return invalid(fmt.Errorf("proof challenge %q does not match: %w", proof.Challenge, errdefs.ErrPurposeMismatch))
	}
	if proof != nil && p.domain != "" && proof.Domain != p.domain {
		return invalid(fmt.Errorf("proof domain %q, expected %q: %w", proof.Domain, p.domain, errdefs.ErrPurposeMismatch))
	}
	return p.ControllerProofPurpose.Validate(ctx, proof, doc, vm, l)
}
