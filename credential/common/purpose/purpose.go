// Package purpose implements proof purposes: the statement a proof makes
// about why it was created, and the checks a verifier applies to it.
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

// Proof purpose terms.
const (
	AssertionMethod      = "assertionMethod"
	Authentication       = "authentication"
	CapabilityInvocation = "capabilityInvocation"
	CapabilityDelegation = "capabilityDelegation"
)

// Result is the outcome of validating a proof's purpose.
type Result struct {
	Valid bool
	// Controller is the controller document of the verification method, when
	// the purpose looked it up.
	Controller map[string]interface{}
	Err        error
}

func invalid(err error) *Result {
	return &Result{Err: err}
}

// Purpose builds the purpose fields of new proofs and validates them on
// existing ones.
type Purpose interface {
	Term() string
	// Match reports whether proof claims this purpose.
	Match(proof *dto.Proof) bool
	// BuildProofOptions returns the proof options for a proof created at created.
	BuildProofOptions(created time.Time) *dto.Proof
	// Validate checks proof against the purpose. vm is the resolved
	// verification method of the proof.
	Validate(ctx context.Context, proof *dto.Proof, doc jsonmap.JSONMap, vm map[string]interface{}, l loader.DocumentLoader) *Result
}

// Option configures a ProofPurpose.
type Option func(*ProofPurpose)

// WithDate sets the reference time for the timestamp window. The default is
// the time of validation.
func WithDate(date time.Time) Option {
	return func(p *ProofPurpose) {
		p.date = date
	}
}

// WithMaxTimestampDelta rejects proofs created more than delta away from the
// reference time. Zero disables the check.
func WithMaxTimestampDelta(delta time.Duration) Option {
	return func(p *ProofPurpose) {
		p.maxTimestampDelta = delta
	}
}

// ProofPurpose checks the purpose term and, optionally, the creation time.
type ProofPurpose struct {
	term              string
	date              time.Time
	maxTimestampDelta time.Duration
}

// NewProofPurpose returns a purpose for term.
func NewProofPurpose(term string, opts ...Option) *ProofPurpose {
	p := &ProofPurpose{term: term}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *ProofPurpose) Term() string { return p.term }

func (p *ProofPurpose) Match(proof *dto.Proof) bool {
	return proof != nil && proof.ProofPurpose == p.term
}

func (p *ProofPurpose) BuildProofOptions(created time.Time) *dto.Proof {
	return &dto.Proof{
		ProofPurpose: p.term,
		Created:      created.UTC().Format(time.RFC3339),
	}
}

func (p *ProofPurpose) Validate(_ context.Context, proof *dto.Proof, _ jsonmap.JSONMap, _ map[string]interface{}, _ loader.DocumentLoader) *Result {
	if !p.Match(proof) {
		var got string
		if proof != nil {
			got = proof.ProofPurpose
		}
		return invalid(fmt.Errorf("proof purpose %q, expected %q: %w", got, p.term, errdefs.ErrPurposeMismatch))
	}

	if p.maxTimestampDelta > 0 {
		created, err := time.Parse(time.RFC3339, proof.Created)
		if err != nil {
			return invalid(fmt.Errorf("invalid proof created %q: %w", proof.Created, errdefs.ErrPurposeMismatch))
		}
		date := p.date
		if date.IsZero() {
			date = time.Now()
		}
		if delta := date.Sub(created).Abs(); delta > p.maxTimestampDelta {
			return invalid(fmt.Errorf("proof created %s is outside the %s window: %w", proof.Created, p.maxTimestampDelta, errdefs.ErrPurposeMismatch))
		}
	}
	return &Result{Valid: true}
}

// ByTerm returns a controller purpose for term. Authentication needs a
// challenge and must be built with NewAuthentication.
func ByTerm(term string, opts ...Option) (Purpose, error) {
	switch term {
	case "":
		return nil, fmt.Errorf("empty proof purpose: %w", errdefs.ErrPurposeMismatch)
	case AssertionMethod:
		return NewAssertion(opts...), nil
	case Authentication:
		return nil, fmt.Errorf("%s purpose requires a challenge: %w", term, errdefs.ErrPurposeMismatch)
	default:
		return NewControllerProofPurpose(term, opts...), nil
	}
}
