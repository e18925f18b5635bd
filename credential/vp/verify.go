package vp

import (
	"context"
	"errors"
	"fmt"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/containerd/log"

	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/purpose"
	"github.com/pilacorp/go-ldproof/credential/ldproof"
	"github.com/pilacorp/go-ldproof/credential/vc"
)

// ErrHolderMismatch is reported when the presentation proof was not made by the holder.
var ErrHolderMismatch = fmt.Errorf("presentation holder is not the proof controller: %w", cerrdefs.ErrPermissionDenied)

// Result is the outcome of Verify.
type Result struct {
	// Verified is true when the presentation proofs and every embedded
	// credential verified.
	Verified     bool
	Presentation *ldproof.VerificationResult
	// Credentials holds one result per embedded credential, in order.
	Credentials []*vc.Result
	Errors      []error
}

// Verify checks the authentication proofs of a presentation against
// challenge and domain, then verifies every embedded credential.
//
// An error is returned only when the presentation or one of its credentials
// cannot be processed at all.
func Verify(ctx context.Context, doc jsonmap.JSONMap, challenge, domain string, opts ...Option) (*Result, error) {
	if err := validateStructure(doc); err != nil {
		return nil, fmt.Errorf("invalid presentation: %w", err)
	}
	o := newOptions(opts)

	var purposeOpts []purpose.Option
	if !o.date.IsZero() {
		purposeOpts = append(purposeOpts, purpose.WithDate(o.date))
	}
	auth, err := purpose.NewAuthentication(challenge, domain, purposeOpts...)
	if err != nil {
		return nil, err
	}

	suites := o.suites
	if len(suites) == 0 {
		suites = ldproof.DefaultSuites()
	}
	var verifyOpts []ldproof.VerifyOption
	if o.metrics != nil {
		verifyOpts = append(verifyOpts, ldproof.WithVerifyMetrics(o.metrics))
	}

	proofs, err := ldproof.Verify(ctx, doc, suites, auth, o.loader, verifyOpts...)
	if err != nil {
		return nil, err
	}
	res := &Result{Presentation: proofs, Errors: proofs.Errors()}
	if len(proofs.Results) == 0 {
		res.Errors = append(res.Errors, errors.New("presentation has no proof"))
	}
	res.Errors = append(res.Errors, checkHolder(doc, proofs)...)

	credentials, err := embeddedCredentials(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid presentation: %w", err)
	}
	credOpts := []vc.Option{vc.WithLoader(o.loader), vc.WithSuites(suites...)}
	if !o.date.IsZero() {
		credOpts = append(credOpts, vc.WithDate(o.date))
	}
	if o.metrics != nil {
		credOpts = append(credOpts, vc.WithMetrics(o.metrics))
	}
	credOpts = append(credOpts, o.credentialOptions...)

	for i, c := range credentials {
		cres, err := vc.Verify(ctx, c, credOpts...)
		if err != nil {
			if !errors.Is(err, vc.ErrInvalidCredential) {
				return nil, fmt.Errorf("failed to verify credential at index %d: %w", i, err)
			}
			res.Errors = append(res.Errors, fmt.Errorf("credential at index %d: %w", i, err))
			res.Credentials = append(res.Credentials, &vc.Result{Document: c, Errors: []error{err}})
			continue
		}
		res.Credentials = append(res.Credentials, cres)
		for _, e := range cres.Errors {
			res.Errors = append(res.Errors, fmt.Errorf("credential at index %d: %w", i, e))
		}
	}

	res.Verified = proofs.Verified && len(res.Errors) == 0
	if !res.Verified {
		log.G(ctx).WithFields(log.Fields{
			"presentation": doc.ID(),
			"errors":       len(res.Errors),
		}).Warn("presentation verification failed")
	}
	return res, nil
}

// checkHolder requires every verified proof to be controlled by the holder,
// when the presentation names one.
func checkHolder(doc jsonmap.JSONMap, proofs *ldproof.VerificationResult) []error {
	holder := holderID(doc["holder"])
	if holder == "" {
		return nil
	}

	var errs []error
	for _, r := range proofs.Results {
		if !r.Verified || r.Purpose == nil {
			continue
		}
		if controller := jsonmap.JSONMap(r.Purpose.Controller).ID(); controller != holder {
			errs = append(errs, fmt.Errorf("%w: holder %s, controller %s", ErrHolderMismatch, holder, controller))
		}
	}
	return errs
}
