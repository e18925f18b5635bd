package vc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/containerd/log"

	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/purpose"
	"github.com/pilacorp/go-ldproof/credential/ldproof"
)

// Result is the outcome of Verify.
type Result struct {
	// Verified is true when every proof verified and no credential check failed.
	Verified bool
	Document jsonmap.JSONMap
	Proofs   *ldproof.VerificationResult
	// Errors lists every proof and credential check failure.
	Errors []error
}

// Verify checks the proofs of a credential under the credential issuance
// purpose, then its validity period and, when enabled, its schemas and status.
//
// Like ldproof.Verify, an error is returned only when the credential cannot
// be processed at all.
func Verify(ctx context.Context, doc jsonmap.JSONMap, opts ...Option) (*Result, error) {
	if err := validateStructure(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	o := newOptions(opts)

	suites := o.suites
	if len(suites) == 0 {
		suites = ldproof.DefaultSuites()
	}
	var purposeOpts []purpose.Option
	if !o.date.IsZero() {
		purposeOpts = append(purposeOpts, purpose.WithDate(o.date))
	}
	var verifyOpts []ldproof.VerifyOption
	if o.metrics != nil {
		verifyOpts = append(verifyOpts, ldproof.WithVerifyMetrics(o.metrics))
	}

	proofs, err := ldproof.Verify(ctx, doc, suites, purpose.NewCredentialIssuance(purposeOpts...), o.loader, verifyOpts...)
	if err != nil {
		return nil, err
	}

	res := &Result{Document: doc, Proofs: proofs, Errors: proofs.Errors()}
	if len(proofs.Results) == 0 {
		res.Errors = append(res.Errors, errors.New("credential has no proof"))
	}

	now := o.date
	if now.IsZero() {
		now = time.Now()
	}
	if err := checkValidityPeriod(doc, now); err != nil {
		res.Errors = append(res.Errors, err)
	}
	if o.schemaValidation {
		if err := validateSchemas(doc); err != nil {
			res.Errors = append(res.Errors, err)
		}
	}
	if o.statusChecker != nil {
		res.Errors = append(res.Errors, checkStatus(ctx, doc, o.statusChecker)...)
	}

	res.Verified = proofs.Verified && len(res.Errors) == 0
	if !res.Verified {
		log.G(ctx).WithFields(log.Fields{
			"credential": doc.ID(),
			"errors":     len(res.Errors),
		}).Warn("credential verification failed")
	}
	return res, nil
}

func checkValidityPeriod(doc jsonmap.JSONMap, now time.Time) error {
	from, err := parseDate(doc, "validFrom", "issuanceDate")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	until, err := parseDate(doc, "validUntil", "expirationDate")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	if !from.IsZero() && now.Before(from) {
		return fmt.Errorf("%w: valid from %s", ErrNotYetValid, from.Format(time.RFC3339))
	}
	if !until.IsZero() && now.After(until) {
		return fmt.Errorf("%w: valid until %s", ErrExpired, until.Format(time.RFC3339))
	}
	return nil
}

func checkStatus(ctx context.Context, doc jsonmap.JSONMap, checker StatusChecker) []error {
	contents := &CredentialContents{}
	if err := parseStatus(doc, contents); err != nil {
		return []error{fmt.Errorf("%w: %v", ErrInvalidCredential, err)}
	}

	var errs []error
	for _, status := range contents.CredentialStatus {
		revoked, err := checker.Check(ctx, status)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("failed to check status %s: %w", status.ID, err))
		case revoked:
			errs = append(errs, fmt.Errorf("%w: %s", ErrRevoked, status.ID))
		}
	}
	return errs
}
