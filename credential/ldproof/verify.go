package ldproof

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/containerd/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
	"github.com/pilacorp/go-ldproof/credential/common/purpose"
	"github.com/pilacorp/go-ldproof/credential/common/suite"
)

// ProofResult is the outcome of verifying one proof.
type ProofResult struct {
	// SuiteID is the proof type.
	SuiteID string
	// Proof is the proof as found in the document.
	Proof interface{}
	// VerificationMethod is the resolved verification method, nil when it
	// could not be resolved.
	VerificationMethod map[string]interface{}
	Verified           bool
	// Purpose is the purpose check result, nil when the check did not run.
	Purpose *purpose.Result
	Err     error
}

// VerificationResult is the outcome of Verify.
type VerificationResult struct {
	// Verified is true when at least one proof was evaluated and every proof verified.
	Verified bool
	Results  []ProofResult
}

// Errors returns the errors of the proofs that did not verify.
func (r *VerificationResult) Errors() []error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errs
}

// Verify checks every proof of doc with the matching suite from suites and
// validates it against p. A nil p means the assertion purpose, or the
// authentication purpose when WithChallenge is given.
//
// Failed proofs are reported in the result. An error is returned only when
// the document cannot be processed at all: it cannot be canonicalized, the
// document loader is unavailable, or ctx is done. doc is never modified.
func Verify(ctx context.Context, doc jsonmap.JSONMap, suites []suite.Suite, p purpose.Purpose, l loader.DocumentLoader, opts ...VerifyOption) (_ *VerificationResult, retErr error) {
	o := verifyOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if p == nil {
		if o.challenge != "" {
			auth, err := purpose.NewAuthentication(o.challenge, o.domain)
			if err != nil {
				return nil, err
			}
			p = auth
		} else {
			p = purpose.NewAssertion()
		}
	}

	bySuite := make(map[string]suite.Suite, len(suites))
	for _, s := range suites {
		bySuite[s.SignatureType()] = s
	}

	ctx, span := otel.Tracer("").Start(ctx, "ldproof.Verify", trace.WithAttributes(
		attribute.String("purpose", p.Term()),
	))
	start := time.Now()
	defer func() {
		if retErr != nil {
			span.RecordError(retErr)
			span.SetStatus(codes.Error, retErr.Error())
		}
		o.metrics.ObserveVerifyDuration(start)
		span.End()
	}()

	entries := Proofs(doc)
	span.SetAttributes(attribute.Int("proofs", len(entries)))
	result := &VerificationResult{Results: make([]ProofResult, len(entries))}
	if len(entries) == 0 {
		return result, nil
	}

	// every proof is checked against the document without its proof set
	unsigned := doc.WithoutProof()

	g, gctx := errgroup.WithContext(ctx)
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}
	for i, e := range entries {
		g.Go(func() error {
			res := ProofResult{Proof: e.Raw}
			if e.Err != nil {
				res.Err = e.Err
				result.Results[i] = res
				return nil
			}
			res.SuiteID = e.Proof.Type

			s, ok := bySuite[e.Proof.Type]
			if !ok {
				res.Err = errdefs.NewProofError("verify", e.Proof.Type,
					fmt.Errorf("no suite for proof type %q: %w", e.Proof.Type, errdefs.ErrUnsupportedSuite))
				result.Results[i] = res
				o.metrics.ObserveProof(e.Proof.Type, false)
				return nil
			}

			outcome, err := s.VerifyProof(gctx, e.Proof, unsigned, l)
			if fatal(gctx, err) {
				o.metrics.ObserveVerifyError(e.Proof.Type)
				return err
			}
			if outcome != nil {
				res.VerificationMethod = outcome.VerificationMethod
			}
			res.Err = err

			// the purpose is checked whenever the verification method is known
			if res.VerificationMethod != nil {
				res.Purpose = p.Validate(gctx, e.Proof, doc, res.VerificationMethod, l)
				if fatal(gctx, res.Purpose.Err) {
					o.metrics.ObserveVerifyError(e.Proof.Type)
					return res.Purpose.Err
				}
				if res.Err == nil && !res.Purpose.Valid {
					res.Err = errdefs.NewProofError("verify", e.Proof.Type, res.Purpose.Err)
				}
			}

			res.Verified = err == nil && outcome != nil && outcome.Verified && res.Purpose != nil && res.Purpose.Valid
			if !res.Verified {
				log.G(gctx).WithFields(log.Fields{
					"suite":              res.SuiteID,
					"verificationMethod": e.Proof.VerificationMethod,
					"error":              res.Err,
				}).Warn("proof did not verify")
			}
			o.metrics.ObserveProof(e.Proof.Type, res.Verified)
			result.Results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Verified = true
	for _, res := range result.Results {
		if !res.Verified {
			result.Verified = false
			break
		}
	}
	span.SetAttributes(attribute.Bool("verified", result.Verified))
	return result, nil
}

// fatal reports whether err prevents any meaningful verification result.
func fatal(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	return errdefs.IsFatal(err) || ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
