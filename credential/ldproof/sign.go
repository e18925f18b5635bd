// Package ldproof signs JSON-LD documents with linked data proofs and
// verifies the proof sets they carry.
package ldproof

import (
	"context"
	"fmt"
	"time"

	"github.com/containerd/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/keypair"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
	"github.com/pilacorp/go-ldproof/credential/common/purpose"
	"github.com/pilacorp/go-ldproof/credential/common/suite"
)

// Sign adds a proof of suite s to doc and returns the signed document.
//
// An existing proof of the same type is replaced, proofs of other types are
// kept. doc is never modified; on error it is the caller's unchanged
// document. All errors match errdefs.ErrSigning.
func Sign(ctx context.Context, doc jsonmap.JSONMap, s suite.Suite, p purpose.Purpose, kp keypair.KeyPair, l loader.DocumentLoader, opts ...SignOption) (_ jsonmap.JSONMap, retErr error) {
	if s == nil || p == nil || kp == nil {
		return nil, errdefs.Wrap(errdefs.ErrSigning, "failed to sign document", fmt.Errorf("suite, purpose and key pair are required"))
	}

	o := signOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, span := otel.Tracer("").Start(ctx, "ldproof.Sign", trace.WithAttributes(
		attribute.String("suite", s.SignatureType()),
		attribute.String("purpose", p.Term()),
	))
	defer func() {
		if retErr != nil {
			span.RecordError(retErr)
			span.SetStatus(codes.Error, retErr.Error())
		}
		o.metrics.ObserveSign(s.SignatureType(), retErr)
		span.End()
	}()

	signed, err := sign(ctx, doc, s, p, kp, l, o)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.ErrSigning, "failed to sign document", err)
	}
	return signed, nil
}

func sign(ctx context.Context, doc jsonmap.JSONMap, s suite.Suite, p purpose.Purpose, kp keypair.KeyPair, l loader.DocumentLoader, o signOptions) (jsonmap.JSONMap, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	if want := s.Descriptor().KeyType; kp.KeyType() != want {
		return nil, errdefs.NewProofError("create", s.SignatureType(),
			fmt.Errorf("suite needs a %s key, got %s: %w", want, kp.KeyType(), errdefs.ErrUnsupportedKeyType))
	}

	vm := o.verificationMethod
	if vm == "" {
		vm = kp.VerificationMethod()
	}
	if vm == "" {
		return nil, fmt.Errorf("no verification method for key pair: %w", errdefs.ErrVerificationMethodResolution)
	}

	kept := otherProofs(doc, s.SignatureType())

	work := doc
	if prep, ok := s.(suite.DocumentPreparer); ok {
		work = prep.PrepareDocument(work)
	}

	created := o.created
	if created.IsZero() {
		created = time.Now()
	}
	options := p.BuildProofOptions(created)
	options.Type = s.SignatureType()
	options.VerificationMethod = vm

	proof, err := s.CreateProof(ctx, work.WithoutProof(), options, kp, l)
	if err != nil {
		return nil, err
	}

	log.G(ctx).WithFields(log.Fields{
		"suite":              proof.Type,
		"verificationMethod": proof.VerificationMethod,
		"proofPurpose":       proof.ProofPurpose,
	}).Debug("created proof")

	return work.WithProofs(append(kept, proof.ToMap())), nil
}
