package vc

import (
	"context"
	"fmt"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/containerd/log"

	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/keypair"
	"github.com/pilacorp/go-ldproof/credential/common/purpose"
	"github.com/pilacorp/go-ldproof/credential/common/suite"
	"github.com/pilacorp/go-ldproof/credential/ldproof"
)

var (
	// ErrInvalidCredential is returned for documents that are not credentials.
	ErrInvalidCredential = fmt.Errorf("invalid credential: %w", cerrdefs.ErrInvalidArgument)
	// ErrExpired is reported when the validity period has ended.
	ErrExpired = fmt.Errorf("credential expired: %w", cerrdefs.ErrFailedPrecondition)
	// ErrNotYetValid is reported when the validity period has not started.
	ErrNotYetValid = fmt.Errorf("credential not yet valid: %w", cerrdefs.ErrFailedPrecondition)
	// ErrSchemaValidation is reported when a credentialSchema rejects the credential.
	ErrSchemaValidation = fmt.Errorf("credential schema validation failed: %w", cerrdefs.ErrInvalidArgument)
	// ErrRevoked is reported when a status list marks the credential revoked.
	ErrRevoked = fmt.Errorf("credential revoked: %w", cerrdefs.ErrPermissionDenied)
)

// Issue adds a credential issuance proof to doc. The proof's verification
// method must be controlled by the credential issuer for the credential to
// verify. doc is not modified.
func Issue(ctx context.Context, doc jsonmap.JSONMap, s suite.Suite, kp keypair.KeyPair, opts ...Option) (jsonmap.JSONMap, error) {
	if err := validateStructure(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	o := newOptions(opts)

	var signOpts []ldproof.SignOption
	if o.verificationMethod != "" {
		signOpts = append(signOpts, ldproof.WithVerificationMethod(o.verificationMethod))
	}
	if !o.created.IsZero() {
		signOpts = append(signOpts, ldproof.WithCreated(o.created))
	}
	if o.metrics != nil {
		signOpts = append(signOpts, ldproof.WithSignMetrics(o.metrics))
	}

	signed, err := ldproof.Sign(ctx, doc, s, purpose.NewCredentialIssuance(), kp, o.loader, signOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to issue credential: %w", err)
	}
	log.G(ctx).WithFields(log.Fields{
		"credential": doc.ID(),
		"issuer":     issuerID(doc["issuer"]),
	}).Debug("issued credential")
	return signed, nil
}
