package vp

import (
	"context"
	"fmt"

	"github.com/containerd/log"

	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/keypair"
	"github.com/pilacorp/go-ldproof/credential/common/purpose"
	"github.com/pilacorp/go-ldproof/credential/common/suite"
	"github.com/pilacorp/go-ldproof/credential/ldproof"
)

// Sign adds an authentication proof bound to challenge and the optional
// domain. doc is not modified.
func Sign(ctx context.Context, doc jsonmap.JSONMap, s suite.Suite, kp keypair.KeyPair, challenge, domain string, opts ...Option) (jsonmap.JSONMap, error) {
	if err := validateStructure(doc); err != nil {
		return nil, fmt.Errorf("invalid presentation: %w", err)
	}
	auth, err := purpose.NewAuthentication(challenge, domain)
	if err != nil {
		return nil, err
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

	signed, err := ldproof.Sign(ctx, doc, s, auth, kp, o.loader, signOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to sign presentation: %w", err)
	}
	log.G(ctx).WithField("presentation", doc.ID()).Debug("signed presentation")
	return signed, nil
}
