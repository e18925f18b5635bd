package vc

import (
	"context"
	"time"

	"github.com/pilacorp/go-ldproof/credential/common/loader"
	"github.com/pilacorp/go-ldproof/credential/common/metrics"
	"github.com/pilacorp/go-ldproof/credential/common/suite"
)

// StatusChecker reports whether the credential referenced by a status entry is revoked.
type StatusChecker interface {
	Check(ctx context.Context, status Status) (bool, error)
}

type options struct {
	loader             loader.DocumentLoader
	suites             []suite.Suite
	schemaValidation   bool
	statusChecker      StatusChecker
	verificationMethod string
	created            time.Time
	date               time.Time
	metrics            *metrics.Metrics
}

// Option configures Issue and Verify.
type Option func(*options)

// WithLoader sets the document loader. The default serves the embedded
// contexts and did:key documents.
func WithLoader(l loader.DocumentLoader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithSuites restricts the suites accepted by Verify.
func WithSuites(suites ...suite.Suite) Option {
	return func(o *options) {
		o.suites = suites
	}
}

// WithSchemaValidation validates the credential against every
// credentialSchema it references.
func WithSchemaValidation() Option {
	return func(o *options) {
		o.schemaValidation = true
	}
}

// WithStatusCheck checks every revocation entry of credentialStatus with c.
func WithStatusCheck(c StatusChecker) Option {
	return func(o *options) {
		o.statusChecker = c
	}
}

// WithVerificationMethod sets the verification method of the issued proof.
func WithVerificationMethod(iri string) Option {
	return func(o *options) {
		o.verificationMethod = iri
	}
}

// WithCreated sets the creation time of the issued proof.
func WithCreated(created time.Time) Option {
	return func(o *options) {
		o.created = created
	}
}

// WithDate sets the time the validity period is checked against.
func WithDate(date time.Time) Option {
	return func(o *options) {
		o.date = date
	}
}

// WithMetrics records sign and verify outcomes in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.loader == nil {
		o.loader = loader.Default()
	}
	return o
}
