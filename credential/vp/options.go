package vp

import (
	"time"

	"github.com/pilacorp/go-ldproof/credential/common/loader"
	"github.com/pilacorp/go-ldproof/credential/common/metrics"
	"github.com/pilacorp/go-ldproof/credential/common/suite"
	"github.com/pilacorp/go-ldproof/credential/vc"
)

type options struct {
	loader             loader.DocumentLoader
	suites             []suite.Suite
	verificationMethod string
	created            time.Time
	date               time.Time
	metrics            *metrics.Metrics
	credentialOptions  []vc.Option
}

// Option configures Sign and Verify.
type Option func(*options)

// WithLoader sets the document loader used for the presentation and its credentials.
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

// WithVerificationMethod sets the verification method of the presentation proof.
func WithVerificationMethod(iri string) Option {
	return func(o *options) {
		o.verificationMethod = iri
	}
}

// WithCreated sets the creation time of the presentation proof.
func WithCreated(created time.Time) Option {
	return func(o *options) {
		o.created = created
	}
}

// WithDate sets the time credentials are checked against.
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

// WithCredentialOptions adds options for verifying the embedded credentials,
// such as vc.WithSchemaValidation or vc.WithStatusCheck.
func WithCredentialOptions(opts ...vc.Option) Option {
	return func(o *options) {
		o.credentialOptions = append(o.credentialOptions, opts...)
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
