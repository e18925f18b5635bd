package ldproof

import (
	"time"

	"github.com/pilacorp/go-ldproof/credential/common/metrics"
)

type signOptions struct {
	verificationMethod string
	created            time.Time
	metrics            *metrics.Metrics
}

// SignOption configures Sign.
type SignOption func(*signOptions)

// WithVerificationMethod sets the verification method IRI of the proof. The
// default is the did:key verification method of the key pair.
func WithVerificationMethod(iri string) SignOption {
	return func(o *signOptions) {
		o.verificationMethod = iri
	}
}

// WithCreated sets the creation time of the proof. The default is now.
func WithCreated(created time.Time) SignOption {
	return func(o *signOptions) {
		o.created = created
	}
}

// WithSignMetrics records the outcome of Sign in m.
func WithSignMetrics(m *metrics.Metrics) SignOption {
	return func(o *signOptions) {
		o.metrics = m
	}
}

type verifyOptions struct {
	challenge   string
	domain      string
	concurrency int
	metrics     *metrics.Metrics
}

// VerifyOption configures Verify.
type VerifyOption func(*verifyOptions)

// WithChallenge verifies proofs under the authentication purpose with the
// given challenge and optional domain. It only applies when no purpose is
// passed to Verify.
func WithChallenge(challenge, domain string) VerifyOption {
	return func(o *verifyOptions) {
		o.challenge = challenge
		o.domain = domain
	}
}

// WithConcurrency limits the number of proofs verified at the same time.
// Zero or less means no limit.
func WithConcurrency(n int) VerifyOption {
	return func(o *verifyOptions) {
		o.concurrency = n
	}
}

// WithVerifyMetrics records per-proof outcomes of Verify in m.
func WithVerifyMetrics(m *metrics.Metrics) VerifyOption {
	return func(o *verifyOptions) {
		o.metrics = m
	}
}
