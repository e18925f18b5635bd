// Package errdefs defines the error kinds produced while creating and checking
// linked data proofs.
//
// Every kind wraps one of the github.com/containerd/errdefs classes, so callers
// may either test for the exact kind with errors.Is or for the broad class with
// helpers such as cerrdefs.IsNotFound.
package errdefs

import (
	"errors"
	"fmt"

	cerrdefs "github.com/containerd/errdefs"
)

var (
	// ErrCanonicalization is returned when a document cannot be interpreted as a
	// well formed JSON-LD graph.
	ErrCanonicalization = fmt.Errorf("canonicalization failed: %w", cerrdefs.ErrInvalidArgument)

	// ErrUndefinedTerm is returned when a document carries properties that its
	// context does not define and that would be dropped from the canonical form.
	ErrUndefinedTerm = fmt.Errorf("document has properties not defined by its context: %w", cerrdefs.ErrInvalidArgument)

	// ErrUnsupportedKeyType is returned when a key pair or verification method
	// does not fit the key type constraint of a suite.
	ErrUnsupportedKeyType = fmt.Errorf("unsupported key type: %w", cerrdefs.ErrInvalidArgument)

	// ErrSignatureMismatch is returned when a signature does not match the
	// recomputed verify data.
	ErrSignatureMismatch = fmt.Errorf("signature mismatch: %w", cerrdefs.ErrPermissionDenied)

	// ErrPurposeMismatch is returned when a proof's purpose, challenge or domain
	// is not the one expected by the caller.
	ErrPurposeMismatch = fmt.Errorf("proof purpose mismatch: %w", cerrdefs.ErrFailedPrecondition)

	// ErrUnsupportedSuite is returned when no requested suite matches a proof type.
	ErrUnsupportedSuite = fmt.Errorf("unsupported proof suite: %w", cerrdefs.ErrNotImplemented)

	// ErrLoader is returned when the document loader cannot fetch an IRI.
	ErrLoader = fmt.Errorf("document loader failure: %w", cerrdefs.ErrUnavailable)

	// ErrVerificationMethodResolution is returned when a verification method IRI
	// does not dereference to usable key material.
	ErrVerificationMethodResolution = fmt.Errorf("verification method resolution failed: %w", cerrdefs.ErrNotFound)

	// ErrKeyNotFound is returned by a wallet that does not hold the requested key.
	ErrKeyNotFound = fmt.Errorf("key not found: %w", cerrdefs.ErrNotFound)

	// ErrUnsupportedOperation is returned when a verify-only key pair is asked to sign.
	ErrUnsupportedOperation = fmt.Errorf("unsupported operation: %w", cerrdefs.ErrNotImplemented)

	// ErrSigning is the aggregate failure of a sign call.
	ErrSigning = fmt.Errorf("signing failed: %w", cerrdefs.ErrInternal)

	// ErrMalformedProof is returned when a proof object lacks required fields.
	ErrMalformedProof = fmt.Errorf("malformed proof: %w", cerrdefs.ErrInvalidArgument)
)

// ProofError describes a failed operation on a single proof.
type ProofError struct {
	// Op is the operation which failed, such as "create" or "verify".
	Op string
	// ProofType is the type of the proof or suite involved, if known.
	ProofType string
	// Err is the underlying error.
	Err error
}

// Error satisfies the built-in error interface type.
func (e *ProofError) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := e.Op
	if e.ProofType != "" {
		s = s + " " + e.ProofType
	}
	return s + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ProofError) Unwrap() error {
	return e.Err
}

// NewProofError wraps err with the operation and proof type. A nil err yields nil.
func NewProofError(op, proofType string, err error) error {
	if err == nil {
		return nil
	}
	return &ProofError{Op: op, ProofType: proofType, Err: err}
}

// Wrap annotates kind with a message and an optional cause. Both kind and cause
// stay reachable through errors.Is.
func Wrap(kind error, msg string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", msg, kind)
	}
	return fmt.Errorf("%s: %w: %w", msg, kind, cause)
}

// IsFatal reports whether err is an infrastructure failure after which no
// meaningful verification result can be produced.
func IsFatal(err error) bool {
	return errors.Is(err, ErrCanonicalization) || errors.Is(err, ErrLoader)
}
