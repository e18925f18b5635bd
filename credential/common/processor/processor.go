// Package processor canonicalizes JSON-LD documents with RDF dataset
// normalization and computes the digests that proof suites sign.
package processor

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/piprate/json-gold/ld"

	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
)

const (
	format           = "application/n-quads"
	defaultAlgorithm = ld.AlgorithmURDNA2015
)

// ErrInvalidRDFFound is returned when normalized view contains invalid RDF.
var ErrInvalidRDFFound = errors.New("invalid RDF found in normalized view")

// Processor is the JSON-LD canonicalizer.
type Processor struct {
	opts ProcessorOptions
}

// New returns a Processor. Without WithDocumentLoader it resolves contexts
// through loader.Default.
func New(opts ...ProcessorOpt) *Processor {
	p := &Processor{opts: ProcessorOptions{Algorithm: defaultAlgorithm}}
	for _, opt := range opts {
		opt(&p.opts)
	}
	if p.opts.DocumentLoader == nil {
		p.opts.DocumentLoader = loader.Default()
	}
	if p.opts.Algorithm == "" {
		p.opts.Algorithm = defaultAlgorithm
	}
	return p
}

func (p *Processor) ldOptions(l ld.DocumentLoader) *ld.JsonLdOptions {
	ldOptions := ld.NewJsonLdOptions("")
	ldOptions.ProcessingMode = ld.JsonLd_1_1
	ldOptions.Algorithm = p.opts.Algorithm
	ldOptions.Format = format
	ldOptions.ProduceGeneralizedRdf = true
	ldOptions.DocumentLoader = l
	return ldOptions
}

// CanonicalizeDocument returns the canonical N-Quads of doc after checking
// that every property of doc survives JSON-LD expansion.
func (p *Processor) CanonicalizeDocument(ctx context.Context, doc map[string]interface{}) ([]byte, error) {
	if !p.opts.AllowUndefinedTerms {
		if err := p.CheckUndefinedTerms(ctx, doc); err != nil {
			return nil, err
		}
	}
	return p.Canonicalize(ctx, doc)
}

// Canonicalize returns the canonical N-Quads of doc. The input is not modified.
func (p *Processor) Canonicalize(ctx context.Context, doc map[string]interface{}) ([]byte, error) {
	if doc == nil {
		return nil, errdefs.Wrap(errdefs.ErrCanonicalization, "failed to canonicalize document", errors.New("document is nil"))
	}

	adapter := loader.ForProcessor(ctx, p.opts.DocumentLoader)
	input := map[string]interface{}(jsonmap.JSONMap(doc).DeepCopy())

	view, err := ld.NewJsonLdProcessor().Normalize(input, p.ldOptions(adapter))
	if err != nil {
		return nil, p.failure(adapter, "failed to normalize JSON-LD document", err)
	}

	result, ok := view.(string)
	if !ok {
		return nil, errdefs.Wrap(errdefs.ErrCanonicalization, "failed to normalize JSON-LD document", fmt.Errorf("invalid view %T", view))
	}

	if p.opts.ValidateRDF {
		if err := validateRDF(result); err != nil {
			return nil, errdefs.Wrap(errdefs.ErrCanonicalization, "failed to validate normalized view", err)
		}
	}

	return []byte(result), nil
}

// CreateVerifyData returns sha256(canonical proof options) || sha256(canonical document).
func (p *Processor) CreateVerifyData(ctx context.Context, doc, proofOptions map[string]interface{}) ([]byte, error) {
	canonOptions, err := p.Canonicalize(ctx, proofOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize proof options: %w", err)
	}

	canonDoc, err := p.CanonicalizeDocument(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize document: %w", err)
	}

	verifyData := make([]byte, 0, 2*sha256.Size)
	verifyData = append(verifyData, ComputeDigest(canonOptions)...)
	verifyData = append(verifyData, ComputeDigest(canonDoc)...)
	return verifyData, nil
}

// ComputeDigest computes the SHA-256 digest of the given data.
func ComputeDigest(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}

// failure classifies a json-gold error. Failures of the document loader are
// reported as loader errors unless the IRI was simply unknown, in which case
// the document cannot be interpreted and canonicalization fails.
func (p *Processor) failure(adapter *loader.LDAdapter, msg string, err error) error {
	if lerr := adapter.Err(); lerr != nil {
		if loader.IsNotFound(lerr) {
			return errdefs.Wrap(errdefs.ErrCanonicalization, msg, lerr)
		}
		if errors.Is(lerr, errdefs.ErrLoader) {
			return fmt.Errorf("%s: %w", msg, lerr)
		}
		return errdefs.Wrap(errdefs.ErrLoader, msg, lerr)
	}
	return errdefs.Wrap(errdefs.ErrCanonicalization, msg, err)
}

// validateRDF fails when any line of the normalized view is not a valid quad.
func validateRDF(view string) error {
	for _, line := range strings.Split(view, "\n") {
		if line == "" {
			continue
		}
		if _, err := ld.ParseNQuads(line + "\n"); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRDFFound, err)
		}
	}
	return nil
}
