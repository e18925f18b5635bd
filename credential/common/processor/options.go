package processor

import (
	"github.com/pilacorp/go-ldproof/credential/common/loader"
)

// ProcessorOptions holds options for canonicalization of JSON-LD docs.
type ProcessorOptions struct {
	ValidateRDF         bool
	AllowUndefinedTerms bool
	DocumentLoader      loader.DocumentLoader
	Algorithm           string
}

// ProcessorOpt are the options for JSON-LD operations.
type ProcessorOpt func(opts *ProcessorOptions)

// WithValidateRDF option validates result view and fails if any invalid RDF dataset found.
func WithValidateRDF() ProcessorOpt {
	return func(opts *ProcessorOptions) {
		opts.ValidateRDF = true
	}
}

// WithDocumentLoader option is for passing custom JSON-LD document loader.
func WithDocumentLoader(l loader.DocumentLoader) ProcessorOpt {
	return func(opts *ProcessorOptions) {
		opts.DocumentLoader = l
	}
}

// WithAlgorithm option specifies the JSON-LD normalization algorithm.
func WithAlgorithm(algorithm string) ProcessorOpt {
	return func(opts *ProcessorOptions) {
		opts.Algorithm = algorithm
	}
}

// WithAllowUndefinedTerms disables the check that rejects documents whose
// properties are not defined by their context.
func WithAllowUndefinedTerms() ProcessorOpt {
	return func(opts *ProcessorOptions) {
		opts.AllowUndefinedTerms = true
	}
}
