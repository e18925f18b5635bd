package suite

import (
	"context"
	"fmt"

	"github.com/pilacorp/go-ldproof/credential/common/dto"
	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/keypair"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
	"github.com/pilacorp/go-ldproof/credential/common/processor"
)

// SignatureCodec places a signature over the verify data into a proof and
// checks it again.
type SignatureCodec interface {
	// Encode signs verifyData with kp and stores the result in proof.
	Encode(ctx context.Context, verifyData []byte, kp keypair.KeyPair, proof *dto.Proof) error
	// Verify returns errdefs.ErrSignatureMismatch when the signature carried by
	// proof does not match verifyData.
	Verify(ctx context.Context, verifyData []byte, kp keypair.KeyPair, proof *dto.Proof) error
}

// Definition assembles a LinkedDataSignature.
type Definition struct {
	Descriptor Descriptor
	Codec      SignatureCodec
	// RequiredContext is added to documents that do not declare it before
	// signing, and must be declared by documents being verified.
	RequiredContext string
}

// Option configures a LinkedDataSignature.
type Option func(*LinkedDataSignature)

// WithVerifier sets the key pair template used to build verify-only handles
// from resolved verification methods. The default verifies in software.
func WithVerifier(kp keypair.KeyPair) Option {
	return func(s *LinkedDataSignature) {
		s.verifier = kp
	}
}

// WithProcessorOptions passes options to the canonicalizer, such as
// processor.WithAllowUndefinedTerms.
func WithProcessorOptions(opts ...processor.ProcessorOpt) Option {
	return func(s *LinkedDataSignature) {
		s.processorOpts = append(s.processorOpts, opts...)
	}
}

// LinkedDataSignature implements the canonicalize, hash and sign flow shared
// by all suites. Suites differ in their Definition only.
type LinkedDataSignature struct {
	def           Definition
	verifier      keypair.KeyPair
	processorOpts []processor.ProcessorOpt
}

var (
	_ Suite            = (*LinkedDataSignature)(nil)
	_ DocumentPreparer = (*LinkedDataSignature)(nil)
)

// NewLinkedDataSignature creates a suite from def.
func NewLinkedDataSignature(def Definition, opts ...Option) *LinkedDataSignature {
	if def.Descriptor.CanonicalizationAlgorithm == "" {
		def.Descriptor.CanonicalizationAlgorithm = CanonicalizationURDNA2015
	}
	if def.Descriptor.DigestAlgorithm == "" {
		def.Descriptor.DigestAlgorithm = DigestSHA256
	}
	s := &LinkedDataSignature{def: def}
	for _, opt := range opts {
		opt(s)
	}
	if s.verifier == nil {
		s.verifier = keypair.New(nil, def.Descriptor.KeyType, nil)
	}
	return s
}

func (s *LinkedDataSignature) SignatureType() string { return s.def.Descriptor.ID }

func (s *LinkedDataSignature) Descriptor() Descriptor { return s.def.Descriptor }

// PrepareDocument returns doc with the suite's required context appended when
// it is missing. doc itself is never modified.
func (s *LinkedDataSignature) PrepareDocument(doc jsonmap.JSONMap) jsonmap.JSONMap {
	if s.def.RequiredContext == "" || doc.HasContext(s.def.RequiredContext) {
		return doc
	}
	out := doc.Copy()
	out[jsonmap.ContextKey] = append(doc.Contexts(), s.def.RequiredContext)
	return out
}

// CreateProof signs doc and returns the proof built from options.
func (s *LinkedDataSignature) CreateProof(ctx context.Context, doc jsonmap.JSONMap, options *dto.Proof, kp keypair.KeyPair, l loader.DocumentLoader) (*dto.Proof, error) {
	if kp == nil {
		return nil, errdefs.NewProofError("create", s.SignatureType(), fmt.Errorf("no key pair: %w", errdefs.ErrUnsupportedOperation))
	}
	if kp.KeyType() != s.def.Descriptor.KeyType {
		return nil, errdefs.NewProofError("create", s.SignatureType(),
			fmt.Errorf("suite needs a %s key, got %s: %w", s.def.Descriptor.KeyType, kp.KeyType(), errdefs.ErrUnsupportedKeyType))
	}
	if !kp.CanSign() {
		return nil, errdefs.NewProofError("create", s.SignatureType(), fmt.Errorf("key pair is verify-only: %w", errdefs.ErrUnsupportedOperation))
	}

	proof := options.Clone()
	if proof == nil {
		proof = &dto.Proof{}
	}
	proof.Type = s.SignatureType()
	if proof.VerificationMethod == "" {
		proof.VerificationMethod = kp.VerificationMethod()
	}
	proof.JWS, proof.ProofValue = "", ""
	delete(proof.Extra, dto.FieldSignatureValue)

	doc = s.PrepareDocument(doc)
	verifyData, err := s.createVerifyData(ctx, proof, doc, l)
	if err != nil {
		return nil, errdefs.NewProofError("create", s.SignatureType(), err)
	}

	if err := s.def.Codec.Encode(ctx, verifyData, kp, proof); err != nil {
		return nil, errdefs.NewProofError("create", s.SignatureType(), err)
	}
	return proof, nil
}

// VerifyProof resolves the proof's verification method and checks the
// signature. A signature that does not match is reported as an outcome with
// Verified false and an error matching errdefs.ErrSignatureMismatch.
func (s *LinkedDataSignature) VerifyProof(ctx context.Context, proof *dto.Proof, doc jsonmap.JSONMap, l loader.DocumentLoader) (*VerifyOutcome, error) {
	outcome := &VerifyOutcome{}
	if proof == nil || proof.Type != s.SignatureType() {
		return outcome, errdefs.NewProofError("verify", s.SignatureType(), fmt.Errorf("proof is not of type %s: %w", s.SignatureType(), errdefs.ErrUnsupportedSuite))
	}
	if proof.VerificationMethod == "" {
		return outcome, errdefs.NewProofError("verify", s.SignatureType(), fmt.Errorf("proof has no verificationMethod: %w", errdefs.ErrMalformedProof))
	}
	if s.def.RequiredContext != "" && !doc.HasContext(s.def.RequiredContext) {
		return outcome, errdefs.NewProofError("verify", s.SignatureType(),
			fmt.Errorf("document does not declare %s: %w", s.def.RequiredContext, errdefs.ErrMalformedProof))
	}

	vm, err := ResolveVerificationMethod(ctx, proof.VerificationMethod, l)
	if err != nil {
		return outcome, errdefs.NewProofError("verify", s.SignatureType(), err)
	}
	outcome.VerificationMethod = vm

	vmType, _ := vm["type"].(string)
	if !s.def.Descriptor.SupportsVerificationMethod(vmType) {
		return outcome, errdefs.NewProofError("verify", s.SignatureType(),
			fmt.Errorf("verification method type %q: %w", vmType, errdefs.ErrUnsupportedKeyType))
	}
	kp, err := s.verifier.FromVerificationMethod(vm)
	if err != nil {
		return outcome, errdefs.NewProofError("verify", s.SignatureType(), err)
	}

	verifyData, err := s.createVerifyData(ctx, proof, doc, l)
	if err != nil {
		return outcome, errdefs.NewProofError("verify", s.SignatureType(), err)
	}

	if err := s.def.Codec.Verify(ctx, verifyData, kp, proof); err != nil {
		return outcome, errdefs.NewProofError("verify", s.SignatureType(), err)
	}
	outcome.Verified = true
	return outcome, nil
}

func (s *LinkedDataSignature) createVerifyData(ctx context.Context, proof *dto.Proof, doc jsonmap.JSONMap, l loader.DocumentLoader) ([]byte, error) {
	opts := append([]processor.ProcessorOpt{
		processor.WithDocumentLoader(l),
		processor.WithAlgorithm(s.def.Descriptor.CanonicalizationAlgorithm),
	}, s.processorOpts...)
	p := processor.New(opts...)
	return p.CreateVerifyData(ctx, doc.WithoutProof(), s.proofOptions(proof, doc))
}

// proofOptions is the proof without its signature value and nonce, in the
// context the suite signs it under.
func (s *LinkedDataSignature) proofOptions(proof *dto.Proof, doc jsonmap.JSONMap) map[string]interface{} {
	opts := proof.ToMap()
	delete(opts, dto.FieldJWS)
	delete(opts, dto.FieldProofValue)
	delete(opts, dto.FieldSignatureValue)
	delete(opts, dto.FieldNonce)

	if s.def.Descriptor.ProofContext != "" {
		opts[dto.FieldContext] = s.def.Descriptor.ProofContext
	} else if c, ok := doc[jsonmap.ContextKey]; ok {
		opts[dto.FieldContext] = c
	}
	return opts
}
