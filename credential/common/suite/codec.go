package suite

import (
	"context"
	"fmt"

	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/dto"
	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/jws"
	"github.com/pilacorp/go-ldproof/credential/common/keypair"
)

// JWSCodec carries the signature as a detached JWS in the jws member.
type JWSCodec struct {
	Method *jws.SigningMethodKeyPair
}

func (c JWSCodec) Encode(ctx context.Context, verifyData []byte, kp keypair.KeyPair, proof *dto.Proof) error {
	sig, err := jws.Sign(ctx, c.Method, kp, verifyData)
	if err != nil {
		return err
	}
	proof.JWS = sig
	return nil
}

func (c JWSCodec) Verify(ctx context.Context, verifyData []byte, kp keypair.KeyPair, proof *dto.Proof) error {
	if proof.JWS == "" {
		return fmt.Errorf("proof has no jws: %w", errdefs.ErrMalformedProof)
	}
	return jws.Verify(ctx, c.Method, kp, proof.JWS, verifyData)
}

// MultibaseCodec carries the raw signature, base58btc multibase encoded, in
// the proofValue member.
type MultibaseCodec struct{}

func (MultibaseCodec) Encode(ctx context.Context, verifyData []byte, kp keypair.KeyPair, proof *dto.Proof) error {
	sig, err := kp.Sign(ctx, verifyData)
	if err != nil {
		return err
	}
	proof.ProofValue = crypto.EncodeMultibase(sig)
	return nil
}

func (MultibaseCodec) Verify(ctx context.Context, verifyData []byte, kp keypair.KeyPair, proof *dto.Proof) error {
	if proof.ProofValue == "" {
		return fmt.Errorf("proof has no proofValue: %w", errdefs.ErrMalformedProof)
	}
	sig, err := crypto.DecodeMultibase(proof.ProofValue)
	if err != nil {
		return fmt.Errorf("invalid proofValue: %v: %w", err, errdefs.ErrMalformedProof)
	}
	ok, err := kp.Verify(ctx, verifyData, sig)
	if err != nil {
		return err
	}
	if !ok {
		return errdefs.ErrSignatureMismatch
	}
	return nil
}
