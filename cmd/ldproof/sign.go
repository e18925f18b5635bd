package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pilacorp/go-ldproof/config"
	"github.com/pilacorp/go-ldproof/credential/common/crypto"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/keypair"
	"github.com/pilacorp/go-ldproof/credential/common/purpose"
	"github.com/pilacorp/go-ldproof/credential/common/wallet"
	"github.com/pilacorp/go-ldproof/credential/ldproof"
	"github.com/pilacorp/go-ldproof/storage"
)

type signOptions struct {
	suite              string
	seed               string
	purpose            string
	challenge          string
	domain             string
	verificationMethod string
	save               string
}

func newSignCommand() *cobra.Command {
	var opts signOptions

	cmd := &cobra.Command{
		Use:   "sign [OPTIONS] FILE",
		Short: "Add a proof to a JSON-LD document",
		Long:  "Add a proof to the JSON-LD document in FILE (- for stdin) and print the signed document.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.suite, "suite", "Ed25519Signature2020", "Proof suite")
	flags.StringVar(&opts.seed, "seed", "", "0x-prefixed 32 byte hex seed of the signing key")
	flags.StringVar(&opts.purpose, "purpose", purpose.AssertionMethod, "Proof purpose")
	flags.StringVar(&opts.challenge, "challenge", "", "Challenge of an authentication proof")
	flags.StringVar(&opts.domain, "domain", "", "Domain of an authentication proof")
	flags.StringVar(&opts.verificationMethod, "verification-method", "", "Verification method IRI (default: did:key of the signing key)")
	flags.StringVar(&opts.save, "save", "", "Also store the signed document as a record of this type")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}

func runSign(cmd *cobra.Command, opts signOptions, path string) error {
	ctx := cmd.Context()

	s, err := ldproof.DefaultRegistry().Get(opts.suite)
	if err != nil {
		return err
	}
	seed, err := crypto.KeyToBytes(opts.seed)
	if err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}
	w := wallet.NewInMemoryWallet()
	info, err := w.CreateKey(s.Descriptor().KeyType, seed)
	if err != nil {
		return err
	}
	p, err := purposeFor(opts.purpose, opts.challenge, opts.domain)
	if err != nil {
		return err
	}
	l, err := newLoader()
	if err != nil {
		return err
	}

	raw, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	doc, err := jsonmap.Parse(raw)
	if err != nil {
		return err
	}

	var signOpts []ldproof.SignOption
	if opts.verificationMethod != "" {
		signOpts = append(signOpts, ldproof.WithVerificationMethod(opts.verificationMethod))
	}
	signed, err := ldproof.Sign(ctx, doc, s, p, keypair.FromKeyInfo(w, info), l, signOpts...)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(signed, "", "  ")
	if err != nil {
		return err
	}
	if opts.save != "" {
		if err := saveRecord(opts.save, signed.ID(), out); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func saveRecord(recordType, id string, value []byte) error {
	if id == "" {
		return fmt.Errorf("cannot store a document without id")
	}
	st, err := storage.Open(config.DBPath())
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Put(storage.Record{Type: recordType, ID: id, Value: value})
}
