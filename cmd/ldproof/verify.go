package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/purpose"
	"github.com/pilacorp/go-ldproof/credential/common/suite"
	"github.com/pilacorp/go-ldproof/credential/ldproof"
)

type verifyOptions struct {
	suites    []string
	purpose   string
	challenge string
	domain    string
}

type proofSummary struct {
	Suite              string `json:"suite"`
	VerificationMethod string `json:"verificationMethod,omitempty"`
	Verified           bool   `json:"verified"`
	Error              string `json:"error,omitempty"`
}

type verifySummary struct {
	Verified bool           `json:"verified"`
	Proofs   []proofSummary `json:"proofs"`
}

func newVerifyCommand() *cobra.Command {
	var opts verifyOptions

	cmd := &cobra.Command{
		Use:   "verify [OPTIONS] FILE",
		Short: "Verify the proofs of a JSON-LD document",
		Long:  "Verify every proof of the JSON-LD document in FILE (- for stdin). The command fails unless all proofs verify.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.suites, "suite", nil, "Accepted proof suites (default: all)")
	flags.StringVar(&opts.purpose, "purpose", purpose.AssertionMethod, "Expected proof purpose")
	flags.StringVar(&opts.challenge, "challenge", "", "Expected challenge of an authentication proof")
	flags.StringVar(&opts.domain, "domain", "", "Expected domain of an authentication proof")
	return cmd
}

func runVerify(cmd *cobra.Command, opts verifyOptions, path string) error {
	ctx := cmd.Context()

	registry := ldproof.DefaultRegistry()
	suites := registry.Suites()
	if len(opts.suites) > 0 {
		suites = make([]suite.Suite, 0, len(opts.suites))
		for _, name := range opts.suites {
			s, err := registry.Get(name)
			if err != nil {
				return err
			}
			suites = append(suites, s)
		}
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

	res, err := ldproof.Verify(ctx, doc, suites, p, l)
	if err != nil {
		return err
	}

	summary := verifySummary{Verified: res.Verified, Proofs: make([]proofSummary, 0, len(res.Results))}
	for _, r := range res.Results {
		ps := proofSummary{Suite: r.SuiteID, Verified: r.Verified}
		if r.VerificationMethod != nil {
			ps.VerificationMethod = jsonmap.JSONMap(r.VerificationMethod).ID()
		}
		if r.Err != nil {
			ps.Error = r.Err.Error()
		}
		summary.Proofs = append(summary.Proofs, ps)
	}
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if !res.Verified {
		return errors.New("document did not verify")
	}
	return nil
}
