package main

import (
	"fmt"
	"io"
	"os"

	"github.com/containerd/log"
	"github.com/spf13/cobra"

	"github.com/pilacorp/go-ldproof/config"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
	"github.com/pilacorp/go-ldproof/credential/common/purpose"
)

func newRootCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "ldproof",
		Short:         "Sign and verify linked data proofs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.SetLevel(logLevel)
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", config.LogLevel(), "Log level (trace, debug, info, warn, error)")
	cmd.AddCommand(
		newSignCommand(),
		newVerifyCommand(),
		newUpgradeCommand(),
	)
	return cmd
}

// newLoader returns a loader that resolves DIDs through the configured
// resolver in addition to did:key.
func newLoader() (loader.DocumentLoader, error) {
	url := config.DIDResolverURL()
	if url == "" {
		return loader.Default(), nil
	}
	return loader.New(loader.WithDIDResolver(
		loader.NewResolver(url, loader.WithTimeout(config.HTTPTimeout())),
	))
}

// purposeFor returns the purpose named by term. Authentication requires a challenge.
func purposeFor(term, challenge, domain string) (purpose.Purpose, error) {
	if term == purpose.Authentication {
		auth, err := purpose.NewAuthentication(challenge, domain)
		if err != nil {
			return nil, err
		}
		return auth, nil
	}
	return purpose.ByTerm(term)
}

// readInput reads the file at path, or standard input for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
