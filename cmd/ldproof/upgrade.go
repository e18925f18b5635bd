package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pilacorp/go-ldproof/config"
	"github.com/pilacorp/go-ldproof/storage"
	"github.com/pilacorp/go-ldproof/upgrade"
)

// upgradeConfig lists the steps of every release that changed the record layout.
var upgradeConfig = upgrade.Config{
	"v0.1.0": {ResaveRecords: []string{"credential", "presentation"}},
}

type upgradeOptions struct {
	db          string
	fromVersion string
	toVersion   string
}

func newUpgradeCommand() *cobra.Command {
	var opts upgradeOptions

	cmd := &cobra.Command{
		Use:   "upgrade [OPTIONS]",
		Short: "Upgrade the record store to the current version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpgrade(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.db, "db", config.DBPath(), "Path of the record database")
	flags.StringVar(&opts.fromVersion, "from-version", "", "Version to upgrade from when the store has no version marker")
	flags.StringVar(&opts.toVersion, "to-version", version, "Version to upgrade to")
	return cmd
}

func runUpgrade(cmd *cobra.Command, opts upgradeOptions) error {
	st, err := storage.Open(opts.db)
	if err != nil {
		return err
	}
	defer st.Close()

	var upgradeOpts []upgrade.Option
	if opts.fromVersion != "" {
		upgradeOpts = append(upgradeOpts, upgrade.WithFromVersion(opts.fromVersion))
	}
	if err := upgrade.Run(cmd.Context(), st, upgradeConfig, opts.toVersion, upgradeOpts...); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "upgraded %s to %s\n", opts.db, opts.toVersion)
	return nil
}
