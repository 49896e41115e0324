package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/licensehub/licensehub/internal/interfaces/cli/migrate"
	"github.com/licensehub/licensehub/internal/interfaces/cli/seed"
	"github.com/licensehub/licensehub/internal/interfaces/cli/server"
	"github.com/licensehub/licensehub/internal/interfaces/cli/sweep"
	"github.com/licensehub/licensehub/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "licensehub",
		Short:        "licensehub - subscription pack licensing",
		Long:         `licensehub manages a catalog of subscription packs and the per-customer subscription ledger, with a built-in server, expiry sweeper and migration tools.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sweep.NewCommand(),
		seed.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
