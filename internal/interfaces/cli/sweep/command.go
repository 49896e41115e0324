// Package sweep runs one expiry sweep and exits, for hosts that schedule it
// externally.
package sweep

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/licensehub/licensehub/internal/infrastructure/database"
	"github.com/licensehub/licensehub/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/licensehub/licensehub/internal/interfaces/http"
)

var opts bootstrap.Options

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Expire overdue subscriptions once",
		Long:  `Run a single expiry sweep over ACTIVE subscriptions whose validity window has ended, then exit.`,
		RunE:  run,
	}

	opts.Bind(cmd)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Load(&opts)
	if err != nil {
		return err
	}

	db, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	container, err := httpRouter.NewContainer(db, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()

	expired, err := container.ExpireUseCase().Execute(cmd.Context())
	if err != nil {
		return fmt.Errorf("expiry sweep failed: %w", err)
	}

	log.Infow("expiry sweep finished", "expired", expired)
	fmt.Fprintf(cmd.OutOrStdout(), "expired %d subscription(s)\n", expired)
	return nil
}
