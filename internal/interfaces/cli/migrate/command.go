package migrate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/licensehub/licensehub/internal/infrastructure/database"
	"github.com/licensehub/licensehub/internal/infrastructure/migration"
	"github.com/licensehub/licensehub/internal/interfaces/cli/bootstrap"
	"github.com/licensehub/licensehub/internal/shared/logger"
)

var (
	opts  bootstrap.Options
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending scripts, roll back, and show status.`,
	}

	opts.Bind(cmd)

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStrategy(cmd.Context(), func(ctx context.Context, s *migration.GooseStrategy, db *gorm.DB, log logger.Interface) error {
				if err := s.Up(ctx, db); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				log.Infow("migrations completed successfully")
				return nil
			})
		},
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStrategy(cmd.Context(), func(ctx context.Context, s *migration.GooseStrategy, db *gorm.DB, log logger.Interface) error {
				for i := 0; i < steps; i++ {
					if err := s.Down(ctx, db); err != nil {
						return fmt.Errorf("down migration failed at step %d: %w", i+1, err)
					}
				}
				log.Infow("down migration completed successfully", "steps", steps)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStrategy(cmd.Context(), func(ctx context.Context, s *migration.GooseStrategy, db *gorm.DB, log logger.Interface) error {
				version, err := s.Version(ctx, db)
				if err != nil {
					return fmt.Errorf("failed to get migration version: %w", err)
				}

				fmt.Printf("\nMigration Status:\n")
				fmt.Printf("  Environment:     %s\n", opts.Env)
				fmt.Printf("  Current Version: %d\n", version)

				if err := s.Status(ctx, db); err != nil {
					return fmt.Errorf("failed to get detailed status: %w", err)
				}
				return nil
			})
		},
	}
}

func withStrategy(ctx context.Context, fn func(ctx context.Context, s *migration.GooseStrategy, db *gorm.DB, log logger.Interface) error) error {
	cfg, log, err := bootstrap.Load(&opts)
	if err != nil {
		return err
	}

	db, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	return fn(ctx, migration.NewGooseStrategy(log), db, log)
}
