// Package seed loads catalog fixtures into the database.
package seed

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	packUsecases "github.com/licensehub/licensehub/internal/application/pack/usecases"
	"github.com/licensehub/licensehub/internal/infrastructure/database"
	seedfile "github.com/licensehub/licensehub/internal/infrastructure/seed"
	"github.com/licensehub/licensehub/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/licensehub/licensehub/internal/interfaces/http"
)

var (
	opts     bootstrap.Options
	filePath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed reference data",
	}

	opts.Bind(cmd)
	cmd.AddCommand(newPacksCommand())

	return cmd
}

func newPacksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packs",
		Short: "Create packs from a YAML file",
		Long:  `Create catalog packs listed in a YAML file. Skus that already exist are skipped, so the command can be re-run safely.`,
		RunE:  runPacks,
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "configs/packs.yaml", "Path to the pack seed file")

	return cmd
}

func runPacks(cmd *cobra.Command, args []string) error {
	entries, err := seedfile.LoadPacks(filePath)
	if err != nil {
		return err
	}
	items, err := toItems(entries)
	if err != nil {
		return err
	}

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

	result, err := container.SeedPacksUseCase().Execute(cmd.Context(), items)
	if err != nil {
		return err
	}

	log.Infow("pack seed finished", "file", filePath, "created", len(result.Created), "skipped", len(result.Skipped))
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "created: %s\n", strings.Join(result.Created, ", "))
	fmt.Fprintf(out, "skipped: %s\n", strings.Join(result.Skipped, ", "))
	return nil
}

func toItems(entries []seedfile.PackSeed) ([]packUsecases.SeedPackItem, error) {
	items := make([]packUsecases.SeedPackItem, 0, len(entries))
	for _, e := range entries {
		price, err := e.DecimalPrice()
		if err != nil {
			return nil, fmt.Errorf("pack %q: %w", e.SKU, err)
		}
		items = append(items, packUsecases.SeedPackItem{
			Name:           e.Name,
			Description:    e.Description,
			SKU:            e.SKU,
			Price:          price,
			ValidityMonths: e.ValidityMonths,
		})
	}
	return items, nil
}
