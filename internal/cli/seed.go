package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/shelfcheck/internal/inventory"
	"github.com/roach88/shelfcheck/internal/seed"
	"github.com/roach88/shelfcheck/internal/storage"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Database string
	StoreKey string
	Init     bool
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed <catalog.yaml>",
		Short: "Seed a fixture catalog into a storage snapshot",
		Long: `Seed a fixture catalog into a storage snapshot database.

The catalog is validated against the fixture schema, then inserted with
SKU deduplication: fixtures whose SKU already exists are skipped, so
seeding the same catalog twice is a no-op.

Example:
  shelfcheck seed --db ./snapshot.db fixtures/baseline.yaml
  shelfcheck seed --db ./snapshot.db --init fixtures/baseline.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to storage snapshot database (required)")
	cmd.Flags().StringVar(&opts.StoreKey, "key", inventory.DefaultStoreKey, "storage key of the product collection")
	cmd.Flags().BoolVar(&opts.Init, "init", false, "initialize the collection key if the app has never written it")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSeed(opts *SeedOptions, catalogPath string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	catalog, err := seed.LoadCatalog(catalogPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}
	slog.Info("catalog loaded", "name", catalog.Name, "fixtures", len(catalog.Products))

	kv, err := storage.OpenSQLite(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open snapshot database", err)
	}
	defer func() {
		if closeErr := kv.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	acc := inventory.NewAccessor(kv, opts.StoreKey)
	if opts.Init {
		if err := acc.EnsureInitialized(ctx); err != nil {
			return WrapExitError(ExitCommandError, "failed to initialize store key", err)
		}
	}

	seeder := seed.NewSeeder(acc, nil, slog.Default())
	inserted, err := seeder.EnsureExist(ctx, catalog.Products)
	if err != nil {
		return WrapExitError(ExitCommandError, "seeding failed", err)
	}

	return out.Success(fmt.Sprintf("seeded catalog %q: %d inserted, %d skipped",
		catalog.Name, len(inserted), len(catalog.Products)-len(inserted)))
}
