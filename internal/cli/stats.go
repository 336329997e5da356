package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/shelfcheck/internal/inventory"
	"github.com/roach88/shelfcheck/internal/oracle"
	"github.com/roach88/shelfcheck/internal/storage"
	"github.com/roach88/shelfcheck/internal/ui"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
	Database string
	StoreKey string
}

// statsPayload is the JSON shape of the stats command output.
type statsPayload struct {
	TotalProducts int    `json:"total_products"`
	LowStockItems int    `json:"low_stock_items"`
	TotalValue    string `json:"total_value"`
}

func (p statsPayload) String() string {
	return fmt.Sprintf("products=%d lowStock=%d totalValue=%s",
		p.TotalProducts, p.LowStockItems, p.TotalValue)
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Recompute dashboard statistics from a storage snapshot",
		Long: `Recompute the dashboard statistics snapshot from the raw persisted
collection, using the oracle's exact-summation rules. The output is the
value the application's dashboard should display for this snapshot.

Example:
  shelfcheck stats --db ./snapshot.db
  shelfcheck stats --db ./snapshot.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to storage snapshot database (required)")
	cmd.Flags().StringVar(&opts.StoreKey, "key", inventory.DefaultStoreKey, "storage key of the product collection")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runStats(opts *StatsOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	kv, err := storage.OpenSQLite(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open snapshot database", err)
	}
	defer kv.Close()

	acc := inventory.NewAccessor(kv, opts.StoreKey)
	list, err := acc.ReadAll(cmd.Context())
	if err != nil {
		if inventory.IsMissingStore(err) {
			return WrapExitError(ExitCommandError, "store key never initialized (run seed --init or load the app once)", err)
		}
		return WrapExitError(ExitCommandError, "failed to read collection", err)
	}

	stats := oracle.ComputeStats(list)
	return out.Success(statsPayload{
		TotalProducts: stats.TotalProducts,
		LowStockItems: stats.LowStockItems,
		TotalValue:    ui.FormatAmount(stats.TotalValue),
	})
}
