package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/shelfcheck/internal/inventory"
	"github.com/roach88/shelfcheck/internal/storage"
)

// ClearOptions holds flags for the clear command.
type ClearOptions struct {
	*RootOptions
	Database string
	StoreKey string
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClearOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Overwrite the product collection with an empty list",
		Long: `Overwrite the snapshot's product collection with an empty list.

Teardown between independent runs; there is deliberately no partial
delete.

Example:
  shelfcheck clear --db ./snapshot.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to storage snapshot database (required)")
	cmd.Flags().StringVar(&opts.StoreKey, "key", inventory.DefaultStoreKey, "storage key of the product collection")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runClear(opts *ClearOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	kv, err := storage.OpenSQLite(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open snapshot database", err)
	}
	defer kv.Close()

	acc := inventory.NewAccessor(kv, opts.StoreKey)
	if err := acc.ClearAll(cmd.Context()); err != nil {
		return WrapExitError(ExitCommandError, "failed to clear collection", err)
	}

	return out.Success("collection cleared")
}
