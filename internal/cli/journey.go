package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/shelfcheck/internal/config"
	"github.com/roach88/shelfcheck/internal/inventory"
	"github.com/roach88/shelfcheck/internal/journey"
	"github.com/roach88/shelfcheck/internal/seed"
	"github.com/roach88/shelfcheck/internal/storage"
	"github.com/roach88/shelfcheck/internal/ui"
)

// JourneyOptions holds flags for the journey command.
type JourneyOptions struct {
	*RootOptions
	List bool
}

// NewJourneyCommand creates the journey command.
func NewJourneyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JourneyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "journey [name]",
		Short: "Run canned journeys against the simulated driver",
		Long: `Run one canned journey (or all of them) against the simulated driver.

Each journey runs in its own isolated in-memory storage instance, the
same isolation the browser harness gives each context. This is the
engine's self-check: the simulated driver reimplements the application's
rules independently, so a divergence between oracle and simulation
surfaces as a dual-source mismatch.

Example:
  shelfcheck journey
  shelfcheck journey product_lifecycle
  shelfcheck journey --list`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJourney(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.List, "list", false, "list canned journeys")

	return cmd
}

func runJourney(opts *JourneyOptions, args []string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if opts.List {
		names := make([]string, 0)
		for _, j := range journey.All() {
			names = append(names, fmt.Sprintf("%s - %s", j.Name, j.Description))
		}
		return out.Success(strings.Join(names, "\n"))
	}

	journeys := journey.All()
	if len(args) == 1 {
		j, err := journey.ByName(args[0])
		if err != nil {
			return WrapExitError(ExitCommandError, "unknown journey", err)
		}
		journeys = []*journey.Journey{j}
	}

	cfg := config.Load(slog.Default())
	actors := map[journey.Role]ui.Credentials{
		journey.RoleElevated: cfg.Elevated,
		journey.RoleStandard: cfg.Standard,
	}

	failed := 0
	for _, j := range journeys {
		// Fresh isolated storage per journey, like one browser context.
		kv := storage.NewMemory()
		acc := inventory.NewAccessor(kv, cfg.StoreKey)
		seeder := seed.NewSeeder(acc, nil, slog.Default())
		driver := ui.NewSim(kv, cfg.StoreKey)
		orch := journey.NewOrchestrator(acc, seeder, driver, actors, slog.Default())

		result, err := orch.Run(cmd.Context(), j)
		if err != nil {
			failed++
			_ = out.Failure(fmt.Errorf("journey %s failed: %w", j.Name, err))
			continue
		}
		if err := out.Success(fmt.Sprintf("journey %s passed (%d trace events, run %s)",
			result.Journey, len(result.Trace), result.RunID)); err != nil {
			return err
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d journeys failed", failed, len(journeys)))
	}
	return nil
}
