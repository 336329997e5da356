package journey

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/roach88/shelfcheck/internal/inventory"
	"github.com/roach88/shelfcheck/internal/oracle"
	"github.com/roach88/shelfcheck/internal/seed"
	"github.com/roach88/shelfcheck/internal/ui"
	"github.com/roach88/shelfcheck/internal/verify"
)

// TraceEvent records one state of a journey run for diagnostics and
// golden comparison. Details carry only deterministic values (snapshot
// summaries, counts), never surrogate ids or timestamps, so traces are
// byte-identical across runs.
type TraceEvent struct {
	Type   string `json:"type"`             // "seed", "baseline", "act", "verify", "final_verify"
	Step   string `json:"step,omitempty"`   // step name for act/verify events
	Detail string `json:"detail,omitempty"` // deterministic summary
}

// Result is the outcome of one journey run.
type Result struct {
	Journey string       `json:"journey"`
	RunID   string       `json:"run_id,omitempty"`
	Pass    bool         `json:"pass"`
	Trace   []TraceEvent `json:"trace"`
	Errors  []string     `json:"errors,omitempty"`
}

// NewResult creates a passing result to accumulate into.
func NewResult(journeyName string) *Result {
	return &Result{
		Journey: journeyName,
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
	}
}

// AddError records a failure and marks the result failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

func (r *Result) addTrace(eventType, step, detail string) {
	r.Trace = append(r.Trace, TraceEvent{Type: eventType, Step: step, Detail: detail})
}

// Orchestrator executes journeys over one accessor/driver pair.
//
// Each journey is expected to run in its own isolated browser context
// with its own storage instance; within a run all steps execute strictly
// sequentially. Cleanup is scenario-owned: a failed step aborts the run
// without attempting the remaining steps' disposal.
type Orchestrator struct {
	acc    *inventory.Accessor
	seeder *seed.Seeder
	driver ui.Driver
	check  *verify.Checker
	actors map[Role]ui.Credentials
	logger *slog.Logger

	newRunID func() string
}

// NewOrchestrator wires an orchestrator. A nil logger discards output.
func NewOrchestrator(acc *inventory.Accessor, seeder *seed.Seeder, driver ui.Driver, actors map[Role]ui.Credentials, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		acc:    acc,
		seeder: seeder,
		driver: driver,
		check:  verify.NewChecker(acc, driver, logger),
		actors: actors,
		logger: logger,
		newRunID: func() string {
			return uuid.Must(uuid.NewV7()).String()
		},
	}
}

// Run executes a journey:
//
//	login -> seed fixtures -> BaselineCapture -> Act/Verify per step ->
//	FinalVerify(== baseline)
//
// Any step or verification failure aborts immediately (fail-fast, no
// partial credit); the partially-filled result is returned alongside the
// error for trace inspection.
func (o *Orchestrator) Run(ctx context.Context, j *Journey) (*Result, error) {
	result := NewResult(j.Name)
	result.RunID = o.newRunID()

	o.logger.Info("journey starting", "journey", j.Name, "run_id", result.RunID, "actor", j.Actor)

	rt := &Runtime{
		Driver:   o.driver,
		Accessor: o.acc,
		Check:    o.check,
		Vars:     make(map[string]string),
		actors:   o.actors,
	}

	creds, err := rt.CredentialsFor(j.Actor)
	if err != nil {
		result.AddError(err.Error())
		return result, err
	}
	if err := o.driver.Login(ctx, creds); err != nil {
		err = fmt.Errorf("login as %s: %w", j.Actor, err)
		result.AddError(err.Error())
		return result, err
	}

	if len(j.Fixtures) > 0 {
		inserted, err := o.seeder.EnsureExist(ctx, j.Fixtures)
		if err != nil {
			err = fmt.Errorf("seed fixtures: %w", err)
			result.AddError(err.Error())
			return result, err
		}
		result.addTrace("seed", "", fmt.Sprintf("inserted=%d skipped=%d", len(inserted), len(j.Fixtures)-len(inserted)))
	}

	baseline, err := o.snapshot(ctx)
	if err != nil {
		err = fmt.Errorf("baseline capture: %w", err)
		result.AddError(err.Error())
		return result, err
	}
	result.addTrace("baseline", "", baseline.String())

	for i, step := range j.Steps {
		if step.Act != nil {
			if err := step.Act(ctx, rt); err != nil {
				err = fmt.Errorf("step %d %q act: %w", i, step.Name, err)
				result.AddError(err.Error())
				return result, err
			}
			result.addTrace("act", step.Name, "")
		}
		if step.Verify != nil {
			if err := step.Verify(ctx, rt); err != nil {
				err = fmt.Errorf("step %d %q verify: %w", i, step.Name, err)
				result.AddError(err.Error())
				return result, err
			}
			result.addTrace("verify", step.Name, "")
		}
		o.logger.Debug("step completed", "journey", j.Name, "step", step.Name)
	}

	final, err := o.snapshot(ctx)
	if err != nil {
		err = fmt.Errorf("final capture: %w", err)
		result.AddError(err.Error())
		return result, err
	}
	result.addTrace("final_verify", "", final.String())

	if !final.Equal(baseline) {
		err := &verify.MismatchError{
			Check:    "full circle",
			Expected: baseline.String(),
			Observed: final.String(),
		}
		result.AddError(err.Error())
		return result, err
	}

	if err := o.driver.Logout(ctx); err != nil {
		err = fmt.Errorf("logout: %w", err)
		result.AddError(err.Error())
		return result, err
	}

	o.logger.Info("journey passed", "journey", j.Name, "run_id", result.RunID, "steps", len(j.Steps))
	return result, nil
}

// snapshot recomputes the dashboard statistics from the persisted
// collection. Full-circle equality compares these snapshots, so a journey
// that disposes of everything it created leaves no observable difference.
func (o *Orchestrator) snapshot(ctx context.Context) (oracle.Stats, error) {
	list, err := o.acc.ReadAll(ctx)
	if err != nil {
		return oracle.Stats{}, err
	}
	return oracle.ComputeStats(list), nil
}
