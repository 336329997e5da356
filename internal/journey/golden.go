package journey

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot is the golden-file shape for a journey run. The run id is
// deliberately excluded: trace events carry only deterministic details, so
// snapshots are byte-identical across runs.
type TraceSnapshot struct {
	Journey string       `json:"journey"`
	Trace   []TraceEvent `json:"trace"`
}

// RunWithGolden executes a journey and compares its trace against the
// golden file testdata/golden/{journey.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/journey -update
func RunWithGolden(t *testing.T, o *Orchestrator, j *Journey) *Result {
	t.Helper()

	result, err := o.Run(context.Background(), j)
	if err != nil {
		t.Fatalf("journey %s failed: %v", j.Name, err)
	}

	AssertGolden(t, j.Name, result)
	return result
}

// AssertGolden compares an already-obtained result's trace against the
// golden file for the given name.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	snapshot := TraceSnapshot{
		Journey: name,
		Trace:   result.Trace,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		t.Fatalf("marshal trace snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
