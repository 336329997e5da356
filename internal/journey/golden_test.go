package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Golden traces pin the exact event sequence of every canned journey.
// Details carry only snapshot summaries and counts, so the files are
// stable across runs; regenerate with -update after a deliberate change.
func TestGoldenTraces(t *testing.T) {
	for _, j := range All() {
		t.Run(j.Name, func(t *testing.T) {
			orch, _ := newHarness(t)
			result := RunWithGolden(t, orch, j)
			assert.True(t, result.Pass)
		})
	}
}
