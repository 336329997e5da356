package seed

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed catalog.cue
var catalogSchema string

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
	schemaErr   error
)

// compiledSchema compiles the embedded catalog schema once.
// Uses the CUE SDK's Go API directly (not CLI subprocess).
func compiledSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		v := ctx.CompileString(catalogSchema, cue.Filename("catalog.cue"))
		if err := v.Err(); err != nil {
			schemaErr = formatCUEError(err)
			return
		}
		def := v.LookupPath(cue.ParsePath("#Catalog"))
		if err := def.Err(); err != nil {
			schemaErr = formatCUEError(err)
			return
		}
		schemaValue = def
	})
	return schemaValue, schemaErr
}

// validateCatalog unifies the decoded catalog document with the #Catalog
// definition and reports any constraint violations.
func validateCatalog(raw map[string]any) error {
	def, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("catalog schema: %w", err)
	}

	doc := def.Context().Encode(raw)
	if err := doc.Err(); err != nil {
		return formatCUEError(err)
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}

	return nil
}

// formatCUEError flattens CUE's multi-error into a single message with
// positions, so a bad catalog line is reported directly.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	if len(errs) == 1 {
		return fmt.Errorf("%s", cueerrors.Details(errs[0], nil))
	}
	return fmt.Errorf("%d problems:\n%s", len(errs), cueerrors.Details(err, nil))
}
