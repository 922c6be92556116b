package config

import (
	_ "embed"
	"fmt"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

// ValidationError reports a configuration value rejected by the schema.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid config: " + e.Message
	}
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Message)
}

// Validate checks c against the embedded CUE schema and resolves the
// timezone.
func (c *Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	v := schema.LookupPath(cue.ParsePath("#Config")).Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return &ValidationError{Field: "timezone", Message: err.Error()}
	}
	return nil
}

// formatCUEError turns the first CUE error into a ValidationError.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	first := errs[0]
	// All fields are top level.
	var field string
	if path := first.Path(); len(path) > 0 {
		field = path[len(path)-1]
	}
	format, args := first.Msg()
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
