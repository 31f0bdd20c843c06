// Package schema validates untrusted diary records against the data model
// before they are decoded and trusted.
//
// The shape predicate is expressed in CUE (tree.cue) and applied to the
// generic JSON value, so the same check serves the persisted store record
// and import files.
package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed tree.cue
var treeSchema string

// ShapeError reports why a value does not conform to the tree shape.
type ShapeError struct {
	Message string
	Path    string    // CUE path of the offending value, if known
	Pos     token.Pos // position in the schema, if known
}

func (e *ShapeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid shape at %s: %s", e.Path, e.Message)
	}
	return "invalid shape: " + e.Message
}

// Validator checks values against the compiled tree schema.
//
// Thread-safety: a cue.Context is not safe for concurrent use, so all
// access is serialized through mu.
type Validator struct {
	mu   sync.Mutex
	ctx  *cue.Context
	tree cue.Value
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
)

// Default returns a process-wide validator, compiling the schema on first use.
func Default() *Validator {
	defaultOnce.Do(func() {
		v, err := NewValidator()
		if err != nil {
			// The schema is embedded; failing to compile it is a build defect.
			panic(err)
		}
		defaultValidator = v
	})
	return defaultValidator
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(treeSchema, cue.Filename("tree.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile tree schema: %w", err)
	}
	tree := schema.LookupPath(cue.ParsePath("#Tree"))
	if !tree.Exists() {
		return nil, fmt.Errorf("compile tree schema: #Tree not defined")
	}
	return &Validator{ctx: ctx, tree: tree}, nil
}

// Validate checks a generic decoded JSON value (maps, slices, float64,
// string, bool, nil) against the tree shape.
func (v *Validator) Validate(generic any) error {
	if _, ok := generic.(map[string]any); !ok {
		return &ShapeError{Message: fmt.Sprintf("top level must be an object, got %s", kindOf(generic))}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	val := v.ctx.Encode(generic)
	if err := val.Err(); err != nil {
		return formatCUEError(err)
	}

	unified := v.tree.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// formatCUEError flattens a CUE error list to its first error with
// path and position info.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &ShapeError{Message: err.Error()}
	}

	first := errs[0]
	shapeErr := &ShapeError{Message: first.Error()}
	if path := first.Path(); len(path) > 0 {
		shapeErr.Path = strings.Join(path, ".")
	}
	if positions := errors.Positions(first); len(positions) > 0 {
		shapeErr.Pos = positions[0]
	}
	return shapeErr
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}
