// Package codec converts state trees to and from their JSON text form.
//
// The same pipeline serves the persisted store record and user export
// files: parse, check the shape predicate, decode, then apply the legacy
// category migration table.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/workoutdiary/internal/diary"
	"github.com/roach88/workoutdiary/internal/schema"
)

// Codec encodes and decodes state trees.
type Codec struct {
	migrations diary.MigrationTable
	validator  *schema.Validator
}

// New returns a codec applying the given migration table on decode.
// A nil table applies no migrations.
func New(migrations diary.MigrationTable) *Codec {
	return &Codec{migrations: migrations, validator: schema.Default()}
}

// Export renders tree as indented JSON with a trailing newline.
// Import of the output yields an equal tree, and exporting that tree again
// yields identical bytes.
func (c *Codec) Export(tree diary.Tree) ([]byte, error) {
	return encode(tree, "  ")
}

// Marshal renders tree as compact JSON for storage.
func (c *Codec) Marshal(tree diary.Tree) ([]byte, error) {
	data, err := encode(tree, "")
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(data, "\n"), nil
}

// Import parses text into a migrated tree.
// Errors are *ImportError of kind MalformedSyntax or InvalidShape.
func (c *Codec) Import(data []byte) (diary.Tree, error) {
	tree, _, err := c.Decode(data)
	return tree, err
}

// Decode is Import that also reports how many exercises were migrated.
func (c *Codec) Decode(data []byte) (diary.Tree, int, error) {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return diary.Tree{}, 0, &ImportError{Kind: MalformedSyntax, Err: err}
	}

	if err := c.validator.Validate(generic); err != nil {
		return diary.Tree{}, 0, &ImportError{Kind: InvalidShape, Err: err}
	}

	var tree diary.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return diary.Tree{}, 0, &ImportError{Kind: InvalidShape, Err: err}
	}
	tree.Normalize()

	migrated := c.migrations.Apply(&tree)
	return tree, migrated, nil
}

// encode writes tree as JSON without HTML escaping so names such as
// "Curl <EZ>" survive unchanged.
func encode(tree diary.Tree, indent string) ([]byte, error) {
	tree = tree.Clone()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	return buf.Bytes(), nil
}
