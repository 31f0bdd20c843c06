// Package ident generates opaque identifiers for exercises and entries.
package ident

import "github.com/google/uuid"

// Generator produces identifiers. Ids are assigned once and never
// regenerated for an existing record.
type Generator interface {
	Generate() string
}

// RandomGenerator generates random (version 4) UUID strings.
//
// Format: "550e8400-e29b-41d4-a716-446655440000" (36 characters)
//
// Thread-safety: RandomGenerator is stateless and safe for concurrent use.
type RandomGenerator struct{}

// Generate creates a new random UUID.
// Panics if the system randomness source fails (should never happen in practice).
func (RandomGenerator) Generate() string {
	return uuid.Must(uuid.NewRandom()).String()
}
