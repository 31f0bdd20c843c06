package testutil

import (
	"fmt"
	"sync"
)

// CountingGenerator is an ident.Generator returning "<prefix>-1",
// "<prefix>-2", ... forever.
//
// Thread-safety: CountingGenerator is safe for concurrent use via internal mutex.
type CountingGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewCountingGenerator creates a generator with the given prefix.
// An empty prefix defaults to "id".
func NewCountingGenerator(prefix string) *CountingGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &CountingGenerator{prefix: prefix}
}

// Generate returns the next id.
func (g *CountingGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
