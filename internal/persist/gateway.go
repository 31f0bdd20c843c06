// Package persist reads and writes the state tree under its versioned key.
//
// Load never fails: a missing, unreadable, unparsable or shape-invalid
// record degrades to a freshly seeded tree, which is saved immediately.
// Save is synchronous; a mutation is durable once Save returns nil.
package persist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/workoutdiary/internal/codec"
	"github.com/roach88/workoutdiary/internal/diary"
	"github.com/roach88/workoutdiary/internal/kv"
)

// Seeder produces the starter tree used on first run and after corruption.
type Seeder interface {
	Tree() diary.Tree
}

// Gateway is the persistence boundary of the state tree.
type Gateway struct {
	storage kv.Storage
	seeder  Seeder
	codec   *codec.Codec
	logger  *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithMigrations sets the legacy category migration table applied on load.
func WithMigrations(m diary.MigrationTable) Option {
	return func(g *Gateway) { g.codec = codec.New(m) }
}

// WithLogger sets the logger used to report recoveries.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a gateway over storage. The default migration table is
// applied unless WithMigrations overrides it.
func New(storage kv.Storage, seeder Seeder, opts ...Option) *Gateway {
	g := &Gateway{
		storage: storage,
		seeder:  seeder,
		codec:   codec.New(diary.DefaultMigrations()),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load returns the persisted tree, or a seeded one if none can be trusted.
// Records carrying retired categories are migrated and written back.
func (g *Gateway) Load(ctx context.Context) diary.Tree {
	raw, ok, err := g.storage.Get(ctx, diary.StateKey)
	if err != nil {
		g.logger.Warn("state unreadable, reseeding", "key", diary.StateKey, "error", err)
		return g.reseed(ctx)
	}
	if !ok {
		g.logger.Info("no saved state, seeding", "key", diary.StateKey)
		return g.reseed(ctx)
	}

	tree, migrated, err := g.codec.Decode([]byte(raw))
	if err != nil {
		g.logger.Warn("state corrupt, reseeding", "key", diary.StateKey, "error", err)
		return g.reseed(ctx)
	}

	if migrated > 0 {
		g.logger.Info("migrated legacy categories", "exercises", migrated)
		if err := g.Save(ctx, tree); err != nil {
			g.logger.Warn("failed to save migrated state", "error", err)
		}
	}

	g.logger.Debug("state loaded", "exercises", len(tree.Exercises))
	return tree
}

// Save overwrites the persisted tree.
func (g *Gateway) Save(ctx context.Context, tree diary.Tree) error {
	data, err := g.codec.Marshal(tree)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	if err := g.storage.Set(ctx, diary.StateKey, string(data)); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (g *Gateway) reseed(ctx context.Context) diary.Tree {
	tree := g.seeder.Tree()
	tree.Normalize()
	if err := g.Save(ctx, tree); err != nil {
		g.logger.Warn("failed to save seeded state", "error", err)
	}
	return tree
}
