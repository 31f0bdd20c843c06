// Package catorder maintains the user's display order of categories.
//
// The saved order is never trusted as-is. Every read reconciles it against
// the canonical enumeration: saved names that are no longer canonical are
// dropped, and canonical names missing from the saved order are appended
// in canonical order.
package catorder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/roach88/workoutdiary/internal/diary"
	"github.com/roach88/workoutdiary/internal/kv"
)

// Policy reads, reconciles and reorders the persisted category order.
type Policy struct {
	storage   kv.Storage
	canonical []diary.Category
	logger    *slog.Logger
}

// New creates a policy reconciling against the canonical categories.
func New(storage kv.Storage, logger *slog.Logger) *Policy {
	return NewWithCanonical(storage, diary.Categories(), logger)
}

// NewWithCanonical creates a policy reconciling against an explicit set.
func NewWithCanonical(storage kv.Storage, canonical []diary.Category, logger *slog.Logger) *Policy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Policy{
		storage:   storage,
		canonical: append([]diary.Category(nil), canonical...),
		logger:    logger,
	}
}

// Load returns the saved order as stored. Absent or corrupt records yield
// an empty order; the failure is logged, never returned.
func (p *Policy) Load(ctx context.Context) []string {
	raw, ok, err := p.storage.Get(ctx, diary.CategoryOrderKey)
	if err != nil {
		p.logger.Warn("category order unreadable", "key", diary.CategoryOrderKey, "error", err)
		return []string{}
	}
	if !ok {
		return []string{}
	}

	var order []string
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		p.logger.Warn("category order corrupt", "key", diary.CategoryOrderKey, "error", err)
		return []string{}
	}
	if order == nil {
		order = []string{}
	}
	return order
}

// Save overwrites the saved order.
func (p *Policy) Save(ctx context.Context, order []string) error {
	if order == nil {
		order = []string{}
	}
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("save category order: %w", err)
	}
	if err := p.storage.Set(ctx, diary.CategoryOrderKey, string(data)); err != nil {
		return fmt.Errorf("save category order: %w", err)
	}
	return nil
}

// Reconciled returns the saved order reconciled against the canonical set.
func (p *Policy) Reconciled(ctx context.Context) []diary.Category {
	return Reconcile(p.Load(ctx), p.canonical)
}

// Ordered returns All followed by the reconciled order.
func (p *Policy) Ordered(ctx context.Context) []diary.Category {
	return append([]diary.Category{diary.All}, p.Reconciled(ctx)...)
}

// Reorder moves category moved into target's position in the reconciled
// order and saves the result. Moving forward lands moved just after target;
// moving backward lands it just before.
//
// It is a no-op, with no save, when moved equals target or either is not in
// the reconciled order.
func (p *Policy) Reorder(ctx context.Context, moved, target diary.Category) error {
	next, changed := Move(p.Reconciled(ctx), moved, target)
	if !changed {
		return nil
	}

	order := make([]string, len(next))
	for i, c := range next {
		order[i] = string(c)
	}
	if err := p.Save(ctx, order); err != nil {
		return err
	}
	p.logger.Debug("category reordered", "moved", moved, "target", target)
	return nil
}

// Reconcile drops saved names outside canonical (and duplicates) and
// appends canonical names missing from saved, in canonical order.
func Reconcile(saved []string, canonical []diary.Category) []diary.Category {
	allowed := make(map[diary.Category]bool, len(canonical))
	for _, c := range canonical {
		allowed[c] = true
	}

	out := make([]diary.Category, 0, len(canonical))
	seen := make(map[diary.Category]bool, len(canonical))
	for _, s := range saved {
		c := diary.Category(s)
		if allowed[c] && !seen[c] {
			out = append(out, c)
			seen[c] = true
		}
	}
	for _, c := range canonical {
		if !seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// Move removes moved from order and reinserts it at target's original
// index. It returns a new slice and whether anything changed.
func Move(order []diary.Category, moved, target diary.Category) ([]diary.Category, bool) {
	if moved == target {
		return order, false
	}
	from, to := index(order, moved), index(order, target)
	if from < 0 || to < 0 {
		return order, false
	}

	out := make([]diary.Category, 0, len(order))
	out = append(out, order[:from]...)
	out = append(out, order[from+1:]...)

	out = append(out[:to], append([]diary.Category{moved}, out[to:]...)...)
	return out, true
}

func index(order []diary.Category, c diary.Category) int {
	for i, o := range order {
		if o == c {
			return i
		}
	}
	return -1
}
