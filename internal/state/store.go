package state

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/roach88/workoutdiary/internal/diary"
	"github.com/roach88/workoutdiary/internal/ident"
)

// Persister saves the full tree. *persist.Gateway implements it.
type Persister interface {
	Save(ctx context.Context, tree diary.Tree) error
}

// EntryField names a weight field that can be quick-edited.
type EntryField string

// Quick-editable fields.
const (
	FieldWarmup  EntryField = "warmup"
	FieldWorking EntryField = "working"
)

// EntryInput carries the editable fields of an entry.
type EntryInput struct {
	Date    string
	Warmup  float64
	Working float64
}

// Store owns the state tree.
//
// Thread-safety: all methods are safe for concurrent use; mutations are
// serialized, including their save.
type Store struct {
	mu     sync.Mutex
	tree   diary.Tree
	saver  Persister
	ids    ident.Generator
	logger *slog.Logger
}

// New creates a store over an already loaded tree.
func New(tree diary.Tree, saver Persister, ids ident.Generator, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	tree = tree.Clone()
	return &Store{tree: tree, saver: saver, ids: ids, logger: logger}
}

// Tree returns a deep copy of the current tree.
func (s *Store) Tree() diary.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Clone()
}

// Exercise returns a copy of the exercise with the given id.
func (s *Store) Exercise(id string) (diary.Exercise, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.tree.FindExercise(id)
	if i < 0 {
		return diary.Exercise{}, false
	}
	return s.tree.Exercises[i].Clone(), true
}

// CreateExercise appends a new exercise with no entries.
func (s *Store) CreateExercise(ctx context.Context, name string, category diary.Category) (diary.Exercise, error) {
	name, err := validateExercise(name, category)
	if err != nil {
		return diary.Exercise{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ex := diary.Exercise{
		ID:       s.ids.Generate(),
		Name:     name,
		Category: category,
		Entries:  []diary.Entry{},
	}
	s.tree.Exercises = append(s.tree.Exercises, ex)
	return ex.Clone(), s.commit(ctx, "create exercise", "exercise_id", ex.ID)
}

// EditExercise renames and/or recategorizes an exercise. Entries are untouched.
// The exercise may keep a stored category that is not canonical, so a
// rename never forces a recategorization; moving to a new category requires
// a canonical one.
func (s *Store) EditExercise(ctx context.Context, id, name string, category diary.Category) error {
	name = diary.NormalizeName(name)
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.tree.FindExercise(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrExerciseNotFound, id)
	}
	if category != s.tree.Exercises[i].Category && !diary.IsCanonical(category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	s.tree.Exercises[i].Name = name
	s.tree.Exercises[i].Category = category
	return s.commit(ctx, "edit exercise", "exercise_id", id)
}

// DeleteExercise removes an exercise and all its entries.
// An unknown id is a no-op.
func (s *Store) DeleteExercise(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tree.Exercises[:0]
	for _, ex := range s.tree.Exercises {
		if ex.ID != id {
			kept = append(kept, ex)
		}
	}
	s.tree.Exercises = kept
	return s.commit(ctx, "delete exercise", "exercise_id", id)
}

// CreateEntry appends a new entry to an exercise.
func (s *Store) CreateEntry(ctx context.Context, exerciseID string, in EntryInput) (diary.Entry, error) {
	if err := validateEntry(in); err != nil {
		return diary.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.tree.FindExercise(exerciseID)
	if i < 0 {
		return diary.Entry{}, fmt.Errorf("%w: %s", ErrExerciseNotFound, exerciseID)
	}

	en := diary.Entry{
		ID:      s.ids.Generate(),
		Date:    in.Date,
		Warmup:  in.Warmup,
		Working: in.Working,
	}
	s.tree.Exercises[i].Entries = append(s.tree.Exercises[i].Entries, en)
	return en, s.commit(ctx, "create entry", "exercise_id", exerciseID, "entry_id", en.ID)
}

// EditEntry replaces an entry's date and weights. The id is unchanged.
func (s *Store) EditEntry(ctx context.Context, exerciseID, entryID string, in EntryInput) error {
	if err := validateEntry(in); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	en, err := s.findEntry(exerciseID, entryID)
	if err != nil {
		return err
	}
	en.Date = in.Date
	en.Warmup = in.Warmup
	en.Working = in.Working
	return s.commit(ctx, "edit entry", "exercise_id", exerciseID, "entry_id", entryID)
}

// DeleteEntry removes an entry. Unknown exercise or entry ids are a no-op.
func (s *Store) DeleteEntry(ctx context.Context, exerciseID, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.tree.FindExercise(exerciseID)
	if i < 0 {
		return nil
	}
	ex := &s.tree.Exercises[i]
	kept := ex.Entries[:0]
	for _, en := range ex.Entries {
		if en.ID != entryID {
			kept = append(kept, en)
		}
	}
	ex.Entries = kept
	return s.commit(ctx, "delete entry", "exercise_id", exerciseID, "entry_id", entryID)
}

// EditEntryField sets a single weight field.
//
// A non-finite value (NaN, ±Inf) is silently ignored: nothing changes,
// nothing is saved, and applied is false with a nil error.
func (s *Store) EditEntryField(ctx context.Context, exerciseID, entryID string, field EntryField, value float64) (applied bool, err error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		s.logger.Debug("ignored non-finite field edit", "exercise_id", exerciseID, "entry_id", entryID, "field", field)
		return false, nil
	}
	if field != FieldWarmup && field != FieldWorking {
		return false, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if value < 0 {
		return false, ErrNegativeWeight
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	en, err := s.findEntry(exerciseID, entryID)
	if err != nil {
		return false, err
	}
	if field == FieldWarmup {
		en.Warmup = value
	} else {
		en.Working = value
	}
	return true, s.commit(ctx, "edit entry field", "exercise_id", exerciseID, "entry_id", entryID, "field", field)
}

// Replace swaps in a whole new tree, e.g. after a validated import.
func (s *Store) Replace(ctx context.Context, tree diary.Tree) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tree = tree.Clone()
	return s.commit(ctx, "replace tree", "exercises", len(s.tree.Exercises))
}

// findEntry returns a pointer into the tree. Callers must hold mu.
func (s *Store) findEntry(exerciseID, entryID string) (*diary.Entry, error) {
	i := s.tree.FindExercise(exerciseID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrExerciseNotFound, exerciseID)
	}
	ex := &s.tree.Exercises[i]
	j := ex.FindEntry(entryID)
	if j < 0 {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}
	return &ex.Entries[j], nil
}

// commit saves the tree after a mutation. Callers must hold mu.
func (s *Store) commit(ctx context.Context, op string, attrs ...any) error {
	if err := s.saver.Save(ctx, s.tree); err != nil {
		s.logger.Error("save failed, change kept in memory", append([]any{"op", op, "error", err}, attrs...)...)
		return fmt.Errorf("%s: %w", op, err)
	}
	s.logger.Debug(op, attrs...)
	return nil
}

func validateExercise(name string, category diary.Category) (string, error) {
	name = diary.NormalizeName(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if !diary.IsCanonical(category) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return name, nil
}

func validateEntry(in EntryInput) error {
	if !diary.ValidDate(in.Date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, in.Date)
	}
	if !validWeight(in.Warmup) || !validWeight(in.Working) {
		return ErrNegativeWeight
	}
	return nil
}

func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 0
}
