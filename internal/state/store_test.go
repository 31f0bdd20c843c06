package state

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/workoutdiary/internal/codec"
	"github.com/roach88/workoutdiary/internal/diary"
	"github.com/roach88/workoutdiary/internal/persist"
	"github.com/roach88/workoutdiary/internal/testutil"
)

type emptySeeder struct{}

func (emptySeeder) Tree() diary.Tree { return diary.NewTree() }

type fixture struct {
	store   *Store
	storage *testutil.FailingStorage
	gateway *persist.Gateway
}

func newFixture(t *testing.T, tree diary.Tree) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	storage := testutil.NewFailingStorage(false, false)
	gw := persist.New(storage, emptySeeder{}, persist.WithLogger(logger))
	return &fixture{
		store:   New(tree, gw, testutil.NewCountingGenerator("id"), logger),
		storage: storage,
		gateway: gw,
	}
}

// persisted reloads the tree from storage.
func (f *fixture) persisted(t *testing.T) diary.Tree {
	t.Helper()
	raw, ok := f.storage.Raw(diary.StateKey)
	require.True(t, ok, "nothing persisted")
	tree, err := codec.New(nil).Import([]byte(raw))
	require.NoError(t, err)
	return tree
}

func baseTree() diary.Tree {
	return diary.Tree{Exercises: []diary.Exercise{
		{ID: "squat", Name: "Squat", Category: diary.Legs, Entries: []diary.Entry{
			{ID: "s1", Date: "2024-01-01", Warmup: 20, Working: 100},
			{ID: "s2", Date: "2024-01-08", Warmup: 25, Working: 105},
		}},
		{ID: "curl", Name: "Curl", Category: diary.Biceps, Entries: []diary.Entry{}},
	}}
}

func TestCreateExercise(t *testing.T) {
	f := newFixture(t, diary.NewTree())
	ctx := context.Background()

	ex, err := f.store.CreateExercise(ctx, "  Bench Press ", diary.Chest)
	require.NoError(t, err)

	assert.Equal(t, "id-1", ex.ID)
	assert.Equal(t, "Bench Press", ex.Name)
	assert.Equal(t, diary.Chest, ex.Category)
	assert.NotNil(t, ex.Entries)
	assert.Empty(t, ex.Entries)

	assert.Equal(t, f.store.Tree(), f.persisted(t))
	assert.Equal(t, 1, f.storage.WriteCount(diary.StateKey))
}

func TestCreateExercise_Validation(t *testing.T) {
	f := newFixture(t, diary.NewTree())
	ctx := context.Background()

	_, err := f.store.CreateExercise(ctx, "   ", diary.Chest)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = f.store.CreateExercise(ctx, "Curl", "Arms")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = f.store.CreateExercise(ctx, "Curl", diary.All)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	assert.Empty(t, f.store.Tree().Exercises)
	assert.Equal(t, 0, f.storage.WriteCount(diary.StateKey))
}

func TestEditExercise(t *testing.T) {
	f := newFixture(t, baseTree())
	ctx := context.Background()

	require.NoError(t, f.store.EditExercise(ctx, "squat", "Back Squat", diary.Legs))
	require.NoError(t, f.store.EditExercise(ctx, "curl", "Pushdown", diary.Triceps))

	squat, ok := f.store.Exercise("squat")
	require.True(t, ok)
	assert.Equal(t, "Back Squat", squat.Name)
	assert.Len(t, squat.Entries, 2, "entries untouched")

	curl, _ := f.store.Exercise("curl")
	assert.Equal(t, diary.Triceps, curl.Category)

	assert.Equal(t, f.store.Tree(), f.persisted(t))
}

func TestEditExercise_Errors(t *testing.T) {
	f := newFixture(t, baseTree())
	ctx := context.Background()

	assert.ErrorIs(t, f.store.EditExercise(ctx, "missing", "X", diary.Legs), ErrExerciseNotFound)
	assert.ErrorIs(t, f.store.EditExercise(ctx, "squat", "", diary.Legs), ErrEmptyName)
	assert.ErrorIs(t, f.store.EditExercise(ctx, "squat", "X", "Cardio"), ErrUnknownCategory)
	assert.Equal(t, baseTree(), f.store.Tree())
}

func TestEditExercise_KeepsStoredNonCanonicalCategory(t *testing.T) {
	tree := baseTree()
	tree.Exercises = append(tree.Exercises, diary.Exercise{ID: "row", Name: "Rowing", Category: "Cardio", Entries: []diary.Entry{}})
	f := newFixture(t, tree)
	ctx := context.Background()

	require.NoError(t, f.store.EditExercise(ctx, "row", "Ergometer", "Cardio"))
	row, _ := f.store.Exercise("row")
	assert.Equal(t, "Ergometer", row.Name)
	assert.Equal(t, diary.Category("Cardio"), row.Category)

	assert.ErrorIs(t, f.store.EditExercise(ctx, "row", "Ergometer", "Core"), ErrUnknownCategory)
	assert.ErrorIs(t, f.store.EditExercise(ctx, "row", "Ergometer", diary.All), ErrUnknownCategory)

	require.NoError(t, f.store.EditExercise(ctx, "row", "Ergometer", diary.Back))
	row, _ = f.store.Exercise("row")
	assert.Equal(t, diary.Back, row.Category)
	assert.Equal(t, f.store.Tree(), f.persisted(t))
}

func TestDeleteExercise_Idempotent(t *testing.T) {
	f := newFixture(t, baseTree())
	ctx := context.Background()

	require.NoError(t, f.store.DeleteExercise(ctx, "squat"))
	after := f.store.Tree()
	require.Len(t, after.Exercises, 1)
	assert.Equal(t, "curl", after.Exercises[0].ID)

	require.NoError(t, f.store.DeleteExercise(ctx, "squat"))
	assert.Equal(t, after, f.store.Tree())
	assert.Equal(t, after, f.persisted(t))
}

func TestCreateEntry(t *testing.T) {
	f := newFixture(t, baseTree())
	ctx := context.Background()

	en, err := f.store.CreateEntry(ctx, "curl", EntryInput{Date: "2024-02-01", Warmup: 8, Working: 14.5})
	require.NoError(t, err)
	assert.Equal(t, diary.Entry{ID: "id-1", Date: "2024-02-01", Warmup: 8, Working: 14.5}, en)

	curl, _ := f.store.Exercise("curl")
	assert.Equal(t, []diary.Entry{en}, curl.Entries)
	assert.Equal(t, f.store.Tree(), f.persisted(t))
}

func TestCreateEntry_Validation(t *testing.T) {
	f := newFixture(t, baseTree())
	ctx := context.Background()

	tests := []struct {
		name string
		ex   string
		in   EntryInput
		want error
	}{
		{"unknown exercise", "nope", EntryInput{Date: "2024-01-01"}, ErrExerciseNotFound},
		{"bad date", "curl", EntryInput{Date: "01/02/2024"}, ErrInvalidDate},
		{"unpadded date", "curl", EntryInput{Date: "2024-1-2"}, ErrInvalidDate},
		{"negative warmup", "curl", EntryInput{Date: "2024-01-01", Warmup: -1}, ErrNegativeWeight},
		{"nan working", "curl", EntryInput{Date: "2024-01-01", Working: math.NaN()}, ErrNegativeWeight},
		{"inf working", "curl", EntryInput{Date: "2024-01-01", Working: math.Inf(1)}, ErrNegativeWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.store.CreateEntry(ctx, tt.ex, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, baseTree(), f.store.Tree())
	assert.Equal(t, 0, f.storage.WriteCount(diary.StateKey))
}

func TestEditEntry(t *testing.T) {
	f := newFixture(t, baseTree())
	ctx := context.Background()

	require.NoError(t, f.store.EditEntry(ctx, "squat", "s1", EntryInput{Date: "2024-01-02", Warmup: 30, Working: 110}))

	squat, _ := f.store.Exercise("squat")
	assert.Equal(t, diary.Entry{ID: "s1", Date: "2024-01-02", Warmup: 30, Working: 110}, squat.Entries[0])
	assert.Equal(t, f.store.Tree(), f.persisted(t))
}

func TestEditEntry_Errors(t *testing.T) {
	f := newFixture(t, baseTree())
	ctx := context.Background()

	assert.ErrorIs(t, f.store.EditEntry(ctx, "nope", "s1", EntryInput{Date: "2024-01-01"}), ErrExerciseNotFound)
	assert.ErrorIs(t, f.store.EditEntry(ctx, "squat", "nope", EntryInput{Date: "2024-01-01"}), ErrEntryNotFound)
	assert.ErrorIs(t, f.store.EditEntry(ctx, "squat", "s1", EntryInput{Date: ""}), ErrInvalidDate)
}

func TestDeleteEntry(t *testing.T) {
	f := newFixture(t, baseTree())
	ctx := context.Background()

	require.NoError(t, f.store.DeleteEntry(ctx, "squat", "s1"))
	squat, _ := f.store.Exercise("squat")
	require.Len(t, squat.Entries, 1)
	assert.Equal(t, "s2", squat.Entries[0].ID)

	// Unknown ids are no-ops.
	require.NoError(t, f.store.DeleteEntry(ctx, "squat", "s1"))
	require.NoError(t, f.store.DeleteEntry(ctx, "nope", "s2"))
	squat, _ = f.store.Exercise("squat")
	assert.Len(t, squat.Entries, 1)
	assert.Equal(t, f.store.Tree(), f.persisted(t))
}

func TestEditEntryField_NonFiniteIgnored(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		f := newFixture(t, baseTree())

		applied, err := f.store.EditEntryField(context.Background(), "squat", "s1", FieldWarmup, v)
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, baseTree(), f.store.Tree())
		assert.Equal(t, 0, f.storage.WriteCount(diary.StateKey), "no persistence for ignored edits")
	}
}

func TestEditEntryField_UpdatesOnlyThatField(t *testing.T) {
	f := newFixture(t, baseTree())
	ctx := context.Background()

	applied, err := f.store.EditEntryField(ctx, "squat", "s1", FieldWarmup, 42)
	require.NoError(t, err)
	assert.True(t, applied)

	squat, _ := f.store.Exercise("squat")
	assert.Equal(t, diary.Entry{ID: "s1", Date: "2024-01-01", Warmup: 42, Working: 100}, squat.Entries[0])

	applied, err = f.store.EditEntryField(ctx, "squat", "s1", FieldWorking, 120)
	require.NoError(t, err)
	assert.True(t, applied)

	squat, _ = f.store.Exercise("squat")
	assert.Equal(t, diary.Entry{ID: "s1", Date: "2024-01-01", Warmup: 42, Working: 120}, squat.Entries[0])
	assert.Equal(t, f.store.Tree(), f.persisted(t))
	assert.Equal(t, 2, f.storage.WriteCount(diary.StateKey))
}

func TestEditEntryField_Errors(t *testing.T) {
	f := newFixture(t, baseTree())
	ctx := context.Background()

	_, err := f.store.EditEntryField(ctx, "squat", "s1", "date", 1)
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = f.store.EditEntryField(ctx, "squat", "s1", FieldWorking, -5)
	assert.ErrorIs(t, err, ErrNegativeWeight)

	_, err = f.store.EditEntryField(ctx, "squat", "zzz", FieldWorking, 5)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = f.store.EditEntryField(ctx, "zzz", "s1", FieldWorking, 5)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestReplace(t *testing.T) {
	f := newFixture(t, baseTree())
	ctx := context.Background()

	next := diary.Tree{Exercises: []diary.Exercise{{ID: "row", Name: "Row", Category: diary.Back, Entries: []diary.Entry{}}}}
	require.NoError(t, f.store.Replace(ctx, next))

	assert.Equal(t, next, f.store.Tree())
	assert.Equal(t, next, f.persisted(t))
}

func TestSaveFailure_KeepsInMemoryChange(t *testing.T) {
	f := newFixture(t, baseTree())
	f.storage.FailSet = true
	ctx := context.Background()

	ex, err := f.store.CreateExercise(ctx, "Dips", diary.Triceps)
	require.Error(t, err)
	assert.ErrorIs(t, err, testutil.ErrInjected)

	got, ok := f.store.Exercise(ex.ID)
	require.True(t, ok, "change stands despite failed save")
	assert.Equal(t, "Dips", got.Name)
}

func TestTree_ReturnsCopy(t *testing.T) {
	f := newFixture(t, baseTree())

	tree := f.store.Tree()
	tree.Exercises[0].Name = "mutated"
	tree.Exercises[0].Entries[0].Working = 0

	assert.Equal(t, baseTree(), f.store.Tree())
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	in := baseTree()
	f := newFixture(t, in)
	in.Exercises[0].Name = "mutated"

	squat, _ := f.store.Exercise("squat")
	assert.Equal(t, "Squat", squat.Name)
}

func TestMutationSequence_RoundTrips(t *testing.T) {
	f := newFixture(t, diary.NewTree())
	ctx := context.Background()

	ex, err := f.store.CreateExercise(ctx, "Overhead Press", diary.Shoulders)
	require.NoError(t, err)
	assert.Equal(t, f.store.Tree(), f.persisted(t))

	en, err := f.store.CreateEntry(ctx, ex.ID, EntryInput{Date: "2024-03-01", Warmup: 20, Working: 50})
	require.NoError(t, err)
	assert.Equal(t, f.store.Tree(), f.persisted(t))

	_, err = f.store.EditEntryField(ctx, ex.ID, en.ID, FieldWorking, 52.5)
	require.NoError(t, err)
	assert.Equal(t, f.store.Tree(), f.persisted(t))

	require.NoError(t, f.store.EditExercise(ctx, ex.ID, "Push Press", diary.Shoulders))
	assert.Equal(t, f.store.Tree(), f.persisted(t))

	require.NoError(t, f.store.DeleteEntry(ctx, ex.ID, en.ID))
	assert.Equal(t, f.store.Tree(), f.persisted(t))

	require.NoError(t, f.store.DeleteExercise(ctx, ex.ID))
	assert.Equal(t, f.store.Tree(), f.persisted(t))
	assert.Empty(t, f.store.Tree().Exercises)

	// The gateway reads back exactly what the store holds.
	assert.Equal(t, f.store.Tree(), f.gateway.Load(ctx))
}
