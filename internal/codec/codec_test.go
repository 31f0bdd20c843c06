package codec

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/workoutdiary/internal/diary"
)

func fixtureTree() diary.Tree {
	return diary.Tree{Exercises: []diary.Exercise{
		{
			ID: "ex-1", Name: "Squat", Category: diary.Legs,
			Entries: []diary.Entry{
				{ID: "en-1", Date: "2024-01-15", Warmup: 20, Working: 100},
				{ID: "en-2", Date: "2024-01-12", Warmup: 17.5, Working: 92.5},
			},
		},
		{ID: "ex-2", Name: "Curl <EZ>", Category: diary.Biceps, Entries: []diary.Entry{}},
	}}
}

func TestExport_Golden(t *testing.T) {
	data, err := New(diary.DefaultMigrations()).Export(fixtureTree())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "export_basic", data)
}

func TestExport_RoundTripIsByteIdentical(t *testing.T) {
	c := New(diary.DefaultMigrations())

	first, err := c.Export(fixtureTree())
	require.NoError(t, err)

	tree, err := c.Import(first)
	require.NoError(t, err)
	assert.Equal(t, fixtureTree(), tree)

	second, err := c.Export(tree)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestExport_NilCollections(t *testing.T) {
	data, err := New(nil).Export(diary.Tree{})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"exercises\": []\n}\n", string(data))
}

func TestMarshal_Compact(t *testing.T) {
	tree := diary.Tree{Exercises: []diary.Exercise{{ID: "a", Name: "Curl", Category: diary.Biceps}}}

	data, err := New(nil).Marshal(tree)
	require.NoError(t, err)
	assert.Equal(t, `{"exercises":[{"id":"a","name":"Curl","category":"Biceps","entries":[]}]}`, string(data))
}

func TestImport_MigratesRetiredCategory(t *testing.T) {
	text := `{"exercises":[{"id":"a","name":"Curl","category":"Arms","entries":[]}]}`

	tree, err := New(diary.DefaultMigrations()).Import([]byte(text))
	require.NoError(t, err)
	require.Len(t, tree.Exercises, 1)
	assert.Equal(t, diary.Biceps, tree.Exercises[0].Category)
	assert.Equal(t, "Curl", tree.Exercises[0].Name)
	assert.NotNil(t, tree.Exercises[0].Entries)
}

func TestImport_ConfigurableMigrationTable(t *testing.T) {
	table := diary.MigrationTable{"Arms": diary.Biceps, "Tricesp": diary.Triceps}
	text := `{"exercises":[
		{"id":"a","name":"Curl","category":"Arms","entries":[]},
		{"id":"b","name":"Pushdown","category":"Tricesp","entries":[]},
		{"id":"c","name":"Squat","category":"Legs","entries":[]}
	]}`

	tree, migrated, err := New(table).Decode([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, 2, migrated)
	assert.Equal(t, diary.Biceps, tree.Exercises[0].Category)
	assert.Equal(t, diary.Triceps, tree.Exercises[1].Category)
	assert.Equal(t, diary.Legs, tree.Exercises[2].Category)
}

func TestImport_NilTableKeepsCategories(t *testing.T) {
	text := `{"exercises":[{"id":"a","name":"Curl","category":"Arms","entries":[]}]}`

	tree, migrated, err := New(nil).Decode([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, 0, migrated)
	assert.Equal(t, diary.Category("Arms"), tree.Exercises[0].Category)
}

func TestImport_MalformedSyntax(t *testing.T) {
	for _, text := range []string{``, `{`, `not json`, `{"exercises":[}`} {
		_, err := New(nil).Import([]byte(text))
		require.Error(t, err, "input %q", text)
		assert.True(t, IsMalformedSyntax(err), "input %q: %v", text, err)
		assert.False(t, IsInvalidShape(err))
	}
}

func TestImport_InvalidShape(t *testing.T) {
	for _, text := range []string{
		`[]`,
		`{"exercises":null}`,
		`{"exercises":[{"id":1,"name":"Curl","category":"Biceps","entries":[]}]}`,
		`{"exercises":[{"id":"a","name":"Curl","category":"Biceps"}]}`,
	} {
		_, err := New(nil).Import([]byte(text))
		require.Error(t, err, "input %q", text)
		assert.True(t, IsInvalidShape(err), "input %q: %v", text, err)

		var ie *ImportError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, InvalidShape, ie.Kind)
	}
}

func TestImport_DropsUnknownFields(t *testing.T) {
	text := `{"app":"diary","exercises":[{"id":"a","name":"Row","category":"Back","notes":"x","entries":[{"id":"e","date":"2024-01-01","warmup":10,"working":40,"rpe":8}]}]}`

	tree, err := New(nil).Import([]byte(text))
	require.NoError(t, err)

	out, err := New(nil).Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"exercises":[{"id":"a","name":"Row","category":"Back","entries":[{"id":"e","date":"2024-01-01","warmup":10,"working":40}]}]}`, string(out))
}

func TestImportError_Message(t *testing.T) {
	_, err := New(nil).Import([]byte(`{`))
	assert.Contains(t, err.Error(), "MALFORMED_SYNTAX")

	_, err = New(nil).Import([]byte(`{}`))
	assert.Contains(t, err.Error(), "INVALID_SHAPE")
}
