package diary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationTable_Apply(t *testing.T) {
	tree := Tree{Exercises: []Exercise{
		{ID: "a", Name: "Curl", Category: "Arms"},
		{ID: "b", Name: "Squat", Category: Legs},
		{ID: "c", Name: "Run", Category: "Cardio"},
	}}

	n := DefaultMigrations().Apply(&tree)

	assert.Equal(t, 1, n)
	assert.Equal(t, Biceps, tree.Exercises[0].Category)
	assert.Equal(t, Legs, tree.Exercises[1].Category)
	// Unknown categories without a mapping are left alone.
	assert.Equal(t, Category("Cardio"), tree.Exercises[2].Category)
}

func TestMigrationTable_NeverRewritesCanonical(t *testing.T) {
	m := MigrationTable{Legs: Chest}
	tree := Tree{Exercises: []Exercise{{ID: "a", Category: Legs}}}

	assert.Equal(t, 0, m.Apply(&tree))
	assert.Equal(t, Legs, tree.Exercises[0].Category)
}

func TestMigrationTable_Validate(t *testing.T) {
	require.NoError(t, DefaultMigrations().Validate())

	err := MigrationTable{"Arms": "Forearms"}.Validate()
	require.Error(t, err)
	var me *MigrationError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, Category("Arms"), me.From)
	assert.Contains(t, err.Error(), "not a canonical category")
}
