package diary

// MigrationTable maps retired category names to their canonical replacement.
// The rename is one-way: a canonical name is never rewritten.
type MigrationTable map[Category]Category

// DefaultMigrations returns the built-in legacy renames.
func DefaultMigrations() MigrationTable {
	return MigrationTable{
		"Arms": Biceps,
	}
}

// Apply rewrites every exercise tagged with a retired category in place and
// returns the number of exercises changed.
func (m MigrationTable) Apply(t *Tree) int {
	changed := 0
	for i := range t.Exercises {
		ex := &t.Exercises[i]
		if IsCanonical(ex.Category) {
			continue
		}
		if to, ok := m[ex.Category]; ok {
			ex.Category = to
			changed++
		}
	}
	return changed
}

// Validate reports the first mapping whose target is not canonical.
func (m MigrationTable) Validate() error {
	for from, to := range m {
		if !IsCanonical(to) {
			return &MigrationError{From: from, To: to}
		}
	}
	return nil
}

// MigrationError describes an invalid migration table entry.
type MigrationError struct {
	From Category
	To   Category
}

func (e *MigrationError) Error() string {
	return "category migration " + string(e.From) + " -> " + string(e.To) + ": target is not a canonical category"
}
