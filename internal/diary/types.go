package diary

// Entry is one dated workout record of an exercise.
type Entry struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`    // "2024-01-15"
	Warmup  float64 `json:"warmup"`  // kg
	Working float64 `json:"working"` // kg
}

// Exercise is a named, categorized movement tracked over time.
type Exercise struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Entries  []Entry  `json:"entries"`
}

// Tree is the root of persistence and mutation.
type Tree struct {
	Exercises []Exercise `json:"exercises"`
}

// NewTree returns an empty tree with a non-nil exercise list.
func NewTree() Tree {
	return Tree{Exercises: []Exercise{}}
}

// Clone returns a deep copy of the tree.
// Nil collections are replaced by empty ones.
func (t Tree) Clone() Tree {
	out := Tree{Exercises: make([]Exercise, len(t.Exercises))}
	for i, ex := range t.Exercises {
		out.Exercises[i] = ex.Clone()
	}
	return out
}

// Clone returns a deep copy of the exercise.
func (e Exercise) Clone() Exercise {
	entries := make([]Entry, len(e.Entries))
	copy(entries, e.Entries)
	e.Entries = entries
	return e
}

// Normalize replaces nil collections with empty ones in place.
func (t *Tree) Normalize() {
	if t.Exercises == nil {
		t.Exercises = []Exercise{}
	}
	for i := range t.Exercises {
		if t.Exercises[i].Entries == nil {
			t.Exercises[i].Entries = []Entry{}
		}
	}
}

// FindExercise returns the index of the exercise with the given id, or -1.
func (t *Tree) FindExercise(id string) int {
	for i, ex := range t.Exercises {
		if ex.ID == id {
			return i
		}
	}
	return -1
}

// FindEntry returns the index of the entry with the given id, or -1.
func (e *Exercise) FindEntry(id string) int {
	for i, en := range e.Entries {
		if en.ID == id {
			return i
		}
	}
	return -1
}
