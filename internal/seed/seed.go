// Package seed builds the starter dataset used when no valid state exists.
package seed

import (
	"math/rand/v2"
	"time"

	"github.com/roach88/workoutdiary/internal/diary"
	"github.com/roach88/workoutdiary/internal/ident"
)

// sampleNames lists candidate exercise names per category.
var sampleNames = map[diary.Category][]string{
	diary.Biceps:    {"Biceps Curl", "Hammer Curl", "EZ-Bar Curl", "Cable Curl", "Preacher Curl"},
	diary.Triceps:   {"Triceps Pushdown", "Skull Crusher", "Overhead Triceps Extension", "Dips", "Close-Grip Bench Press"},
	diary.Legs:      {"Squat", "Leg Press", "Lunges", "Romanian Deadlift", "Leg Extension"},
	diary.Chest:     {"Bench Press", "Incline Dumbbell Press", "Chest Fly", "Cable Crossover", "Push-up"},
	diary.Back:      {"Lat Pulldown", "Seated Row", "Deadlift", "Pull-up", "T-Bar Row"},
	diary.Shoulders: {"Overhead Press", "Lateral Raise", "Front Raise", "Rear Delt Fly", "Arnold Press"},
}

// Ranges of the synthetic data, inclusive.
const (
	minPerCategory = 1
	maxPerCategory = 2
	historyDays    = 4 // today and the three days before
	minWarmup      = 5
	maxWarmup      = 30
	minWorking     = 30
	maxWorking     = 120
)

// Generator produces seeded trees.
type Generator struct {
	IDs  ident.Generator
	Now  func() time.Time
	Rand *rand.Rand
}

// New returns a generator using random ids, the wall clock and a randomly
// seeded source.
func New() *Generator {
	return &Generator{
		IDs:  ident.RandomGenerator{},
		Now:  time.Now,
		Rand: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Tree builds a starter dataset: one or two distinct exercises per canonical
// category, each with one entry per day for the last historyDays days.
func (g *Generator) Tree() diary.Tree {
	today := g.Now()
	tree := diary.NewTree()

	for _, cat := range diary.Categories() {
		names := append([]string(nil), sampleNames[cat]...)
		howMany := g.intn(minPerCategory, maxPerCategory)

		for i := 0; i < howMany && len(names) > 0; i++ {
			pick := g.Rand.IntN(len(names))
			name := names[pick]
			names = append(names[:pick], names[pick+1:]...)

			entries := make([]diary.Entry, 0, historyDays)
			for d := 0; d < historyDays; d++ {
				entries = append(entries, diary.Entry{
					ID:      g.IDs.Generate(),
					Date:    diary.FormatDate(today.AddDate(0, 0, -d)),
					Warmup:  float64(g.intn(minWarmup, maxWarmup)),
					Working: float64(g.intn(minWorking, maxWorking)),
				})
			}

			tree.Exercises = append(tree.Exercises, diary.Exercise{
				ID:       g.IDs.Generate(),
				Name:     name,
				Category: cat,
				Entries:  entries,
			})
		}
	}

	return tree
}

// intn returns a uniform integer in [lo, hi].
func (g *Generator) intn(lo, hi int) int {
	return lo + g.Rand.IntN(hi-lo+1)
}
