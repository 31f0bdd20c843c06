package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/roach88/workoutdiary/internal/diary"
	"github.com/roach88/workoutdiary/internal/nav"
)

// kg formats a weight the way the diary displays it: shortest decimal form.
func kg(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64) + "kg"
}

func writeTabs(w io.Writer, tabs []nav.Tab) {
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := fmt.Sprintf("%s (%d)", tab.Category, tab.Count)
		if tab.Active {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	fmt.Fprintln(w, strings.Join(parts, "  "))
}

func writeHome(w io.Writer, home nav.HomeScreen) {
	writeTabs(w, home.Tabs)
	if len(home.Sections) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No exercises.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, section := range home.Sections {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "%s\n", section.Category)
		for _, c := range section.Cards {
			warmup, working := "-", "-"
			if c.Latest != nil {
				warmup, working = kg(c.Latest.Warmup), kg(c.Latest.Working)
			}
			fmt.Fprintf(tw, "  %s\twarmup %s\tworking %s\t%s\n", c.Name, warmup, working, c.ExerciseID)
		}
	}
	tw.Flush()
}

func writeDetail(w io.Writer, d nav.DetailScreen) {
	fmt.Fprintf(w, "%s (%s)  %s\n", d.Name, d.Category, d.ExerciseID)
	if len(d.History) == 0 {
		fmt.Fprintln(w, "No workouts yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range d.History {
		fmt.Fprintf(tw, "%s\twarmup %s\tworking %s\t%s\n", row.DisplayDate, kg(row.Warmup), kg(row.Working), row.EntryID)
	}
	tw.Flush()
	if d.TotalEntries > len(d.History) {
		fmt.Fprintf(w, "Showing %d of %d workouts.\n", len(d.History), d.TotalEntries)
	}
}

func writeScreen(w io.Writer, s nav.Screen) {
	if s.Detail != nil {
		writeDetail(w, *s.Detail)
		return
	}
	if s.Home != nil {
		writeHome(w, *s.Home)
	}
}

func writeExercise(w io.Writer, verb string, ex diary.Exercise) {
	fmt.Fprintf(w, "%s exercise %s: %s (%s)\n", verb, ex.ID, ex.Name, ex.Category)
}

func writeEntry(w io.Writer, verb string, exerciseID string, en diary.Entry) {
	fmt.Fprintf(w, "%s workout %s for %s: %s, warmup %s, working %s\n",
		verb, en.ID, exerciseID, diary.DisplayDate(en.Date), kg(en.Warmup), kg(en.Working))
}
