// Package nav builds the Home and Detail screens from the state tree and
// tells observers which screen is shown.
//
// Screen building is pure view selection; side effects such as hiding the
// header or recording history belong to Observers.
package nav

import (
	"context"
	"log/slog"

	"github.com/roach88/workoutdiary/internal/diary"
	"github.com/roach88/workoutdiary/internal/view"
)

// DefaultHistoryLimit is how many entries the Detail screen shows:
// the latest plus three previous.
const DefaultHistoryLimit = 4

// TreeSource provides the current tree. *state.Store implements it.
type TreeSource interface {
	Tree() diary.Tree
}

// OrderSource provides the reconciled category order. *catorder.Policy
// implements it.
type OrderSource interface {
	Reconciled(ctx context.Context) []diary.Category
}

// ScreenKind identifies a screen.
type ScreenKind string

// Screens.
const (
	ScreenHome   ScreenKind = "home"
	ScreenDetail ScreenKind = "detail"
)

// Route is what observers are told after each navigation.
type Route struct {
	Screen     ScreenKind     `json:"screen"`
	Category   diary.Category `json:"category,omitempty"`
	ExerciseID string         `json:"exercise_id,omitempty"`
}

// Observer reacts to navigation. ChromeVisible reports whether the global
// header and category tabs should be shown.
type Observer interface {
	Navigated(ctx context.Context, route Route, chromeVisible bool)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, route Route, chromeVisible bool)

// Navigated calls f.
func (f ObserverFunc) Navigated(ctx context.Context, route Route, chromeVisible bool) {
	f(ctx, route, chromeVisible)
}

// Tab is one category filter button.
type Tab struct {
	Category diary.Category `json:"category"`
	Count    int            `json:"count"`
	Active   bool           `json:"active"`
}

// Card summarizes one exercise on the Home screen.
type Card struct {
	ExerciseID string         `json:"exercise_id"`
	Name       string         `json:"name"`
	Category   diary.Category `json:"category"`
	Latest     *diary.Entry   `json:"latest,omitempty"`
}

// Section is a category heading with its cards.
type Section struct {
	Category diary.Category `json:"category"`
	Cards    []Card         `json:"cards"`
}

// HomeScreen is the category-filtered exercise list.
type HomeScreen struct {
	Active   diary.Category `json:"active"`
	Tabs     []Tab          `json:"tabs"`
	Sections []Section      `json:"sections"`
}

// HistoryRow is one entry on the Detail screen.
type HistoryRow struct {
	EntryID     string  `json:"entry_id"`
	Date        string  `json:"date"`
	DisplayDate string  `json:"display_date"`
	Warmup      float64 `json:"warmup"`
	Working     float64 `json:"working"`
}

// DetailScreen is one exercise with its most recent history.
type DetailScreen struct {
	ExerciseID   string         `json:"exercise_id"`
	Name         string         `json:"name"`
	Category     diary.Category `json:"category"`
	History      []HistoryRow   `json:"history"`
	TotalEntries int            `json:"total_entries"`
}

// Screen is the result of a navigation: exactly one of Home or Detail is set.
type Screen struct {
	Route  Route         `json:"route"`
	Home   *HomeScreen   `json:"home,omitempty"`
	Detail *DetailScreen `json:"detail,omitempty"`
}

// Navigator composes view selection with navigation observers.
type Navigator struct {
	tree         TreeSource
	order        OrderSource
	historyLimit int
	observers    []Observer
	logger       *slog.Logger
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithHistoryLimit sets how many entries Detail shows. Values below 1 are
// ignored.
func WithHistoryLimit(n int) Option {
	return func(nv *Navigator) {
		if n > 0 {
			nv.historyLimit = n
		}
	}
}

// WithObserver registers an observer. Observers run in registration order.
func WithObserver(o Observer) Option {
	return func(nv *Navigator) { nv.observers = append(nv.observers, o) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(nv *Navigator) {
		if l != nil {
			nv.logger = l
		}
	}
}

// New creates a navigator.
func New(tree TreeSource, order OrderSource, opts ...Option) *Navigator {
	nv := &Navigator{
		tree:         tree,
		order:        order,
		historyLimit: DefaultHistoryLimit,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(nv)
	}
	return nv
}

// Home builds the Home screen for the active category and shows chrome.
// An unknown active category falls back to All. Exercises whose category is
// not in the display order are listed after it, so nothing stored is hidden.
func (nv *Navigator) Home(ctx context.Context, active diary.Category) HomeScreen {
	if active != diary.All && !diary.IsCanonical(active) {
		active = diary.All
	}

	exercises := nv.tree.Tree().Exercises
	reconciled := nv.order.Reconciled(ctx)

	screen := HomeScreen{Active: active, Tabs: []Tab{}, Sections: []Section{}}
	for _, c := range view.OrderedCategories(reconciled) {
		screen.Tabs = append(screen.Tabs, Tab{
			Category: c,
			Count:    view.CountByCategory(exercises, c),
			Active:   c == active,
		})
	}

	filtered := view.FilterByCategory(exercises, active)
	groups := view.GroupByCategory(filtered)
	for _, c := range sectionOrder(filtered, reconciled) {
		list := groups[c]
		if len(list) == 0 {
			continue
		}
		section := Section{Category: c, Cards: make([]Card, 0, len(list))}
		for _, ex := range list {
			section.Cards = append(section.Cards, card(ex))
		}
		screen.Sections = append(screen.Sections, section)
	}

	nv.notify(ctx, Route{Screen: ScreenHome, Category: active}, true)
	return screen
}

// Detail builds the Detail screen for exercise id and hides chrome.
// An unknown id yields the Home screen for All.
func (nv *Navigator) Detail(ctx context.Context, id string) Screen {
	tree := nv.tree.Tree()
	i := tree.FindExercise(id)
	if i < 0 {
		nv.logger.Debug("exercise not found, showing home", "exercise_id", id)
		home := nv.Home(ctx, diary.All)
		return Screen{Route: Route{Screen: ScreenHome, Category: diary.All}, Home: &home}
	}

	ex := tree.Exercises[i]
	history := view.SortedHistory(ex)
	shown := history
	if len(shown) > nv.historyLimit {
		shown = shown[:nv.historyLimit]
	}

	detail := &DetailScreen{
		ExerciseID:   ex.ID,
		Name:         ex.Name,
		Category:     ex.Category,
		History:      make([]HistoryRow, 0, len(shown)),
		TotalEntries: len(history),
	}
	for _, en := range shown {
		detail.History = append(detail.History, HistoryRow{
			EntryID:     en.ID,
			Date:        en.Date,
			DisplayDate: diary.DisplayDate(en.Date),
			Warmup:      en.Warmup,
			Working:     en.Working,
		})
	}

	route := Route{Screen: ScreenDetail, ExerciseID: ex.ID}
	nv.notify(ctx, route, false)
	return Screen{Route: route, Detail: detail}
}

func (nv *Navigator) notify(ctx context.Context, route Route, chromeVisible bool) {
	for _, o := range nv.observers {
		o.Navigated(ctx, route, chromeVisible)
	}
}

// sectionOrder is reconciled followed by any categories outside it, such as
// retired names with no migration, in order of first appearance.
func sectionOrder(exercises []diary.Exercise, reconciled []diary.Category) []diary.Category {
	order := append([]diary.Category(nil), reconciled...)
	seen := make(map[diary.Category]bool, len(reconciled))
	for _, c := range reconciled {
		seen[c] = true
	}
	for _, ex := range exercises {
		if !seen[ex.Category] {
			seen[ex.Category] = true
			order = append(order, ex.Category)
		}
	}
	return order
}

func card(ex diary.Exercise) Card {
	c := Card{ExerciseID: ex.ID, Name: ex.Name, Category: ex.Category}
	if latest, ok := view.LatestEntry(ex); ok {
		c.Latest = &latest
	}
	return c
}
