// Package prefs stores small user preferences beside the diary.
package prefs

import (
	"context"
	"fmt"

	"github.com/roach88/workoutdiary/internal/diary"
	"github.com/roach88/workoutdiary/internal/kv"
)

// Theme is the UI color scheme preference.
type Theme string

// Supported themes.
const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

// Themes reads and writes the theme preference.
type Themes struct {
	storage  kv.Storage
	fallback Theme
}

// NewThemes creates a theme store. fallback is returned when nothing valid
// is saved; an invalid fallback means Light.
func NewThemes(storage kv.Storage, fallback Theme) *Themes {
	if _, ok := ParseTheme(string(fallback)); !ok {
		fallback = Light
	}
	return &Themes{storage: storage, fallback: fallback}
}

// Load returns the saved theme, or the fallback when absent, unreadable or
// not a known theme.
func (t *Themes) Load(ctx context.Context) Theme {
	raw, ok, err := t.storage.Get(ctx, diary.ThemeKey)
	if err != nil || !ok {
		return t.fallback
	}
	if theme, ok := ParseTheme(raw); ok {
		return theme
	}
	return t.fallback
}

// Save stores theme as a raw string.
func (t *Themes) Save(ctx context.Context, theme Theme) error {
	if _, ok := ParseTheme(string(theme)); !ok {
		return fmt.Errorf("unknown theme %q", theme)
	}
	if err := t.storage.Set(ctx, diary.ThemeKey, string(theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Toggle flips between light and dark, saves, and returns the new theme.
func (t *Themes) Toggle(ctx context.Context) (Theme, error) {
	next := Dark
	if t.Load(ctx) == Dark {
		next = Light
	}
	return next, t.Save(ctx, next)
}
