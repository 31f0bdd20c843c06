package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/workoutdiary/internal/prefs"
)

// NewThemeCommand creates the theme command.
func NewThemeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme [dark|light|toggle]",
		Short: "Show or change the color theme preference",
		Long: `Show or change the color theme preference.

Example:
  workoutdiary theme
  workoutdiary theme dark
  workoutdiary theme toggle`,
		Args:          cobra.MaximumNArgs(1),
		ValidArgs:     []string{string(prefs.Dark), string(prefs.Light), "toggle"},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				theme, err := applyTheme(ctx, a, args)
				if err != nil {
					return err
				}
				result := map[string]string{"theme": string(theme)}
				return a.formatter.Render(result, func(w io.Writer) { fmt.Fprintf(w, "Theme: %s\n", theme) })
			})
		},
	}
	return cmd
}

func applyTheme(ctx context.Context, a *app, args []string) (prefs.Theme, error) {
	if len(args) == 0 {
		return a.themes.Load(ctx), nil
	}

	if args[0] == "toggle" {
		theme, err := a.themes.Toggle(ctx)
		if err != nil {
			return "", fail(a.formatter, "failed to save theme", err)
		}
		return theme, nil
	}

	theme, ok := prefs.ParseTheme(args[0])
	if !ok {
		return "", usageError(a.formatter, "unknown theme %q: must be dark, light or toggle", args[0])
	}
	if err := a.themes.Save(ctx, theme); err != nil {
		return "", fail(a.formatter, "failed to save theme", err)
	}
	return theme, nil
}
