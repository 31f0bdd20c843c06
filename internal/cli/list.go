package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/workoutdiary/internal/diary"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Category string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exercises grouped by category",
		Long: `List exercises grouped by category, in the saved category order,
with the latest warmup and working weight of each.

Example:
  workoutdiary list
  workoutdiary list --category legs`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts.RootOptions, cmd, func(ctx context.Context, a *app) error {
				active, ok := diary.ParseCategory(opts.Category)
				if !ok {
					return usageError(a.formatter, "unknown category %q", opts.Category)
				}
				home := a.nav.Home(ctx, active)
				return a.formatter.Render(home, func(w io.Writer) { writeHome(w, home) })
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", string(diary.All), "category filter (All shows every exercise)")
	return cmd
}
