package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/workoutdiary/internal/diary"
	"github.com/roach88/workoutdiary/internal/view"
)

// CategoryCount is one row of the categories listing.
type CategoryCount struct {
	Category diary.Category `json:"category"`
	Count    int            `json:"count"`
}

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show and reorder categories",
		Long: `Show categories in display order with their exercise counts.
All always comes first and cannot be moved.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				return showCategories(ctx, a)
			})
		},
	}

	cmd.AddCommand(newCategoriesMoveCommand(rootOpts))
	cmd.AddCommand(newCategoriesResetCommand(rootOpts))
	return cmd
}

func newCategoriesMoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <category> <target>",
		Short: "Move a category to another category's position",
		Long: `Move a category to another category's position. Moving forward lands it
just after the target; moving backward lands it just before.

Example:
  workoutdiary categories move Legs Chest`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				moved, ok := diary.ParseCategory(args[0])
				if !ok || moved == diary.All {
					return usageError(a.formatter, "cannot move category %q", args[0])
				}
				target, ok := diary.ParseCategory(args[1])
				if !ok || target == diary.All {
					return usageError(a.formatter, "cannot move onto category %q", args[1])
				}

				if err := a.order.Reorder(ctx, moved, target); err != nil {
					return fail(a.formatter, "failed to reorder categories", err)
				}
				return showCategories(ctx, a)
			})
		},
	}
	return cmd
}

func newCategoriesResetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reset",
		Short:         "Forget the saved order and use the canonical one",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				if err := a.kv.Delete(ctx, diary.CategoryOrderKey); err != nil {
					return fail(a.formatter, "failed to reset category order", err)
				}
				return showCategories(ctx, a)
			})
		},
	}
	return cmd
}

func showCategories(ctx context.Context, a *app) error {
	exercises := a.state.Tree().Exercises
	rows := []CategoryCount{}
	for _, c := range a.order.Ordered(ctx) {
		rows = append(rows, CategoryCount{Category: c, Count: view.CountByCategory(exercises, c)})
	}
	return a.formatter.Render(rows, func(w io.Writer) {
		for _, row := range rows {
			fmt.Fprintf(w, "%-10s %d\n", row.Category, row.Count)
		}
	})
}
