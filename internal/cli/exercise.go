package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/workoutdiary/internal/diary"
	"github.com/roach88/workoutdiary/internal/state"
)

// ExerciseOptions holds flags for the exercise subcommands.
type ExerciseOptions struct {
	*RootOptions
	Name     string
	Category string
}

// NewExerciseCommand creates the exercise command group.
func NewExerciseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Create, edit, delete and show exercises",
	}

	cmd.AddCommand(newExerciseAddCommand(rootOpts))
	cmd.AddCommand(newExerciseEditCommand(rootOpts))
	cmd.AddCommand(newExerciseRemoveCommand(rootOpts))
	cmd.AddCommand(newExerciseShowCommand(rootOpts))
	return cmd
}

func newExerciseAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExerciseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an exercise with no workouts",
		Long: `Create an exercise in a category.

Example:
  workoutdiary exercise add "Bench Press" --category Chest`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts.RootOptions, cmd, func(ctx context.Context, a *app) error {
				ex, err := a.state.CreateExercise(ctx, args[0], categoryArg(opts.Category))
				if err != nil {
					return fail(a.formatter, "failed to create exercise", err)
				}
				return a.formatter.Render(ex, func(w io.Writer) { writeExercise(w, "Created", ex) })
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "category (Biceps|Triceps|Legs|Chest|Back|Shoulders)")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newExerciseEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExerciseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <exercise-id>",
		Short: "Rename or recategorize an exercise",
		Long: `Rename or recategorize an exercise. Omitted flags keep their current value.
Workout history is never touched.

Example:
  workoutdiary exercise edit 3f1c... --name "Incline Bench" --category Chest`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts.RootOptions, cmd, func(ctx context.Context, a *app) error {
				current, ok := a.state.Exercise(args[0])
				if !ok {
					return fail(a.formatter, "failed to edit exercise", fmt.Errorf("%w: %s", state.ErrExerciseNotFound, args[0]))
				}

				name, category := current.Name, current.Category
				if cmd.Flags().Changed("name") {
					name = opts.Name
				}
				if cmd.Flags().Changed("category") {
					category = categoryArg(opts.Category)
				}

				if err := a.state.EditExercise(ctx, current.ID, name, category); err != nil {
					return fail(a.formatter, "failed to edit exercise", err)
				}
				updated, _ := a.state.Exercise(current.ID)
				return a.formatter.Render(updated, func(w io.Writer) { writeExercise(w, "Updated", updated) })
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "new category")
	return cmd
}

func newExerciseRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rm <exercise-id>",
		Aliases:       []string{"delete"},
		Short:         "Delete an exercise and all its workouts",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				_, existed := a.state.Exercise(args[0])
				if err := a.state.DeleteExercise(ctx, args[0]); err != nil {
					return fail(a.formatter, "failed to delete exercise", err)
				}
				result := map[string]interface{}{"exercise_id": args[0], "deleted": existed}
				return a.formatter.Render(result, func(w io.Writer) {
					if existed {
						fmt.Fprintf(w, "Deleted exercise %s\n", args[0])
					} else {
						fmt.Fprintf(w, "No exercise %s, nothing deleted\n", args[0])
					}
				})
			})
		},
	}
	return cmd
}

func newExerciseShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <exercise-id>",
		Short: "Show an exercise with its most recent workouts",
		Long: `Show an exercise with its most recent workouts, newest first.
An unknown id shows the exercise list instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				screen := a.nav.Detail(ctx, args[0])
				return a.formatter.Render(screen, func(w io.Writer) { writeScreen(w, screen) })
			})
		},
	}
	return cmd
}

// categoryArg resolves a category name case-insensitively. Unknown names
// are passed through so the store reports them.
func categoryArg(s string) diary.Category {
	if c, ok := diary.ParseCategory(s); ok {
		return c
	}
	return diary.Category(s)
}
