package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/workoutdiary/internal/state"
)

// EntryOptions holds flags for the entry subcommands.
type EntryOptions struct {
	*RootOptions
	Date    string
	Warmup  float64
	Working float64
}

// NewEntryCommand creates the entry command group.
func NewEntryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entry",
		Aliases: []string{"workout"},
		Short:   "Record, edit and delete workouts of an exercise",
	}

	cmd.AddCommand(newEntryAddCommand(rootOpts))
	cmd.AddCommand(newEntryEditCommand(rootOpts))
	cmd.AddCommand(newEntryRemoveCommand(rootOpts))
	cmd.AddCommand(newEntrySetCommand(rootOpts))
	return cmd
}

func newEntryAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EntryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <exercise-id>",
		Short: "Record a workout",
		Long: `Record a workout for an exercise. The date defaults to today.

Example:
  workoutdiary entry add 3f1c... --date 2024-01-15 --warmup 20 --working 62.5`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts.RootOptions, cmd, func(ctx context.Context, a *app) error {
				date := opts.Date
				if date == "" {
					date = opts.today()
				}
				en, err := a.state.CreateEntry(ctx, args[0], state.EntryInput{
					Date:    date,
					Warmup:  opts.Warmup,
					Working: opts.Working,
				})
				if err != nil {
					return fail(a.formatter, "failed to add workout", err)
				}
				return a.formatter.Render(en, func(w io.Writer) { writeEntry(w, "Added", args[0], en) })
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Date, "date", "d", "", "workout date YYYY-MM-DD (default today)")
	cmd.Flags().Float64Var(&opts.Warmup, "warmup", 0, "warmup weight in kg")
	cmd.Flags().Float64Var(&opts.Working, "working", 0, "working weight in kg")
	return cmd
}

func newEntryEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EntryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <exercise-id> <entry-id>",
		Short: "Change a workout's date or weights",
		Long: `Change a workout's date or weights. Omitted flags keep their current value.

Example:
  workoutdiary entry edit 3f1c... 9a2b... --working 65`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts.RootOptions, cmd, func(ctx context.Context, a *app) error {
				exerciseID, entryID := args[0], args[1]
				ex, ok := a.state.Exercise(exerciseID)
				if !ok {
					return fail(a.formatter, "failed to edit workout", fmt.Errorf("%w: %s", state.ErrExerciseNotFound, exerciseID))
				}
				i := ex.FindEntry(entryID)
				if i < 0 {
					return fail(a.formatter, "failed to edit workout", fmt.Errorf("%w: %s", state.ErrEntryNotFound, entryID))
				}

				current := ex.Entries[i]
				in := state.EntryInput{Date: current.Date, Warmup: current.Warmup, Working: current.Working}
				if cmd.Flags().Changed("date") {
					in.Date = opts.Date
				}
				if cmd.Flags().Changed("warmup") {
					in.Warmup = opts.Warmup
				}
				if cmd.Flags().Changed("working") {
					in.Working = opts.Working
				}

				if err := a.state.EditEntry(ctx, exerciseID, entryID, in); err != nil {
					return fail(a.formatter, "failed to edit workout", err)
				}
				current.Date, current.Warmup, current.Working = in.Date, in.Warmup, in.Working
				return a.formatter.Render(current, func(w io.Writer) { writeEntry(w, "Updated", exerciseID, current) })
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Date, "date", "d", "", "workout date YYYY-MM-DD")
	cmd.Flags().Float64Var(&opts.Warmup, "warmup", 0, "warmup weight in kg")
	cmd.Flags().Float64Var(&opts.Working, "working", 0, "working weight in kg")
	return cmd
}

func newEntryRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rm <exercise-id> <entry-id>",
		Aliases:       []string{"delete"},
		Short:         "Delete a workout",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				exerciseID, entryID := args[0], args[1]
				existed := false
				if ex, ok := a.state.Exercise(exerciseID); ok {
					existed = ex.FindEntry(entryID) >= 0
				}
				if err := a.state.DeleteEntry(ctx, exerciseID, entryID); err != nil {
					return fail(a.formatter, "failed to delete workout", err)
				}
				result := map[string]interface{}{"exercise_id": exerciseID, "entry_id": entryID, "deleted": existed}
				return a.formatter.Render(result, func(w io.Writer) {
					if existed {
						fmt.Fprintf(w, "Deleted workout %s\n", entryID)
					} else {
						fmt.Fprintf(w, "No workout %s, nothing deleted\n", entryID)
					}
				})
			})
		},
	}
	return cmd
}

func newEntrySetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <exercise-id> <entry-id> <warmup|working> <kg>",
		Short: "Quick-edit one weight of a workout",
		Long: `Quick-edit one weight of a workout. A value that is not a finite
number (NaN, Inf) is ignored and nothing is saved.

Example:
  workoutdiary entry set 3f1c... 9a2b... working 67.5`,
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				exerciseID, entryID := args[0], args[1]
				field := state.EntryField(args[2])
				// Out-of-range values parse to ±Inf and are ignored like NaN.
				value, err := strconv.ParseFloat(args[3], 64)
				if err != nil && !errors.Is(err, strconv.ErrRange) {
					return usageError(a.formatter, "invalid weight %q: must be a number", args[3])
				}

				applied, err := a.state.EditEntryField(ctx, exerciseID, entryID, field, value)
				if err != nil {
					return fail(a.formatter, "failed to set weight", err)
				}
				result := map[string]interface{}{
					"exercise_id": exerciseID,
					"entry_id":    entryID,
					"field":       field,
					"value":       args[3],
					"applied":     applied,
				}
				return a.formatter.Render(result, func(w io.Writer) {
					if applied {
						fmt.Fprintf(w, "Set %s of workout %s to %s\n", field, entryID, kg(value))
					} else {
						fmt.Fprintf(w, "Ignored %s: not a finite number\n", args[3])
					}
				})
			})
		},
	}
	return cmd
}
