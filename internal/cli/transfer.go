package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/workoutdiary/internal/diary"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// TransferResult summarizes an export or import.
type TransferResult struct {
	Path      string `json:"path"`
	Exercises int    `json:"exercises"`
	Entries   int    `json:"entries"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole diary as pretty-printed JSON",
		Long: `Write the whole diary as pretty-printed JSON.

Example:
  workoutdiary export
  workoutdiary export -o backup.json
  workoutdiary export -o - | jq .`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts.RootOptions, cmd, func(ctx context.Context, a *app) error {
				tree := a.state.Tree()
				data, err := a.codec.Export(tree)
				if err != nil {
					return fail(a.formatter, "failed to export", err)
				}

				if opts.Output == "-" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
					_ = a.formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
					return WrapExitError(ExitCommandError, "failed to write export file", err)
				}
				a.logger.Debug("exported", "path", opts.Output, "bytes", len(data))

				result := summarize(opts.Output, tree)
				return a.formatter.Render(result, func(w io.Writer) {
					fmt.Fprintf(w, "Exported %d exercises (%d workouts) to %s\n", result.Exercises, result.Entries, result.Path)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", diary.ExportFilename, "output file, - for stdout")
	return cmd
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole diary with an exported file",
		Long: `Replace the whole diary with an exported file. The file is validated
first; if it is not valid JSON or does not match the diary's shape, nothing
changes. Retired category names are migrated.

Example:
  workoutdiary import workout-diary-export.json
  cat backup.json | workoutdiary import -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, func(ctx context.Context, a *app) error {
				data, err := readInput(cmd, args[0])
				if err != nil {
					_ = a.formatter.Error(ErrCodeReadFailed, err.Error(), nil)
					return WrapExitError(ExitCommandError, "failed to read import file", err)
				}

				tree, err := a.codec.Import(data)
				if err != nil {
					return fail(a.formatter, "import rejected", err)
				}
				if err := a.state.Replace(ctx, tree); err != nil {
					return fail(a.formatter, "failed to save import", err)
				}

				result := summarize(args[0], tree)
				return a.formatter.Render(result, func(w io.Writer) {
					fmt.Fprintf(w, "Imported %d exercises (%d workouts) from %s\n", result.Exercises, result.Entries, result.Path)
				})
			})
		},
	}
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func summarize(path string, tree diary.Tree) TransferResult {
	result := TransferResult{Path: path, Exercises: len(tree.Exercises)}
	for _, ex := range tree.Exercises {
		result.Entries += len(ex.Entries)
	}
	return result
}
