package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/workoutdiary/internal/catorder"
	"github.com/roach88/workoutdiary/internal/codec"
	"github.com/roach88/workoutdiary/internal/config"
	"github.com/roach88/workoutdiary/internal/ident"
	"github.com/roach88/workoutdiary/internal/kv"
	"github.com/roach88/workoutdiary/internal/nav"
	"github.com/roach88/workoutdiary/internal/persist"
	"github.com/roach88/workoutdiary/internal/prefs"
	"github.com/roach88/workoutdiary/internal/seed"
	"github.com/roach88/workoutdiary/internal/state"
)

// app wires every component for one command invocation.
type app struct {
	cfg       *config.Config
	kv        *kv.Store
	state     *state.Store
	order     *catorder.Policy
	themes    *prefs.Themes
	nav       *nav.Navigator
	codec     *codec.Codec
	logger    *slog.Logger
	formatter *OutputFormatter
}

// openApp resolves configuration, opens the database and loads the tree.
// The caller must Close the app.
func openApp(ctx context.Context, opts *RootOptions, cmd *cobra.Command) (*app, error) {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
	logger := newLogger(opts.Verbose, cmd.ErrOrStderr())

	cfg, err := resolveConfig(opts)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	logger.Debug("opening database", "path", cfg.Database)
	store, err := kv.Open(cfg.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), map[string]string{"path": cfg.Database})
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	migrations := cfg.CategoryMigrations
	gateway := persist.New(store, seed.New(),
		persist.WithMigrations(migrations),
		persist.WithLogger(logger),
	)
	tree := gateway.Load(ctx)

	a := &app{
		cfg:       cfg,
		kv:        store,
		state:     state.New(tree, gateway, ident.RandomGenerator{}, logger),
		order:     catorder.New(store, logger),
		themes:    prefs.NewThemes(store, cfg.DefaultTheme),
		codec:     codec.New(migrations),
		logger:    logger,
		formatter: formatter,
	}
	a.nav = nav.New(a.state, a.order,
		nav.WithHistoryLimit(cfg.HistoryLimit),
		nav.WithObserver(chromeLogger{logger: logger}),
		nav.WithLogger(logger),
	)
	return a, nil
}

// Close releases the database.
func (a *app) Close() {
	if err := a.kv.Close(); err != nil {
		a.logger.Error("error closing database", "error", err)
	}
}

// withApp opens the app, runs fn, and closes the app.
func withApp(opts *RootOptions, cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx, opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// resolveConfig applies defaults, the config file, the environment and
// finally the --db flag.
func resolveConfig(opts *RootOptions) (*config.Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg, err := config.Load(config.Path(opts.ConfigPath, getenv))
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(getenv)
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger configures logging based on the verbose flag.
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// chromeLogger records navigation. The terminal has no header to hide, so
// chrome visibility is only logged.
type chromeLogger struct {
	logger *slog.Logger
}

func (c chromeLogger) Navigated(ctx context.Context, route nav.Route, chromeVisible bool) {
	c.logger.DebugContext(ctx, "navigated",
		"screen", route.Screen,
		"category", route.Category,
		"exercise_id", route.ExerciseID,
		"chrome_visible", chromeVisible,
	)
}
