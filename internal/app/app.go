// Package app wires configuration, calculators, orchestration and
// presentation into the riemann command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/agbru/riemann/internal/config"
	apperrors "github.com/agbru/riemann/internal/errors"
	"github.com/agbru/riemann/internal/logging"
	"github.com/agbru/riemann/internal/riemann"
	"github.com/agbru/riemann/internal/ui"
)

// Application represents the riemann application instance.
type Application struct {
	Config    config.AppConfig
	Factory   riemann.CalculatorFactory
	Logger    logging.Logger
	ErrWriter io.Writer
	// RunID identifies the run in logs, result files and metrics.
	RunID string
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f riemann.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger replaces the diagnostic logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, RunID: uuid.NewString()}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = riemann.NewDefaultFactory()
	}

	programName := "riemann"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List(), riemann.IntegrandNames())
	if err != nil {
		return nil, err
	}
	app.Config = config.ApplyAdaptiveThreads(cfg)

	if app.Logger == nil {
		app.Logger = logging.NewLevelLogger(errWriter, "riemann", app.Config.LogLevel)
	}
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.List {
		return a.runList(out)
	}
	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

// runList prints the registered integrands.
func (a *Application) runList(out io.Writer) int {
	fmt.Fprintf(out, "%s\n", ui.Title("Integrands"))
	for _, name := range riemann.IntegrandNames() {
		f, err := riemann.LookupIntegrand(name)
		if err != nil {
			return apperrors.ExitErrorGeneric
		}
		fmt.Fprintf(out, "  %s%-14s%s f(x) = %s\n", ui.ColorGreen(), f.Name, ui.ColorReset(), f.Formula)
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (-help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeForStartupError maps an error returned by New to an exit code.
func ExitCodeForStartupError(err error) int {
	if err == nil || IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	return apperrors.ExitErrorConfig
}
