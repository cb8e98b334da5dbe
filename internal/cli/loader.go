package cli

import (
	"log/slog"
	"os"

	"github.com/roach88/regime"
	"github.com/roach88/regime/internal/defn"
	"github.com/roach88/regime/internal/script"
)

// loadDefinition reads a definition file, mapping failures to exit codes:
// unreadable or malformed files are command errors, validation failures are
// ordinary failures.
func loadDefinition(path string) (*defn.Document, []error, error) {
	doc, err := defn.Load(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load definition", err)
	}
	return doc, doc.Validate(), nil
}

// buildMachine loads, validates, and builds in one step for commands that
// need a runnable machine.
func buildMachine(path string, opts ...regime.Option) (*regime.Machine, error) {
	doc, errs, err := loadDefinition(path)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, WrapExitError(ExitFailure, "definition invalid", errs[0])
	}
	m, err := doc.Build(opts...)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to build machine", err)
	}
	return m, nil
}

// loadScript reads and validates a script file.
func loadScript(path string) (*script.Script, error) {
	s, err := script.Load(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load script", err)
	}
	if errs := s.Validate(); len(errs) > 0 {
		return nil, WrapExitError(ExitFailure, "script invalid", errs[0])
	}
	return s, nil
}

// configureLogging installs a text slog handler on stderr, at debug level
// when verbose is set.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}
