package main

import (
	stdErrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/signal-pulse/errors"
	"github.com/johnquangdev/signal-pulse/internal/infrastructure/storage"
	"github.com/johnquangdev/signal-pulse/internal/usecase/pulse"
	"github.com/johnquangdev/signal-pulse/pkg/ai"
	"github.com/johnquangdev/signal-pulse/pkg/config"
	"github.com/johnquangdev/signal-pulse/pkg/logger"
)

const (
	historyFile = "history.jsonl"

	exitFailure    = 1
	exitUsageError = 2
)

// app carries the process environment so commands can run against fakes
type app struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	loadConfig func() (*config.Config, error)
	newAsker   func(cfg *config.Config, logger *zap.Logger) (ai.Asker, error)

	verbose bool
}

func newApp() *app {
	return &app{
		fs:         afero.NewOsFs(),
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		loadConfig: config.Load,
		newAsker:   ai.New,
	}
}

// exitError ends the process with a specific code
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pulse",
		Short:         "Signal Pulse: execution health for meeting notes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log pipeline progress to stderr")

	root.AddCommand(
		a.runCmd(),
		a.scoreCmd(),
		a.historyCmd(),
	)
	return root
}

func execute(a *app, args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	a.printError(err)

	var ee *exitError
	if stdErrors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}

func (a *app) printError(err error) {
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		fmt.Fprintln(a.stderr, err)
		return
	}

	fmt.Fprintln(a.stderr, appErr.Error())
	keys := make([]string, 0, len(appErr.Details))
	for k := range appErr.Details {
		if k != "raw" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.stderr, "  %s: %s\n", k, appErr.Details[k])
	}
}

func (a *app) logger() *zap.Logger {
	return logger.NewCLI(a.verbose)
}

// service builds a filesystem backed pipeline rooted at outdir. asker may be
// nil for commands that never call the model.
func (a *app) service(cfg *config.Config, asker ai.Asker, outdir string, log *zap.Logger) (*pulse.Service, error) {
	loc, err := time.LoadLocation(cfg.Pulse.ReportTimezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone: %w", err)
	}
	return pulse.NewService(
		asker,
		storage.NewFilesystemStore(a.fs, outdir),
		a.history(outdir),
		nil,
		nil,
		pulse.Options{
			DefaultTone:      cfg.Pulse.DefaultTone,
			Location:         loc,
			SaveRawOnFailure: true,
		},
		log,
	), nil
}

func (a *app) history(outdir string) *storage.FileHistory {
	return storage.NewFileHistory(a.fs, filepath.Join(outdir, historyFile))
}

// readInput reads path from fs, or stdin for "-"
func (a *app) readInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), nil
}

// stdinIsTerminal reports an interactive stdin, which is never read implicitly
func (a *app) stdinIsTerminal() bool {
	f, ok := a.stdin.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
