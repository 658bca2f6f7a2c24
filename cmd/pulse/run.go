package main

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/signal-pulse/internal/usecase/pulse"
	"github.com/johnquangdev/signal-pulse/pkg/runcontext"
)

var errNoNotes = stdErrors.New("No meeting notes provided. Use --notes, --notes-file, or pipe stdin.")

type runOptions struct {
	notes       string
	notesFile   string
	team        string
	meetingType string
	tone        string
	outdir      string
	runName     string
}

func (a *app) runCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract signals from meeting notes, score them and write the pulse report",
		Example: `  pulse run --notes-file standup.md --team "Alice, Bob" --run-name "Daily standup"
  cat notes.txt | pulse run --meeting-type Retro`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.notes, "notes", "", "meeting notes text")
	f.StringVar(&opts.notesFile, "notes-file", "", "file holding the meeting notes")
	f.StringVar(&opts.team, "team", "", "comma separated team roster used to canonicalize owners")
	f.StringVar(&opts.meetingType, "meeting-type", "", "meeting type hint, e.g. Standup")
	f.StringVar(&opts.tone, "tone", "", "report tone (default from DEFAULT_TONE)")
	f.StringVar(&opts.outdir, "outdir", "", "artifact root directory (default from STORAGE_ROOT)")
	f.StringVar(&opts.runName, "run-name", "", "name used for the run folder and files")
	return cmd
}

func (a *app) run(cmd *cobra.Command, opts runOptions) error {
	notes, err := a.readNotes(opts)
	if err != nil {
		return err
	}
	if strings.TrimSpace(notes) == "" {
		return &exitError{code: exitUsageError, err: errNoNotes}
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	log := a.logger()
	defer log.Sync()

	asker, err := a.newAsker(cfg, log)
	if err != nil {
		return err
	}

	outdir := opts.outdir
	if outdir == "" {
		outdir = cfg.Storage.Root
	}
	svc, err := a.service(cfg, asker, outdir, log)
	if err != nil {
		return err
	}

	res, err := svc.Run(cmd.Context(), pulse.Request{
		Notes:       notes,
		MeetingType: strings.TrimSpace(opts.meetingType),
		Team:        opts.team,
		Tone:        strings.TrimSpace(opts.tone),
		RunName:     strings.TrimSpace(opts.runName),
		Source:      runcontext.SourceCLI,
	})
	if err != nil {
		return err
	}

	log.Debug("run saved", zap.String("run_id", res.RunID), zap.String("outdir", res.Saved.Outdir))
	fmt.Fprintln(a.stdout, strings.TrimSpace(res.Report))
	fmt.Fprintf(a.stderr, "Saved %s to %s\n", res.RunID, res.Saved.Outdir)
	return nil
}

// readNotes takes --notes first, then --notes-file, then piped stdin
func (a *app) readNotes(opts runOptions) (string, error) {
	switch {
	case opts.notes != "":
		return opts.notes, nil
	case opts.notesFile != "":
		return a.readInput(opts.notesFile)
	case a.stdinIsTerminal():
		return "", nil
	default:
		return a.readInput("-")
	}
}
