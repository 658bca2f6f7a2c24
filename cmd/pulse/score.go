package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/signal-pulse/internal/usecase/pulse"
	"github.com/johnquangdev/signal-pulse/internal/usecase/signals"
)

func (a *app) scoreCmd() *cobra.Command {
	var (
		extractionFile string
		team           string
		asJSON         bool
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Normalize and score an extraction without calling the model",
		Example: `  pulse score --extraction-file signals.json --team "Alice, Bob"
  pulse score --extraction-file - --json < extraction_raw.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := a.readInput(extractionFile)
			if err != nil {
				return err
			}

			log := a.logger()
			defer log.Sync()

			svc := pulse.NewService(nil, nil, nil, nil, nil, pulse.Options{}, log)
			eval, err := svc.Score(raw, team)
			if err != nil {
				return err
			}

			if asJSON {
				return a.writeJSON(eval)
			}
			fmt.Fprintln(a.stdout, renderScorecard(*eval))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&extractionFile, "extraction-file", "", "extraction JSON file, or - for stdin")
	f.StringVar(&team, "team", "", "comma separated team roster used to canonicalize owners")
	f.BoolVar(&asJSON, "json", false, "print normalized signals, metrics and scores as JSON")
	_ = cmd.MarkFlagRequired("extraction-file")
	return cmd
}

func (a *app) writeJSON(eval *signals.Evaluation) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(eval)
}
