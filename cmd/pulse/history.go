package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) historyCmd() *cobra.Command {
	var (
		limit  int
		outdir string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return &exitError{code: exitUsageError, err: fmt.Errorf("--limit must be positive, got %d", limit)}
			}
			if outdir == "" {
				cfg, err := a.loadConfig()
				if err != nil {
					return err
				}
				outdir = cfg.Storage.Root
			}

			entries, err := a.history(outdir).Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetEscapeHTML(false)
				for _, e := range entries {
					if err := enc.Encode(e); err != nil {
						return err
					}
				}
				return nil
			}
			fmt.Fprint(a.stdout, renderHistory(entries))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&limit, "limit", 10, "number of entries to show")
	f.StringVar(&outdir, "outdir", "", "artifact root directory holding history.jsonl (default from STORAGE_ROOT)")
	f.BoolVar(&asJSON, "json", false, "print entries as JSON lines")
	return cmd
}
