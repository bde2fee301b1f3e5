package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"creator-store-check/internal/history"
	"creator-store-check/internal/output"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			idx, err := history.Load(a.cfg.HistoryDir())
			if err != nil {
				return err
			}
			entries := idx.Entries
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(history.Index{Entries: entries})
			}
			if len(entries) == 0 {
				fmt.Fprintf(out, "No runs recorded in %s\n", a.cfg.HistoryDir())
				return nil
			}

			t := output.NewTable(output.ASCII)
			t.Header("Timestamp (UTC)", "Passed", "Rate", "Verdict", "Failed", "Report")
			t.AlignRight(2, 3)
			for _, e := range entries {
				t.Row(e.TimestampUTC,
					fmt.Sprintf("%d/%d", e.Passed, e.Total),
					fmt.Sprintf("%.1f%%", e.SuccessRate),
					string(e.Verdict),
					strings.Join(e.Failed, ", "),
					e.JSONFile)
			}
			fmt.Fprintln(out, t.String())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Show only the last n runs (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the entries as JSON")
	return cmd
}
