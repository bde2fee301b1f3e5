package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"creator-store-check/internal/runner"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the checks once and write the report",
		Long: `Runs every check in order, prints the report and writes
test_results_<unix>.json to the output directory.

Exit status is 0 when every check passed and 1 otherwise.`,
		Args: cobra.NoArgs,
		RunE: a.runSuite,
	}
	addRunFlags(cmd.Flags(), &a.run)
	return cmd
}

func (a *app) runSuite(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	opts := runner.Options{
		Markdown: a.run.markdown,
		CSV:      a.run.csv,
		Compare:  a.run.compare,
	}
	if !a.run.ci {
		opts.Console = out
	}

	res, err := runner.New(a.cfg, a.logger).Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if a.run.ci {
		raw, err := json.Marshal(runner.CISummary(res, time.Now()))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(raw))
	}

	if !res.Report.AllPassed() {
		return &exitError{code: 1}
	}
	return nil
}
