package main

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"creator-store-check/internal/output"
	"creator-store-check/internal/revenue"
)

func newFeeCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "fee <price> [price...]",
		Short: "Break down the processing fee and creator share of a sale",
		Example: `  storecheck fee 14.99
  storecheck fee 9.99 19.99 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := revenue.FromConfig(a.cfg.Revenue)
			sales := make([]revenue.Sale, 0, len(args))
			for _, arg := range args {
				price, err := strconv.ParseFloat(strings.TrimPrefix(arg, "$"), 64)
				if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
					return fmt.Errorf("invalid price %q", arg)
				}
				sales = append(sales, m.Sale(price))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(sales)
			}

			t := output.NewTable(output.ASCII)
			t.Header("Price", "Fee", "Creator Net", "Creator Share")
			t.AlignRight(1, 2, 3, 4)
			for _, s := range sales {
				t.Row(fmt.Sprintf("$%.2f", s.Price),
					fmt.Sprintf("$%.2f", s.Fee),
					fmt.Sprintf("$%.2f", s.CreatorNet),
					fmt.Sprintf("%.1f%%", s.SharePercent))
			}
			fmt.Fprintln(out, t.String())
			fmt.Fprintf(out, "Fees: %.1f%% + $%.2f per sale\n", m.Percent*100, m.Fixed)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the breakdown as JSON")
	return cmd
}
