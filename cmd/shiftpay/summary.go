package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newSummaryCmd(a *app) *cobra.Command {
	var (
		year   int
		month  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Monthly totals for the stored shifts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}

			sum, err := svc.MonthlySummary(cmd.Context(), year, time.Month(month))
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), sum)
			}
			return printSummary(cmd.OutOrStdout(), sum, svc.Calculator().SundayLabel())
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&year, "year", now.Year(), "calendar year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "month, 1-12")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
