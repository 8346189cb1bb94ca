package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/warp/shift-pay/payroll"
)

func newSeedCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "seed [SCENARIO]",
		Short: "Reset the database and load a demo scenario",
		Long: `Reset the database and load a demo scenario. Every stored shift and
holiday is deleted first. Use --list to see the scenarios.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list || len(args) == 0 {
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
				for _, sc := range payroll.Scenarios() {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", sc.ID, sc.Name, sc.Description)
				}
				return tw.Flush()
			}

			svc, err := a.open()
			if err != nil {
				return err
			}
			sc, err := svc.LoadScenario(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "loaded %s: %d shifts, %d holidays\n", sc.ID, len(sc.Shifts), len(sc.Holidays))
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list scenarios instead of loading one")
	return cmd
}
