package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHolidaysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "holidays",
		Aliases: []string{"holiday"},
		Short:   "Manage the public holiday calendar",
	}

	var recurring bool
	add := &cobra.Command{
		Use:     "add DATE NAME",
		Short:   "Register a holiday",
		Example: `  shiftpay holidays add 2025-12-25 "Christmas Day" --recurring`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			h, err := svc.AddHoliday(cmd.Context(), args[0], args[1], recurring)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s (%s)\n", h.Date, h.Name, h.ID)
			return nil
		},
	}
	add.Flags().BoolVar(&recurring, "recurring", false, "repeat on the same day every year")

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered holidays",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			holidays, err := svc.ListHolidays(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tNAME\tRECURRING")
			for _, h := range holidays {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", h.ID, h.Date, h.Name, h.Recurring)
			}
			return tw.Flush()
		},
	}

	rm := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Remove a holiday",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			return svc.DeleteHoliday(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(add, list, rm)
	return cmd
}
