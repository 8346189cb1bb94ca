package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newShiftsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shifts",
		Aliases: []string{"shift"},
		Short:   "Record and review worked shifts",
	}

	var notes string
	add := &cobra.Command{
		Use:     "add DATE START END",
		Short:   "Record a shift",
		Example: `  shiftpay shifts add 2025-04-16 09:00 17:00 --notes "ward 3"`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			sh, err := svc.AddShift(cmd.Context(), args[0], args[1], args[2], notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s-%s (%s)\n", sh.Date, sh.Start, sh.End, sh.ID)
			return nil
		},
	}
	add.Flags().StringVar(&notes, "notes", "", "free-form note")

	var from, to string
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List shifts, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			shifts, err := svc.ListShifts(cmd.Context(), from, to)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tSTART\tEND\tNOTES")
			for _, s := range shifts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Date, s.Start, s.End, s.Notes)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&from, "from", "", "first date, YYYY-MM-DD")
	list.Flags().StringVar(&to, "to", "", "last date, YYYY-MM-DD")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Price a stored shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			sb, err := svc.ShiftBreakdown(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s-%s holiday=%t sunday=%t\n",
				sb.Shift.Date, sb.Shift.Start, sb.Shift.End, sb.IsHoliday, sb.IsSunday)
			return printBreakdown(out, sb.Breakdown, svc.Calculator().SundayLabel())
		},
	}

	rm := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a shift",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}
			return svc.DeleteShift(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(add, list, show, rm)
	return cmd
}
