package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/warp/shift-pay/pay"
	"github.com/warp/shift-pay/payroll"
)

// printBreakdown renders one breakdown as an aligned table. Empty lines are
// left out; the label of the Sunday row follows the policy.
func printBreakdown(w io.Writer, b pay.PayBreakdown, sundayLabel string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "category\thours\trate\tpay\t")
	for _, c := range pay.Categories {
		l := b.Line(c)
		if l.Hours.IsZero() {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", label(c, sundayLabel),
			l.Hours.StringFixed(2), l.Rate.StringFixed(2), l.Pay.StringFixed(2))
	}
	fmt.Fprintf(tw, "break\t%s\t\t\t\n", b.BreakHours.StringFixed(2))
	fmt.Fprintf(tw, "total\t%s\t\t%s\t\n", b.TotalHours.StringFixed(2), b.Total.StringFixed(2))
	return tw.Flush()
}

func printSummary(w io.Writer, s payroll.Summary, sundayLabel string) error {
	fmt.Fprintf(w, "%s %d: %d shifts", s.Month, s.Year, s.Shifts)
	if s.Skipped > 0 {
		fmt.Fprintf(w, " (%d skipped)", s.Skipped)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "category\thours\tpay\t")
	for _, c := range pay.Categories {
		t := s.For(c)
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", label(c, sundayLabel), t.Hours.StringFixed(2), t.Pay.StringFixed(2))
	}
	fmt.Fprintf(tw, "break\t%s\t\t\n", s.BreakHours.StringFixed(2))
	fmt.Fprintf(tw, "total\t%s\t%s\t\n", s.TotalHours.StringFixed(2), s.Total.StringFixed(2))
	return tw.Flush()
}

func label(c pay.Category, sundayLabel string) string {
	if c == pay.CategorySunday && sundayLabel != "" {
		return strings.ToLower(sundayLabel)
	}
	return string(c)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
