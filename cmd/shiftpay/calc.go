package main

import (
	"github.com/spf13/cobra"

	"github.com/warp/shift-pay/pay"
)

func newCalcCmd(a *app) *cobra.Command {
	var (
		in      pay.Shift
		asJSON  bool
		holiday bool
		sunday  bool
		useCal  bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Price one shift",
		Long: `Price one shift. With --date, the holiday and Sunday flags are looked
up from the date and the stored holidays unless given explicitly.`,
		Example: `  shiftpay calc --start 09:00 --end 17:00
  shiftpay calc --start 10:00 --end 18:00 --date 2025-12-25
  shiftpay calc --start 06:00 --end 14:00 --sunday`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}

			f := cmd.Flags()
			if in.Date != "" && useCal {
				derivedHoliday, derivedSunday, err := svc.Flags(cmd.Context(), in.Date)
				if err != nil {
					return err
				}
				in.IsHoliday, in.IsSunday = derivedHoliday, derivedSunday
			}
			if f.Changed("holiday") {
				in.IsHoliday = holiday
			}
			if f.Changed("sunday") {
				in.IsSunday = sunday
			}

			b, err := svc.Calculate(cmd.Context(), in)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), breakdownJSON(b))
			}
			return printBreakdown(cmd.OutOrStdout(), b, svc.Calculator().SundayLabel())
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Start, "start", "", "shift start, HH:MM")
	f.StringVar(&in.End, "end", "", "shift end, HH:MM (24:00 for midnight)")
	f.StringVar(&in.Date, "date", "", "shift date, YYYY-MM-DD")
	f.BoolVar(&holiday, "holiday", false, "treat the shift as a public holiday")
	f.BoolVar(&sunday, "sunday", false, "treat the shift as a Sunday")
	f.BoolVar(&useCal, "calendar", true, "derive flags from --date and the stored holidays")
	f.BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

// breakdownJSON mirrors the API response keys.
func breakdownJSON(b pay.PayBreakdown) map[string]float64 {
	return map[string]float64{
		"baseHours":     b.Base.Hours.InexactFloat64(),
		"baseRate":      b.Base.Rate.InexactFloat64(),
		"basePay":       b.Base.Pay.InexactFloat64(),
		"unsocialHours": b.Unsocial.Hours.InexactFloat64(),
		"unsocialRate":  b.Unsocial.Rate.InexactFloat64(),
		"unsocialPay":   b.Unsocial.Pay.InexactFloat64(),
		"sundayHours":   b.Sunday.Hours.InexactFloat64(),
		"sundayRate":    b.Sunday.Rate.InexactFloat64(),
		"sundayPay":     b.Sunday.Pay.InexactFloat64(),
		"holidayHours":  b.Holiday.Hours.InexactFloat64(),
		"holidayRate":   b.Holiday.Rate.InexactFloat64(),
		"holidayPay":    b.Holiday.Pay.InexactFloat64(),
		"breakHours":    b.BreakHours.InexactFloat64(),
		"total":         b.Total.InexactFloat64(),
		"totalHours":    b.TotalHours.InexactFloat64(),
	}
}
