package main

import (
	"fmt"
	"os"
	"time"

	"github.com/meenmo/fixbond/bond"
	"github.com/meenmo/fixbond/calendar"
	"github.com/meenmo/fixbond/config"
	"github.com/meenmo/fixbond/daycount"
	"github.com/meenmo/fixbond/instruments/bonds"
	"github.com/meenmo/fixbond/internal/logging"
	"github.com/meenmo/fixbond/schedule"
	"github.com/meenmo/fixbond/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.Init("fixbond", cfg.LogLevel, cfg.LogFormat)

	terms := bond.Terms{
		FaceAmount:        10_000_000,
		IssueDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		DatedDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		MaturityDate:      time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		SettlementDays:    2,
		CouponRates:       []float64{0.05},
		Frequency:         schedule.Semiannual,
		Calendar:          calendar.TARGET,
		DayCounter:        daycount.Act365F,
		AccrualConvention: calendar.ModifiedFollowing,
		PaymentConvention: calendar.Following,
		RedemptionPercent: 100,
	}

	b, err := bond.NewFixedCouponBond(terms, bond.StubDate{}, bond.WithLogger(logger))
	if err != nil {
		logger.Error("construct bond", "error", err)
		os.Exit(1)
	}

	for _, cf := range b.Cashflows() {
		fmt.Printf("%-10s %s %16.2f\n", cf.Kind, utils.FormatDate(cf.Date()), cf.Amount())
	}

	rows := bonds.FromCashflows(b.DatedCashflows(), cfg.MinorUnitPlaces)
	fmt.Printf("Total (minor units): %d\n", bonds.TotalCents(rows))
	fmt.Printf("Settlement for trade 2024-03-28: %s\n",
		utils.FormatDate(b.SettlementDate(time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC))))
}
