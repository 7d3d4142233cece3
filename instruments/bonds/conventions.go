package bonds

import (
	"fmt"
	"strings"

	"github.com/meenmo/fixbond/bond"
	"github.com/meenmo/fixbond/calendar"
	"github.com/meenmo/fixbond/daycount"
	"github.com/meenmo/fixbond/schedule"
)

// MarketConvention groups the schedule and payment conventions shared by
// bonds of one market (e.g., US Treasuries, EUR sovereigns).
type MarketConvention struct {
	Name              string
	Calendar          calendar.Calendar
	DayCounter        daycount.DayCounter
	Frequency         schedule.Frequency
	AccrualConvention calendar.BusinessDayConvention
	PaymentConvention calendar.BusinessDayConvention
	SettlementDays    int
}

// Preset market conventions.
// TODO: move USTreasury and EURGovt to ACT/ACT ICMA once daycount has a
// period-aware counter; ACT/ACT ISDA differs within leap-year coupons.
var (
	USTreasury = MarketConvention{
		Name:              "US_TREASURY",
		Calendar:          calendar.USD,
		DayCounter:        daycount.ActActISDA,
		Frequency:         schedule.Semiannual,
		AccrualConvention: calendar.Unadjusted,
		PaymentConvention: calendar.Following,
		SettlementDays:    1,
	}

	USCorporate = MarketConvention{
		Name:              "US_CORP",
		Calendar:          calendar.USD,
		DayCounter:        daycount.Thirty360,
		Frequency:         schedule.Semiannual,
		AccrualConvention: calendar.Unadjusted,
		PaymentConvention: calendar.Following,
		SettlementDays:    1,
	}

	EURGovt = MarketConvention{
		Name:              "EUR_GOVT",
		Calendar:          calendar.TARGET,
		DayCounter:        daycount.ActActISDA,
		Frequency:         schedule.Annual,
		AccrualConvention: calendar.Unadjusted,
		PaymentConvention: calendar.Following,
		SettlementDays:    2,
	}

	EURCorporate = MarketConvention{
		Name:              "EUR_CORP",
		Calendar:          calendar.TARGET,
		DayCounter:        daycount.Thirty360E,
		Frequency:         schedule.Annual,
		AccrualConvention: calendar.Unadjusted,
		PaymentConvention: calendar.Following,
		SettlementDays:    2,
	}
)

var marketConventions = map[string]MarketConvention{
	USTreasury.Name:   USTreasury,
	USCorporate.Name:  USCorporate,
	EURGovt.Name:      EURGovt,
	EURCorporate.Name: EURCorporate,
}

// LookupMarket resolves a preset by name ("US_TREASURY", "eur-govt", ...).
func LookupMarket(name string) (MarketConvention, error) {
	key := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToUpper(strings.TrimSpace(name)))
	mc, ok := marketConventions[key]
	if !ok {
		return MarketConvention{}, fmt.Errorf("bonds: unknown market convention %q", name)
	}
	return mc, nil
}

// Apply fills the convention fields of t that are unset. Fields the caller
// already set are kept.
func (mc MarketConvention) Apply(t bond.Terms) bond.Terms {
	if t.Calendar == nil {
		t.Calendar = mc.Calendar
	}
	if t.DayCounter == nil {
		t.DayCounter = mc.DayCounter
	}
	if t.Frequency == 0 {
		t.Frequency = mc.Frequency
	}
	if t.AccrualConvention == "" {
		t.AccrualConvention = mc.AccrualConvention
	}
	if t.PaymentConvention == "" {
		t.PaymentConvention = mc.PaymentConvention
	}
	if t.SettlementDays == 0 {
		t.SettlementDays = mc.SettlementDays
	}
	return t
}
