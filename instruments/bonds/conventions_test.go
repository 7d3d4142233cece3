package bonds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fixbond/bond"
	"github.com/meenmo/fixbond/calendar"
	"github.com/meenmo/fixbond/daycount"
	"github.com/meenmo/fixbond/instruments/bonds"
	"github.com/meenmo/fixbond/schedule"
)

func TestLookupMarket(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]string{
		"US_TREASURY": "US_TREASURY",
		"us-corp":     "US_CORP",
		" eur govt ":  "EUR_GOVT",
		"EUR_CORP":    "EUR_CORP",
	} {
		mc, err := bonds.LookupMarket(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, mc.Name)
	}

	_, err := bonds.LookupMarket("JGB")
	require.Error(t, err)
}

func TestMarketConventionApply(t *testing.T) {
	t.Parallel()

	terms := bonds.USCorporate.Apply(bond.Terms{
		FaceAmount:        1000,
		DatedDate:         date(2024, 2, 15),
		MaturityDate:      date(2029, 2, 15),
		CouponRates:       []float64{0.045},
		RedemptionPercent: 100,
		PaymentConvention: calendar.ModifiedFollowing,
	})
	assert.Equal(t, calendar.Calendar(calendar.USD), terms.Calendar)
	assert.Equal(t, daycount.DayCounter(daycount.Thirty360), terms.DayCounter)
	assert.Equal(t, schedule.Semiannual, terms.Frequency)
	assert.Equal(t, calendar.Unadjusted, terms.AccrualConvention)
	assert.Equal(t, calendar.ModifiedFollowing, terms.PaymentConvention, "explicit field kept")
	assert.Equal(t, 1, terms.SettlementDays)

	b, err := bond.NewFixedCouponBond(terms, bond.StubDate{})
	require.NoError(t, err)
	coupons := b.Coupons()
	require.Len(t, coupons, 10)
	for _, c := range coupons {
		// 30/360 semiannual periods on the 15th are exactly half a year.
		assert.InDelta(t, 22.5, c.Amount, 1e-9)
	}
}
