package bonds_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fixbond/bond"
	"github.com/meenmo/fixbond/calendar"
	"github.com/meenmo/fixbond/daycount"
	"github.com/meenmo/fixbond/instruments/bonds"
	"github.com/meenmo/fixbond/schedule"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFromCashflow_Rounding(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		amount float64
		places int32
		want   int64
	}{
		{name: "cents", amount: 2.4931506849, places: 2, want: 249},
		{name: "half up", amount: 0.125, places: 2, want: 13},
		{name: "negative half away", amount: -0.125, places: 2, want: -13},
		{name: "no minor unit", amount: 12345.5, places: 0, want: 12346},
		{name: "mills", amount: 1.0005, places: 3, want: 1001},
		{name: "zero", amount: 0, places: 2, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := bonds.FromCashflow(bond.Cashflow{Coupon: tc.amount}, tc.places)
			assert.Equal(t, tc.want, got.CouponCents)
			assert.Equal(t, int64(0), got.PrincipalCents)
		})
	}
}

func TestFromCashflows_BondLedger(t *testing.T) {
	t.Parallel()

	b, err := bond.NewFixedCouponBond(bond.Terms{
		FaceAmount:        1_000_000,
		DatedDate:         date(2024, 1, 15),
		MaturityDate:      date(2026, 1, 15),
		CouponRates:       []float64{0.05},
		Frequency:         schedule.Semiannual,
		Calendar:          calendar.TARGET,
		DayCounter:        daycount.Act365F,
		AccrualConvention: calendar.ModifiedFollowing,
		PaymentConvention: calendar.Following,
		RedemptionPercent: 100,
	}, bond.StubDate{})
	require.NoError(t, err)

	rows := bonds.FromCashflows(b.DatedCashflows(), 2)
	require.Len(t, rows, 4)
	// 1,000,000 * 0.05 * 182/365 = 24931.5068...
	assert.Equal(t, int64(2493151), rows[0].CouponCents)
	assert.Equal(t, int64(100_000_000), rows[3].PrincipalCents)
	assert.Equal(t, rows[0].CouponCents+rows[1].CouponCents+rows[2].CouponCents+rows[3].CouponCents+100_000_000,
		bonds.TotalCents(rows))
}
