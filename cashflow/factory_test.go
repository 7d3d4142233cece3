package cashflow_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fixbond/calendar"
	"github.com/meenmo/fixbond/cashflow"
	"github.com/meenmo/fixbond/daycount"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func semiannualDates(start time.Time, periods int) []time.Time {
	dates := make([]time.Time, periods+1)
	for i := range dates {
		dates[i] = start.AddDate(0, 6*i, 0)
	}
	return dates
}

func TestFixedRateCoupons_LastRateRepeats(t *testing.T) {
	t.Parallel()

	dates := semiannualDates(date(2024, 1, 15), 6)
	coupons, err := cashflow.FixedRateCoupons(dates, calendar.WeekendsOnly, calendar.Following,
		[]float64{100}, []float64{0.04, 0.06}, daycount.Act365F)
	require.NoError(t, err)
	require.Len(t, coupons, 6)

	for i, cf := range coupons {
		require.Equal(t, cashflow.KindCoupon, cf.Kind)
		wantRate := 0.06
		if i == 0 {
			wantRate = 0.04
		}
		assert.Equal(t, wantRate, cf.Coupon.Rate, "period %d", i)
		assert.Equal(t, 100.0, cf.Coupon.Notional, "period %d", i)
	}
}

func TestFixedRateCoupons_NotionalSeries(t *testing.T) {
	t.Parallel()

	dates := semiannualDates(date(2024, 1, 15), 3)
	coupons, err := cashflow.FixedRateCoupons(dates, calendar.Null, calendar.Unadjusted,
		[]float64{100, 50}, []float64{0.05}, daycount.Thirty360)
	require.NoError(t, err)

	assert.Equal(t, []float64{100, 50, 50}, []float64{
		coupons[0].Coupon.Notional, coupons[1].Coupon.Notional, coupons[2].Coupon.Notional,
	})
	// 30/360 half years are exactly 0.5.
	assert.InDelta(t, 2.5, coupons[0].Coupon.Amount, 1e-12)
	assert.InDelta(t, 1.25, coupons[2].Coupon.Amount, 1e-12)
}

func TestFixedRateCoupons_AmountsAndPaymentDates(t *testing.T) {
	t.Parallel()

	// 2024-06-15 falls on a Saturday.
	dates := []time.Time{date(2023, 12, 15), date(2024, 6, 15), date(2024, 12, 13)}
	coupons, err := cashflow.FixedRateCoupons(dates, calendar.TARGET, calendar.ModifiedFollowing,
		[]float64{1_000_000}, []float64{0.03}, daycount.Act360)
	require.NoError(t, err)
	require.Len(t, coupons, 2)

	first := coupons[0].Coupon
	assert.True(t, first.AccrualStart.Equal(dates[0]))
	assert.True(t, first.AccrualEnd.Equal(dates[1]), "accrual end stays unadjusted")
	assert.Equal(t, "2024-06-17", first.PaymentDate.Format("2006-01-02"))
	want := 1_000_000 * 0.03 * 183.0 / 360.0
	assert.LessOrEqual(t, math.Abs(first.Amount-want), 1e-9, "got %.10f want %.10f", first.Amount, want)
	assert.Equal(t, first.PaymentDate, coupons[0].Date())
	assert.Equal(t, first.Amount, coupons[0].Amount())
}

func TestFixedRateCoupons_Errors(t *testing.T) {
	t.Parallel()

	dates := semiannualDates(date(2024, 1, 15), 2)
	_, err := cashflow.FixedRateCoupons(dates, calendar.Null, calendar.Unadjusted, []float64{100}, nil, daycount.Act365F)
	require.ErrorIs(t, err, cashflow.ErrEmptySeries)

	_, err = cashflow.FixedRateCoupons(dates, calendar.Null, calendar.Unadjusted, nil, []float64{0.05}, daycount.Act365F)
	require.ErrorIs(t, err, cashflow.ErrEmptySeries)

	_, err = cashflow.FixedRateCoupons(dates[:1], calendar.Null, calendar.Unadjusted, []float64{100}, []float64{0.05}, daycount.Act365F)
	require.Error(t, err)
}

func TestNewRedemption(t *testing.T) {
	t.Parallel()

	// 2026-08-15 falls on a Saturday.
	r := cashflow.NewRedemption(1000, 101.5, date(2026, 8, 15), calendar.WeekendsOnly, calendar.Preceding)
	require.Equal(t, cashflow.KindRedemption, r.Kind)
	assert.Equal(t, "2026-08-14", r.Date().Format("2006-01-02"))
	assert.InDelta(t, 1015.0, r.Amount(), 1e-9)

	zero := cashflow.NewRedemption(100, 0, date(2026, 1, 15), calendar.WeekendsOnly, calendar.Following)
	assert.Equal(t, cashflow.KindRedemption, zero.Kind)
	assert.Equal(t, 0.0, zero.Amount())
}

func TestNewRedemption_LargeFaceStaysFinite(t *testing.T) {
	t.Parallel()

	r := cashflow.NewRedemption(1e307, 100, date(2026, 1, 15), calendar.Null, calendar.Unadjusted)
	assert.False(t, math.IsInf(r.Amount(), 0))
	assert.InDelta(t, 1e307, r.Amount(), 1e293)
}

func TestLedger(t *testing.T) {
	t.Parallel()

	dates := semiannualDates(date(2024, 1, 15), 2)
	coupons, err := cashflow.FixedRateCoupons(dates, calendar.Null, calendar.Unadjusted,
		[]float64{100}, []float64{0.05}, daycount.Thirty360E)
	require.NoError(t, err)

	ledger := append(cashflow.Ledger{}, coupons...)
	_, ok := ledger.Redemption()
	assert.False(t, ok, "no redemption appended yet")

	ledger = append(ledger, cashflow.NewRedemption(100, 100, dates[2], calendar.Null, calendar.Unadjusted))
	r, ok := ledger.Redemption()
	require.True(t, ok)
	assert.Equal(t, 100.0, r.Amount)
	assert.Len(t, ledger.Coupons(), 2)
	assert.InDelta(t, 105.0, ledger.Total(), 1e-12)

	clone := ledger.Clone()
	clone[0].Coupon.Amount = -1
	assert.InDelta(t, 2.5, ledger[0].Coupon.Amount, 1e-12)
	assert.Nil(t, cashflow.Ledger(nil).Clone())
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "COUPON", cashflow.KindCoupon.String())
	assert.Equal(t, "REDEMPTION", cashflow.KindRedemption.String())
	assert.Equal(t, "Kind(0)", cashflow.Kind(0).String())

	var zero cashflow.CashFlow
	assert.True(t, zero.Date().IsZero())
	assert.Equal(t, 0.0, zero.Amount())
}
