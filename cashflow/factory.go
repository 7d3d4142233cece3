package cashflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/fixbond/calendar"
	"github.com/meenmo/fixbond/daycount"
)

// ErrEmptySeries is returned when no notional or no rate is supplied.
var ErrEmptySeries = errors.New("empty notional or rate series")

// FixedRateCoupons emits one coupon per consecutive pair of schedule dates.
//
// Period i uses notionals[i] and rates[i]; once a series is exhausted its last
// value applies to every remaining period, so a single rate is used throughout.
// Payment dates are the accrual end dates adjusted with payConv on cal.
func FixedRateCoupons(
	dates []time.Time,
	cal calendar.Calendar,
	payConv calendar.BusinessDayConvention,
	notionals []float64,
	rates []float64,
	dc daycount.DayCounter,
) ([]CashFlow, error) {
	if len(notionals) == 0 || len(rates) == 0 {
		return nil, fmt.Errorf("FixedRateCoupons: %w (notionals=%d, rates=%d)", ErrEmptySeries, len(notionals), len(rates))
	}
	if len(dates) < 2 {
		return nil, fmt.Errorf("FixedRateCoupons: need at least 2 schedule dates, got %d", len(dates))
	}

	out := make([]CashFlow, 0, len(dates)-1)
	for i := 0; i < len(dates)-1; i++ {
		start, end := dates[i], dates[i+1]
		notional := valueAt(notionals, i)
		rate := valueAt(rates, i)
		out = append(out, CouponFlow(Coupon{
			AccrualStart: start,
			AccrualEnd:   end,
			PaymentDate:  cal.Adjust(end, payConv),
			Rate:         rate,
			Notional:     notional,
			Amount:       notional * rate * dc.YearFraction(start, end),
		}))
	}
	return out, nil
}

func valueAt(series []float64, i int) float64 {
	if i < len(series) {
		return series[i]
	}
	return series[len(series)-1]
}

// NewRedemption builds the principal repayment of faceAmount × percent / 100,
// paid on maturity adjusted with payConv. A zero percent still yields an entry.
// The percent is scaled first so a face near the float64 limit stays finite.
func NewRedemption(
	faceAmount float64,
	percent float64,
	maturity time.Time,
	cal calendar.Calendar,
	payConv calendar.BusinessDayConvention,
) CashFlow {
	return RedemptionFlow(Redemption{
		PaymentDate: cal.Adjust(maturity, payConv),
		Amount:      faceAmount * (percent / 100.0),
	})
}
