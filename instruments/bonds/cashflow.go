package bonds

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fixbond/bond"
)

// CashflowCents mirrors the Bloomberg-style cashflow feed where coupon/principal
// are stored as integer minor units (e.g., cents for EUR).
type CashflowCents struct {
	Date           time.Time
	CouponCents    int64
	PrincipalCents int64
}

// FromCashflow rounds c half away from zero into minor units with the given
// number of decimal places.
func FromCashflow(c bond.Cashflow, places int32) CashflowCents {
	return CashflowCents{
		Date:           c.Date,
		CouponCents:    toMinor(c.Coupon, places),
		PrincipalCents: toMinor(c.Principal, places),
	}
}

func FromCashflows(in []bond.Cashflow, places int32) []CashflowCents {
	out := make([]CashflowCents, 0, len(in))
	for _, cf := range in {
		out = append(out, FromCashflow(cf, places))
	}
	return out
}

func toMinor(amount float64, places int32) int64 {
	return decimal.NewFromFloat(amount).Round(places).Shift(places).IntPart()
}

// TotalCents sums coupon and principal minor units across rows.
func TotalCents(in []CashflowCents) int64 {
	var total int64
	for _, cf := range in {
		total += cf.CouponCents + cf.PrincipalCents
	}
	return total
}
