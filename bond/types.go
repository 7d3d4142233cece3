package bond

import (
	"time"

	"github.com/meenmo/fixbond/cashflow"
)

// Cashflow is a single dated cash payment for a bond.
//
// Amounts are in currency units (e.g., EUR), not price-per-100.
type Cashflow struct {
	Date      time.Time
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// DatedCashflows folds a ledger into per-date payments. Consecutive entries
// paid on the same date are merged; ledger order is otherwise preserved.
func DatedCashflows(ledger cashflow.Ledger) []Cashflow {
	out := make([]Cashflow, 0, len(ledger))
	for _, cf := range ledger {
		d := cf.Date()
		if n := len(out); n > 0 && out[n-1].Date.Equal(d) {
			addTo(&out[n-1], cf)
			continue
		}
		row := Cashflow{Date: d}
		addTo(&row, cf)
		out = append(out, row)
	}
	return out
}

func addTo(row *Cashflow, cf cashflow.CashFlow) {
	switch cf.Kind {
	case cashflow.KindCoupon:
		row.Coupon += cf.Coupon.Amount
	case cashflow.KindRedemption:
		row.Principal += cf.Redemption.Amount
	}
}

// DatedCashflows returns the bond's ledger as per-date payments.
func (b *Bond) DatedCashflows() []Cashflow {
	return DatedCashflows(b.ledger)
}
