package cashflow

import (
	"fmt"
	"time"
)

// Kind tags the variant held by a CashFlow.
type Kind int

const (
	KindCoupon Kind = iota + 1
	KindRedemption
)

func (k Kind) String() string {
	switch k {
	case KindCoupon:
		return "COUPON"
	case KindRedemption:
		return "REDEMPTION"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Coupon is a fixed-rate interest payment over one accrual period.
type Coupon struct {
	AccrualStart time.Time
	AccrualEnd   time.Time
	PaymentDate  time.Time
	Rate         float64
	Notional     float64
	Amount       float64
}

// Redemption is the principal repayment at maturity.
type Redemption struct {
	PaymentDate time.Time
	Amount      float64
}

// CashFlow is a tagged variant: Coupon is set when Kind is KindCoupon,
// Redemption when Kind is KindRedemption.
type CashFlow struct {
	Kind       Kind
	Coupon     Coupon
	Redemption Redemption
}

// CouponFlow wraps c as a CashFlow.
func CouponFlow(c Coupon) CashFlow {
	return CashFlow{Kind: KindCoupon, Coupon: c}
}

// RedemptionFlow wraps r as a CashFlow.
func RedemptionFlow(r Redemption) CashFlow {
	return CashFlow{Kind: KindRedemption, Redemption: r}
}

// Date returns the payment date of the held variant.
func (c CashFlow) Date() time.Time {
	switch c.Kind {
	case KindCoupon:
		return c.Coupon.PaymentDate
	case KindRedemption:
		return c.Redemption.PaymentDate
	default:
		return time.Time{}
	}
}

// Amount returns the payment amount of the held variant.
func (c CashFlow) Amount() float64 {
	switch c.Kind {
	case KindCoupon:
		return c.Coupon.Amount
	case KindRedemption:
		return c.Redemption.Amount
	default:
		return 0
	}
}

// Ledger is an ordered sequence of cash flows.
type Ledger []CashFlow

// Clone returns an independent copy of l.
func (l Ledger) Clone() Ledger {
	if l == nil {
		return nil
	}
	out := make(Ledger, len(l))
	copy(out, l)
	return out
}

// Coupons returns the coupon entries in ledger order.
func (l Ledger) Coupons() []Coupon {
	out := make([]Coupon, 0, len(l))
	for _, cf := range l {
		if cf.Kind == KindCoupon {
			out = append(out, cf.Coupon)
		}
	}
	return out
}

// Redemption returns the final entry when it is a redemption.
func (l Ledger) Redemption() (Redemption, bool) {
	if len(l) == 0 || l[len(l)-1].Kind != KindRedemption {
		return Redemption{}, false
	}
	return l[len(l)-1].Redemption, true
}

// Total sums every amount in the ledger.
func (l Ledger) Total() float64 {
	total := 0.0
	for _, cf := range l {
		total += cf.Amount()
	}
	return total
}
