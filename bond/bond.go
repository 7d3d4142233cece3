package bond

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/meenmo/fixbond/calendar"
	"github.com/meenmo/fixbond/cashflow"
	"github.com/meenmo/fixbond/daycount"
	"github.com/meenmo/fixbond/internal/logging"
	"github.com/meenmo/fixbond/schedule"
)

// Warning flags a constructed ledger that is valid but unusual.
type Warning string

const (
	// WarnRedemptionBeforeLastCoupon: payment conventions put the redemption
	// ahead of the final coupon's payment date. The ledger keeps redemption last.
	WarnRedemptionBeforeLastCoupon Warning = "REDEMPTION_BEFORE_LAST_COUPON"
)

// Bond is an immutable fixed-coupon bond with its cash-flow ledger.
type Bond struct {
	terms    Terms
	schedule schedule.Schedule
	ledger   cashflow.Ledger
	warnings []Warning
}

type options struct {
	provider schedule.Provider
	logger   *slog.Logger
}

// Option customises bond construction.
type Option func(*options)

// WithScheduleProvider replaces the default schedule.Generator.
func WithScheduleProvider(p schedule.Provider) Option {
	return func(o *options) {
		if p != nil {
			o.provider = p
		}
	}
}

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewFixedCouponBond builds a bond whose irregular period, if any, is placed by
// an explicit stub date.
func NewFixedCouponBond(terms Terms, stub StubDate, opts ...Option) (*Bond, error) {
	b, err := build(terms, stub, opts)
	if err != nil {
		return nil, fmt.Errorf("NewFixedCouponBond: %w", err)
	}
	return b, nil
}

// NewFixedCouponBondFromStubType builds a bond with face amount LegacyFaceAmount
// whose irregular period is described by a stub type.
//
// Deprecated: use NewFixedCouponBond.
func NewFixedCouponBondFromStubType(terms LegacyTerms, stub StubRule, opts ...Option) (*Bond, error) {
	b, err := build(terms.terms(), stub, opts)
	if err != nil {
		return nil, fmt.Errorf("NewFixedCouponBondFromStubType: %w", err)
	}
	return b, nil
}

func build(terms Terms, stub stubSpec, opts []Option) (*Bond, error) {
	o := options{provider: schedule.Generator{}, logger: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := terms.validate(); err != nil {
		return nil, err
	}
	terms = terms.clone()

	st, err := stub.canonical()
	if err != nil {
		return nil, err
	}

	sched, err := o.provider.Build(schedule.Spec{
		Start:                 terms.DatedDate,
		End:                   terms.MaturityDate,
		Frequency:             terms.Frequency,
		Calendar:              terms.Calendar,
		Convention:            terms.AccrualConvention,
		TerminationConvention: terms.AccrualConvention,
		Stub:                  st,
	})
	if err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}

	coupons, err := cashflow.FixedRateCoupons(sched.Dates(), terms.Calendar, terms.PaymentConvention,
		[]float64{terms.FaceAmount}, terms.CouponRates, terms.DayCounter)
	if err != nil {
		return nil, fmt.Errorf("coupons: %w", err)
	}

	ledger := make(cashflow.Ledger, 0, len(coupons)+1)
	ledger = append(ledger, coupons...)
	redemption := cashflow.NewRedemption(terms.FaceAmount, terms.RedemptionPercent,
		terms.MaturityDate, terms.Calendar, terms.PaymentConvention)
	ledger = append(ledger, redemption)

	b := &Bond{terms: terms, schedule: sched, ledger: ledger}

	lastCoupon := coupons[len(coupons)-1].Date()
	if redemption.Date().Before(lastCoupon) {
		b.warnings = append(b.warnings, WarnRedemptionBeforeLastCoupon)
		o.logger.Warn("redemption paid before last coupon",
			"maturity", terms.MaturityDate.Format("2006-01-02"),
			"redemption_date", redemption.Date().Format("2006-01-02"),
			"last_coupon_date", lastCoupon.Format("2006-01-02"),
		)
	}

	o.logger.Debug("bond constructed",
		"dated", terms.DatedDate.Format("2006-01-02"),
		"maturity", terms.MaturityDate.Format("2006-01-02"),
		"calendar", terms.Calendar.Name(),
		"day_count", terms.DayCounter.Name(),
		"periods", sched.Periods(),
	)
	return b, nil
}

func (b *Bond) FaceAmount() float64 { return b.terms.FaceAmount }
func (b *Bond) IssueDate() time.Time { return b.terms.IssueDate }
func (b *Bond) DatedDate() time.Time { return b.terms.DatedDate }
func (b *Bond) MaturityDate() time.Time { return b.terms.MaturityDate }
func (b *Bond) SettlementDays() int { return b.terms.SettlementDays }
func (b *Bond) Frequency() schedule.Frequency { return b.terms.Frequency }
func (b *Bond) Calendar() calendar.Calendar { return b.terms.Calendar }
func (b *Bond) DayCounter() daycount.DayCounter { return b.terms.DayCounter }
func (b *Bond) PaymentConvention() calendar.BusinessDayConvention { return b.terms.PaymentConvention }
func (b *Bond) RedemptionPercent() float64 { return b.terms.RedemptionPercent }
func (b *Bond) Schedule() schedule.Schedule { return b.schedule }

// CouponRates returns a copy of the coupon rate series.
func (b *Bond) CouponRates() []float64 {
	return append([]float64(nil), b.terms.CouponRates...)
}

// Cashflows returns a copy of the ledger: coupons in schedule order, then the redemption.
func (b *Bond) Cashflows() cashflow.Ledger { return b.ledger.Clone() }

func (b *Bond) Coupons() []cashflow.Coupon { return b.ledger.Coupons() }

// Redemption returns the final ledger entry.
func (b *Bond) Redemption() cashflow.Redemption {
	r, _ := b.ledger.Redemption()
	return r
}

// Warnings lists the diagnostics recorded during construction.
func (b *Bond) Warnings() []Warning {
	return append([]Warning(nil), b.warnings...)
}

// SettlementDate advances tradeDate by the bond's settlement days on its calendar.
func (b *Bond) SettlementDate(tradeDate time.Time) time.Time {
	return calendar.Advance(b.terms.Calendar, tradeDate, b.terms.SettlementDays)
}
