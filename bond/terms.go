package bond

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/fixbond/calendar"
	"github.com/meenmo/fixbond/daycount"
	"github.com/meenmo/fixbond/schedule"
)

// LegacyFaceAmount is the face amount of bonds built through the stub-type API.
const LegacyFaceAmount = 100.0

// Terms are the economic terms of a fixed-coupon bond.
type Terms struct {
	FaceAmount     float64
	IssueDate      time.Time
	DatedDate      time.Time
	MaturityDate   time.Time
	SettlementDays int

	// CouponRates are decimals (0.05 == 5%), one per period; the last rate
	// applies to every period beyond the series.
	CouponRates []float64
	Frequency   schedule.Frequency

	Calendar          calendar.Calendar
	DayCounter        daycount.DayCounter
	AccrualConvention calendar.BusinessDayConvention
	PaymentConvention calendar.BusinessDayConvention

	// RedemptionPercent is the redemption as a percentage of face (100 == par).
	RedemptionPercent float64
}

// LegacyTerms are Terms without a face amount, which is fixed at LegacyFaceAmount.
type LegacyTerms struct {
	IssueDate         time.Time
	DatedDate         time.Time
	MaturityDate      time.Time
	SettlementDays    int
	CouponRates       []float64
	Frequency         schedule.Frequency
	Calendar          calendar.Calendar
	DayCounter        daycount.DayCounter
	AccrualConvention calendar.BusinessDayConvention
	PaymentConvention calendar.BusinessDayConvention
	RedemptionPercent float64
}

func (l LegacyTerms) terms() Terms {
	return Terms{
		FaceAmount:        LegacyFaceAmount,
		IssueDate:         l.IssueDate,
		DatedDate:         l.DatedDate,
		MaturityDate:      l.MaturityDate,
		SettlementDays:    l.SettlementDays,
		CouponRates:       l.CouponRates,
		Frequency:         l.Frequency,
		Calendar:          l.Calendar,
		DayCounter:        l.DayCounter,
		AccrualConvention: l.AccrualConvention,
		PaymentConvention: l.PaymentConvention,
		RedemptionPercent: l.RedemptionPercent,
	}
}

func (t Terms) validate() error {
	if !(t.FaceAmount > 0) || math.IsInf(t.FaceAmount, 0) {
		return invalidField("FaceAmount", "must be positive and finite, got %v", t.FaceAmount)
	}
	if t.SettlementDays < 0 {
		return invalidField("SettlementDays", "must not be negative, got %d", t.SettlementDays)
	}
	if t.DatedDate.IsZero() {
		return invalidField("DatedDate", "is required")
	}
	if !t.DatedDate.Before(t.MaturityDate) {
		return invalidField("MaturityDate", "%s must be after dated date %s",
			t.MaturityDate.Format("2006-01-02"), t.DatedDate.Format("2006-01-02"))
	}
	if len(t.CouponRates) == 0 {
		return &TermsError{Field: "CouponRates", Reason: "at least one rate is required", Err: ErrUnsupportedRateSeries}
	}
	for i, r := range t.CouponRates {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return &TermsError{Field: "CouponRates", Reason: fmt.Sprintf("rate %d is not finite", i), Err: ErrUnsupportedRateSeries}
		}
	}
	if t.Calendar == nil {
		return invalidField("Calendar", "is required")
	}
	if !validCollaborator(t.Calendar) {
		return invalidField("Calendar", "unsupported calendar %q", t.Calendar.Name())
	}
	if t.DayCounter == nil {
		return invalidField("DayCounter", "is required")
	}
	if !validCollaborator(t.DayCounter) {
		return invalidField("DayCounter", "unsupported day count %q", t.DayCounter.Name())
	}
	if !t.AccrualConvention.Valid() {
		return invalidField("AccrualConvention", "unsupported convention %q", t.AccrualConvention)
	}
	if !t.PaymentConvention.Valid() {
		return invalidField("PaymentConvention", "unsupported convention %q", t.PaymentConvention)
	}
	if !(t.RedemptionPercent >= 0) || math.IsInf(t.RedemptionPercent, 0) {
		return invalidField("RedemptionPercent", "must be non-negative and finite, got %v", t.RedemptionPercent)
	}
	return nil
}

// validCollaborator rejects enum-backed calendars and day counters holding an
// unknown value; other implementations are trusted.
func validCollaborator(c any) bool {
	if v, ok := c.(interface{ Valid() bool }); ok {
		return v.Valid()
	}
	return true
}

func (t Terms) clone() Terms {
	out := t
	out.CouponRates = append([]float64(nil), t.CouponRates...)
	return out
}

// StubDate is the explicit stub encoding: Date is the end of the first period,
// or with FromEnd the start of the final period. A zero Date means no stub.
type StubDate struct {
	Date      time.Time
	FromEnd   bool
	LongFinal bool
}

// StubRule is the enum stub encoding used by the legacy constructor.
type StubRule struct {
	Type      schedule.StubType
	FromEnd   bool
	LongFinal bool
}

// stubSpec is either encoding; canonical normalises it for the schedule provider.
type stubSpec interface {
	canonical() (schedule.Stub, error)
}

func (s StubDate) canonical() (schedule.Stub, error) {
	return schedule.Stub{Date: s.Date, FromEnd: s.FromEnd, LongFinal: s.LongFinal}, nil
}

// canonical folds the enum into the provider's shape: a short stub is the
// default remainder handling, and a long stub on a forward schedule is a long
// final period.
func (s StubRule) canonical() (schedule.Stub, error) {
	switch s.Type {
	case schedule.StubNone, schedule.StubShort:
		if s.Type == schedule.StubShort && s.LongFinal && !s.FromEnd {
			return schedule.Stub{}, fmt.Errorf("%w: short stub conflicts with long final period", schedule.ErrInvalidSchedule)
		}
		return schedule.Stub{FromEnd: s.FromEnd, LongFinal: s.LongFinal}, nil
	case schedule.StubLong:
		if s.FromEnd {
			return schedule.Stub{Type: schedule.StubLong, FromEnd: true, LongFinal: s.LongFinal}, nil
		}
		return schedule.Stub{LongFinal: true}, nil
	default:
		return schedule.Stub{}, fmt.Errorf("%w: unknown stub type %s", schedule.ErrInvalidSchedule, s.Type)
	}
}
