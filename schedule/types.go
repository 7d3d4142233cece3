package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/fixbond/calendar"
)

// ErrInvalidSchedule is returned when a schedule cannot be generated from the
// given dates, frequency and stub specification.
var ErrInvalidSchedule = errors.New("invalid schedule")

// Frequency enumerates coupon frequencies as the regular period length in months.
type Frequency int

const (
	Annual           Frequency = 12
	Semiannual       Frequency = 6
	EveryFourthMonth Frequency = 4
	Quarterly        Frequency = 3
	Bimonthly        Frequency = 2
	Monthly          Frequency = 1
)

// Valid reports whether f divides the year into whole periods.
func (f Frequency) Valid() bool {
	switch f {
	case Annual, Semiannual, EveryFourthMonth, Quarterly, Bimonthly, Monthly:
		return true
	default:
		return false
	}
}

// PerYear returns the number of regular periods per year.
func (f Frequency) PerYear() int {
	if !f.Valid() {
		return 0
	}
	return 12 / int(f)
}

// ParseFrequency accepts names ("Semiannual"), codes ("S", "6M") or
// payments per year ("2").
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ANNUAL", "A", "12M", "1Y", "1":
		return Annual, nil
	case "SEMIANNUAL", "SEMI", "S", "6M", "2":
		return Semiannual, nil
	case "EVERYFOURTHMONTH", "4M", "3":
		return EveryFourthMonth, nil
	case "QUARTERLY", "Q", "3M", "4":
		return Quarterly, nil
	case "BIMONTHLY", "2M", "6":
		return Bimonthly, nil
	case "MONTHLY", "M", "1M", "12":
		return Monthly, nil
	default:
		return 0, fmt.Errorf("schedule: unknown frequency %q", s)
	}
}

// StubType describes the irregular period left over when the regular grid
// does not fit between start and end.
type StubType int

const (
	// StubNone lets the generator keep any remainder as a short period.
	StubNone StubType = iota
	// StubShort keeps the remainder as a short period.
	StubShort
	// StubLong merges the remainder into the adjacent regular period.
	StubLong
)

func (s StubType) String() string {
	switch s {
	case StubNone:
		return "NONE"
	case StubShort:
		return "SHORT"
	case StubLong:
		return "LONG"
	default:
		return fmt.Sprintf("StubType(%d)", int(s))
	}
}

// ParseStubType resolves "none", "short" or "long".
func ParseStubType(s string) (StubType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return StubNone, nil
	case "SHORT":
		return StubShort, nil
	case "LONG":
		return StubLong, nil
	default:
		return 0, fmt.Errorf("schedule: unknown stub type %q", s)
	}
}

// Stub places the irregular period of a schedule. It carries one of two
// encodings: an explicit boundary Date, or a Type.
//
// FromEnd selects backward generation from the end date; with an explicit
// Date it marks the start of the final period, otherwise the end of the first.
// LongFinal merges a short final period into its predecessor and only applies
// to forward generation.
type Stub struct {
	Date      time.Time
	Type      StubType
	FromEnd   bool
	LongFinal bool
}

// Spec holds the inputs for generating a schedule.
type Spec struct {
	Start     time.Time
	End       time.Time
	Frequency Frequency
	Calendar  calendar.Calendar

	// Convention adjusts the start and inner dates; TerminationConvention the end date.
	Convention            calendar.BusinessDayConvention
	TerminationConvention calendar.BusinessDayConvention

	// EndOfMonth pins rolled dates to month ends when the anchor date is one.
	EndOfMonth bool

	Stub Stub
}

// Provider produces period-boundary dates from schedule terms.
type Provider interface {
	Build(spec Spec) (Schedule, error)
}

// Schedule is an immutable, strictly increasing sequence of period boundaries.
type Schedule struct {
	dates []time.Time
}

// New validates dates and wraps them in a Schedule. The slice is copied.
func New(dates []time.Time) (Schedule, error) {
	if len(dates) < 2 {
		return Schedule{}, fmt.Errorf("%w: need at least 2 dates, got %d", ErrInvalidSchedule, len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return Schedule{}, fmt.Errorf("%w: dates not strictly increasing at %s", ErrInvalidSchedule, dates[i].Format("2006-01-02"))
		}
	}
	out := make([]time.Time, len(dates))
	copy(out, dates)
	return Schedule{dates: out}, nil
}

// Dates returns a copy of the boundary dates.
func (s Schedule) Dates() []time.Time {
	out := make([]time.Time, len(s.dates))
	copy(out, s.dates)
	return out
}

func (s Schedule) Len() int { return len(s.dates) }

func (s Schedule) Date(i int) time.Time { return s.dates[i] }

// Periods returns the number of accrual periods, one less than the number of dates.
func (s Schedule) Periods() int {
	if len(s.dates) == 0 {
		return 0
	}
	return len(s.dates) - 1
}

func (s Schedule) Start() time.Time { return s.dates[0] }

func (s Schedule) End() time.Time { return s.dates[len(s.dates)-1] }
