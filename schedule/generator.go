package schedule

import (
	"fmt"
	"time"

	"github.com/meenmo/fixbond/calendar"
	"github.com/meenmo/fixbond/utils"
)

// Generator is the calendar-aware Provider.
//
// Forward schedules roll from the start date (or from an explicit first-period
// end) and leave any remainder at the back; backward schedules roll from the
// end date (or from an explicit final-period start) and leave it at the front.
type Generator struct{}

// Build generates unadjusted period boundaries, then adjusts them on spec.Calendar.
func (Generator) Build(spec Spec) (Schedule, error) {
	if err := validateSpec(spec); err != nil {
		return Schedule{}, fmt.Errorf("Build: %w", err)
	}

	var unadjusted []time.Time
	if spec.Stub.FromEnd {
		unadjusted = generateBackward(spec)
	} else {
		unadjusted = generateForward(spec)
	}

	last := len(unadjusted) - 1
	adjusted := make([]time.Time, len(unadjusted))
	for i, d := range unadjusted {
		conv := spec.Convention
		if i == last {
			conv = spec.TerminationConvention
		}
		adjusted[i] = spec.Calendar.Adjust(d, conv)
	}

	s, err := New(adjusted)
	if err != nil {
		return Schedule{}, fmt.Errorf("Build: adjusted dates collapse on %s: %w", spec.Calendar.Name(), err)
	}
	return s, nil
}

func validateSpec(spec Spec) error {
	if spec.Calendar == nil {
		return fmt.Errorf("%w: calendar is required", ErrInvalidSchedule)
	}
	if !spec.Start.Before(spec.End) {
		return fmt.Errorf("%w: start %s not before end %s", ErrInvalidSchedule, spec.Start.Format("2006-01-02"), spec.End.Format("2006-01-02"))
	}
	if !spec.Frequency.Valid() {
		return fmt.Errorf("%w: unsupported frequency %d", ErrInvalidSchedule, spec.Frequency)
	}

	st := spec.Stub
	switch st.Type {
	case StubNone, StubShort, StubLong:
	default:
		return fmt.Errorf("%w: unknown stub type %s", ErrInvalidSchedule, st.Type)
	}
	if !st.Date.IsZero() {
		if st.Type != StubNone {
			return fmt.Errorf("%w: both stub date %s and stub type %s given", ErrInvalidSchedule, st.Date.Format("2006-01-02"), st.Type)
		}
		if !st.Date.After(spec.Start) || !st.Date.Before(spec.End) {
			return fmt.Errorf("%w: stub date %s outside (%s, %s)", ErrInvalidSchedule,
				st.Date.Format("2006-01-02"), spec.Start.Format("2006-01-02"), spec.End.Format("2006-01-02"))
		}
	}
	if st.LongFinal && st.FromEnd {
		return fmt.Errorf("%w: long final period requires forward generation", ErrInvalidSchedule)
	}
	if st.LongFinal && st.Type == StubShort {
		return fmt.Errorf("%w: short stub conflicts with long final period", ErrInvalidSchedule)
	}
	return nil
}

// roll steps i periods away from anchor. Rolling from the anchor rather than
// the previous date avoids month-end drift.
func roll(spec Spec, anchor time.Time, eom bool, i int) time.Time {
	d := utils.AddMonth(anchor, i*int(spec.Frequency))
	if eom {
		d = utils.MonthEnd(d)
	}
	return d
}

func endOfMonthAnchor(spec Spec, anchor time.Time) bool {
	if !spec.EndOfMonth {
		return false
	}
	return utils.IsMonthEnd(anchor) || calendar.IsEndOfMonth(spec.Calendar, anchor)
}

func generateForward(spec Spec) []time.Time {
	st := spec.Stub
	dates := []time.Time{spec.Start}
	anchor := spec.Start
	if !st.Date.IsZero() {
		anchor = st.Date
		dates = append(dates, anchor)
	}
	eom := endOfMonthAnchor(spec, anchor)

	rolled := 0
	next := anchor
	for i := 1; ; i++ {
		next = roll(spec, anchor, eom, i)
		if !next.Before(spec.End) {
			break
		}
		dates = append(dates, next)
		rolled++
	}

	aligned := next.Equal(spec.End)
	if !aligned && rolled > 0 && (st.LongFinal || st.Type == StubLong) {
		dates = dates[:len(dates)-1]
	}
	return append(dates, spec.End)
}

func generateBackward(spec Spec) []time.Time {
	st := spec.Stub
	anchor := spec.End
	if !st.Date.IsZero() {
		anchor = st.Date
	}
	eom := endOfMonthAnchor(spec, anchor)

	// Collected latest first.
	rev := []time.Time{anchor}
	rolled := 0
	prev := anchor
	for i := 1; ; i++ {
		prev = roll(spec, anchor, eom, -i)
		if !prev.After(spec.Start) {
			break
		}
		rev = append(rev, prev)
		rolled++
	}

	aligned := prev.Equal(spec.Start)
	if !aligned && rolled > 0 && st.Type == StubLong {
		rev = rev[:len(rev)-1]
	}

	dates := make([]time.Time, 0, len(rev)+2)
	dates = append(dates, spec.Start)
	for i := len(rev) - 1; i >= 0; i-- {
		dates = append(dates, rev[i])
	}
	if !st.Date.IsZero() {
		dates = append(dates, spec.End)
	}
	return dates
}
