package calendar

import (
	"fmt"
	"strings"
	"time"
)

// BusinessDayConvention selects how a date falling on a non-business day is rolled.
type BusinessDayConvention string

const (
	Unadjusted        BusinessDayConvention = "UNADJUSTED"
	Following         BusinessDayConvention = "FOLLOWING"
	ModifiedFollowing BusinessDayConvention = "MODIFIED_FOLLOWING"
	Preceding         BusinessDayConvention = "PRECEDING"
	ModifiedPreceding BusinessDayConvention = "MODIFIED_PRECEDING"
)

// Valid reports whether c is one of the supported conventions.
func (c BusinessDayConvention) Valid() bool {
	switch c {
	case Unadjusted, Following, ModifiedFollowing, Preceding, ModifiedPreceding:
		return true
	default:
		return false
	}
}

// Calendar decides which days are business days and rolls dates onto them.
//
// Implementations must be safe for concurrent use; every calendar in this
// package is an immutable value.
type Calendar interface {
	Name() string
	IsBusinessDay(t time.Time) bool
	Adjust(t time.Time, conv BusinessDayConvention) time.Time
}

// CalendarID identifies a rule-based holiday calendar.
type CalendarID string

const (
	TARGET       CalendarID = "TARGET"
	USD          CalendarID = "USD"
	WeekendsOnly CalendarID = "WEEKENDS"
	// Null treats every day, weekends included, as a business day.
	Null CalendarID = "NULL"
)

func (c CalendarID) Name() string { return string(c) }

// Valid reports whether c is one of the rule calendars defined here.
func (c CalendarID) Valid() bool {
	switch c {
	case TARGET, USD, WeekendsOnly, Null:
		return true
	default:
		return false
	}
}

func (c CalendarID) IsBusinessDay(t time.Time) bool { return IsBusinessDay(c, t) }

func (c CalendarID) Adjust(t time.Time, conv BusinessDayConvention) time.Time {
	return Adjust(c, t, conv)
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

func isHoliday(cal CalendarID, t time.Time) bool {
	switch cal {
	case TARGET:
		return isTARGETHoliday(t)
	case USD:
		return isUSDHoliday(t)
	default:
		return false
	}
}

// IsBusinessDay checks weekends and holiday rules.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if cal == Null {
		return true
	}
	if isWeekend(t) {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust rolls t onto a business day of cal according to conv.
func Adjust(cal Calendar, t time.Time, conv BusinessDayConvention) time.Time {
	switch conv {
	case Following, ModifiedFollowing:
		d := rollForward(cal, t)
		if conv == ModifiedFollowing && d.Month() != t.Month() {
			return rollBackward(cal, t)
		}
		return d
	case Preceding, ModifiedPreceding:
		d := rollBackward(cal, t)
		if conv == ModifiedPreceding && d.Month() != t.Month() {
			return rollForward(cal, t)
		}
		return d
	default:
		return t
	}
}

func rollForward(cal Calendar, t time.Time) time.Time {
	for !cal.IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func rollBackward(cal Calendar, t time.Time) time.Time {
	for !cal.IsBusinessDay(t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal Calendar, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if cal.IsBusinessDay(t) {
			n -= step
		}
	}
	return t
}

// Advance moves t by n business days. With n == 0 the date is only rolled
// forward onto a business day.
func Advance(cal Calendar, t time.Time, n int) time.Time {
	if n == 0 {
		return rollForward(cal, t)
	}
	return AddBusinessDays(cal, t, n)
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal Calendar, t time.Time) time.Time {
	nextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return AddBusinessDays(cal, nextMonth, -1)
}

// IsEndOfMonth checks if t is the last business day of its month.
func IsEndOfMonth(cal Calendar, t time.Time) bool {
	return t.Equal(LastBusinessDayOfMonth(cal, t))
}

// Parse resolves a calendar name as found in trade terms.
func Parse(name string) (Calendar, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TARGET", "TARGET2", "EUR":
		return TARGET, nil
	case "USD", "US", "UNITEDSTATES", "US_GOVT":
		return USD, nil
	case "WEEKENDS", "WEEKENDSONLY", "WEEKENDS_ONLY":
		return WeekendsOnly, nil
	case "NULL", "NONE":
		return Null, nil
	default:
		return nil, fmt.Errorf("calendar: unknown calendar %q", name)
	}
}

// ParseConvention resolves a business-day convention name or its short code.
func ParseConvention(name string) (BusinessDayConvention, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	switch s {
	case "UNADJUSTED", "NONE", "U":
		return Unadjusted, nil
	case "FOLLOWING", "F":
		return Following, nil
	case "MODIFIED_FOLLOWING", "MODIFIEDFOLLOWING", "MF":
		return ModifiedFollowing, nil
	case "PRECEDING", "P":
		return Preceding, nil
	case "MODIFIED_PRECEDING", "MODIFIEDPRECEDING", "MP":
		return ModifiedPreceding, nil
	default:
		return "", fmt.Errorf("calendar: unknown business day convention %q", name)
	}
}
