package calendar

import "time"

// isTARGETHoliday covers the TARGET2 closing days: New Year's Day, Good Friday,
// Easter Monday, Labour Day, Christmas Day and 26 December.
func isTARGETHoliday(t time.Time) bool {
	_, m, d := t.Date()
	easter := easterSunday(t.Year()).YearDay()
	yd := t.YearDay()
	switch {
	case m == time.January && d == 1:
		return true
	case yd == easter-2 || yd == easter+1:
		return true
	case m == time.May && d == 1:
		return true
	case m == time.December && (d == 25 || d == 26):
		return true
	}
	return false
}

// isUSDHoliday follows the US government bond market: federal holidays with
// weekend observance, plus Good Friday.
func isUSDHoliday(t time.Time) bool {
	y, m, d := t.Date()
	w := t.Weekday()
	nth := (d-1)/7 + 1

	switch {
	// New Year's Day, moved to Monday when it falls on a Sunday.
	case m == time.January && (d == 1 || (d == 2 && w == time.Monday)):
		return true
	// Martin Luther King Jr. Day, third Monday of January.
	case m == time.January && w == time.Monday && nth == 3 && y >= 1983:
		return true
	// Washington's Birthday, third Monday of February.
	case m == time.February && w == time.Monday && nth == 3:
		return true
	case t.YearDay() == easterSunday(y).YearDay()-2:
		return true
	// Memorial Day, last Monday of May.
	case m == time.May && w == time.Monday && d > 24:
		return true
	case y >= 2022 && observedOn(t, time.June, 19):
		return true
	case observedOn(t, time.July, 4):
		return true
	// Labor Day, first Monday of September.
	case m == time.September && w == time.Monday && nth == 1:
		return true
	// Columbus Day, second Monday of October.
	case m == time.October && w == time.Monday && nth == 2:
		return true
	// Veterans Day, moved to Monday when it falls on a Sunday.
	case m == time.November && (d == 11 || (d == 12 && w == time.Monday)):
		return true
	// Thanksgiving, fourth Thursday of November.
	case m == time.November && w == time.Thursday && nth == 4:
		return true
	case observedOn(t, time.December, 25):
		return true
	}
	return false
}

// observedOn reports whether t is the observed date of a fixed-date holiday:
// Saturday holidays are observed on Friday, Sunday holidays on Monday.
func observedOn(t time.Time, month time.Month, day int) bool {
	h := time.Date(t.Year(), month, day, 0, 0, 0, 0, time.UTC)
	switch h.Weekday() {
	case time.Saturday:
		h = h.AddDate(0, 0, -1)
	case time.Sunday:
		h = h.AddDate(0, 0, 1)
	}
	return sameDay(t, h)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// easterSunday returns Gregorian Easter Sunday (anonymous Gregorian algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// HolidayCalendar is a weekend calendar with an explicit holiday list.
type HolidayCalendar struct {
	name     string
	holidays map[string]struct{}
}

// NewHolidayCalendar builds an immutable calendar closed on weekends and on
// every date in holidays.
func NewHolidayCalendar(name string, holidays ...time.Time) *HolidayCalendar {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[h.Format("2006-01-02")] = struct{}{}
	}
	return &HolidayCalendar{name: name, holidays: set}
}

func (c *HolidayCalendar) Name() string { return c.name }

func (c *HolidayCalendar) IsBusinessDay(t time.Time) bool {
	if isWeekend(t) {
		return false
	}
	_, ok := c.holidays[t.Format("2006-01-02")]
	return !ok
}

func (c *HolidayCalendar) Adjust(t time.Time, conv BusinessDayConvention) time.Time {
	return Adjust(c, t, conv)
}
