package daycount

import (
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/fixbond/utils"
)

// DayCounter converts a date interval into the year fraction used to scale
// coupon rates into amounts.
type DayCounter interface {
	Name() string
	YearFraction(start, end time.Time) float64
}

// Convention is a named day count convention. It implements DayCounter.
type Convention string

const (
	Act360  Convention = "ACT/360"
	Act365F Convention = "ACT/365F"
	// ActActISDA splits the interval by calendar year, each part over 365 or 366.
	ActActISDA Convention = "ACT/ACT"
	// Thirty360 is the US (bond basis) 30/360.
	Thirty360 Convention = "30/360"
	// Thirty360E is the Eurobond basis 30E/360.
	Thirty360E Convention = "30E/360"
)

func (c Convention) Name() string { return string(c) }

// DayCount returns the number of days between start and end under c.
func (c Convention) DayCount(start, end time.Time) int {
	switch c {
	case Thirty360:
		return thirty360US(start, end)
	case Thirty360E:
		return thirty360E(start, end)
	default:
		return utils.Days(start, end)
	}
}

// YearFraction computes the year fraction between two dates.
//
// Unknown conventions fall back to ACT/365F; use Parse to reject them up front.
func (c Convention) YearFraction(start, end time.Time) float64 {
	switch c {
	case Act360:
		return float64(utils.Days(start, end)) / 360.0
	case ActActISDA:
		return actActISDA(start, end)
	case Thirty360, Thirty360E:
		return float64(c.DayCount(start, end)) / 360.0
	default:
		return float64(utils.Days(start, end)) / 365.0
	}
}

// Valid reports whether c is one of the supported conventions.
func (c Convention) Valid() bool {
	switch c {
	case Act360, Act365F, ActActISDA, Thirty360, Thirty360E:
		return true
	default:
		return false
	}
}

func thirty360US(start, end time.Time) int {
	d1, d2 := start.Day(), end.Day()
	if d1 == 31 {
		d1 = 30
	}
	if d2 == 31 && d1 >= 30 {
		d2 = 30
	}
	return thirty360(start, end, d1, d2)
}

func thirty360E(start, end time.Time) int {
	d1, d2 := start.Day(), end.Day()
	if d1 > 30 {
		d1 = 30
	}
	if d2 > 30 {
		d2 = 30
	}
	return thirty360(start, end, d1, d2)
}

func thirty360(start, end time.Time, d1, d2 int) int {
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return 360*(y2-y1) + 30*(m2-m1) + (d2 - d1)
}

func actActISDA(start, end time.Time) float64 {
	if end.Before(start) {
		return -actActISDA(end, start)
	}
	y1, y2 := start.Year(), end.Year()
	if y1 == y2 {
		return float64(utils.Days(start, end)) / daysInYear(y1)
	}
	firstYearEnd := time.Date(y1+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	lastYearStart := time.Date(y2, time.January, 1, 0, 0, 0, 0, time.UTC)
	frac := float64(utils.Days(start, firstYearEnd)) / daysInYear(y1)
	frac += float64(y2 - y1 - 1)
	frac += float64(utils.Days(lastYearStart, end)) / daysInYear(y2)
	return frac
}

func daysInYear(y int) float64 {
	if y%4 == 0 && (y%100 != 0 || y%400 == 0) {
		return 366
	}
	return 365
}

// Parse resolves a day count name as quoted in bond terms (e.g. "Actual/365",
// "ACT/365F", "30/360", "30E/360").
func Parse(name string) (Convention, error) {
	s := strings.ToUpper(strings.Join(strings.Fields(name), ""))
	s = strings.ReplaceAll(s, "ACTUAL", "ACT")
	switch s {
	case "ACT/360", "A360":
		return Act360, nil
	case "ACT/365", "ACT/365F", "ACT/365FIXED", "ACT/365(FIXED)", "A365F":
		return Act365F, nil
	case "ACT/ACT", "ACT/ACTISDA", "ACT/ACT(ISDA)":
		return ActActISDA, nil
	case "30/360", "30/360US", "30U/360", "BONDBASIS":
		return Thirty360, nil
	case "30E/360", "30/360E", "EUROBOND", "EUROBONDBASIS":
		return Thirty360E, nil
	default:
		return "", fmt.Errorf("daycount: unknown convention %q", name)
	}
}
