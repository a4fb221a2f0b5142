package engine

import (
	"cmp"
	"fmt"
)

// EpochJulianDay is the Julian Day of Misri 1-01-01.
const EpochJulianDay JulianDay = 1948439

// MisriDate is a day of the tabular Misri (Fatemi) calendar.
type MisriDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Misri converts the Julian Day to a Misri date. Every Julian Day maps to exactly
// one valid date; days before the epoch resolve to years <= 0.
func (j JulianDay) Misri() MisriDate {
	daysSinceEpoch := int(j - EpochJulianDay)

	cycles := floorDiv(daysSinceEpoch, CycleDays)
	remainder := daysSinceEpoch - cycles*CycleDays
	if remainder < 0 {
		cycles--
		remainder += CycleDays
	}

	year := cycles*CycleYears + 1
	for pos := 1; pos <= CycleYears; pos++ {
		length := positionLength(pos)
		if remainder < length {
			break
		}
		remainder -= length
		year++
	}

	// Leap status belongs to the year just resolved.
	leap := IsLeapYear(year)

	month := 1
	for ; month < MonthsPerYear; month++ {
		length := monthLength(month, leap)
		if remainder < length {
			break
		}
		remainder -= length
	}

	return MisriDate{Year: year, Month: month, Day: remainder + 1}
}

// JulianDay converts the date back to a Julian Day. It is the exact inverse of
// JulianDay.Misri for valid dates.
func (d MisriDate) JulianDay() JulianDay {
	cycles := floorDiv(d.Year-1, CycleYears)
	days := cycles * CycleDays

	pos := CyclePosition(d.Year)
	for p := 1; p < pos; p++ {
		days += positionLength(p)
	}

	leap := IsLeapPosition(pos)
	for m := 1; m < d.Month; m++ {
		days += monthLength(m, leap)
	}
	days += d.Day - 1

	return EpochJulianDay + JulianDay(days)
}

// Gregorian returns the Gregorian date of the same day.
func (d MisriDate) Gregorian() GregorianDate {
	return d.JulianDay().Gregorian()
}

// Misri returns the Misri date of the same day.
func (g GregorianDate) Misri() MisriDate {
	return g.JulianDay().Misri()
}

// IsLeap reports whether the date's year has 355 days.
func (d MisriDate) IsLeap() bool {
	return IsLeapYear(d.Year)
}

// DaysInMonth returns the length of the date's month.
func (d MisriDate) DaysInMonth() int {
	return MonthLength(d.Month, d.Year)
}

// Valid reports whether month and day fall inside the calendar.
func (d MisriDate) Valid() bool {
	return d.Month >= 1 && d.Month <= MonthsPerYear &&
		d.Day >= 1 && d.Day <= d.DaysInMonth()
}

// Compare orders dates by year, month, then day, returning -1, 0 or +1.
func (d MisriDate) Compare(o MisriDate) int {
	if c := cmp.Compare(d.Year, o.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, o.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, o.Day)
}

// Before reports whether d comes strictly before o.
func (d MisriDate) Before(o MisriDate) bool {
	return d.Compare(o) < 0
}

// AddDays returns the date n days later (earlier when n is negative).
func (d MisriDate) AddDays(n int) MisriDate {
	return d.JulianDay().AddDays(n).Misri()
}

// String formats the date as Y-MM-DD.
func (d MisriDate) String() string {
	return fmt.Sprintf("%d-%02d-%02d", d.Year, d.Month, d.Day)
}

// GregorianToMisri converts a Gregorian date to the Misri calendar.
func GregorianToMisri(g GregorianDate) MisriDate {
	return g.Misri()
}

// MisriToGregorian converts a Misri date to the Gregorian calendar.
func MisriToGregorian(d MisriDate) GregorianDate {
	return d.Gregorian()
}

// ShiftMonth moves a (year, month) pair by delta months, carrying into the year.
func ShiftMonth(year, month, delta int) (int, int) {
	idx := year*MonthsPerYear + (month - 1) + delta
	return floorDiv(idx, MonthsPerYear), floorMod(idx, MonthsPerYear) + 1
}
