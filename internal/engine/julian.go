package engine

import (
	"fmt"
	"time"
)

// JulianDay is a day count since the conventional Julian Day epoch.
// It carries no calendar semantics and is the pivot between calendars.
type JulianDay int

// GregorianDate is a day of the proleptic Gregorian calendar.
// Month and day are not validated: out-of-range values give an arithmetically
// consistent but meaningless Julian Day.
type GregorianDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// FromTime returns the UTC calendar date of t.
func FromTime(t time.Time) GregorianDate {
	y, m, d := t.UTC().Date()
	return GregorianDate{Year: y, Month: int(m), Day: d}
}

// JulianDay converts the date with the classical proleptic-Gregorian formula.
func (g GregorianDate) JulianDay() JulianDay {
	a := floorDiv(14-g.Month, 12)
	y := g.Year + 4800 - a
	m := g.Month + 12*a - 3

	jd := g.Day + floorDiv(153*m+2, 5) + 365*y +
		floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045
	return JulianDay(jd)
}

// Weekday returns the day of the week of the date.
func (g GregorianDate) Weekday() time.Weekday {
	return g.JulianDay().Weekday()
}

// Time returns midnight UTC of the date.
func (g GregorianDate) Time() time.Time {
	return time.Date(g.Year, time.Month(g.Month), g.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD.
func (g GregorianDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", g.Year, g.Month, g.Day)
}

// Gregorian converts the Julian Day back to a proleptic-Gregorian date.
func (j JulianDay) Gregorian() GregorianDate {
	a := int(j) + 32044
	b := floorDiv(4*a+3, 146097)
	c := a - floorDiv(146097*b, 4)
	d := floorDiv(4*c+3, 1461)
	e := c - floorDiv(1461*d, 4)
	m := floorDiv(5*e+2, 153)

	return GregorianDate{
		Year:  100*b + d - 4800 + m/10,
		Month: m + 3 - 12*(m/10),
		Day:   e - floorDiv(153*m+2, 5) + 1,
	}
}

// Weekday returns the day of the week, Sunday being 0.
func (j JulianDay) Weekday() time.Weekday {
	return time.Weekday(floorMod(int(j)+1, 7))
}

// AddDays offsets the Julian Day by n days.
func (j JulianDay) AddDays(n int) JulianDay {
	return j + JulianDay(n)
}

// Sub returns the number of days from o to j.
func (j JulianDay) Sub(o JulianDay) int {
	return int(j - o)
}
