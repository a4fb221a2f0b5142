package engine

// Cycle geometry of the Misri calendar.
const (
	CycleYears     = 30
	CycleDays      = 10631 // 11*355 + 19*354
	CommonYearDays = 354
	LeapYearDays   = 355
	MonthsPerYear  = 12

	longMonthDays  = 30
	shortMonthDays = 29
)

// leapPositions has bit p set when position p (1..30) of the cycle is a leap year:
// 2, 5, 8, 10, 13, 16, 19, 21, 24, 27 and 29.
const leapPositions uint32 = 1<<2 | 1<<5 | 1<<8 | 1<<10 | 1<<13 |
	1<<16 | 1<<19 | 1<<21 | 1<<24 | 1<<27 | 1<<29

// CyclePosition returns the 1-based position (1..30) of year within its 30-year cycle.
// Years before 1 wrap backwards, so year 0 is position 30.
func CyclePosition(year int) int {
	return floorMod(year-1, CycleYears) + 1
}

// IsLeapPosition reports whether the given cycle position carries the extra day.
func IsLeapPosition(pos int) bool {
	if pos < 1 || pos > CycleYears {
		return false
	}
	return leapPositions&(1<<uint(pos)) != 0
}

// IsLeapYear reports whether the Misri year has 355 days.
func IsLeapYear(year int) bool {
	return IsLeapPosition(CyclePosition(year))
}

// YearLength returns 355 for leap years and 354 otherwise.
func YearLength(year int) int {
	return positionLength(CyclePosition(year))
}

func positionLength(pos int) int {
	if IsLeapPosition(pos) {
		return LeapYearDays
	}
	return CommonYearDays
}

// MonthLength returns the number of days of a month in the given year.
// Odd months have 30 days and even months 29, except the twelfth month which
// follows the leap status of the year.
func MonthLength(month, year int) int {
	return monthLength(month, IsLeapYear(year))
}

func monthLength(month int, leap bool) int {
	if month == MonthsPerYear {
		if leap {
			return longMonthDays
		}
		return shortMonthDays
	}
	if month%2 == 1 {
		return longMonthDays
	}
	return shortMonthDays
}

// floorDiv and floorMod round towards negative infinity, unlike Go's / and %.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
