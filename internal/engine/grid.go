package engine

import (
	"strconv"
	"time"
)

// Cell is one slot of a month grid. The zero value is a blank slot before the
// first day of the month.
type Cell int

// Blank reports whether the cell holds no day.
func (c Cell) Blank() bool {
	return c == 0
}

// MarshalJSON encodes blank cells as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Blank() {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(c), 10), nil
}

// MonthGrid is the data behind a 7-column month view starting on Sunday.
type MonthGrid struct {
	Year         int          `json:"year"`
	Month        int          `json:"month"`
	DaysInMonth  int          `json:"daysInMonth"`
	StartWeekday time.Weekday `json:"startWeekday"`
	Cells        []Cell       `json:"cells"`
}

// BuildMonthGrid lays out a Misri month: StartWeekday blank cells followed by the
// day numbers 1..DaysInMonth.
func BuildMonthGrid(year, month int) MonthGrid {
	first := MisriDate{Year: year, Month: month, Day: 1}
	days := first.DaysInMonth()
	start := first.Gregorian().Weekday()

	cells := make([]Cell, 0, int(start)+days)
	for i := 0; i < int(start); i++ {
		cells = append(cells, 0)
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell(d))
	}

	return MonthGrid{
		Year:         year,
		Month:        month,
		DaysInMonth:  days,
		StartWeekday: start,
		Cells:        cells,
	}
}

// Weeks splits the cells into rows of seven. The last row may be shorter.
func (g MonthGrid) Weeks() [][]Cell {
	var rows [][]Cell
	for i := 0; i < len(g.Cells); i += 7 {
		end := min(i+7, len(g.Cells))
		rows = append(rows, g.Cells[i:end])
	}
	return rows
}

// First returns the Misri date of the first day of the month.
func (g MonthGrid) First() MisriDate {
	return MisriDate{Year: g.Year, Month: g.Month, Day: 1}
}
