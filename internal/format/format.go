// Package format renders Misri dates as English and Arabic display strings.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tartampluch/go-misri/internal/engine"
	"golang.org/x/text/language"
)

const arabicIndicDigits = "٠١٢٣٤٥٦٧٨٩"

var arabicBase, _ = language.Arabic.Base()

// Display is the formatted view of a Misri date. Field order and JSON names are
// part of the HTTP contract.
type Display struct {
	Day         int    `json:"day"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	MonthNameEn string `json:"monthNameEn"`
	MonthNameAr string `json:"monthNameAr"`
	DayAr       string `json:"dayAr"`
	YearAr      string `json:"yearAr"`
	FormattedEn string `json:"formattedEn"`
	FormattedAr string `json:"formattedAr"`
}

// Date returns the Misri date the display was built from.
func (d Display) Date() engine.MisriDate {
	return engine.MisriDate{Year: d.Year, Month: d.Month, Day: d.Day}
}

// Formatter holds the English and Arabic name tables. It is immutable once built
// and safe for concurrent use.
type Formatter struct {
	en Names
	ar Names
}

// New loads the embedded locale files and resolves both name tables.
func New() (*Formatter, error) {
	bundle, err := loadBundle()
	if err != nil {
		return nil, err
	}

	en, err := resolveNames(bundle, language.English)
	if err != nil {
		return nil, err
	}
	ar, err := resolveNames(bundle, language.Arabic)
	if err != nil {
		return nil, err
	}

	return &Formatter{en: en, ar: ar}, nil
}

// Names returns the vocabulary for tag. Anything that is not Arabic gets English.
func (f *Formatter) Names(tag language.Tag) Names {
	if base, _ := tag.Base(); base == arabicBase {
		return f.ar
	}
	return f.en
}

// MonthName returns the month name in the given language, or "" for a month
// outside 1..12.
func (f *Formatter) MonthName(month int, tag language.Tag) string {
	if month < 1 || month > engine.MonthsPerYear {
		return ""
	}
	return f.Names(tag).Months[month-1]
}

// Format composes the English and Arabic renderings of d.
func (f *Formatter) Format(d engine.MisriDate) Display {
	en := f.MonthName(d.Month, language.English)
	ar := f.MonthName(d.Month, language.Arabic)
	dayAr := ArabicIndic(d.Day)
	yearAr := ArabicIndic(d.Year)

	return Display{
		Day:         d.Day,
		Month:       d.Month,
		Year:        d.Year,
		MonthNameEn: en,
		MonthNameAr: ar,
		DayAr:       dayAr,
		YearAr:      yearAr,
		FormattedEn: fmt.Sprintf("%d%s %s %d", d.Day, OrdinalSuffix(d.Day), en, d.Year),
		FormattedAr: fmt.Sprintf("%s %s %s", dayAr, ar, yearAr),
	}
}

// OrdinalSuffix returns the English ordinal suffix of n: "st", "nd", "rd" or "th".
// Numbers ending in 11, 12 or 13 always take "th".
func OrdinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	switch n % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// ArabicIndic writes n with Arabic-Indic digits. The sign is kept as is.
func ArabicIndic(n int) string {
	return ArabicIndicString(strconv.Itoa(n))
}

// ArabicIndicString replaces each ASCII digit of s with its Arabic-Indic glyph.
func ArabicIndicString(s string) string {
	digits := []rune(arabicIndicDigits)
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return digits[r-'0']
		}
		return r
	}, s)
}
