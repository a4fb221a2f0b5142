package engine

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/tartampluch/go-misri/internal/config"
)

// ErrInvalidDateFormat is returned when a date string is not a real YYYY-MM-DD day.
var ErrInvalidDateFormat = errors.New(config.ErrInvalidDate)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseGregorian parses a strict YYYY-MM-DD string. Year 0000, month or day 00,
// and days that do not exist in the month are rejected.
func ParseGregorian(s string) (GregorianDate, error) {
	if !datePattern.MatchString(s) {
		return GregorianDate{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}

	t, err := time.Parse(config.DateLayout, s)
	if err != nil {
		return GregorianDate{}, fmt.Errorf("%w: %w", ErrInvalidDateFormat, err)
	}

	g := FromTime(t)
	if g.Year == 0 {
		return GregorianDate{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return g, nil
}
