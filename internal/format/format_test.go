package format_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-misri/internal/engine"
	"github.com/tartampluch/go-misri/internal/format"
	"golang.org/x/text/language"
)

func newFormatter(t *testing.T) *format.Formatter {
	t.Helper()
	f, err := format.New()
	require.NoError(t, err, "embedded locales must load")
	return f
}

func TestOrdinalSuffix(t *testing.T) {
	tests := map[int]string{
		0: "th", 1: "st", 2: "nd", 3: "rd", 4: "th", 10: "th",
		11: "th", 12: "th", 13: "th", 14: "th",
		21: "st", 22: "nd", 23: "rd", 29: "th", 30: "th",
		101: "st", 111: "th", 112: "th", 113: "th", 1445: "th", 1441: "st",
		-1: "st", -11: "th",
	}
	for n, want := range tests {
		assert.Equal(t, want, format.OrdinalSuffix(n), "n=%d", n)
	}
}

func TestArabicIndic(t *testing.T) {
	assert.Equal(t, "١٤٤٥", format.ArabicIndic(1445))
	assert.Equal(t, "٠", format.ArabicIndic(0))
	assert.Equal(t, "٩٨٧٦٥٤٣٢١٠", format.ArabicIndicString("9876543210"))
	assert.Equal(t, "-٢٩", format.ArabicIndic(-29), "sign passes through")
	assert.Equal(t, "٢٠٢٤-٠١-٠١", format.ArabicIndicString("2024-01-01"))
	assert.Equal(t, "abc", format.ArabicIndicString("abc"))
}

func TestFormat_NewYear2024(t *testing.T) {
	f := newFormatter(t)

	got := f.Format(engine.MisriDate{Year: 1445, Month: 6, Day: 20})

	assert.Equal(t, format.Display{
		Day:         20,
		Month:       6,
		Year:        1445,
		MonthNameEn: "Jumadal-Ukhra",
		MonthNameAr: "جمادى الأخرى",
		DayAr:       "٢٠",
		YearAr:      "١٤٤٥",
		FormattedEn: "20th Jumadal-Ukhra 1445",
		FormattedAr: "٢٠ جمادى الأخرى ١٤٤٥",
	}, got)
	assert.Equal(t, engine.MisriDate{Year: 1445, Month: 6, Day: 20}, got.Date())
}

func TestFormat_Ordinals(t *testing.T) {
	f := newFormatter(t)

	assert.Equal(t, "1st Moharram-ul-Haraam 1446", f.Format(engine.MisriDate{Year: 1446, Month: 1, Day: 1}).FormattedEn)
	assert.Equal(t, "22nd Ramadan-ul-Moazzam 1446", f.Format(engine.MisriDate{Year: 1446, Month: 9, Day: 22}).FormattedEn)
	assert.Equal(t, "13th Zilhaj-il-Haraam 1446", f.Format(engine.MisriDate{Year: 1446, Month: 12, Day: 13}).FormattedEn)
}

func TestFormat_JSONFieldOrder(t *testing.T) {
	f := newFormatter(t)

	raw, err := json.Marshal(f.Format(engine.MisriDate{Year: 1445, Month: 1, Day: 1}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"day": 1, "month": 1, "year": 1445,
		"monthNameEn": "Moharram-ul-Haraam", "monthNameAr": "محرم الحرام",
		"dayAr": "١", "yearAr": "١٤٤٥",
		"formattedEn": "1st Moharram-ul-Haraam 1445",
		"formattedAr": "١ محرم الحرام ١٤٤٥"
	}`, string(raw))
	assert.Regexp(t, `^\{"day":1,"month":1,"year":1445,"monthNameEn"`, string(raw))
}

func TestMonthName(t *testing.T) {
	f := newFormatter(t)

	assert.Equal(t, "Zilhaj-il-Haraam", f.MonthName(12, language.English))
	assert.Equal(t, "ذي الحجة الحرام", f.MonthName(12, language.Arabic))
	assert.Equal(t, "Safar-ul-Muzaffar", f.MonthName(2, language.French), "other languages fall back to English")
	assert.Empty(t, f.MonthName(0, language.English))
	assert.Empty(t, f.MonthName(13, language.Arabic))
}

func TestNames_Weekdays(t *testing.T) {
	f := newFormatter(t)

	en := f.Names(language.English)
	ar := f.Names(language.MustParse("ar-EG"))

	assert.Equal(t, [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, en.Weekdays)
	assert.Equal(t, "الجمعة", ar.Weekdays[5])
	assert.NotEmpty(t, en.CalendarName)
	assert.NotEqual(t, en.CalendarName, ar.CalendarName)
}

// TestFormat_Concurrent exercises a shared Formatter from many goroutines.
// Run with `go test -race`.
func TestFormat_Concurrent(t *testing.T) {
	f := newFormatter(t)
	want := f.Format(engine.MisriDate{Year: 1445, Month: 6, Day: 20})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				d := engine.GregorianDate{Year: 2024, Month: 1, Day: 1}.Misri()
				assert.Equal(t, want, f.Format(d))
			}
		}()
	}
	wg.Wait()
}
