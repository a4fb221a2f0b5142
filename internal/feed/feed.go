// Package feed publishes Misri months as iCalendar files, one all-day event per day.
package feed

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-misri/internal/config"
	"github.com/tartampluch/go-misri/internal/engine"
	"github.com/tartampluch/go-misri/internal/format"
	"golang.org/x/text/language"
)

// namespace seeds the name-based UIDs so that a day keeps its UID across builds.
var namespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(config.AppID))

// Builder renders calendar feeds.
type Builder struct {
	Formatter *format.Formatter
	Clock     engine.Clock
}

// NewBuilder creates a Builder using the real clock.
func NewBuilder(f *format.Formatter) *Builder {
	return &Builder{Formatter: f, Clock: engine.RealClock{}}
}

// EventUID returns the stable UID of the event for a Misri day.
func EventUID(d engine.MisriDate) string {
	return fmt.Sprintf(config.FormatUID, uuid.NewSHA1(namespace, []byte(d.String())), config.ICalDomain)
}

// Month encodes every day of the Misri month as an all-day VEVENT dated on its
// Gregorian day. DTSTAMP is the current UTC day so the output is stable for a day.
func (b *Builder) Month(year, month int) ([]byte, error) {
	grid := engine.BuildMonthGrid(year, month)
	names := b.Formatter.Names(language.English)

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, names.CalendarName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	stamp := engine.Today(b.Clock).Time()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(stamp)

	first := grid.First()
	for i := 0; i < grid.DaysInMonth; i++ {
		day := first.AddDays(i)
		display := b.Formatter.Format(day)

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, EventUID(day))
		event.Props.SetText(config.PropSummary, display.FormattedEn)
		event.Props.SetText(config.PropDescription, display.FormattedAr)
		event.Props.Set(dtStampProp)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(day.Gregorian().Time())
		event.Props.Set(dtStartProp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgFeedBuilt,
		config.LogKeyComponent, config.CompFeed,
		config.LogKeyYear, year,
		config.LogKeyMonth, month,
		config.LogKeyEvents, grid.DaysInMonth,
		config.LogKeySizeBytes, buf.Len(),
	)
	return buf.Bytes(), nil
}
