package server

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tartampluch/go-misri/internal/config"
	"github.com/tartampluch/go-misri/internal/engine"
	"github.com/tartampluch/go-misri/internal/format"
	"golang.org/x/text/language"
)

// monthQuery selects a Misri month. Missing fields default to the current month.
type monthQuery struct {
	Year  int `validate:"min=1,max=9999"`
	Month int `validate:"min=1,max=12"`
}

// monthRef points at a neighbouring month for navigation.
type monthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type calendarResponse struct {
	Year         int                  `json:"year"`
	Month        int                  `json:"month"`
	MonthNameEn  string               `json:"monthNameEn"`
	MonthNameAr  string               `json:"monthNameAr"`
	YearAr       string               `json:"yearAr"`
	DaysInMonth  int                  `json:"daysInMonth"`
	StartWeekday int                  `json:"startWeekday"`
	WeekdaysEn   [7]string            `json:"weekdaysEn"`
	WeekdaysAr   [7]string            `json:"weekdaysAr"`
	Cells        []engine.Cell        `json:"cells"`
	Previous     monthRef             `json:"previous"`
	Next         monthRef             `json:"next"`
	Today        engine.MisriDate     `json:"today"`
	Gregorian    engine.GregorianDate `json:"gregorianStart"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: config.MsgHealthOK, Version: config.Version})
}

// handleHijri converts ?date=YYYY-MM-DD, or today's UTC date when absent.
// An empty date parameter is invalid, not absent.
func (s *Server) handleHijri(c echo.Context) error {
	target := engine.Today(s.clock)

	if params := c.QueryParams(); params.Has(config.QueryDate) {
		g, err := engine.ParseGregorian(params.Get(config.QueryDate))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, config.ErrInvalidDate).SetInternal(err)
		}
		target = g
	}

	display := s.formatter.Format(target.Misri())
	s.metrics.converted(config.ConversionDate)

	slog.Debug(config.MsgConverted,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyInput, target.String(),
		config.LogKeyMisri, display.Date().String(),
	)

	c.Response().Header().Set(config.HeaderCacheControl, config.CacheControlNone)
	return c.JSON(http.StatusOK, display)
}

// handleCalendar returns the grid of a Misri month with its labels.
func (s *Server) handleCalendar(c echo.Context) error {
	today := engine.Today(s.clock).Misri()

	q, err := s.bindMonth(c, today)
	if err != nil {
		return err
	}

	grid := engine.BuildMonthGrid(q.Year, q.Month)
	en := s.formatter.Names(language.English)
	ar := s.formatter.Names(language.Arabic)
	prevY, prevM := engine.ShiftMonth(q.Year, q.Month, -1)
	nextY, nextM := engine.ShiftMonth(q.Year, q.Month, 1)

	s.metrics.converted(config.ConversionMonth)

	c.Response().Header().Set(config.HeaderCacheControl, config.CacheControlNone)
	return c.JSON(http.StatusOK, calendarResponse{
		Year:         grid.Year,
		Month:        grid.Month,
		MonthNameEn:  en.Months[grid.Month-1],
		MonthNameAr:  ar.Months[grid.Month-1],
		YearAr:       format.ArabicIndic(grid.Year),
		DaysInMonth:  grid.DaysInMonth,
		StartWeekday: int(grid.StartWeekday),
		WeekdaysEn:   en.Weekdays,
		WeekdaysAr:   ar.Weekdays,
		Cells:        grid.Cells,
		Previous:     monthRef{Year: prevY, Month: prevM},
		Next:         monthRef{Year: nextY, Month: nextM},
		Today:        today,
		Gregorian:    grid.First().Gregorian(),
	})
}

// handleICS serves a Misri month as an iCalendar feed with ETag revalidation.
func (s *Server) handleICS(c echo.Context) error {
	q, err := s.bindMonth(c, engine.Today(s.clock).Misri())
	if err != nil {
		return err
	}

	data, err := s.feed.Month(q.Year, q.Month)
	if err != nil {
		return err
	}
	s.metrics.converted(config.ConversionFeed)

	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	h := c.Response().Header()
	h.Set(config.HeaderETag, etag)
	h.Set(config.HeaderCacheControl, config.CacheControlFeed)

	if match := c.Request().Header.Get(config.HeaderIfNoneMatch); match == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.Blob(http.StatusOK, config.MimeTextCalendar, data)
}

// bindMonth reads ?year=&month=, filling gaps from the given default.
func (s *Server) bindMonth(c echo.Context, def engine.MisriDate) (monthQuery, error) {
	q := monthQuery{Year: def.Year, Month: def.Month}

	err := echo.QueryParamsBinder(c).
		Int(config.QueryYear, &q.Year).
		Int(config.QueryMonth, &q.Month).
		BindError()
	if err != nil {
		return q, echo.NewHTTPError(http.StatusBadRequest, config.ErrInvalidMonth).SetInternal(err)
	}

	if err := c.Validate(&q); err != nil {
		return q, echo.NewHTTPError(http.StatusBadRequest, config.ErrInvalidMonth).SetInternal(err)
	}
	return q, nil
}
