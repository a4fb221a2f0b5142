package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/tartampluch/go-misri/internal/config"
	"github.com/tartampluch/go-misri/internal/engine"
	"github.com/tartampluch/go-misri/internal/feed"
	"github.com/tartampluch/go-misri/internal/format"
)

// Server exposes the calendar engine over HTTP.
type Server struct {
	echo      *echo.Echo
	settings  config.Settings
	formatter *format.Formatter
	feed      *feed.Builder
	clock     engine.Clock
	metrics   *metrics
}

// structValidator adapts go-playground/validator to echo.
type structValidator struct {
	validator *validator.Validate
}

func (v *structValidator) Validate(i any) error {
	return v.validator.Struct(i)
}

// New wires routes and middleware. The clock decides which day "today" is.
func New(settings config.Settings, f *format.Formatter, clock engine.Clock) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &structValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	s := &Server{
		echo:      e,
		settings:  settings,
		formatter: f,
		feed:      &feed.Builder{Formatter: f, Clock: clock},
		clock:     clock,
		metrics:   newMetrics(),
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET(config.RouteHealth, s.handleHealth)
	if s.settings.Metrics.Enabled {
		s.echo.GET(config.RouteMetrics, s.metrics.handler())
	}

	api := s.echo.Group(config.RouteAPI)
	api.GET(config.RouteHijri, s.handleHijri)
	api.GET(config.RouteCalendar, s.handleCalendar)
	api.GET(config.RouteICS, s.handleICS)
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on the configured address and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.settings.Server.Addr(),
		Handler:      s.echo,
		ReadTimeout:  s.settings.Server.ReadTimeout,
		WriteTimeout: s.settings.Server.WriteTimeout,
		IdleTimeout:  s.settings.Server.IdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyAddr, srv.Addr,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.settings.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}
