package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/tartampluch/go-misri/internal/config"
	"golang.org/x/time/rate"
)

// outsideAPI skips middleware that only applies to /api routes.
func outsideAPI(c echo.Context) bool {
	return !strings.HasPrefix(c.Request().URL.Path, config.RouteAPI)
}

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				config.LogKeyComponent, config.CompServer,
				config.LogKeyMethod, v.Method,
				config.LogKeyURI, v.URI,
				config.LogKeyStatus, v.Status,
				config.LogKeyLatency, float64(v.Latency.Microseconds()) / 1000,
				config.LogKeyRemoteIP, v.RemoteIP,
				config.LogKeyRequestID, v.RequestID,
			}
			if v.Error != nil {
				slog.Warn(config.MsgRequestFail, append(attrs, config.LogKeyError, v.Error)...)
				return nil
			}
			slog.Debug(config.MsgRequest, attrs...)
			return nil
		},
	}))
	s.echo.Use(s.metrics.middleware)
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(config.HeaderServer, config.ServerHeader)
			return next(c)
		}
	})

	// Permissive CORS for every API route and method. Preflight requests end here
	// with 204 and never reach a handler.
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper:      outsideAPI,
		AllowOrigins: s.settings.CORS.AllowedOrigins,
		AllowMethods: config.CORSAllowMethods,
		AllowHeaders: config.CORSAllowHeaders,
		MaxAge:       config.CORSMaxAge,
	}))

	if rl := s.settings.RateLimit; rl.RequestsPerSecond > 0 {
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Skipper: outsideAPI,
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(rl.RequestsPerSecond),
				Burst:     rl.Burst,
				ExpiresIn: rl.ExpiresIn,
			}),
			IdentifierExtractor: func(c echo.Context) (string, error) {
				return c.RealIP(), nil
			},
			ErrorHandler: func(c echo.Context, err error) error {
				return echo.NewHTTPError(http.StatusForbidden, config.ErrIdentifierFailed).SetInternal(err)
			},
			DenyHandler: func(c echo.Context, identifier string, err error) error {
				return echo.NewHTTPError(http.StatusTooManyRequests, config.ErrRateLimited).SetInternal(err)
			},
		}))
	}
}

// errorHandler renders every failure as {"error": message}.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := config.ErrInternal

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		default:
			msg = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		slog.Error(config.ErrInternal,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyURI, c.Request().RequestURI,
			config.LogKeyError, err,
		)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, errorResponse{Error: msg})
	}
	if werr != nil {
		slog.Error(config.ErrInternal, config.LogKeyComponent, config.CompServer, config.LogKeyError, werr)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}
