package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/go-misri/internal/config"
)

// metrics groups the collectors of one server. Each server owns its registry so
// several instances can coexist in tests.
type metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	conversions *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: config.MetricNamespace,
				Name:      config.MetricRequestsTotal,
				Help:      "Total number of HTTP requests",
			},
			[]string{config.MetricLabelMethod, config.MetricLabelRoute, config.MetricLabelStatus},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: config.MetricNamespace,
				Name:      config.MetricRequestDuration,
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{config.MetricLabelMethod, config.MetricLabelRoute},
		),
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: config.MetricNamespace,
				Name:      config.MetricConversions,
				Help:      "Calendar conversions served, by kind",
			},
			[]string{config.MetricLabelKind},
		),
	}
	m.registry.MustRegister(m.requests, m.duration, m.conversions)
	return m
}

// middleware records count and latency per route template.
func (m *metrics) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			status = http.StatusInternalServerError
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			}
		}

		route := c.Path()
		method := c.Request().Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

func (m *metrics) converted(kind string) {
	m.conversions.WithLabelValues(kind).Inc()
}

func (m *metrics) handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
