package http

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/impilo-stock/pkg/logger"
)

const (
	// RequestIDHeader header con el que se propaga el id de petición.
	RequestIDHeader = "X-Request-ID"
	// LocalRequestID clave en Locals del id de petición.
	LocalRequestID = "request_id"
)

// RequestID garantiza un X-Request-ID por petición (lo genera si no viene) y lo
// devuelve en la respuesta.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalRequestID, id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}

// RequestLogger registra cada petición con zerolog: método, ruta, status y latencia.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := responseStatus(c, err)
		rid, _ := c.Locals(LocalRequestID).(string)
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency_ms", float64(time.Since(start).Microseconds())/1000).
			Msg("petición HTTP")
		return err
	}
}

// ── Métricas ─────────────────────────────────────────────────────────────────

// Metrics métricas Prometheus de la API HTTP.
type Metrics struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registra las métricas HTTP en reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "impilo_http_requests_total",
				Help: "Total de peticiones HTTP atendidas.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "impilo_http_request_duration_seconds",
				Help:    "Latencia de las peticiones HTTP.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
	if err := reg.Register(m.requestCount); err != nil {
		return nil, err
	}
	if err := reg.Register(m.requestDuration); err != nil {
		return nil, err
	}
	return m, nil
}

// unmatchedRoute etiqueta de las peticiones que no coinciden con ninguna ruta;
// la ruta cruda no se usa como etiqueta.
const unmatchedRoute = "unmatched"

// Handler middleware que cuenta peticiones por patrón de ruta (/api/stock/batches/:id).
// /metrics no se cuenta.
func (m *Metrics) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		start := time.Now()
		own := c.Route()
		err := c.Next()

		path := c.Route().Path
		if path == "" || c.Route() == own || routeNotFound(err) {
			path = unmatchedRoute
		}
		m.requestCount.WithLabelValues(c.Method(), path, strconv.Itoa(responseStatus(c, err))).Inc()
		m.requestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// routeNotFound error que genera fiber cuando ninguna ruta atiende la petición
// ("Cannot GET /x"); los handlers que devuelven fiber.ErrNotFound no cuentan.
func routeNotFound(err error) bool {
	var fe *fiber.Error
	return errors.As(err, &fe) && fe.Code == fiber.StatusNotFound && strings.HasPrefix(fe.Message, "Cannot ")
}

// responseStatus status final: si el handler devolvió error aún no se escribió.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
