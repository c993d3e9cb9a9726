package impilo

import (
	"regexp"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contadores del cliente REST hacia el backend Impilo.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registra las métricas del cliente en reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "impilo_client_requests_total",
				Help: "Total de peticiones enviadas al backend Impilo.",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "impilo_client_request_duration_seconds",
				Help:    "Latencia de las peticiones al backend Impilo.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	if err := reg.Register(m.requests); err != nil {
		return nil, err
	}
	if err := reg.Register(m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

var numericSegment = regexp.MustCompile(`/\d+(/|$)`)

// routeLabel normaliza los segmentos numéricos (/stock/batch/12 -> /stock/batch/:id)
// para no disparar la cardinalidad de las etiquetas.
func routeLabel(endpoint string) string {
	for numericSegment.MatchString(endpoint) {
		endpoint = numericSegment.ReplaceAllString(endpoint, "/:id$1")
	}
	return endpoint
}
