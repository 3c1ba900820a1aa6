package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appcategory "github.com/zmitacart/catalog-api/internal/application/category"
)

var _ appcategory.Recorder = (*Collector)(nil)

// Collector agrupa las métricas Prometheus del servicio en un registry propio.
type Collector struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Negocio
	Mutations    *prometheus.CounterVec
	LevelQueried prometheus.Counter
	CacheLookups *prometheus.CounterVec
}

// NewCollector crea y registra las métricas bajo namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total de peticiones HTTP",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duración de las peticiones HTTP en segundos",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "category_mutations_total",
				Help:      "Altas, cambios y bajas de categorías por resultado",
			},
			[]string{"op", "outcome"},
		),
		LevelQueried: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "category_tree_level_queries_total",
				Help:      "Consultas por nivel al materializar árboles de categorías",
			},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "category_cache_requests_total",
				Help:      "Búsquedas en la caché de lecturas del árbol",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Mutations,
		c.LevelQueried,
		c.CacheLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry expone el registry para tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler sirve el formato de exposición de Prometheus.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveHTTP registra una petición ya respondida.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// MutationDone cuenta una mutación de categoría.
func (c *Collector) MutationDone(op, outcome string) {
	c.Mutations.WithLabelValues(op, outcome).Inc()
}

// LevelQueries suma las consultas por nivel de una materialización.
func (c *Collector) LevelQueries(n int) {
	if n > 0 {
		c.LevelQueried.Add(float64(n))
	}
}

// CacheLookup cuenta un hit o miss de caché.
func (c *Collector) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.CacheLookups.WithLabelValues(result).Inc()
}
