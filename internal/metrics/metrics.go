// Package metrics exposes site counters on a private prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the site's collectors.
type Metrics struct {
	registry *prometheus.Registry

	pageViews       *prometheus.CounterVec
	notFound        prometheus.Counter
	toggles         *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers every collector on a fresh registry so tests and
// multiple engines never collide on the default one.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		pageViews: f.NewCounterVec(prometheus.CounterOpts{
			Name: "faculty_page_views_total",
			Help: "Total number of rendered pages by page and language",
		}, []string{"page", "lang"}),
		notFound: f.NewCounter(prometheus.CounterOpts{
			Name: "faculty_not_found_total",
			Help: "Total number of requests that fell through to the not found page",
		}),
		toggles: f.NewCounterVec(prometheus.CounterOpts{
			Name: "faculty_preference_toggles_total",
			Help: "Total number of theme and language toggles by resulting value",
		}, []string{"preference", "value"}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "faculty_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "faculty_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// PageView counts a rendered page.
func (m *Metrics) PageView(page, lang string) {
	m.pageViews.WithLabelValues(page, lang).Inc()
}

// NotFound counts a catch-all hit.
func (m *Metrics) NotFound() {
	m.notFound.Inc()
}

// Toggle counts a preference change to value.
func (m *Metrics) Toggle(preference, value string) {
	m.toggles.WithLabelValues(preference, value).Inc()
}

// knownMethods bounds the method label; anything else is "other".
var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
	http.MethodConnect: true,
	http.MethodTrace:   true,
}

// ObserveRequest records a finished request. route is the matched route
// pattern, or empty for unmatched paths.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	if !knownMethods[method] {
		method = "other"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
