package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	searches      *prometheus.CounterVec
	visitedNodes  *prometheus.HistogramVec
	searchSeconds *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pathfinder_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pathfinder_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pathfinder_search_total",
			Help: "Finished searches by algorithm, fallback use and outcome.",
		}, []string{"algorithm", "fallback", "found"}),
		visitedNodes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pathfinder_search_visited_nodes",
			Help:    "Nodes visited per search.",
			Buckets: prometheus.ExponentialBuckets(10, 4, 10),
		}, []string{"algorithm"}),
		searchSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pathfinder_search_duration_seconds",
			Help:    "Time spent in the search itself, fallback included.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"algorithm"}),
	}
}

func (m *Metrics) ObserveSearch(algorithm string, fallback, found bool, visited int, elapsed time.Duration) {
	m.searches.WithLabelValues(algorithm, strconv.FormatBool(fallback), strconv.FormatBool(found)).Inc()
	m.visitedNodes.WithLabelValues(algorithm).Observe(float64(visited))
	m.searchSeconds.WithLabelValues(algorithm).Observe(elapsed.Seconds())
}

// PromeHttpMiddleware records request counts and latencies labelled by chi route pattern.
func PromeHttpMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
