package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mixtrail_http_requests_total",
		Help: "Total HTTP requests by route pattern and status",
	}, []string{"route", "status"})
	HTTPDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mixtrail_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})
	OperationDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mixtrail_operation_duration_ms",
		Help:    "Duration of timed internal operations in milliseconds",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"op", "outcome"})
	ORSRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mixtrail_ors_requests_total",
		Help: "OpenRouteService HTTP attempts by endpoint and result",
	}, []string{"endpoint", "result"})
	DirectionsCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mixtrail_directions_cache_hits_total",
		Help: "Directions cache hits",
	})
	DirectionsCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mixtrail_directions_cache_misses_total",
		Help: "Directions cache misses",
	})
	CandidatesEvaluatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mixtrail_candidates_evaluated_total",
		Help: "Candidates projected onto a route",
	})
	PicksPerSelection = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mixtrail_picks_per_selection",
		Help:    "Number of picks returned by one spacing selection",
		Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64, 128, 200},
	})
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPDurationMs)
	prometheus.MustRegister(OperationDurationMs)
	prometheus.MustRegister(ORSRequestsTotal)
	prometheus.MustRegister(DirectionsCacheHitsTotal)
	prometheus.MustRegister(DirectionsCacheMissesTotal)
	prometheus.MustRegister(CandidatesEvaluatedTotal)
	prometheus.MustRegister(PicksPerSelection)
}

// Handler exposes the registered collectors for scraping.
func Handler() http.Handler { return promhttp.Handler() }
