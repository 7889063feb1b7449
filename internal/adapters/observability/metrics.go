package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Every collector lives under the sellerlens namespace and is registered on
// the private registry built by InitRegistry.
var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sellerlens", Name: "http_requests_total", Help: "Seller and review requests served, by route and status."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sellerlens", Name: "http_request_duration_seconds",
			Help:    "Time to answer a seller or review request.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	FeedRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sellerlens", Name: "feed_requests_total", Help: "Calls to the upstream catalogue feed; status 0 is a transport error."},
		[]string{"feed", "endpoint", "status"},
	)
	FeedLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sellerlens", Name: "feed_request_duration_seconds",
			Help:    "Upstream catalogue feed call duration.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 20},
		},
		[]string{"feed", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sellerlens", Name: "cache_events_total", Help: "Seller, product and review cache events."},
		[]string{"cache", "event"}, // event: hit|miss|set|del|error
	)
	IngestEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sellerlens", Name: "ingest_events_total", Help: "Sellers and products pulled from the feed, by outcome."},
		[]string{"kind", "outcome"}, // outcome: ok|miss|error
	)
	VerdictsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sellerlens", Name: "verdicts_served_total", Help: "Review cards served, by detection label."},
		[]string{"classification", "surface"}, // surface: api|page
	)
)

// Serve starts a standalone metrics listener on addr; empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, FeedRequests, FeedLatency, CacheEvents, IngestEvents, VerdictsServed)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveFeed(feed, endpoint string, status int, dur time.Duration) {
	FeedRequests.WithLabelValues(feed, endpoint, strconv.Itoa(status)).Inc()
	FeedLatency.WithLabelValues(feed, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del|error
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveIngest(kind, outcome string) {
	IngestEvents.WithLabelValues(kind, outcome).Inc()
}

// ObserveVerdict counts one served review card. Unknown labels are folded
// into "unclassified" to keep the label set bounded.
func ObserveVerdict(classification, surface string) {
	switch classification {
	case "real", "botted", "suspicious":
	default:
		classification = "unclassified"
	}
	VerdictsServed.WithLabelValues(classification, surface).Inc()
}
