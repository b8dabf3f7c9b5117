package observability

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "visitjo"

func counter(name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func histogram(name, help string, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: name, Help: help, Buckets: prometheus.DefBuckets,
	}, labels)
}

var (
	httpRequests     = counter("http_requests_total", "Read API requests.", "route", "method", "status")
	httpLatency      = histogram("http_request_duration_seconds", "Read API request duration seconds.", "route", "method")
	providerRequests = counter("external_requests_total", "Outbound provider requests.", "service", "endpoint", "status")
	providerLatency  = histogram("external_request_duration_seconds", "Outbound provider request duration seconds.", "service", "endpoint")
	cacheEvents      = counter("cache_events_total", "Hotel cache events.", "cache", "event")
	catalogWrites    = counter("catalog_writes_total", "Catalog upserts by outcome.", "table", "outcome")
	listingsFetched  = counter("listings_fetched_total", "Raw provider listings fetched.", "location")
)

// Serve exposes reg on addr in the background. An empty addr disables it.
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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(httpRequests, httpLatency, providerRequests, providerLatency, cacheEvents, catalogWrites, listingsFetched)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	providerRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	providerLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

// ObserveCache counts a cache event: hit, miss, set, del or error.
func ObserveCache(cache, event string) {
	cacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveCatalogWrite(table string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	catalogWrites.WithLabelValues(table, outcome).Inc()
}

func ObserveListings(location string, n int) {
	listingsFetched.WithLabelValues(location).Add(float64(n))
}

func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}
