package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Prometheus struct {
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	lookups     *prometheus.HistogramVec
	httpDur     *prometheus.HistogramVec
	invalidated prometheus.Counter
}

func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "order_cache_hits_total",
			Help: "Order reads served from the cache.",
		}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "order_cache_misses_total",
			Help: "Order reads that fell back to the backing store.",
		}),
		lookups: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "order_lookup_duration_ms",
			Help:    "Order lookup latency by source.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}, []string{"source"}),
		httpDur: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "HTTP request latency.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
		}, []string{"method", "route", "status"}),
		invalidated: f.NewCounter(prometheus.CounterOpts{
			Name: "order_cache_invalidated_keys_total",
			Help: "Cache keys purged by the invalidation coordinator.",
		}),
	}
}

func (p *Prometheus) IncCacheHit()  { p.cacheHits.Inc() }
func (p *Prometheus) IncCacheMiss() { p.cacheMisses.Inc() }

func (p *Prometheus) ObserveLookup(source string, durMs float64) {
	p.lookups.WithLabelValues(source).Observe(durMs)
}

func (p *Prometheus) ObserveHTTP(method, route string, status int, durMs float64) {
	p.httpDur.WithLabelValues(method, route, strconv.Itoa(status)).Observe(durMs)
}

func (p *Prometheus) ObserveInvalidation(keys int) {
	p.invalidated.Add(float64(keys))
}
