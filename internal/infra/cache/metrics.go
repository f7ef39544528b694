package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// cacheRequestsTotal counts lookups per cache, split into hits and misses.
// The ratio is the first thing to check when provider quota burns faster
// than expected.
var cacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_requests_total",
		Help: "Cache lookups by cache name and result",
	},
	[]string{"cache", "result"},
)

func recordLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheRequestsTotal.WithLabelValues(cache, result).Inc()
}
