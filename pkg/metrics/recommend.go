package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of the recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total number of recommendation requests",
	})

	// How often a cached recommendation result was served
	RecommendCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_cache_hits_total",
		Help: "Recommendation results served from cache",
	})

	// Retried LLM calls, labeled by reason
	LLMRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_retries_total",
		Help: "LLM calls retried after a transient failure",
	}, []string{"reason"})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		RecommendCacheHits,
		LLMRetries,
	)
}
