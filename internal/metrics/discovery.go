package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ranking strategy labels.
const (
	StrategyTextSearch   = "text_search"
	StrategySimilar      = "similar"
	StrategyPersonalized = "personalized"
	StrategyPopular      = "popular"
)

// Discovery Prometheus metrics.
var (
	RankingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shoprank",
			Name:      "ranking_duration_seconds",
			Help:      "Time spent ranking candidates, by strategy",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"strategy"},
	)

	RankedCorpusSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shoprank",
			Name:      "ranked_corpus_size",
			Help:      "Number of candidates entering the ranking pipeline, by strategy",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		},
		[]string{"strategy"},
	)

	RecommendationFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shoprank",
			Name:      "recommendation_fallbacks_total",
			Help:      "Personalized requests that fell back to popularity ranking",
		},
	)
)

var discoveryMetricsRegistered bool

// RegisterDiscoveryMetrics registers Prometheus discovery metrics. Must be called once from main.
func RegisterDiscoveryMetrics() {
	if discoveryMetricsRegistered {
		return
	}
	prometheus.MustRegister(RankingDuration)
	prometheus.MustRegister(RankedCorpusSize)
	prometheus.MustRegister(RecommendationFallbacksTotal)
	discoveryMetricsRegistered = true
}
