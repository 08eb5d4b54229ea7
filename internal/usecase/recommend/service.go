// Package recommend implements the three recommendation strategies:
// content-based similar products (TF-IDF cosine), personalized
// tag-affinity recommendations, and trailing-window popularity. Every
// strategy is a pure function of the snapshots fetched per call; vectors
// are rebuilt each time and never cached.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kailas-cloud/shoprank/internal/domain/catalog"
	"github.com/kailas-cloud/shoprank/internal/domain/search/vector"
	"github.com/kailas-cloud/shoprank/internal/metrics"
)

// Strategy defaults.
const (
	DefaultSimilarLimit   = 5
	DefaultRecommendLimit = 5
	DefaultPopularLimit   = 10
	MaxLimit              = 100

	// HistoryLimit bounds the behavior window used for personalization.
	HistoryLimit = 20
	// TopTagCount is how many affinity tags drive candidate selection.
	TopTagCount = 5
	// PopularityWindow is the trailing window for purchase counting.
	PopularityWindow = 30 * 24 * time.Hour
)

// Service handles product recommendations.
type Service struct {
	products  ProductReader
	behaviors BehaviorReader
	maxLimit  int
	now       func() time.Time
}

// New creates a recommendation service.
func New(products ProductReader, behaviors BehaviorReader) *Service {
	return &Service{products: products, behaviors: behaviors, maxLimit: MaxLimit, now: time.Now}
}

// WithMaxLimit overrides the result set size cap shared by all strategies.
func (s *Service) WithMaxLimit(maxLimit int) *Service {
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// SimilarTo returns products most similar to the target by TF-IDF cosine
// similarity over the full catalog, best first. An unknown target yields
// an empty list.
func (s *Service) SimilarTo(ctx context.Context, productID string, limit int) ([]catalog.Product, error) {
	limit = s.clampLimit(limit, DefaultSimilarLimit)

	corpus, err := s.products.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	start := time.Now()
	vectors := vector.Build(corpus)
	ranked := findSimilar(productID, corpus, vectors, limit)

	metrics.RankingDuration.WithLabelValues(metrics.StrategySimilar).
		Observe(time.Since(start).Seconds())
	metrics.RankedCorpusSize.WithLabelValues(metrics.StrategySimilar).
		Observe(float64(len(corpus)))

	byID := make(map[string]catalog.Product, len(corpus))
	for i := range corpus {
		byID[corpus[i].ID()] = corpus[i]
	}

	results := make([]catalog.Product, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, byID[r.productID])
	}
	return results, nil
}

// RecommendFor returns personalized recommendations from the user's
// recent behavior. Users with no history (or an empty userID) fall back
// to popularity ranking.
func (s *Service) RecommendFor(ctx context.Context, userID string, limit int) ([]catalog.Product, error) {
	limit = s.clampLimit(limit, DefaultRecommendLimit)

	if userID == "" {
		metrics.RecommendationFallbacksTotal.Inc()
		return s.popular(ctx, limit)
	}

	events, err := s.behaviors.RecentForUser(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load behavior history: %w", err)
	}
	if len(events) == 0 {
		metrics.RecommendationFallbacksTotal.Inc()
		return s.popular(ctx, limit)
	}

	seen := make(map[string]bool, len(events))
	var seenIDs []string
	for i := range events {
		id := events[i].ProductID()
		if !seen[id] {
			seen[id] = true
			seenIDs = append(seenIDs, id)
		}
	}

	touched, err := s.products.FindByIDs(ctx, seenIDs)
	if err != nil {
		return nil, fmt.Errorf("load touched products: %w", err)
	}
	byID := make(map[string]catalog.Product, len(touched))
	for i := range touched {
		byID[touched[i].ID()] = touched[i]
	}

	start := time.Now()
	tags := topTags(tagAffinity(events, byID), TopTagCount)
	if len(tags) == 0 {
		metrics.RecommendationFallbacksTotal.Inc()
		return s.popular(ctx, limit)
	}

	candidates, err := s.products.FindMany(ctx, catalog.Filter{
		Tags:   tags,
		SortBy: catalog.SortByRating,
	})
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}

	results := make([]catalog.Product, 0, limit)
	for i := range candidates {
		if seen[candidates[i].ID()] {
			continue
		}
		results = append(results, candidates[i])
		if len(results) == limit {
			break
		}
	}

	metrics.RankingDuration.WithLabelValues(metrics.StrategyPersonalized).
		Observe(time.Since(start).Seconds())
	metrics.RankedCorpusSize.WithLabelValues(metrics.StrategyPersonalized).
		Observe(float64(len(candidates)))

	return results, nil
}

// Popular returns the most purchased products within the trailing
// window, best first. Products without a purchase in the window are
// never surfaced.
func (s *Service) Popular(ctx context.Context, limit int) ([]catalog.Product, error) {
	return s.popular(ctx, s.clampLimit(limit, DefaultPopularLimit))
}

func (s *Service) popular(ctx context.Context, limit int) ([]catalog.Product, error) {
	since := s.now().Add(-PopularityWindow)
	counts, err := s.behaviors.PurchaseCountsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("load purchase counts: %w", err)
	}
	if len(counts) == 0 {
		return nil, nil
	}

	start := time.Now()
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > limit {
		ids = ids[:limit]
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load popular products: %w", err)
	}

	metrics.RankingDuration.WithLabelValues(metrics.StrategyPopular).
		Observe(time.Since(start).Seconds())
	metrics.RankedCorpusSize.WithLabelValues(metrics.StrategyPopular).
		Observe(float64(len(counts)))

	return products, nil
}

func (s *Service) clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}
