// Package search implements free-text product search: heuristic query
// parsing, candidate retrieval under the extracted constraints, and
// composite relevance ranking.
package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kailas-cloud/shoprank/internal/domain/catalog"
	"github.com/kailas-cloud/shoprank/internal/domain/search/query"
	"github.com/kailas-cloud/shoprank/internal/metrics"
)

// Result limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// centsPerUnit converts parsed display-unit price bounds to the minor
// units stored on products.
const centsPerUnit = 100

// Service handles natural-language product search.
type Service struct {
	products     ProductFinder
	priceCeiling int
	defaultLimit int
	maxLimit     int
}

// New creates a search service.
func New(products ProductFinder) *Service {
	return &Service{
		products:     products,
		priceCeiling: DefaultPriceCeiling,
		defaultLimit: DefaultLimit,
		maxLimit:     MaxLimit,
	}
}

// WithPriceCeiling overrides the price normalization ceiling (minor units).
func (s *Service) WithPriceCeiling(ceiling int) *Service {
	if ceiling > 0 {
		s.priceCeiling = ceiling
	}
	return s
}

// WithLimits overrides the fallback and cap for result set sizes.
func (s *Service) WithLimits(defaultLimit, maxLimit int) *Service {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// Search parses the raw query, fetches candidates under the extracted
// price and keyword constraints, and ranks them. A non-positive limit
// falls back to the configured default.
func (s *Service) Search(ctx context.Context, rawQuery string, limit int) ([]catalog.Product, error) {
	limit = s.clampLimit(limit)
	parsed := query.Parse(rawQuery)

	start := time.Now()

	// Price bounds narrow the candidate set; keywords only influence
	// scoring, so a weak match ranks low instead of disappearing.
	var filter catalog.Filter
	if parsed.PriceMin != nil {
		lo := *parsed.PriceMin * centsPerUnit
		filter.PriceMin = &lo
	}
	if parsed.PriceMax != nil {
		hi := *parsed.PriceMax * centsPerUnit
		filter.PriceMax = &hi
	}

	candidates, err := s.products.FindMany(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	s.rank(candidates, &parsed)

	metrics.RankingDuration.WithLabelValues(metrics.StrategyTextSearch).
		Observe(time.Since(start).Seconds())
	metrics.RankedCorpusSize.WithLabelValues(metrics.StrategyTextSearch).
		Observe(float64(len(candidates)))

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

// rank orders candidates by composite score when keyword text survived
// parsing; otherwise it falls back to the parsed sort intent, keeping
// repository order (most-recent-first) as the default.
func (s *Service) rank(candidates []catalog.Product, parsed *query.Parsed) {
	if parsed.Text != "" {
		scores := make([]float64, len(candidates))
		for i := range candidates {
			scores[i] = compositeScore(parsed.Text, &candidates[i], s.priceCeiling)
		}
		indexSort(candidates, func(i, j int) bool { return scores[i] > scores[j] })
		return
	}

	switch parsed.SortBy {
	case query.SortRating:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Rating() > candidates[j].Rating()
		})
	case query.SortPrice:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Price() < candidates[j].Price()
		})
	}
}

// indexSort stably sorts candidates by a comparator over the pre-scored
// index, keeping score lookups aligned while elements move.
func indexSort(candidates []catalog.Product, less func(i, j int) bool) {
	idx := make([]int, len(candidates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return less(idx[a], idx[b]) })

	sorted := make([]catalog.Product, len(candidates))
	for pos, i := range idx {
		sorted[pos] = candidates[i]
	}
	copy(candidates, sorted)
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}
