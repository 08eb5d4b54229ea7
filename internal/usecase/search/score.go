package search

import (
	"github.com/kailas-cloud/shoprank/internal/domain/catalog"
	"github.com/kailas-cloud/shoprank/internal/domain/search/token"
	"github.com/kailas-cloud/shoprank/internal/domain/search/vector"
)

// Composite score weights: relevance dominates, rating second, low price
// as a weak popularity proxy.
const (
	relevanceWeight = 0.5
	ratingWeight    = 0.3
	priceWeight     = 0.2
)

// DefaultPriceCeiling normalizes price into [0,1] for scoring, in minor
// currency units ($3000).
const DefaultPriceCeiling = 300000

// queryRelevance is the overlap coefficient between the query token set
// and the product token set (title + tags): |q ∩ p| / |q|. It is
// corpus-independent, unlike the TF-IDF similarity used for related
// products.
func queryRelevance(queryText string, p *catalog.Product) float64 {
	queryTokens := token.Tokenize(queryText)
	if len(queryTokens) == 0 {
		return 0
	}

	querySet := make(map[string]bool, len(queryTokens))
	for _, t := range queryTokens {
		querySet[t] = true
	}

	productSet := make(map[string]bool)
	for _, t := range token.Tokenize(vector.DocumentText(p)) {
		productSet[t] = true
	}

	matches := 0
	for t := range querySet {
		if productSet[t] {
			matches++
		}
	}
	return float64(matches) / float64(len(querySet))
}

// compositeScore blends query relevance, normalized rating and inverse
// normalized price into a single ranking score.
func compositeScore(queryText string, p *catalog.Product, priceCeiling int) float64 {
	relevance := queryRelevance(queryText, p)
	normalizedRating := p.Rating() / 5
	normalizedPrice := 1 - float64(p.Price())/float64(priceCeiling)

	return relevance*relevanceWeight + normalizedRating*ratingWeight + normalizedPrice*priceWeight
}
