// Package query extracts structured intent from free-text search input.
// Parsing is heuristic: an ordered list of pattern rules is applied to a
// lower-cased copy of the query, each rule consuming the text it matched.
// Ambiguous inputs resolve by rule order, not by semantic analysis.
package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kailas-cloud/shoprank/internal/domain/search/token"
)

// Sort is the requested result ordering.
type Sort string

// Sort intents extractable from query text.
const (
	SortRelevance Sort = "relevance"
	SortRating    Sort = "rating"
	SortPrice     Sort = "price"
)

// MinKeywordLength is the exclusive lower bound on keyword token length;
// shorter tokens carry too little signal and are dropped.
const MinKeywordLength = 2

// Parsed is the structured form of a search query.
// Price bounds are in display currency units (dollars, not cents);
// callers convert before filtering against Product.Price.
type Parsed struct {
	Text     string
	PriceMin *int
	PriceMax *int
	SortBy   Sort
	Keywords []string
}

var (
	// "between 50 and 150", "from 50 to 150", "50-150", "$50~$150"
	rangeRe = regexp.MustCompile(`(?:between|from)?\s*\$?(\d+)\s*(?:and|to|-|~)\s*\$?(\d+)`)
	// "under 100", "below 200", "less than 50"
	maxRe = regexp.MustCompile(`(?:under|below|less than|max|maximum)\s*\$?(\d+)`)
	// "over 100", "above 200", "more than 150"
	minRe = regexp.MustCompile(`(?:over|above|more than|min|minimum)\s*\$?(\d+)`)

	ratingSortRe  = regexp.MustCompile(`(?:best|top|highest).*rat(?:ed|ing)`)
	ratingStripRe = regexp.MustCompile(`best|top|highest|rated|rating`)
	priceSortRe   = regexp.MustCompile(`cheap(?:est)?|lowest.*price|budget`)
	priceStripRe  = regexp.MustCompile(`cheap(?:est)?|lowest|budget|price`)
	punctuationRe = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Parse extracts price bounds, sort intent and residual keywords.
// Rule order is fixed: a matched range short-circuits the independent
// bound rules, and consumed text is never re-scanned.
func Parse(raw string) Parsed {
	text := strings.TrimSpace(strings.ToLower(raw))
	parsed := Parsed{SortBy: SortRelevance}

	text = extractPrice(text, &parsed)
	text = extractSort(text, &parsed)

	cleaned := strings.TrimSpace(whitespaceRe.ReplaceAllString(
		punctuationRe.ReplaceAllString(text, " "), " ",
	))
	if cleaned != "" {
		parsed.Text = cleaned
		for _, w := range token.Tokenize(cleaned) {
			if len(w) > MinKeywordLength {
				parsed.Keywords = append(parsed.Keywords, w)
			}
		}
	}

	return parsed
}

func extractPrice(text string, parsed *Parsed) string {
	if m := rangeRe.FindStringSubmatch(text); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		lo, hi := a, b
		if lo > hi {
			lo, hi = hi, lo
		}
		parsed.PriceMin = &lo
		parsed.PriceMax = &hi
		return strings.TrimSpace(strings.Replace(text, m[0], "", 1))
	}

	if m := maxRe.FindStringSubmatch(text); m != nil {
		v, _ := strconv.Atoi(m[1])
		parsed.PriceMax = &v
		text = strings.TrimSpace(strings.Replace(text, m[0], "", 1))
	}
	if m := minRe.FindStringSubmatch(text); m != nil {
		v, _ := strconv.Atoi(m[1])
		parsed.PriceMin = &v
		text = strings.TrimSpace(strings.Replace(text, m[0], "", 1))
	}
	return text
}

func extractSort(text string, parsed *Parsed) string {
	if ratingSortRe.MatchString(text) {
		parsed.SortBy = SortRating
		return strings.TrimSpace(ratingStripRe.ReplaceAllString(text, ""))
	}
	if priceSortRe.MatchString(text) {
		parsed.SortBy = SortPrice
		return strings.TrimSpace(priceStripRe.ReplaceAllString(text, ""))
	}
	return text
}

// HasPriceBounds reports whether either bound was extracted.
func (p *Parsed) HasPriceBounds() bool {
	return p.PriceMin != nil || p.PriceMax != nil
}
