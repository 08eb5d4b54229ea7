package catalog

import "strings"

// Sort keys accepted by Filter.SortBy.
const (
	SortByCreatedAt = "createdAt"
	SortByPrice     = "price"
	SortByRating    = "rating"
)

// Filter narrows a catalog listing. Zero value matches everything.
// Price bounds are in minor currency units.
type Filter struct {
	Text      string   // case-insensitive substring over title, description, tags
	PriceMin  *int
	PriceMax  *int
	MinRating float64
	Tags      []string // match any
	InStock   bool
	SortBy    string // createdAt (default), price, rating
	Ascending bool
}

// Matches reports whether the product passes every set constraint.
func (f *Filter) Matches(p *Product) bool {
	if f.Text != "" && !matchesText(p, f.Text) {
		return false
	}
	if f.PriceMin != nil && p.Price() < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && p.Price() > *f.PriceMax {
		return false
	}
	if f.MinRating > 0 && p.Rating() < f.MinRating {
		return false
	}
	if len(f.Tags) > 0 && !p.HasAnyTag(f.Tags) {
		return false
	}
	if f.InStock && !p.InStock() {
		return false
	}
	return true
}

func matchesText(p *Product, text string) bool {
	needle := strings.ToLower(text)
	if strings.Contains(strings.ToLower(p.Title()), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description()), needle) {
		return true
	}
	for _, tag := range p.Tags() {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
