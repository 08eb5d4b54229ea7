package shoprank

import (
	"time"

	domcat "github.com/kailas-cloud/shoprank/internal/domain/catalog"
)

// Product is the public product shape. Price is in minor currency units.
type Product struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Price       int
	Tags        []string
	Stock       int
	Rating      float64
	CreatedAt   time.Time
}

// ProductInput carries the writable product attributes for Upsert.
// A zero ID means "create with a generated id".
type ProductInput struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Price       int
	Tags        []string
	Stock       int
	Rating      float64
}

// ProductFilter narrows a catalog listing. Zero value matches everything.
type ProductFilter struct {
	Text      string
	PriceMin  *int
	PriceMax  *int
	MinRating float64
	Tags      []string
	InStock   bool
	SortBy    string // "createdAt" (default), "price", "rating"
	Ascending bool
}

// ProductPage is one slice of a filtered listing.
type ProductPage struct {
	Products []Product
	Total    int
	Offset   int
}

// Interaction kinds accepted by Track.
const (
	ActionView      = "VIEW"
	ActionAddToCart = "ADD_TO_CART"
	ActionPurchase  = "PURCHASE"
)

func productFromDomain(p *domcat.Product) Product {
	return Product{
		ID:          p.ID(),
		Slug:        p.Slug(),
		Title:       p.Title(),
		Description: p.Description(),
		Price:       p.Price(),
		Tags:        p.Tags(),
		Stock:       p.Stock(),
		Rating:      p.Rating(),
		CreatedAt:   p.CreatedAt(),
	}
}

func productsFromDomain(products []domcat.Product) []Product {
	out := make([]Product, len(products))
	for i := range products {
		out[i] = productFromDomain(&products[i])
	}
	return out
}

func (f *ProductFilter) toDomain() domcat.Filter {
	return domcat.Filter{
		Text:      f.Text,
		PriceMin:  f.PriceMin,
		PriceMax:  f.PriceMax,
		MinRating: f.MinRating,
		Tags:      f.Tags,
		InStock:   f.InStock,
		SortBy:    f.SortBy,
		Ascending: f.Ascending,
	}
}
