package catalog

import (
	"fmt"
	"regexp"
	"time"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// MaxTitleLength is the maximum product title length in characters.
const MaxTitleLength = 512

// Product is the catalog aggregate (immutable value object).
// Price and the filter price bounds are in minor currency units (cents).
type Product struct {
	id          string
	slug        string
	title       string
	description string
	price       int
	tags        []string
	stock       int
	rating      float64
	createdAt   time.Time
}

// New validates and creates a Product.
// Slug: lowercase kebab-case. Price in cents, non-negative. Rating 0..5.
func New(
	id, slug, title, description string,
	price int, tags []string, stock int, rating float64,
) (Product, error) {
	if id == "" {
		return Product{}, fmt.Errorf("product ID is required")
	}
	if slug == "" {
		return Product{}, fmt.Errorf("slug is required")
	}
	if !slugRegex.MatchString(slug) {
		return Product{}, fmt.Errorf("slug must be lowercase kebab-case, got %q", slug)
	}
	if title == "" {
		return Product{}, fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLength {
		return Product{}, fmt.Errorf("title too long (max %d)", MaxTitleLength)
	}
	if price < 0 {
		return Product{}, fmt.Errorf("price must be non-negative, got %d", price)
	}
	if stock < 0 {
		return Product{}, fmt.Errorf("stock must be non-negative, got %d", stock)
	}
	if rating < 0 || rating > 5 {
		return Product{}, fmt.Errorf("rating must be between 0 and 5, got %g", rating)
	}

	return Product{
		id:          id,
		slug:        slug,
		title:       title,
		description: description,
		price:       price,
		tags:        cloneTags(tags),
		stock:       stock,
		rating:      rating,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct creates a Product without validation (storage hydration).
func Reconstruct(
	id, slug, title, description string,
	price int, tags []string, stock int, rating float64,
	createdAt time.Time,
) Product {
	return Product{
		id: id, slug: slug, title: title, description: description,
		price: price, tags: tags, stock: stock, rating: rating,
		createdAt: createdAt,
	}
}

// ID returns the product identifier.
func (p *Product) ID() string { return p.id }

// Slug returns the URL-friendly product handle.
func (p *Product) Slug() string { return p.slug }

// Title returns the product title.
func (p *Product) Title() string { return p.title }

// Description returns the product description (may be empty).
func (p *Product) Description() string { return p.description }

// Price returns the price in minor currency units.
func (p *Product) Price() int { return p.price }

// Tags returns the product tags in display order.
func (p *Product) Tags() []string { return p.tags }

// Stock returns the units in stock.
func (p *Product) Stock() int { return p.stock }

// Rating returns the average rating on a 0-5 scale.
func (p *Product) Rating() float64 { return p.rating }

// CreatedAt returns the catalog insertion time.
func (p *Product) CreatedAt() time.Time { return p.createdAt }

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool { return p.stock > 0 }

// HasAnyTag reports whether the product carries at least one of the given tags.
func (p *Product) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range p.tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

func cloneTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
