package product

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/kailas-cloud/shoprank/internal/domain/catalog"
)

// Hash field names for the product record.
const (
	fieldSlug        = "slug"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldPrice       = "price"
	fieldTags        = "tags"
	fieldStock       = "stock"
	fieldRating      = "rating"
	fieldCreatedAt   = "created_at"
)

// buildHashFields converts a domain Product into a flat map[string]string for HSET.
func buildHashFields(p *catalog.Product) map[string]string {
	tags, _ := json.Marshal(p.Tags())
	return map[string]string{
		fieldSlug:        p.Slug(),
		fieldTitle:       p.Title(),
		fieldDescription: p.Description(),
		fieldPrice:       strconv.Itoa(p.Price()),
		fieldTags:        string(tags),
		fieldStock:       strconv.Itoa(p.Stock()),
		fieldRating:      strconv.FormatFloat(p.Rating(), 'f', -1, 64),
		fieldCreatedAt:   p.CreatedAt().UTC().Format(time.RFC3339Nano),
	}
}

// parseHashFields converts a flat hash map back into a domain Product.
func parseHashFields(id string, m map[string]string) catalog.Product {
	price, _ := strconv.Atoi(m[fieldPrice])
	stock, _ := strconv.Atoi(m[fieldStock])
	rating, _ := strconv.ParseFloat(m[fieldRating], 64)
	createdAt, _ := time.Parse(time.RFC3339Nano, m[fieldCreatedAt])

	var tags []string
	if raw := m[fieldTags]; raw != "" {
		_ = json.Unmarshal([]byte(raw), &tags)
	}

	return catalog.Reconstruct(
		id, m[fieldSlug], m[fieldTitle], m[fieldDescription],
		price, tags, stock, rating, createdAt,
	)
}
