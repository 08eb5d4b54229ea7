package chi

import (
	"time"

	domcat "github.com/kailas-cloud/shoprank/internal/domain/catalog"
)

// ErrorCode identifies the failure class in error responses.
type ErrorCode string

// Wire error codes.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeNotFound         ErrorCode = "not_found"
	CodeProductNotFound  ErrorCode = "product_not_found"
	CodeAlreadyExists    ErrorCode = "already_exists"
	CodeRateLimited      ErrorCode = "rate_limited"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ProductResponse is the wire shape of a catalog product.
// Price is in minor currency units.
type ProductResponse struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       int       `json:"price"`
	Tags        []string  `json:"tags,omitempty"`
	Stock       int       `json:"stock"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductListResponse is a paginated product listing.
type ProductListResponse struct {
	Items  []ProductResponse `json:"items"`
	Total  int               `json:"total"`
	Offset int               `json:"offset"`
}

// UpsertProductRequest carries the writable product attributes.
type UpsertProductRequest struct {
	ID          string   `json:"id,omitempty"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       int      `json:"price"`
	Tags        []string `json:"tags,omitempty"`
	Stock       int      `json:"stock"`
	Rating      float64  `json:"rating"`
}

// TrackEventRequest records one user interaction.
type TrackEventRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Action    string `json:"action"`
}

// TrackEventResponse acknowledges a recorded interaction.
type TrackEventResponse struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// HealthResponse is the aggregated health report.
type HealthResponse struct {
	Status      string            `json:"status"`
	Checks      map[string]string `json:"checks"`
	CatalogSize int               `json:"catalog_size"`
}

func productToResponse(p *domcat.Product) ProductResponse {
	return ProductResponse{
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

func productsToResponse(products []domcat.Product) []ProductResponse {
	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = productToResponse(&products[i])
	}
	return items
}
