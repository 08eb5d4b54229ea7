// Package catalog handles product catalog management: reads, filtered
// listings with pagination, and the write path used to seed and
// maintain the corpus the discovery strategies rank over.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/shoprank/internal/domain"
	domcat "github.com/kailas-cloud/shoprank/internal/domain/catalog"
)

// Pagination defaults.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Input carries the writable product attributes. A zero ID means
// "create with a generated id".
type Input struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Price       int
	Tags        []string
	Stock       int
	Rating      float64
}

// Page is one slice of a filtered listing.
type Page struct {
	Products []domcat.Product
	Total    int
	Offset   int
}

// Service handles catalog CRUD operations.
type Service struct {
	repo            Repository
	defaultPageSize int
	maxPageSize     int
}

// New creates a catalog service.
func New(repo Repository) *Service {
	return &Service{repo: repo, defaultPageSize: DefaultPageSize, maxPageSize: MaxPageSize}
}

// WithPageSizes overrides the listing pagination fallback and cap.
func (s *Service) WithPageSizes(defaultSize, maxSize int) *Service {
	if defaultSize > 0 {
		s.defaultPageSize = defaultSize
	}
	if maxSize > 0 {
		s.maxPageSize = maxSize
	}
	return s
}

// Upsert validates and stores a product, generating an id for new
// products. The returned flag reports whether a product was created
// rather than replaced.
func (s *Service) Upsert(ctx context.Context, in Input) (domcat.Product, bool, error) {
	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}

	p, err := domcat.New(id, in.Slug, in.Title, in.Description, in.Price, in.Tags, in.Stock, in.Rating)
	if err != nil {
		return domcat.Product{}, false, fmt.Errorf("validate product: %w: %w", domain.ErrInvalidInput, err)
	}

	created, err := s.repo.Upsert(ctx, &p)
	if err != nil {
		return domcat.Product{}, false, fmt.Errorf("upsert product: %w", err)
	}
	return p, created, nil
}

// Get retrieves a product by id.
func (s *Service) Get(ctx context.Context, id string) (domcat.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domcat.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySlug retrieves a product by its URL handle.
func (s *Service) GetBySlug(ctx context.Context, slug string) (domcat.Product, error) {
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return domcat.Product{}, fmt.Errorf("get product by slug: %w", err)
	}
	return p, nil
}

// List returns one page of the filtered catalog. Total counts every
// match, not just the returned slice. A non-positive limit falls back
// to the configured page size; negative offsets clamp to 0.
func (s *Service) List(ctx context.Context, f domcat.Filter, offset, limit int) (Page, error) {
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	matches, err := s.repo.FindMany(ctx, f)
	if err != nil {
		return Page{}, fmt.Errorf("list products: %w", err)
	}

	total := len(matches)
	if offset >= total {
		return Page{Total: total, Offset: offset}, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return Page{Products: matches[offset:end], Total: total, Offset: offset}, nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
