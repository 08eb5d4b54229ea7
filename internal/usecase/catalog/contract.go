package catalog

import (
	"context"

	domcat "github.com/kailas-cloud/shoprank/internal/domain/catalog"
)

// Repository defines the storage contract for catalog management.
type Repository interface {
	Upsert(ctx context.Context, p *domcat.Product) (bool, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (domcat.Product, error)
	FindBySlug(ctx context.Context, slug string) (domcat.Product, error)
	FindMany(ctx context.Context, f domcat.Filter) ([]domcat.Product, error)
}
