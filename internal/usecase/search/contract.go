package search

import (
	"context"

	"github.com/kailas-cloud/shoprank/internal/domain/catalog"
)

// ProductFinder defines the catalog contract for search operations.
type ProductFinder interface {
	FindMany(ctx context.Context, f catalog.Filter) ([]catalog.Product, error)
}
