package recommend

import (
	"context"
	"time"

	"github.com/kailas-cloud/shoprank/internal/domain/behavior"
	"github.com/kailas-cloud/shoprank/internal/domain/catalog"
)

// ProductReader defines the catalog contract for recommendation operations.
type ProductReader interface {
	All(ctx context.Context) ([]catalog.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]catalog.Product, error)
	FindMany(ctx context.Context, f catalog.Filter) ([]catalog.Product, error)
}

// BehaviorReader defines the interaction-log contract.
type BehaviorReader interface {
	RecentForUser(ctx context.Context, userID string, limit int) ([]behavior.Event, error)
	PurchaseCountsSince(ctx context.Context, since time.Time) (map[string]int, error)
}
