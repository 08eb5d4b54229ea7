package recommend

import (
	"context"
	"time"

	"github.com/kailas-cloud/shoprank/internal/domain/behavior"
	"github.com/kailas-cloud/shoprank/internal/domain/catalog"
)

type mockProducts struct {
	allFn       func(ctx context.Context) ([]catalog.Product, error)
	findByIDsFn func(ctx context.Context, ids []string) ([]catalog.Product, error)
	findManyFn  func(ctx context.Context, f catalog.Filter) ([]catalog.Product, error)
}

func (m *mockProducts) All(ctx context.Context) ([]catalog.Product, error) {
	return m.allFn(ctx)
}

func (m *mockProducts) FindByIDs(ctx context.Context, ids []string) ([]catalog.Product, error) {
	return m.findByIDsFn(ctx, ids)
}

func (m *mockProducts) FindMany(ctx context.Context, f catalog.Filter) ([]catalog.Product, error) {
	return m.findManyFn(ctx, f)
}

type mockBehaviors struct {
	recentFn func(ctx context.Context, userID string, limit int) ([]behavior.Event, error)
	countsFn func(ctx context.Context, since time.Time) (map[string]int, error)
}

func (m *mockBehaviors) RecentForUser(ctx context.Context, userID string, limit int) ([]behavior.Event, error) {
	return m.recentFn(ctx, userID, limit)
}

func (m *mockBehaviors) PurchaseCountsSince(ctx context.Context, since time.Time) (map[string]int, error) {
	return m.countsFn(ctx, since)
}

// fixtureProducts wires a mockProducts over an in-memory table, serving
// All, FindByIDs (order preserving, missing skipped) and FindMany
// (rating-descending when requested).
func fixtureProducts(products ...catalog.Product) *mockProducts {
	byID := make(map[string]catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID()] = products[i]
	}
	return &mockProducts{
		allFn: func(context.Context) ([]catalog.Product, error) {
			return products, nil
		},
		findByIDsFn: func(_ context.Context, ids []string) ([]catalog.Product, error) {
			out := make([]catalog.Product, 0, len(ids))
			for _, id := range ids {
				if p, ok := byID[id]; ok {
					out = append(out, p)
				}
			}
			return out, nil
		},
		findManyFn: func(_ context.Context, f catalog.Filter) ([]catalog.Product, error) {
			var out []catalog.Product
			for i := range products {
				p := products[i]
				if f.Matches(&p) {
					out = append(out, p)
				}
			}
			if f.SortBy == catalog.SortByRating {
				for i := 1; i < len(out); i++ {
					for j := i; j > 0 && out[j].Rating() > out[j-1].Rating(); j-- {
						out[j], out[j-1] = out[j-1], out[j]
					}
				}
			}
			return out, nil
		},
	}
}

func testProduct(id, title string, rating float64, tags ...string) catalog.Product {
	return catalog.Reconstruct(
		id, id, title, "", 4999, tags, 10, rating,
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	)
}

func testEvent(userID, productID string, action behavior.Action) behavior.Event {
	return behavior.Reconstruct(
		"evt-"+productID, userID, productID, action,
		time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
	)
}
