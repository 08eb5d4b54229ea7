package search

import (
	"context"
	"time"

	"github.com/kailas-cloud/shoprank/internal/domain/catalog"
)

type mockProducts struct {
	findManyFn func(ctx context.Context, f catalog.Filter) ([]catalog.Product, error)
}

func (m *mockProducts) FindMany(ctx context.Context, f catalog.Filter) ([]catalog.Product, error) {
	return m.findManyFn(ctx, f)
}

// fixtureProducts serves FindMany from an in-memory table, applying the
// filter and keeping insertion order (the repository's default order in
// these tests).
func fixtureProducts(products ...catalog.Product) *mockProducts {
	return &mockProducts{
		findManyFn: func(_ context.Context, f catalog.Filter) ([]catalog.Product, error) {
			var out []catalog.Product
			for i := range products {
				p := products[i]
				if f.Matches(&p) {
					out = append(out, p)
				}
			}
			return out, nil
		},
	}
}

func testProduct(id, title string, price int, rating float64, tags ...string) catalog.Product {
	return catalog.Reconstruct(
		id, id, title, "", price, tags, 10, rating,
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	)
}

func ids(products []catalog.Product) []string {
	out := make([]string, len(products))
	for i := range products {
		out[i] = products[i].ID()
	}
	return out
}
