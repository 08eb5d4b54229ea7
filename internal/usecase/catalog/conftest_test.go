package catalog

import (
	"context"
	"time"

	domcat "github.com/kailas-cloud/shoprank/internal/domain/catalog"
)

type mockRepo struct {
	upsertFn     func(ctx context.Context, p *domcat.Product) (bool, error)
	deleteFn     func(ctx context.Context, id string) error
	findByIDFn   func(ctx context.Context, id string) (domcat.Product, error)
	findBySlugFn func(ctx context.Context, slug string) (domcat.Product, error)
	findManyFn   func(ctx context.Context, f domcat.Filter) ([]domcat.Product, error)
}

func (m *mockRepo) Upsert(ctx context.Context, p *domcat.Product) (bool, error) {
	return m.upsertFn(ctx, p)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (domcat.Product, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockRepo) FindBySlug(ctx context.Context, slug string) (domcat.Product, error) {
	return m.findBySlugFn(ctx, slug)
}

func (m *mockRepo) FindMany(ctx context.Context, f domcat.Filter) ([]domcat.Product, error) {
	return m.findManyFn(ctx, f)
}

func testProduct(id string) domcat.Product {
	return domcat.Reconstruct(
		id, id, "product "+id, "", 4999, nil, 10, 4.0,
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	)
}
