package product

import (
	"context"
	"time"

	"github.com/kailas-cloud/shoprank/internal/domain/catalog"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn         func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	delFn          func(ctx context.Context, key string) error
	existsFn       func(ctx context.Context, key string) (bool, error)
	saddFn         func(ctx context.Context, key string, members ...string) error
	sremFn         func(ctx context.Context, key string, members ...string) error
	smembersFn     func(ctx context.Context, key string) ([]string, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return make([]map[string]string, len(keys)), nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) error {
	if m.saddFn != nil {
		return m.saddFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SRem(ctx context.Context, key string, members ...string) error {
	if m.sremFn != nil {
		return m.sremFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

// fakeCatalog wires a mockStore around an in-memory product table keyed
// by id, with insertion order preserved in the registry.
func fakeCatalog(products ...catalog.Product) *mockStore {
	byKey := make(map[string]map[string]string, len(products))
	var ids []string
	for i := range products {
		byKey[DefaultKeyPrefix+"product:"+products[i].ID()] = buildHashFields(&products[i])
		ids = append(ids, products[i].ID())
	}
	return &mockStore{
		hgetAllFn: func(_ context.Context, key string) (map[string]string, error) {
			return byKey[key], nil
		},
		hgetAllMultiFn: func(_ context.Context, keys []string) ([]map[string]string, error) {
			out := make([]map[string]string, len(keys))
			for i, k := range keys {
				out[i] = byKey[k]
			}
			return out, nil
		},
		smembersFn: func(_ context.Context, _ string) ([]string, error) {
			return ids, nil
		},
	}
}

func testProduct(id string, price int, rating float64, minutesOld int) catalog.Product {
	return catalog.Reconstruct(
		id, "slug-"+id, "Product "+id, "", price, []string{"tag-" + id}, 5, rating,
		time.Now().UTC().Add(-time.Duration(minutesOld)*time.Minute),
	)
}
