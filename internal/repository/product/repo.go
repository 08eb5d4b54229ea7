// Package product persists catalog products as Redis hashes with a set
// registry of known ids. Filtering happens client-side: the catalog is
// small (tens to low thousands of products) and every discovery call
// needs most of it in memory anyway.
package product

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/shoprank/internal/domain"
	"github.com/kailas-cloud/shoprank/internal/domain/catalog"
)

// DefaultKeyPrefix namespaces all catalog keys.
const DefaultKeyPrefix = "shoprank:"

// store is the consumer interface for products (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements the product repository over a hash store.
type Repo struct {
	store  store
	prefix string
}

// New creates a product repository. An empty keyPrefix falls back to DefaultKeyPrefix.
func New(s store, keyPrefix string) *Repo {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: keyPrefix}
}

// Upsert creates or updates a product. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, p *catalog.Product) (bool, error) {
	key := r.productKey(p.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.HSet(ctx, key, buildHashFields(p)); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}
	if err := r.store.SAdd(ctx, r.registryKey(), p.ID()); err != nil {
		return false, fmt.Errorf("register product %s: %w", p.ID(), err)
	}

	return !exists, nil
}

// Delete removes a product and its registry entry.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.productKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrProductNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	if err := r.store.SRem(ctx, r.registryKey(), id); err != nil {
		return fmt.Errorf("unregister product %s: %w", id, err)
	}
	return nil
}

// FindByID returns a product by id.
func (r *Repo) FindByID(ctx context.Context, id string) (catalog.Product, error) {
	key := r.productKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return catalog.Product{}, domain.ErrProductNotFound
	}
	return parseHashFields(id, m), nil
}

// FindBySlug returns a product by its slug.
func (r *Repo) FindBySlug(ctx context.Context, slug string) (catalog.Product, error) {
	all, err := r.All(ctx)
	if err != nil {
		return catalog.Product{}, err
	}
	for i := range all {
		if all[i].Slug() == slug {
			return all[i], nil
		}
	}
	return catalog.Product{}, domain.ErrProductNotFound
}

// FindByIDs returns the products that exist among the given ids,
// preserving input order. Missing ids are skipped, not errors.
func (r *Repo) FindByIDs(ctx context.Context, ids []string) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.productKey(id)
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	products := make([]catalog.Product, 0, len(ids))
	for i, m := range maps {
		if len(m) == 0 {
			continue
		}
		products = append(products, parseHashFields(ids[i], m))
	}
	return products, nil
}

// All returns every product, most-recent-first.
func (r *Repo) All(ctx context.Context) ([]catalog.Product, error) {
	ids, err := r.store.SMembers(ctx, r.registryKey())
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", r.registryKey(), err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	products, err := r.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	sortProducts(products, catalog.SortByCreatedAt, false)
	return products, nil
}

// Count returns the number of registered products.
func (r *Repo) Count(ctx context.Context) (int, error) {
	ids, err := r.store.SMembers(ctx, r.registryKey())
	if err != nil {
		return 0, fmt.Errorf("smembers %s: %w", r.registryKey(), err)
	}
	return len(ids), nil
}

// FindMany returns products matching the filter, ordered per filter.SortBy
// (default: most-recent-first).
func (r *Repo) FindMany(ctx context.Context, f catalog.Filter) ([]catalog.Product, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	matched := all[:0]
	for i := range all {
		if f.Matches(&all[i]) {
			matched = append(matched, all[i])
		}
	}

	if f.SortBy != "" && f.SortBy != catalog.SortByCreatedAt {
		sortProducts(matched, f.SortBy, f.Ascending)
	} else if f.Ascending {
		sortProducts(matched, catalog.SortByCreatedAt, true)
	}
	return matched, nil
}

func sortProducts(products []catalog.Product, sortBy string, ascending bool) {
	less := func(a, b *catalog.Product) bool {
		switch sortBy {
		case catalog.SortByPrice:
			return a.Price() < b.Price()
		case catalog.SortByRating:
			return a.Rating() < b.Rating()
		default:
			return a.CreatedAt().Before(b.CreatedAt())
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		if ascending {
			return less(&products[i], &products[j])
		}
		return less(&products[j], &products[i])
	})
}

func (r *Repo) productKey(id string) string { return r.prefix + "product:" + id }
func (r *Repo) registryKey() string         { return r.prefix + "products" }
