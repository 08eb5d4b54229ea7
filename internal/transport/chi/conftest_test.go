package chi

import (
	"context"
	"net/http/httptest"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shoprank/internal/domain"
	"github.com/kailas-cloud/shoprank/internal/domain/behavior"
	domcat "github.com/kailas-cloud/shoprank/internal/domain/catalog"
	activityuc "github.com/kailas-cloud/shoprank/internal/usecase/activity"
	catsvc "github.com/kailas-cloud/shoprank/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/shoprank/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/shoprank/internal/usecase/recommend"
	searchuc "github.com/kailas-cloud/shoprank/internal/usecase/search"
)

// fakeRepo is an in-memory product repository backing every catalog
// contract the handlers touch.
type fakeRepo struct {
	products []domcat.Product
}

func (f *fakeRepo) Upsert(_ context.Context, p *domcat.Product) (bool, error) {
	for i := range f.products {
		if f.products[i].ID() == p.ID() {
			f.products[i] = *p
			return false, nil
		}
	}
	f.products = append(f.products, *p)
	return true, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	for i := range f.products {
		if f.products[i].ID() == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (domcat.Product, error) {
	for i := range f.products {
		if f.products[i].ID() == id {
			return f.products[i], nil
		}
	}
	return domcat.Product{}, domain.ErrProductNotFound
}

func (f *fakeRepo) FindBySlug(_ context.Context, slug string) (domcat.Product, error) {
	for i := range f.products {
		if f.products[i].Slug() == slug {
			return f.products[i], nil
		}
	}
	return domcat.Product{}, domain.ErrProductNotFound
}

func (f *fakeRepo) FindByIDs(_ context.Context, ids []string) ([]domcat.Product, error) {
	byID := make(map[string]domcat.Product, len(f.products))
	for i := range f.products {
		byID[f.products[i].ID()] = f.products[i]
	}
	out := make([]domcat.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) All(context.Context) ([]domcat.Product, error) {
	return f.products, nil
}

func (f *fakeRepo) Count(context.Context) (int, error) {
	return len(f.products), nil
}

func (f *fakeRepo) FindMany(_ context.Context, filter domcat.Filter) ([]domcat.Product, error) {
	var out []domcat.Product
	for i := range f.products {
		p := f.products[i]
		if filter.Matches(&p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeBehaviors is an in-memory interaction log.
type fakeBehaviors struct {
	events []behavior.Event
}

func (f *fakeBehaviors) Append(_ context.Context, e *behavior.Event) error {
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeBehaviors) RecentForUser(_ context.Context, userID string, limit int) ([]behavior.Event, error) {
	var out []behavior.Event
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		if f.events[i].UserID() == userID {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

func (f *fakeBehaviors) PurchaseCountsSince(_ context.Context, since time.Time) (map[string]int, error) {
	counts := make(map[string]int)
	for i := range f.events {
		e := &f.events[i]
		if e.Action() == behavior.Purchase && !e.OccurredAt().Before(since) {
			counts[e.ProductID()]++
		}
	}
	return counts, nil
}

type fakePinger struct{ err error }

func (f *fakePinger) Ping(context.Context) error { return f.err }

// newTestServer wires the full handler stack over in-memory storage.
func newTestServer(repo *fakeRepo, behaviors *fakeBehaviors) *httptest.Server {
	server := NewServer(
		catsvc.New(repo),
		searchuc.New(repo),
		recommenduc.New(repo, behaviors),
		activityuc.New(behaviors),
		healthuc.New(&fakePinger{}, repo),
		zap.NewNop(),
	)

	r := chirouter.NewRouter()
	server.Mount(r)
	return httptest.NewServer(r)
}

func seedProduct(id, title string, price int, rating float64, tags ...string) domcat.Product {
	return domcat.Reconstruct(
		id, id, title, "", price, tags, 10, rating,
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	)
}
