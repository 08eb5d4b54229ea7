package product

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/shoprank/internal/domain"
	"github.com/kailas-cloud/shoprank/internal/domain/catalog"
)

func TestUpsert_CreatesAndRegisters(t *testing.T) {
	var hsetKey, saddMember string
	store := &mockStore{
		existsFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
		hsetFn: func(_ context.Context, key string, _ map[string]string) error {
			hsetKey = key
			return nil
		},
		saddFn: func(_ context.Context, _ string, members ...string) error {
			saddMember = members[0]
			return nil
		},
	}
	repo := New(store, "")

	p := testProduct("p1", 1000, 4.0, 0)
	created, err := repo.Upsert(context.Background(), &p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true for new product")
	}
	if hsetKey != "shoprank:product:p1" {
		t.Errorf("hset key = %q", hsetKey)
	}
	if saddMember != "p1" {
		t.Errorf("registered id = %q", saddMember)
	}
}

func TestUpsert_ExistingReturnsNotCreated(t *testing.T) {
	store := &mockStore{
		existsFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
	}
	repo := New(store, "")

	p := testProduct("p1", 1000, 4.0, 0)
	created, err := repo.Upsert(context.Background(), &p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false for existing product")
	}
}

func TestFindByID_RoundTrip(t *testing.T) {
	want := testProduct("p1", 49900, 4.5, 10)
	repo := New(fakeCatalog(want), "")

	got, err := repo.FindByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title() != want.Title() || got.Price() != want.Price() {
		t.Errorf("got %q/%d, want %q/%d", got.Title(), got.Price(), want.Title(), want.Price())
	}
	if got.Rating() != want.Rating() {
		t.Errorf("Rating() = %g, want %g", got.Rating(), want.Rating())
	}
	if len(got.Tags()) != 1 || got.Tags()[0] != "tag-p1" {
		t.Errorf("Tags() = %v", got.Tags())
	}
	if !got.CreatedAt().Equal(want.CreatedAt()) {
		t.Errorf("CreatedAt() = %v, want %v", got.CreatedAt(), want.CreatedAt())
	}
}

func TestFindByID_Missing(t *testing.T) {
	repo := New(fakeCatalog(), "")
	_, err := repo.FindByID(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestFindBySlug(t *testing.T) {
	repo := New(fakeCatalog(testProduct("p1", 1000, 4, 0), testProduct("p2", 2000, 4, 0)), "")

	got, err := repo.FindBySlug(context.Background(), "slug-p2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID() != "p2" {
		t.Errorf("ID() = %q, want p2", got.ID())
	}

	if _, err := repo.FindBySlug(context.Background(), "nope"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestFindByIDs_SkipsMissing(t *testing.T) {
	repo := New(fakeCatalog(testProduct("p1", 1000, 4, 0)), "")

	got, err := repo.FindByIDs(context.Background(), []string{"p1", "ghost"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID() != "p1" {
		t.Errorf("got %d products, want just p1", len(got))
	}
}

func TestAll_MostRecentFirst(t *testing.T) {
	repo := New(fakeCatalog(
		testProduct("old", 1000, 4, 60),
		testProduct("new", 1000, 4, 1),
		testProduct("mid", 1000, 4, 30),
	), "")

	got, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantOrder := []string{"new", "mid", "old"}
	for i, id := range wantOrder {
		if got[i].ID() != id {
			t.Errorf("position %d = %q, want %q", i, got[i].ID(), id)
		}
	}
}

func TestFindMany_FilterAndSort(t *testing.T) {
	repo := New(fakeCatalog(
		testProduct("cheap", 500, 3.0, 0),
		testProduct("mid", 5000, 4.0, 0),
		testProduct("dear", 50000, 5.0, 0),
	), "")

	max := 10000
	got, err := repo.FindMany(context.Background(), catalog.Filter{
		PriceMax:  &max,
		SortBy:    catalog.SortByPrice,
		Ascending: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID() != "cheap" || got[1].ID() != "mid" {
		t.Errorf("order = %q, %q, want cheap, mid", got[0].ID(), got[1].ID())
	}
}

func TestCount(t *testing.T) {
	store := fakeCatalog(
		testProduct("p1", 1000, 4.0, 10),
		testProduct("p2", 2000, 4.5, 5),
	)
	repo := New(store, "")

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
}

func TestFindMany_StoreError(t *testing.T) {
	boom := errors.New("connection reset")
	store := &mockStore{
		smembersFn: func(_ context.Context, _ string) ([]string, error) { return nil, boom },
	}
	repo := New(store, "")

	if _, err := repo.FindMany(context.Background(), catalog.Filter{}); !errors.Is(err, boom) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	var deleted, unregistered bool
	store := &mockStore{
		existsFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
		delFn: func(_ context.Context, _ string) error {
			deleted = true
			return nil
		},
		sremFn: func(_ context.Context, _ string, _ ...string) error {
			unregistered = true
			return nil
		},
	}
	repo := New(store, "")

	if err := repo.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted || !unregistered {
		t.Errorf("deleted=%v unregistered=%v, want both true", deleted, unregistered)
	}
}

func TestDelete_Missing(t *testing.T) {
	repo := New(&mockStore{}, "")
	if err := repo.Delete(context.Background(), "ghost"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}
