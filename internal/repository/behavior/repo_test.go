package behavior

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/kailas-cloud/shoprank/internal/db"
	dombehavior "github.com/kailas-cloud/shoprank/internal/domain/behavior"
)

func mustEvent(t *testing.T, id, user, product string, action dombehavior.Action) dombehavior.Event {
	t.Helper()
	e, err := dombehavior.New(id, user, product, action, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("behavior.New: %v", err)
	}
	return e
}

func TestAppend_View_PushesAndTrims(t *testing.T) {
	var pushedKey string
	var trimmed bool
	var zaddCalled bool
	store := &mockStore{
		lpushFn: func(_ context.Context, key string, _ ...string) error {
			pushedKey = key
			return nil
		},
		ltrimFn: func(_ context.Context, _ string, start, stop int64) error {
			trimmed = true
			if start != 0 || stop != historyCap-1 {
				t.Errorf("ltrim range = [%d,%d], want [0,%d]", start, stop, historyCap-1)
			}
			return nil
		},
		zaddFn: func(_ context.Context, _ string, _ ...db.ScoredMember) error {
			zaddCalled = true
			return nil
		},
	}
	repo := New(store, "")

	e := mustEvent(t, "e1", "u1", "p1", dombehavior.View)
	if err := repo.Append(context.Background(), &e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pushedKey != "shoprank:behavior:user:u1" {
		t.Errorf("pushed key = %q", pushedKey)
	}
	if !trimmed {
		t.Error("expected history to be trimmed")
	}
	if zaddCalled {
		t.Error("VIEW must not touch the purchase timeline")
	}
}

func TestAppend_Purchase_IndexesTimeline(t *testing.T) {
	var member db.ScoredMember
	store := &mockStore{
		zaddFn: func(_ context.Context, key string, members ...db.ScoredMember) error {
			if key != "shoprank:behavior:purchases" {
				t.Errorf("zadd key = %q", key)
			}
			member = members[0]
			return nil
		},
	}
	repo := New(store, "")

	e := mustEvent(t, "e1", "u1", "p1", dombehavior.Purchase)
	if err := repo.Append(context.Background(), &e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if member.Member != "e1|p1" {
		t.Errorf("member = %q, want e1|p1", member.Member)
	}
	if member.Score != float64(e.OccurredAt().Unix()) {
		t.Errorf("score = %g, want event unix time", member.Score)
	}
}

func TestAppend_Purchase_PrunesExpiredTimeline(t *testing.T) {
	var gotKey string
	var gotMin, gotMax float64
	store := &mockStore{
		zremRangeFn: func(_ context.Context, key string, min, max float64) error {
			gotKey = key
			gotMin = min
			gotMax = max
			return nil
		},
	}
	repo := New(store, "")

	e := mustEvent(t, "e1", "u1", "p1", dombehavior.Purchase)
	if err := repo.Append(context.Background(), &e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "shoprank:behavior:purchases" {
		t.Errorf("pruned key = %q", gotKey)
	}
	if !math.IsInf(gotMin, -1) {
		t.Errorf("min = %g, want -inf", gotMin)
	}
	wantMax := float64(e.OccurredAt().Add(-purchaseRetention).Unix())
	if gotMax != wantMax {
		t.Errorf("max = %g, want %g", gotMax, wantMax)
	}
}

func TestRecentForUser_RoundTrip(t *testing.T) {
	e1 := mustEvent(t, "e1", "u1", "p1", dombehavior.Purchase)
	e2 := mustEvent(t, "e2", "u1", "p2", dombehavior.View)
	raw1, _ := marshalEvent(&e1)
	raw2, _ := marshalEvent(&e2)

	store := &mockStore{
		lrangeFn: func(_ context.Context, _ string, _, stop int64) ([]string, error) {
			if stop != 19 {
				t.Errorf("stop = %d, want 19 for limit 20", stop)
			}
			return []string{raw2, raw1}, nil
		},
	}
	repo := New(store, "")

	events, err := repo.RecentForUser(context.Background(), "u1", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	if events[0].ID() != "e2" || events[1].ID() != "e1" {
		t.Errorf("order = %q, %q, want most-recent-first", events[0].ID(), events[1].ID())
	}
	if events[1].Action() != dombehavior.Purchase {
		t.Errorf("Action() = %q, want PURCHASE", events[1].Action())
	}
}

func TestRecentForUser_SkipsCorruptRecords(t *testing.T) {
	e := mustEvent(t, "e1", "u1", "p1", dombehavior.View)
	raw, _ := marshalEvent(&e)

	store := &mockStore{
		lrangeFn: func(_ context.Context, _ string, _, _ int64) ([]string, error) {
			return []string{"{not json", raw}, nil
		},
	}
	repo := New(store, "")

	events, err := repo.RecentForUser(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].ID() != "e1" {
		t.Errorf("events = %v, want just e1", events)
	}
}

func TestRecentForUser_NonPositiveLimit(t *testing.T) {
	called := false
	store := &mockStore{
		lrangeFn: func(_ context.Context, _ string, _, _ int64) ([]string, error) {
			called = true
			return nil, nil
		},
	}
	repo := New(store, "")

	events, err := repo.RecentForUser(context.Background(), "u1", 0)
	if err != nil || events != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", events, err)
	}
	if called {
		t.Error("store should not be hit for limit <= 0")
	}
}

func TestPurchaseCountsSince(t *testing.T) {
	var gotMin float64
	store := &mockStore{
		zrangeByScoreFn: func(_ context.Context, _ string, min, _ float64) ([]string, error) {
			gotMin = min
			return []string{"e1|p1", "e2|p1", "e3|p2", "corrupt"}, nil
		},
	}
	repo := New(store, "")

	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	counts, err := repo.PurchaseCountsSince(context.Background(), since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMin != float64(since.Unix()) {
		t.Errorf("min score = %g, want %d", gotMin, since.Unix())
	}
	if counts["p1"] != 2 || counts["p2"] != 1 {
		t.Errorf("counts = %v, want p1:2 p2:1", counts)
	}
	if len(counts) != 2 {
		t.Errorf("corrupt member should be skipped, got %v", counts)
	}
}

func TestAppend_StoreError(t *testing.T) {
	boom := errors.New("connection reset")
	store := &mockStore{
		lpushFn: func(_ context.Context, _ string, _ ...string) error { return boom },
	}
	repo := New(store, "")

	e := mustEvent(t, "e1", "u1", "p1", dombehavior.View)
	if err := repo.Append(context.Background(), &e); !errors.Is(err, boom) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
