package behavior

import (
	"context"

	"github.com/kailas-cloud/shoprank/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	lpushFn         func(ctx context.Context, key string, values ...string) error
	lrangeFn        func(ctx context.Context, key string, start, stop int64) ([]string, error)
	ltrimFn         func(ctx context.Context, key string, start, stop int64) error
	zaddFn          func(ctx context.Context, key string, members ...db.ScoredMember) error
	zrangeByScoreFn func(ctx context.Context, key string, min, max float64) ([]string, error)
	zremRangeFn     func(ctx context.Context, key string, min, max float64) error
}

func (m *mockStore) LPush(ctx context.Context, key string, values ...string) error {
	if m.lpushFn != nil {
		return m.lpushFn(ctx, key, values...)
	}
	return nil
}

func (m *mockStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if m.lrangeFn != nil {
		return m.lrangeFn(ctx, key, start, stop)
	}
	return nil, nil
}

func (m *mockStore) LTrim(ctx context.Context, key string, start, stop int64) error {
	if m.ltrimFn != nil {
		return m.ltrimFn(ctx, key, start, stop)
	}
	return nil
}

func (m *mockStore) ZAdd(ctx context.Context, key string, members ...db.ScoredMember) error {
	if m.zaddFn != nil {
		return m.zaddFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) ZRangeByScore(ctx context.Context, key string, min, max float64) ([]string, error) {
	if m.zrangeByScoreFn != nil {
		return m.zrangeByScoreFn(ctx, key, min, max)
	}
	return nil, nil
}

func (m *mockStore) ZRemRangeByScore(ctx context.Context, key string, min, max float64) error {
	if m.zremRangeFn != nil {
		return m.zremRangeFn(ctx, key, min, max)
	}
	return nil
}
