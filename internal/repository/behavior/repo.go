// Package behavior persists the append-only interaction log: a capped
// per-user history list plus a purchase timeline sorted set that backs
// the popularity ranking window.
package behavior

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kailas-cloud/shoprank/internal/db"
	dombehavior "github.com/kailas-cloud/shoprank/internal/domain/behavior"
)

// DefaultKeyPrefix namespaces all behavior keys.
const DefaultKeyPrefix = "shoprank:"

// historyCap bounds the per-user history list; recommendation reads only
// ever look at the most recent entries.
const historyCap = 100

// purchaseRetention bounds the purchase timeline. Popularity only reads
// a trailing 30-day window, so anything older is dead weight.
const purchaseRetention = 90 * 24 * time.Hour

// store is the consumer interface for behavior events (ISP).
type store interface {
	LPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LTrim(ctx context.Context, key string, start, stop int64) error
	ZAdd(ctx context.Context, key string, members ...db.ScoredMember) error
	ZRangeByScore(ctx context.Context, key string, min, max float64) ([]string, error)
	ZRemRangeByScore(ctx context.Context, key string, min, max float64) error
}

// Repo implements the behavior log over list and sorted-set stores.
type Repo struct {
	store  store
	prefix string
}

// New creates a behavior repository. An empty keyPrefix falls back to DefaultKeyPrefix.
func New(s store, keyPrefix string) *Repo {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: keyPrefix}
}

// Append records an event at the head of the user's history. Purchases
// are additionally indexed on the purchase timeline.
func (r *Repo) Append(ctx context.Context, e *dombehavior.Event) error {
	raw, err := marshalEvent(e)
	if err != nil {
		return err
	}

	key := r.historyKey(e.UserID())
	if err := r.store.LPush(ctx, key, raw); err != nil {
		return fmt.Errorf("lpush %s: %w", key, err)
	}
	if err := r.store.LTrim(ctx, key, 0, historyCap-1); err != nil {
		return fmt.Errorf("ltrim %s: %w", key, err)
	}

	if e.Action() == dombehavior.Purchase {
		member := e.ID() + "|" + e.ProductID()
		err := r.store.ZAdd(ctx, r.purchasesKey(), db.ScoredMember{
			Member: member,
			Score:  float64(e.OccurredAt().Unix()),
		})
		if err != nil {
			return fmt.Errorf("zadd %s: %w", r.purchasesKey(), err)
		}

		cutoff := e.OccurredAt().Add(-purchaseRetention)
		err = r.store.ZRemRangeByScore(
			ctx, r.purchasesKey(), math.Inf(-1), float64(cutoff.Unix()),
		)
		if err != nil {
			return fmt.Errorf("zremrangebyscore %s: %w", r.purchasesKey(), err)
		}
	}
	return nil
}

// RecentForUser returns the user's most-recent-first events, at most limit.
func (r *Repo) RecentForUser(
	ctx context.Context, userID string, limit int,
) ([]dombehavior.Event, error) {
	if limit <= 0 {
		return nil, nil
	}

	key := r.historyKey(userID)
	raws, err := r.store.LRange(ctx, key, 0, int64(limit)-1)
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}

	events := make([]dombehavior.Event, 0, len(raws))
	for _, raw := range raws {
		e, err := unmarshalEvent(raw)
		if err != nil {
			// A corrupt record should not poison the whole history.
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// PurchaseCountsSince returns purchase counts per product for purchases
// at or after the given time.
func (r *Repo) PurchaseCountsSince(
	ctx context.Context, since time.Time,
) (map[string]int, error) {
	members, err := r.store.ZRangeByScore(
		ctx, r.purchasesKey(), float64(since.Unix()), math.Inf(1),
	)
	if err != nil {
		return nil, fmt.Errorf("zrangebyscore %s: %w", r.purchasesKey(), err)
	}

	counts := make(map[string]int, len(members))
	for _, m := range members {
		_, productID, ok := strings.Cut(m, "|")
		if !ok {
			continue
		}
		counts[productID]++
	}
	return counts, nil
}

func (r *Repo) historyKey(userID string) string { return r.prefix + "behavior:user:" + userID }
func (r *Repo) purchasesKey() string            { return r.prefix + "behavior:purchases" }
