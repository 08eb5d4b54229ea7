package redis

import (
	"context"
	"strconv"

	"github.com/kailas-cloud/shoprank/internal/db"
)

// ZAdd adds scored members to a sorted set.
func (s *Store) ZAdd(ctx context.Context, key string, members ...db.ScoredMember) error {
	if len(members) == 0 {
		return nil
	}
	cmd := s.b().Zadd().Key(key).ScoreMember()
	for _, m := range members {
		cmd = cmd.ScoreMember(m.Score, m.Member)
	}
	if err := s.do(ctx, cmd.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpZAdd, Err: err}
	}
	return nil
}

// ZRangeByScore returns members with scores in [min, max], ascending.
func (s *Store) ZRangeByScore(ctx context.Context, key string, min, max float64) ([]string, error) {
	cmd := s.b().Zrangebyscore().Key(key).Min(formatScore(min)).Max(formatScore(max)).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRangeByScore, Err: err}
	}
	return members, nil
}

// ZRemRangeByScore removes members with scores in [min, max].
func (s *Store) ZRemRangeByScore(ctx context.Context, key string, min, max float64) error {
	cmd := s.b().Zremrangebyscore().Key(key).Min(formatScore(min)).Max(formatScore(max)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZRemRangeByScore, Err: err}
	}
	return nil
}

// formatScore renders a score bound, mapping infinities to Redis syntax.
func formatScore(v float64) string {
	switch {
	case v > 1e308:
		return "+inf"
	case v < -1e308:
		return "-inf"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
