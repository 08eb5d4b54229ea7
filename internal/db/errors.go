package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
)

// Op constants map to Redis command names for error context.
const (
	OpDel              = "DEL"
	OpExists           = "EXISTS"
	OpHGetAll          = "HGETALL"
	OpHSet             = "HSET"
	OpLPush            = "LPUSH"
	OpLRange           = "LRANGE"
	OpLTrim            = "LTRIM"
	OpSAdd             = "SADD"
	OpSMembers         = "SMEMBERS"
	OpSRem             = "SREM"
	OpZAdd             = "ZADD"
	OpZRangeByScore    = "ZRANGEBYSCORE"
	OpZRemRangeByScore = "ZREMRANGEBYSCORE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
