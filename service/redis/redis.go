package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/dustsweep/base/ctx"
)

const (
	// Forever keeps a key without expiry
	Forever time.Duration = -1
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = redis.ErrNil
	// ErrNoTTL is returned by TTL when the key exists without expiry
	ErrNoTTL = errors.New("key has no ttl")
	// ErrGapTime is returned when no pool serves the command
	ErrGapTime = errors.New("redis pool not available")
	// ErrExpireNotExistOrTimeout is returned when EXPIRE could not be applied
	ErrExpireNotExistOrTimeout = errors.New("key does not exist or the timeout could not be set")
)

// Service is the subset of redis commands used by the cache and the history window
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, ks ...string) (int, error)
	Expire(context ctx.Ctx, key string, ttl time.Duration) error
	// TTL returns the remaining seconds
	TTL(context ctx.Ctx, key string) (int, error)

	LPush(context ctx.Ctx, key string, val []byte) error
	// LPushTrim pushes val to the head and keeps at most size elements, atomically
	LPushTrim(context ctx.Ctx, key string, val []byte, size int, expire time.Duration) error
	LTrim(context ctx.Ctx, key string, start, end int) error
	LRange(context ctx.Ctx, key string, offset, count int) ([][]byte, error)
	LLen(context ctx.Ctx, key string) (int, error)

	Ping(context ctx.Ctx) error
	Name() string
}
