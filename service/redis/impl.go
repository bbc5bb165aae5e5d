package redis

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/base/metrics"
	"github.com/x-xyz/dustsweep/domain/keys"
)

const (
	// retTTLNoKey is the return value of TTL when the key does not exist
	retTTLNoKey = -2

	// retTTLNoExpire is the return value of TTL when the key exists but has
	// no associated expire
	retTTLNoExpire = -1
)

var (
	delBatchSize = 100
)

type redImpl struct {
	name  string
	met   metrics.Service
	pools *Pools
}

// Pools represents different pool types
type Pools struct {
	Src *redis.Pool
}

// New redis pool
func New(name string, metrics metrics.Service, pools *Pools) Service {
	return &redImpl{
		name:  name,
		met:   metrics,
		pools: pools,
	}
}

func (r *redImpl) getConn() (redis.Conn, error) {
	defer r.met.BumpTime("getconn.time", "cluster", r.name).End()

	if r.pools == nil || r.pools.Src == nil {
		return nil, ErrGapTime
	}

	conn := r.pools.Src.Get()
	if err := conn.Err(); err != nil {
		r.met.BumpSum("getConn.err", 1, "cluster", r.name, "reason", err.Error())
		return nil, err
	}
	return conn, nil
}

func (r *redImpl) connDo(commandName string, args ...interface{}) (interface{}, error) {
	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}

	reply, err := conn.Do(commandName, args...)

	// Closing conn explicitly asap improves redigo's performance,
	// bacause longer an connection is hold and not closed, the
	// pool need to handle more connections at the same time and
	// getConn time might burst.
	if err := conn.Close(); err != nil {
		r.met.BumpSum("conn.Close.err", 1, "cluster", r.name)
	}
	return reply, err
}

func (r *redImpl) tags(fn, key string) []string {
	return []string{"func", fn, "cluster", r.name, "prefix", keys.GetPrefix(key)}
}

func (r *redImpl) Get(context ctx.Ctx, key string) ([]byte, error) {
	tags := r.tags("get", key)
	defer r.met.BumpTime("time", tags...).End()

	val, err := redis.Bytes(r.connDo("GET", key))
	if err != nil {
		return nil, err
	}
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)
	return val, nil
}

func (r *redImpl) Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error {
	tags := r.tags("set", key)
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)

	if expire == Forever {
		r.met.BumpSum("ttl.forever", 1, tags...)
		_, err := r.connDo("SET", key, val)
		if err != nil {
			context.WithField("err", err).Error("set redis failed")
		}
		return err
	}

	r.met.BumpAvg("ttl", expire.Seconds(), tags...)
	_, err := r.connDo("SET", key, val, "PX", int(expire/time.Millisecond))
	if err != nil {
		context.WithField("err", err).Error("set redis failed")
	}
	return err
}

func (r *redImpl) Del(context ctx.Ctx, ks ...string) (int, error) {
	if len(ks) == 0 {
		return 0, fmt.Errorf("length of keys is 0")
	}

	tags := r.tags("del", ks[0])
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("elements", float64(len(ks)), tags...)

	affected := 0
	for start := 0; start < len(ks); start += delBatchSize {
		end := start + delBatchSize
		if end > len(ks) {
			end = len(ks)
		}
		res, err := redis.Int(r.connDo("DEL", redis.Args{}.AddFlat(ks[start:end])...))
		if err != nil {
			context.WithField("err", err).Error("DEL redis failed")
			return 0, err
		}
		affected += res
	}
	return affected, nil
}

func (r *redImpl) Expire(context ctx.Ctx, key string, ttl time.Duration) error {
	tags := r.tags("expire", key)
	defer r.met.BumpTime("time", tags...).End()

	if ttl == Forever {
		r.met.BumpSum("ttl.forever", 1, tags...)
		_, err := r.connDo("PERSIST", key)
		if err != nil {
			context.WithField("err", err).Error("Expire PERSIST redis key failed")
		}
		return err
	}

	r.met.BumpAvg("ttl", ttl.Seconds(), tags...)
	ok, err := redis.Int(r.connDo("PEXPIRE", key, int(ttl/time.Millisecond)))
	if err != nil {
		context.WithField("err", err).Error("Expire redis failed")
		return err
	}
	// Return value will be 0 if key does not exist or the timeout could not be set.
	if ok != 1 {
		return ErrExpireNotExistOrTimeout
	}
	return nil
}

func (r *redImpl) TTL(context ctx.Ctx, key string) (int, error) {
	defer r.met.BumpTime("time", r.tags("ttl", key)...).End()
	res, err := redis.Int(r.connDo("TTL", key))
	if err != nil {
		context.WithField("err", err).Error("TTL redis failed")
		return 0, err
	}

	switch res {
	case retTTLNoKey:
		return res, ErrNotFound
	case retTTLNoExpire:
		return res, ErrNoTTL
	}
	return res, nil
}

func (r *redImpl) LPush(context ctx.Ctx, key string, val []byte) error {
	tags := r.tags("lpush", key)
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)

	if _, err := r.connDo("LPUSH", key, val); err != nil {
		context.WithField("err", err).Error("LPush redis failed")
		return err
	}
	return nil
}

func (r *redImpl) LPushTrim(context ctx.Ctx, key string, val []byte, size int, expire time.Duration) error {
	tags := r.tags("lpushtrim", key)
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)

	conn, err := r.getConn()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Send("MULTI"); err != nil {
		return err
	}
	_ = conn.Send("LPUSH", key, val)
	_ = conn.Send("LTRIM", key, 0, size-1)
	if expire != Forever {
		_ = conn.Send("PEXPIRE", key, int(expire/time.Millisecond))
	}
	if _, err := conn.Do("EXEC"); err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("LPushTrim redis failed")
		return err
	}
	return nil
}

func (r *redImpl) LTrim(context ctx.Ctx, key string, start, end int) error {
	defer r.met.BumpTime("time", r.tags("ltrim", key)...).End()
	_, err := r.connDo("LTRIM", key, start, end)
	if err != nil {
		context.WithField("err", err).Error("LTrim redis failed")
	}
	return err
}

func (r *redImpl) LRange(context ctx.Ctx, key string, offset, count int) ([][]byte, error) {
	tags := r.tags("lrange", key)
	defer r.met.BumpTime("time", tags...).End()
	val, err := redis.ByteSlices(r.connDo("LRANGE", key, offset, count-1+offset))
	if err != nil {
		context.WithField("err", err).Error("LRANGE redis failed")
		return nil, err
	}
	r.met.BumpHistogram("elements", float64(len(val)), tags...)
	return val, nil
}

func (r *redImpl) LLen(context ctx.Ctx, key string) (int, error) {
	defer r.met.BumpTime("time", r.tags("llen", key)...).End()
	val, err := redis.Int(r.connDo("LLEN", key))
	if err != nil {
		context.WithField("err", err).Error("LLen redis failed")
	}
	return val, err
}

func (r *redImpl) Ping(context ctx.Ctx) error {
	_, err := r.connDo("PING")
	return err
}

func (r *redImpl) Name() string {
	return r.name
}
