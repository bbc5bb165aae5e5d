package repository

import (
	"encoding/json"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/history"
	"github.com/x-xyz/dustsweep/domain/keys"
	"github.com/x-xyz/dustsweep/service/redis"
)

type redisRepo struct {
	redis redis.Service
	cap   int
}

// NewRedisRepo keeps the newest cap entries per owner in a redis list
func NewRedisRepo(r redis.Service, cap int) history.Repo {
	if cap <= 0 {
		cap = history.DefaultCap
	}
	return &redisRepo{redis: r, cap: cap}
}

func ownerKey(owner domain.Address) string {
	return keys.RedisKey(keys.PfxHistory, owner.ToLowerStr())
}

func (r *redisRepo) Append(c ctx.Ctx, e *history.Entry) error {
	val, err := json.Marshal(e)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "entryId": e.Id}).Error("json.Marshal failed")
		return err
	}
	if err := r.redis.LPushTrim(c, ownerKey(e.Owner), val, r.cap, redis.Forever); err != nil {
		c.WithFields(log.Fields{"err": err, "owner": e.Owner}).Error("redis.LPushTrim failed")
		return err
	}
	return nil
}

// List skips entries that no longer decode instead of failing the whole window
func (r *redisRepo) List(c ctx.Ctx, owner domain.Address) ([]history.Entry, error) {
	vals, err := r.redis.LRange(c, ownerKey(owner), 0, r.cap)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "owner": owner}).Error("redis.LRange failed")
		return nil, err
	}
	res := make([]history.Entry, 0, len(vals))
	for _, val := range vals {
		var e history.Entry
		if err := json.Unmarshal(val, &e); err != nil {
			c.WithFields(log.Fields{"err": err, "owner": owner}).Warn("skip undecodable history entry")
			continue
		}
		res = append(res, e)
	}
	return res, nil
}
