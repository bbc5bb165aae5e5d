package primitive

import (
	"time"

	"github.com/coocood/freecache"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/service/cache/provider"
)

type impl struct {
	name  string
	timer freecache.Timer
	cache *freecache.Cache
}

type wallClock struct{}

func (wallClock) Now() uint32 {
	return uint32(time.Now().Unix())
}

// Option configures the in-process cache
type Option func(*impl)

// WithTimer replaces the wall clock used for expiry
func WithTimer(t freecache.Timer) Option {
	return func(im *impl) {
		im.timer = t
	}
}

// NewPrimitive returns an in-process cache of sizeMB megabytes
func NewPrimitive(name string, sizeMB int, opts ...Option) provider.Provider {
	im := &impl{name: name, timer: wallClock{}}
	for _, opt := range opts {
		opt(im)
	}
	im.cache = freecache.NewCacheCustomTimer(sizeMB*1024*1024, im.timer)
	return im
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, expireAt, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, 0, provider.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("freecache.Get failed")
		return nil, 0, err
	}
	if expireAt == 0 {
		return val, 0, nil
	}
	// expireAt is a unix second, callers want the time left
	return val, time.Duration(int64(expireAt)-int64(im.timer.Now())) * time.Second, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.cache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("freecache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}
