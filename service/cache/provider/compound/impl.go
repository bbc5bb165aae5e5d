package compound

import (
	"time"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/service/cache/provider"
)

type impl struct {
	layers []provider.Provider
}

// NewCompound stacks providers from fastest to slowest. A hit in a lower layer
// is copied into the layers above it with the remaining ttl.
func NewCompound(layers ...provider.Provider) provider.Provider {
	return &impl{layers}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	for idx, lyr := range im.layers {
		val, ttl, err := lyr.Get(c, key)
		if err == provider.ErrNotFound {
			continue
		} else if err != nil {
			return nil, 0, err
		}

		for up := 0; up < idx; up++ {
			if err := im.layers[up].Set(c, key, val, ttl); err != nil {
				c.WithField("err", err).WithField("key", key).Warn("compound backfill failed")
			}
		}
		return val, ttl, nil
	}

	return nil, 0, provider.ErrNotFound
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	for _, lyr := range im.layers {
		if err := lyr.Set(c, key, value, ttl); err != nil {
			return err
		}
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	for _, lyr := range im.layers {
		if err := lyr.Del(c, key); err != nil {
			return err
		}
	}
	return nil
}
