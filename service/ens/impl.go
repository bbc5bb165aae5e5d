package ens

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	goens "github.com/wealdtech/go-ens/v3"
	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/base/ptr"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/keys"
	"github.com/x-xyz/dustsweep/service/cache"
	"github.com/x-xyz/dustsweep/service/cache/provider"
	"github.com/x-xyz/dustsweep/service/cache/provider/compound"
	"github.com/x-xyz/dustsweep/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/dustsweep/service/cache/provider/redis"
	"github.com/x-xyz/dustsweep/service/redis"
)

type resolveFunc func(bind.ContractBackend, string) (common.Address, error)

type reverseFunc func(bind.ContractBackend, common.Address) (string, error)

type impl struct {
	backend bind.ContractBackend
	cache   cache.Service
	resolve resolveFunc
	reverse reverseFunc
}

// New resolves through a mainnet backend, redis may be nil for a local only cache
func New(backend bind.ContractBackend, redis redis.Service) ENS {
	layers := []provider.Provider{primitive.NewPrimitive("ens", 32)}
	if redis != nil {
		layers = append(layers, redisCache.NewRedis(redis))
	}
	return newWith(backend, compound.NewCompound(layers...), goens.Resolve, goens.ReverseResolve)
}

func newWith(backend bind.ContractBackend, p provider.Provider, resolve resolveFunc, reverse reverseFunc) *impl {
	return &impl{
		backend: backend,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   24 * time.Hour,
			Pfx:   keys.PfxEns,
			Cache: p,
		}),
		resolve: resolve,
		reverse: reverse,
	}
}

func (im *impl) Resolve(ctx ctx.Ctx, name string) (domain.Address, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !strings.Contains(name, ".") {
		return "", xerrors.Errorf("ens name %q: %w", name, domain.ErrInvalidAddress)
	}

	res := domain.Address("")
	key := keys.RedisKey("resolve", name)
	err := im.cache.GetByFunc(ctx, key, &res, func() (interface{}, error) {
		addr, err := im.resolve(im.backend, name)
		if fmt.Sprint(err) == "unregistered name" {
			// cache the miss too
			val := domain.Address("")
			return &val, nil
		}
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":  err,
				"name": name,
			}).Error("failed to goens.Resolve")
			return nil, err
		}
		val := domain.Address(addr.Hex()).ToLower()
		return &val, nil
	})

	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to cache.GetByFunc")
		return "", err
	}
	if res.IsEmpty() {
		return "", xerrors.Errorf("ens name %q: %w", name, domain.ErrNotFound)
	}

	return res, nil
}

func (im *impl) ReverseResolve(ctx ctx.Ctx, address domain.Address) (string, error) {
	res := ""
	key := keys.RedisKey("reverse-resolve", address.ToLowerStr())
	err := im.cache.GetByFunc(ctx, key, &res, func() (interface{}, error) {
		name, err := im.reverse(im.backend, common.HexToAddress(string(address)))
		if fmt.Sprint(err) == "not a resolver" || fmt.Sprint(err) == "no resolution" {
			return ptr.String(""), nil
		}
		if err != nil {
			ctx.WithFields(log.Fields{
				"err": err,
			}).Error("failed to goens.ReverseResolve")
			return nil, err
		}
		return &name, nil
	})

	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to cache.GetByFunc")
		return "", err
	}

	return res, nil
}
