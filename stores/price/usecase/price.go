package usecase

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/base/metrics"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/keys"
	"github.com/x-xyz/dustsweep/domain/price"
	"github.com/x-xyz/dustsweep/domain/token"
	"github.com/x-xyz/dustsweep/service/cache"
	"github.com/x-xyz/dustsweep/service/cache/provider"
	"github.com/x-xyz/dustsweep/service/cache/provider/primitive"
)

const (
	defaultCacheTtl   = 5 * time.Minute
	nativeCoinGeckoId = "ethereum"
)

var errIncomplete = xerrors.New("price sources unavailable")

type PriceCfg struct {
	Networks  domain.Networks
	CoinGecko price.ContractPriceSource
	// DefiLlama, Chainlink and Registry are optional
	DefiLlama price.UsdPriceSource
	Chainlink domain.ChainlinkUsacase
	Registry  token.Registry
	Cache     provider.Provider
	CacheTtl  time.Duration
}

type impl struct {
	networks    domain.Networks
	coingecko   price.ContractPriceSource
	defillama   price.UsdPriceSource
	chainlink   domain.ChainlinkUsacase
	registry    token.Registry
	cache       cache.Service
	nativeCache cache.Service
	metrics     metrics.Service
}

func New(cfg *PriceCfg) price.UseCase {
	ttl := cfg.CacheTtl
	if ttl <= 0 {
		ttl = defaultCacheTtl
	}
	p := cfg.Cache
	if p == nil {
		p = primitive.NewPrimitive("price", 32)
	}
	return &impl{
		networks:  cfg.Networks,
		coingecko: cfg.CoinGecko,
		defillama: cfg.DefiLlama,
		chainlink: cfg.Chainlink,
		registry:  cfg.Registry,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   keys.PfxPrice,
			Cache: p,
		}),
		nativeCache: cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   keys.PfxNativePrice,
			Cache: p,
		}),
		metrics: metrics.New("price"),
	}
}

func normalize(addrs []domain.Address) []domain.Address {
	seen := map[domain.Address]bool{}
	res := make([]domain.Address, 0, len(addrs))
	for _, a := range addrs {
		l := a.ToLower()
		if a.IsNative() {
			l = domain.NativeAddress
		}
		if l.IsEmpty() || seen[l] {
			continue
		}
		seen[l] = true
		res = append(res, l)
	}
	return res
}

func addrStrings(addrs []domain.Address) []string {
	res := make([]string, len(addrs))
	for i, a := range addrs {
		res[i] = string(a)
	}
	return res
}

// PriceTokens results are cached per exact address set. A run where every
// upstream failed is returned as zeros but not cached.
func (im *impl) PriceTokens(c ctx.Ctx, chainId domain.ChainId, addrs []domain.Address) (price.Prices, error) {
	network, err := im.networks.Get(chainId)
	if err != nil {
		return nil, xerrors.Errorf("chain %d: %w", chainId, err)
	}
	addrs = normalize(addrs)
	if len(addrs) == 0 {
		return price.Prices{}, nil
	}

	res := price.Prices{}
	var fetched price.Prices
	key := keys.RedisKey(chainId.String(), keys.SetKey(addrStrings(addrs)...))
	err = im.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		p, err := im.fetchPrices(c, network, addrs)
		fetched = p
		if err != nil {
			return nil, err
		}
		return &p, nil
	})
	if err != nil {
		c.WithFields(log.Fields{"err": err, "chainId": chainId}).Warn("pricing degraded")
		if fetched != nil {
			return fetched, nil
		}
		res = price.Prices{}
		for _, a := range addrs {
			res[a] = 0
		}
	}
	return res, nil
}

func (im *impl) fetchPrices(c ctx.Ctx, network domain.Network, addrs []domain.Address) (price.Prices, error) {
	defer im.metrics.BumpTime("fetch.time").End()

	res := price.Prices{}
	erc20s := []domain.Address{}
	hasNative := false
	for _, a := range addrs {
		res[a] = 0
		if a == domain.NativeAddress {
			hasNative = true
			continue
		}
		erc20s = append(erc20s, a)
	}

	var nativeUsd *float64
	native := func() float64 {
		if nativeUsd == nil {
			v, err := im.NativeUSD(c, network.ChainId)
			if err != nil {
				v = 0
			}
			nativeUsd = &v
		}
		return *nativeUsd
	}
	if hasNative {
		res[domain.NativeAddress] = native()
	}
	if len(erc20s) == 0 {
		return res, nil
	}

	// direct usd
	quotes := map[domain.Address]price.TokenQuote{}
	var cgErr error
	if network.CoinGeckoPlatform != "" {
		quotes, cgErr = im.coingecko.GetTokenPrices(c, network.CoinGeckoPlatform, erc20s)
		if cgErr != nil {
			c.WithFields(log.Fields{"err": cgErr, "platform": network.CoinGeckoPlatform}).Warn("coingecko token prices failed")
		}
	}
	missing := []domain.Address{}
	for _, a := range erc20s {
		if q, ok := quotes[a]; ok && q.Usd != nil && *q.Usd > 0 {
			res[a] = *q.Usd
			continue
		}
		missing = append(missing, a)
	}

	// secondary usd source
	dlFailed := im.defillama == nil || network.DefiLlamaSlug == ""
	if len(missing) > 0 && !dlFailed {
		dl, err := im.defillama.GetPrices(c, network.DefiLlamaSlug, missing)
		if err != nil {
			dlFailed = true
			c.WithFields(log.Fields{"err": err, "slug": network.DefiLlamaSlug}).Warn("defillama prices failed")
		}
		missing = fill(res, missing, func(a domain.Address) float64 {
			return dl[a]
		})
	}

	// native denominated quotes
	if len(missing) > 0 {
		missing = fill(res, missing, func(a domain.Address) float64 {
			q, ok := quotes[a]
			if !ok || q.Eth == nil || *q.Eth <= 0 {
				return 0
			}
			return *q.Eth * native()
		})
	}

	// static id mapping
	if len(missing) > 0 && im.registry != nil {
		ids := map[domain.Address]string{}
		for _, a := range missing {
			if k, ok := im.registry.Lookup(network.ChainId, a); ok && k.CoinGeckoId != "" {
				ids[a] = k.CoinGeckoId
			}
		}
		if len(ids) > 0 {
			idList := make([]string, 0, len(ids))
			for _, id := range ids {
				idList = append(idList, id)
			}
			simple, err := im.coingecko.GetSimplePrices(c, idList)
			if err != nil {
				c.WithFields(log.Fields{"err": err}).Warn("coingecko simple prices failed")
			}
			missing = fill(res, missing, func(a domain.Address) float64 {
				return simple[ids[a]]
			})
		}
	}

	im.metrics.BumpSum("unpriced", float64(len(missing)))
	if cgErr != nil && dlFailed {
		return res, errIncomplete
	}
	return res, nil
}

// fill sets every positive lookup and returns what is still unpriced
func fill(res price.Prices, missing []domain.Address, lookup func(domain.Address) float64) []domain.Address {
	left := []domain.Address{}
	for _, a := range missing {
		if v := lookup(a); v > 0 {
			res[a] = v
			continue
		}
		left = append(left, a)
	}
	return left
}

// NativeUSD reads the chainlink feed first and falls back to coingecko
func (im *impl) NativeUSD(c ctx.Ctx, chainId domain.ChainId) (float64, error) {
	network, err := im.networks.Get(chainId)
	if err != nil {
		return 0, xerrors.Errorf("chain %d: %w", chainId, err)
	}

	res := float64(0)
	err = im.nativeCache.GetByFunc(c, chainId.String(), &res, func() (interface{}, error) {
		if im.chainlink != nil && !network.NativeUsdFeed.IsEmpty() {
			answer, err := im.chainlink.GetLatestAnswer(c, chainId, network.NativeUsdFeed)
			if err == nil && answer.IsPositive() {
				v, _ := answer.Float64()
				return &v, nil
			}
			c.WithFields(log.Fields{"err": err, "feed": network.NativeUsdFeed}).Warn("chainlink native price unavailable")
		}

		prices, err := im.coingecko.GetSimplePrices(c, []string{nativeCoinGeckoId})
		if err != nil {
			return nil, err
		}
		v, ok := prices[nativeCoinGeckoId]
		if !ok || v <= 0 {
			return nil, xerrors.Errorf("%s: %w", nativeCoinGeckoId, domain.ErrNotFound)
		}
		return &v, nil
	})
	if err != nil {
		c.WithFields(log.Fields{"err": err, "chainId": chainId}).Error("native price failed")
		return 0, err
	}
	return res, nil
}
