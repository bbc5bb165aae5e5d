package config

import (
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/quote"
)

// DomainNetworks keys the configured networks by chain id, names come from the yaml keys
func (c *Config) DomainNetworks() domain.Networks {
	res := make(domain.Networks, len(c.Networks))
	for name, n := range c.Networks {
		id := domain.ChainId(n.ChainId)
		res[id] = domain.Network{
			ChainId:           id,
			Name:              name,
			WrappedNative:     domain.Address(n.WrappedNative).ToLower(),
			UsdStable:         domain.Address(n.UsdStable).ToLower(),
			UsdStableDecimals: n.UsdStableDecimals,
			NativeSymbol:      n.NativeSymbol,
			NativeUsdFeed:     domain.Address(n.NativeUsdFeed).ToLower(),
			CoinGeckoPlatform: n.CoinGeckoPlatform,
			DefiLlamaSlug:     n.DefiLlamaSlug,
		}
	}
	return res
}

// Endpoints collects a per chain url, chains with an empty value are left out
func (c *Config) Endpoints(pick func(Network) string) map[domain.ChainId]string {
	res := map[domain.ChainId]string{}
	for _, n := range c.Networks {
		if url := pick(n); url != "" {
			res[domain.ChainId(n.ChainId)] = url
		}
	}
	return res
}

func (c *Config) FeePolicy() quote.FeePolicy {
	var tiers []quote.FeeTier
	for _, t := range c.Fee.Tiers {
		tiers = append(tiers, quote.FeeTier{MaxUsd: t.MaxUsd, Inclusive: t.Inclusive, Bps: t.Bps})
	}
	return quote.NewFeePolicy(c.Fee.Enabled, domain.Address(c.Fee.Recipient).ToLower(), c.Fee.DefaultBps, tiers)
}
