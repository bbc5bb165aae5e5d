package price

import (
	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain"
)

// Prices maps lowercase addresses to usd unit prices
type Prices map[domain.Address]float64

// Get never fails, an unpriced token is worth 0
func (p Prices) Get(addr domain.Address) float64 {
	return p[addr.ToLower()]
}

// TokenQuote is one coingecko token_price row, either currency may be missing
type TokenQuote struct {
	Usd *float64 `json:"usd,omitempty"`
	Eth *float64 `json:"eth,omitempty"`
}

// ContractPriceSource prices contracts on a platform, unresolved addresses are absent
type ContractPriceSource interface {
	GetTokenPrices(c ctx.Ctx, platform string, addrs []domain.Address) (map[domain.Address]TokenQuote, error)
	GetSimplePrices(c ctx.Ctx, ids []string) (map[string]float64, error)
}

// UsdPriceSource is a secondary direct usd source keyed by chain slug
type UsdPriceSource interface {
	GetPrices(c ctx.Ctx, slug string, addrs []domain.Address) (map[domain.Address]float64, error)
}

type UseCase interface {
	// PriceTokens only fails for an unsupported chain, everything else degrades to 0
	PriceTokens(c ctx.Ctx, chainId domain.ChainId, addrs []domain.Address) (Prices, error)
	NativeUSD(c ctx.Ctx, chainId domain.ChainId) (float64, error)
}
