package token

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/units"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/quote"
)

type Source string

const (
	SourceIndexer   Source = "indexer"
	SourceTransfers Source = "transfers"
	SourceAllowList Source = "allowlist"
	SourceNative    Source = "native"
	SourceCustom    Source = "custom"
)

// SourceOrder is the merge priority, earlier sources win metadata conflicts
var SourceOrder = []Source{SourceIndexer, SourceTransfers, SourceAllowList, SourceNative}

const (
	DefaultSymbol         = "UNKNOWN"
	DefaultName           = "Unknown Token"
	DefaultDecimals int32 = 18
)

type Token struct {
	ChainId          domain.ChainId         `json:"chainId"`
	Address          domain.Address         `json:"address"`
	Symbol           string                 `json:"symbol"`
	Name             string                 `json:"name"`
	Decimals         int32                  `json:"decimals"`
	RawBalance       *big.Int               `json:"rawBalance"`
	FormattedBalance decimal.Decimal        `json:"formattedBalance"`
	PriceUSD         float64                `json:"priceUsd"`
	ValueUSD         float64                `json:"valueUsd"`
	IsDust           bool                   `json:"isDust"`
	IsNative         bool                   `json:"isNative"`
	Source           Source                 `json:"source"`
	Liquidity        *quote.LiquidityStatus `json:"liquidity,omitempty"`
}

// SetBalance keeps the formatted balance in sync with the raw one
func (t *Token) SetBalance(raw *big.Int) {
	t.RawBalance = raw
	t.FormattedBalance = units.Format(raw, t.Decimals)
}

// ApplyPrice sets the unit price and recomputes the holding value
func (t *Token) ApplyPrice(usd float64) {
	t.PriceUSD = usd
	t.ValueUSD, _ = t.FormattedBalance.Mul(decimal.NewFromFloat(usd)).Float64()
}

func (t *Token) HasBalance() bool {
	return t.RawBalance != nil && t.RawBalance.Sign() > 0
}

// Metadata has a nil field for everything the upstream did not return
type Metadata struct {
	Symbol   *string `json:"symbol,omitempty"`
	Name     *string `json:"name,omitempty"`
	Decimals *int32  `json:"decimals,omitempty"`
}

func (m *Metadata) Complete() bool {
	return m != nil && m.Symbol != nil && m.Name != nil && m.Decimals != nil
}

// Merge fills fields m is missing from other, m keeps what it has
func (m *Metadata) Merge(other *Metadata) {
	if other == nil {
		return
	}
	if m.Symbol == nil && other.Symbol != nil && *other.Symbol != "" {
		m.Symbol = other.Symbol
	}
	if m.Name == nil && other.Name != nil && *other.Name != "" {
		m.Name = other.Name
	}
	if m.Decimals == nil && other.Decimals != nil {
		m.Decimals = other.Decimals
	}
}

// Apply writes metadata into t, placeholders stand in for anything unknown
func (m *Metadata) Apply(t *Token) {
	t.Symbol, t.Name, t.Decimals = DefaultSymbol, DefaultName, DefaultDecimals
	if m == nil {
		return
	}
	if m.Symbol != nil && *m.Symbol != "" {
		t.Symbol = *m.Symbol
	}
	if m.Name != nil && *m.Name != "" {
		t.Name = *m.Name
	}
	if m.Decimals != nil && *m.Decimals >= 0 && *m.Decimals <= 77 {
		t.Decimals = *m.Decimals
	}
}

type Balance struct {
	Contract domain.Address
	Raw      *big.Int
}

type BalancePage struct {
	Balances   []Balance
	NextCursor string
}

// BalanceIndexer is a paginated balances api, it may rate limit
type BalanceIndexer interface {
	GetTokenBalances(c ctx.Ctx, chainId domain.ChainId, owner domain.Address, cursor string) (*BalancePage, error)
	GetTokenMetadata(c ctx.Ctx, chainId domain.ChainId, contract domain.Address) (*Metadata, error)
}

// TransferContract is a contract seen in the owner's transfer history
type TransferContract struct {
	Contract domain.Address
	Metadata *Metadata
}

type TransferHistory interface {
	GetTransferContracts(c ctx.Ctx, chainId domain.ChainId, owner domain.Address) ([]TransferContract, error)
}

// ChainReader reads balances and erc20 metadata straight from the rpc
type ChainReader interface {
	BalanceOf(c ctx.Ctx, chainId domain.ChainId, contract, owner domain.Address) (*big.Int, error)
	Metadata(c ctx.Ctx, chainId domain.ChainId, contract domain.Address) (*Metadata, error)
	NativeBalance(c ctx.Ctx, chainId domain.ChainId, owner domain.Address) (*big.Int, error)
}

type KnownToken struct {
	Address     domain.Address `yaml:"address" json:"address"`
	Symbol      string         `yaml:"symbol" json:"symbol"`
	Name        string         `yaml:"name" json:"name"`
	Decimals    int32          `yaml:"decimals" json:"decimals"`
	CoinGeckoId string         `yaml:"coingeckoId" json:"coingeckoId,omitempty"`
}

func (k KnownToken) Metadata() *Metadata {
	symbol, name, decimals := k.Symbol, k.Name, k.Decimals
	return &Metadata{Symbol: &symbol, Name: &name, Decimals: &decimals}
}

// Registry is the static list of well known tokens per chain
type Registry interface {
	Known(chainId domain.ChainId) []KnownToken
	Lookup(chainId domain.ChainId, addr domain.Address) (KnownToken, bool)
}

type NameResolver interface {
	Resolve(c ctx.Ctx, name string) (domain.Address, error)
}

type Discovery struct {
	ChainId domain.ChainId    `json:"chainId"`
	Owner   domain.Address    `json:"owner"`
	Tokens  []Token           `json:"tokens"`
	Sources map[Source]int    `json:"sources"`
	Failed  map[Source]string `json:"failed,omitempty"`
}

type DiscoveryUseCase interface {
	// ResolveOwner accepts a hex address or an ens name
	ResolveOwner(c ctx.Ctx, input string) (domain.Address, error)
	// Discover only fails on bad input, source failures are logged and skipped
	Discover(c ctx.Ctx, chainId domain.ChainId, owner string) (*Discovery, error)
	AddCustomToken(c ctx.Ctx, chainId domain.ChainId, owner, contract domain.Address) (*Token, error)
}
