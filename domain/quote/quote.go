package quote

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain"
)

// Request is what a caller asks for, before native normalization and fee selection
type Request struct {
	ChainId      domain.ChainId
	SellToken    domain.Address
	BuyToken     domain.Address
	SellAmount   *big.Int
	SellDecimals int32
	Taker        domain.Address
	Recipient    domain.Address
	// Slippage is a fraction, 0.01 means 1%
	Slippage   float64
	DisableFee bool
}

type Transaction struct {
	To       domain.Address `json:"to"`
	Data     string         `json:"data"`
	Value    *big.Int       `json:"value"`
	Gas      uint64         `json:"gas"`
	GasPrice *big.Int       `json:"gasPrice,omitempty"`
}

// Quote is only valid for the pair and amount it was requested for
type Quote struct {
	ChainId            domain.ChainId `json:"chainId"`
	SellToken          domain.Address `json:"sellToken"`
	BuyToken           domain.Address `json:"buyToken"`
	SellAmount         *big.Int       `json:"sellAmount"`
	BuyAmount          *big.Int       `json:"buyAmount"`
	MinBuyAmount       *big.Int       `json:"minBuyAmount"`
	AllowanceSpender   domain.Address `json:"allowanceSpender,omitempty"`
	Transaction        Transaction    `json:"transaction"`
	LiquidityAvailable bool           `json:"liquidityAvailable"`
}

// NeedsApproval reports whether the router asked for an erc20 allowance
func (q *Quote) NeedsApproval() bool {
	return !q.AllowanceSpender.IsEmpty() && !q.SellToken.IsNative()
}

// Sendable checks the quote carries a transaction a signer can submit
func (q *Quote) Sendable() error {
	to := q.Transaction.To
	if !common.IsHexAddress(string(to)) || to.IsNative() {
		return xerrors.Errorf("transaction to %q: %w", to, domain.ErrInvalidQuote)
	}
	if strings.TrimPrefix(q.Transaction.Data, "0x") == "" {
		return xerrors.Errorf("transaction data is empty: %w", domain.ErrInvalidQuote)
	}
	return nil
}

type FeeBreakdown struct {
	Enabled     bool           `json:"enabled"`
	Bps         int            `json:"bps"`
	Recipient   domain.Address `json:"recipient,omitempty"`
	Token       domain.Address `json:"token,omitempty"`
	UsdNotional *float64       `json:"usdNotional"`
	// FeeAmount is a display estimate, settlement deducts the real fee
	FeeAmount *big.Int  `json:"feeAmount"`
	Tiers     []FeeTier `json:"tiers"`
}

type LiquidityStatus struct {
	Available bool      `json:"available"`
	BuyAmount *big.Int  `json:"buyAmount,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// AggregatorRequest is the upstream request after normalization, amounts in smallest units
type AggregatorRequest struct {
	ChainId      domain.ChainId
	SellToken    domain.Address
	BuyToken     domain.Address
	SellAmount   *big.Int
	Taker        domain.Address
	Recipient    domain.Address
	SlippageBps  int
	FeeRecipient domain.Address
	FeeBps       int
	FeeToken     domain.Address
}

// HasFee reports whether affiliate fee params go on the wire
func (r *AggregatorRequest) HasFee() bool {
	return r.FeeBps > 0 && !r.FeeRecipient.IsEmpty()
}

// Aggregator is the external swap price/quote service
type Aggregator interface {
	// GetPrice is the indicative endpoint, it needs no taker and returns no calldata
	GetPrice(c ctx.Ctx, req AggregatorRequest) (*Quote, error)
	GetQuote(c ctx.Ctx, req AggregatorRequest) (*Quote, error)
}

type UseCase interface {
	GetQuote(c ctx.Ctx, req Request) (*Quote, *FeeBreakdown, error)
	CheckLiquidity(c ctx.Ctx, req Request) (*LiquidityStatus, error)
	EstimateNotional(c ctx.Ctx, req Request) (*float64, error)
}
