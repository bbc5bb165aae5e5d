package usecase

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/errparse"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/base/metrics"
	"github.com/x-xyz/dustsweep/base/units"
	"github.com/x-xyz/dustsweep/base/validator"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/quote"
)

const defaultSlippage = 0.01

var timeNow = time.Now

type QuoteCfg struct {
	Networks   domain.Networks
	Aggregator quote.Aggregator
	Fee        quote.FeePolicy
	// HasApiKey reports whether the aggregator credentials are configured
	HasApiKey       bool
	DefaultSlippage float64
}

type impl struct {
	networks        domain.Networks
	aggregator      quote.Aggregator
	fee             quote.FeePolicy
	hasApiKey       bool
	defaultSlippage float64
	metrics         metrics.Service
}

func New(cfg *QuoteCfg) quote.UseCase {
	slippage := cfg.DefaultSlippage
	if slippage <= 0 {
		slippage = defaultSlippage
	}
	return &impl{
		networks:        cfg.Networks,
		aggregator:      cfg.Aggregator,
		fee:             cfg.Fee,
		hasApiKey:       cfg.HasApiKey,
		defaultSlippage: slippage,
		metrics:         metrics.New("quote"),
	}
}

func badParam(format string, args ...interface{}) error {
	return xerrors.Errorf(format+": %w", append(args, domain.ErrBadParamInput)...)
}

// prepare validates req and returns the network plus an aggregator request
// with native tokens swapped for the wrapped token and the amount clamped.
func (im *impl) prepare(req quote.Request, needTaker bool) (domain.Network, quote.AggregatorRequest, error) {
	network, err := im.networks.Get(req.ChainId)
	if err != nil {
		return network, quote.AggregatorRequest{}, xerrors.Errorf("chain %d: %w", req.ChainId, err)
	}
	if req.SellToken.IsEmpty() || req.BuyToken.IsEmpty() {
		return network, quote.AggregatorRequest{}, badParam("sellToken and buyToken are required")
	}
	for _, a := range []domain.Address{req.SellToken, req.BuyToken} {
		if !validator.IsValidAddress(string(a)) {
			return network, quote.AggregatorRequest{}, xerrors.Errorf("token %q: %w", a, domain.ErrInvalidAddress)
		}
	}
	if req.SellAmount == nil || req.SellAmount.Sign() <= 0 {
		return network, quote.AggregatorRequest{}, badParam("sellAmount must be positive")
	}
	if needTaker && req.Taker.IsEmpty() {
		return network, quote.AggregatorRequest{}, badParam("taker is required")
	}
	if !req.Taker.IsEmpty() && !validator.IsValidAddress(string(req.Taker)) {
		return network, quote.AggregatorRequest{}, xerrors.Errorf("taker %q: %w", req.Taker, domain.ErrInvalidAddress)
	}
	if !req.Recipient.IsEmpty() && !validator.IsValidAddress(string(req.Recipient)) {
		return network, quote.AggregatorRequest{}, xerrors.Errorf("recipient %q: %w", req.Recipient, domain.ErrInvalidAddress)
	}
	if req.Slippage < 0 || req.Slippage >= 1 {
		return network, quote.AggregatorRequest{}, badParam("slippage %v out of range", req.Slippage)
	}
	if !req.DisableFee {
		if err := im.fee.Validate(); err != nil {
			return network, quote.AggregatorRequest{}, err
		}
	}
	if !im.hasApiKey {
		return network, quote.AggregatorRequest{}, domain.ErrMissingApiKey
	}

	slippage := req.Slippage
	if slippage == 0 {
		slippage = im.defaultSlippage
	}
	return network, quote.AggregatorRequest{
		ChainId:     req.ChainId,
		SellToken:   routable(network, req.SellToken),
		BuyToken:    routable(network, req.BuyToken),
		SellAmount:  quote.ClampSellAmount(req.SellAmount, req.SellDecimals),
		Taker:       req.Taker,
		Recipient:   req.Recipient,
		SlippageBps: quote.SlippageBps(slippage),
	}, nil
}

// routable swaps the native sentinel for the wrapped native token
func routable(network domain.Network, addr domain.Address) domain.Address {
	if addr.IsNative() {
		return network.WrappedNative
	}
	return addr
}

func (im *impl) EstimateNotional(c ctx.Ctx, req quote.Request) (*float64, error) {
	network, aggReq, err := im.prepare(req, false)
	if err != nil {
		return nil, err
	}
	return im.notional(c, network, aggReq), nil
}

// notional never fails, nil means the usd value could not be estimated
func (im *impl) notional(c ctx.Ctx, network domain.Network, req quote.AggregatorRequest) *float64 {
	if req.SellToken.Equals(network.UsdStable) {
		v, _ := units.Format(req.SellAmount, network.UsdStableDecimals).Float64()
		return &v
	}
	if network.UsdStable.IsEmpty() {
		return nil
	}

	priceReq := quote.AggregatorRequest{
		ChainId:    req.ChainId,
		SellToken:  req.SellToken,
		BuyToken:   network.UsdStable,
		SellAmount: req.SellAmount,
	}
	q, err := im.aggregator.GetPrice(c, priceReq)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "sellToken": req.SellToken}).Warn("notional estimate failed")
		return nil
	}
	if !q.LiquidityAvailable || q.BuyAmount == nil || q.BuyAmount.Sign() <= 0 {
		return nil
	}
	v, _ := units.Format(q.BuyAmount, network.UsdStableDecimals).Float64()
	return &v
}

func (im *impl) GetQuote(c ctx.Ctx, req quote.Request) (*quote.Quote, *quote.FeeBreakdown, error) {
	network, aggReq, err := im.prepare(req, true)
	if err != nil {
		return nil, nil, err
	}
	defer im.metrics.BumpTime("get.time").End()

	fee := &quote.FeeBreakdown{Tiers: im.fee.Tiers}
	if im.fee.Enabled && !req.DisableFee {
		fee.UsdNotional = im.notional(c, network, aggReq)
		fee.Bps = im.fee.Select(fee.UsdNotional)
	}
	if fee.Bps > 0 {
		fee.Enabled = true
		fee.Recipient = im.fee.Recipient
		fee.Token = aggReq.BuyToken
		aggReq.FeeRecipient = im.fee.Recipient
		aggReq.FeeBps = fee.Bps
		aggReq.FeeToken = aggReq.BuyToken
	}

	q, err := im.aggregator.GetQuote(c, aggReq)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "sellToken": aggReq.SellToken, "buyToken": aggReq.BuyToken}).Error("aggregator.GetQuote failed")
		return nil, nil, err
	}
	if !q.LiquidityAvailable || q.BuyAmount == nil || q.BuyAmount.Sign() <= 0 {
		im.metrics.BumpSum("no_liquidity", 1)
		return nil, nil, xerrors.Errorf("%s -> %s: %w", aggReq.SellToken, aggReq.BuyToken, domain.ErrNoLiquidity)
	}

	if err := q.Sendable(); err != nil {
		c.WithFields(log.Fields{"err": err, "sellToken": aggReq.SellToken, "buyToken": aggReq.BuyToken}).Error("aggregator returned an unsendable quote")
		return nil, nil, err
	}

	fee.FeeAmount = quote.FeeAmount(q.BuyAmount, fee.Bps)
	im.metrics.BumpHistogram("fee.bps", float64(fee.Bps))
	return q, fee, nil
}

// CheckLiquidity only fails on bad input, upstream trouble is reported as unavailable
func (im *impl) CheckLiquidity(c ctx.Ctx, req quote.Request) (*quote.LiquidityStatus, error) {
	_, aggReq, err := im.prepare(req, false)
	if err != nil {
		return nil, err
	}

	status := &quote.LiquidityStatus{CheckedAt: timeNow()}
	q, err := im.aggregator.GetPrice(c, aggReq)
	switch {
	case err != nil:
		c.WithFields(log.Fields{"err": err, "sellToken": aggReq.SellToken}).Warn("liquidity check failed")
		status.Reason = errparse.Message(err)
	case !q.LiquidityAvailable || q.BuyAmount == nil || q.BuyAmount.Sign() <= 0:
		status.Reason = errparse.Message(domain.ErrNoLiquidity)
	default:
		status.Available = true
		status.BuyAmount = q.BuyAmount
	}
	return status, nil
}
