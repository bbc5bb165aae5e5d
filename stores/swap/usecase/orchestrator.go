package usecase

import (
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/errparse"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/base/metrics"
	"github.com/x-xyz/dustsweep/base/units"
	"github.com/x-xyz/dustsweep/base/validator"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/history"
	"github.com/x-xyz/dustsweep/domain/price"
	"github.com/x-xyz/dustsweep/domain/quote"
	"github.com/x-xyz/dustsweep/domain/swap"
	"github.com/x-xyz/dustsweep/domain/token"
)

const (
	defaultGasMultiplierPct = 120
	defaultFallbackGas      = 500000
	recordTimeout           = 3 * time.Second
)

var (
	timeNow = time.Now
	sleep   = func(c ctx.Ctx, d time.Duration) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-c.Done():
		case <-t.C:
		}
	}
)

type OrchestratorCfg struct {
	Networks domain.Networks
	Quote    quote.UseCase
	Chain    swap.ChainRepo
	Price    price.UseCase
	// History is optional, nil skips recording
	History history.UseCase
	// InterTokenDelay is waited between two tokens, not after the last one
	InterTokenDelay  time.Duration
	GasMultiplierPct int64
	FallbackGasLimit uint64
	DefaultSlippage  float64
}

type orchestrator struct {
	networks         domain.Networks
	quote            quote.UseCase
	chain            swap.ChainRepo
	price            price.UseCase
	history          history.UseCase
	interTokenDelay  time.Duration
	gasMultiplierPct int64
	fallbackGasLimit uint64
	defaultSlippage  float64

	metrics    metrics.Service
	workerPool *goroutines.Pool
}

func NewOrchestrator(cfg *OrchestratorCfg) swap.Orchestrator {
	im := &orchestrator{
		networks:         cfg.Networks,
		quote:            cfg.Quote,
		chain:            cfg.Chain,
		price:            cfg.Price,
		history:          cfg.History,
		interTokenDelay:  cfg.InterTokenDelay,
		gasMultiplierPct: cfg.GasMultiplierPct,
		fallbackGasLimit: cfg.FallbackGasLimit,
		defaultSlippage:  cfg.DefaultSlippage,
		metrics:          metrics.New("swap"),
		workerPool:       goroutines.NewPool(32, goroutines.WithTaskQueueLength(1024), goroutines.WithPreAllocWorkers(8)),
	}
	if im.gasMultiplierPct <= 0 {
		im.gasMultiplierPct = defaultGasMultiplierPct
	}
	if im.fallbackGasLimit == 0 {
		im.fallbackGasLimit = defaultFallbackGas
	}
	return im
}

func (im *orchestrator) validate(req *swap.BatchRequest, signer swap.Signer) error {
	if _, err := im.networks.Get(req.ChainId); err != nil {
		return xerrors.Errorf("chain %d: %w", req.ChainId, err)
	}
	if signer == nil {
		return xerrors.Errorf("signer is required: %w", domain.ErrBadParamInput)
	}
	if len(req.Tokens) == 0 {
		return xerrors.Errorf("no tokens selected: %w", domain.ErrBadParamInput)
	}
	if !req.Target.Address.IsNative() && !validator.IsValidAddress(string(req.Target.Address)) {
		return xerrors.Errorf("target %q: %w", req.Target.Address, domain.ErrInvalidAddress)
	}
	if req.Slippage < 0 || req.Slippage >= 1 {
		return xerrors.Errorf("slippage %v out of range: %w", req.Slippage, domain.ErrBadParamInput)
	}
	if req.Owner.IsEmpty() {
		req.Owner = signer.Address()
	}
	if !req.Owner.Equals(signer.Address()) {
		return xerrors.Errorf("owner %s is not the signer: %w", req.Owner, domain.ErrBadParamInput)
	}
	return nil
}

// isConfigError reports failures that would repeat for every token
func isConfigError(err error) bool {
	return errors.Is(err, domain.ErrMissingApiKey) ||
		errors.Is(err, domain.ErrMissingFeeRecipient) ||
		errors.Is(err, domain.ErrUnsupportedChain)
}

func (im *orchestrator) ExecuteBatch(c ctx.Ctx, req swap.BatchRequest, signer swap.Signer, listener swap.StatusListener) (*swap.BatchResult, error) {
	if err := im.validate(&req, signer); err != nil {
		return nil, err
	}
	if listener == nil {
		listener = func(swap.TokenState) {}
	}
	slippage := req.Slippage
	if slippage == 0 {
		slippage = im.defaultSlippage
	}

	defer im.metrics.BumpTime("batch.time").End()
	res := &swap.BatchResult{
		BatchId:   uuid.NewString(),
		ChainId:   req.ChainId,
		Owner:     req.Owner.ToLower(),
		Target:    req.Target,
		States:    make([]swap.TokenState, len(req.Tokens)),
		StartedAt: timeNow(),
	}
	c = ctx.WithFields(c, log.Fields{"batchId": res.BatchId, "owner": res.Owner})

	for i, tok := range req.Tokens {
		res.States[i] = swap.TokenState{
			Token:      tok,
			SellAmount: tok.RawBalance,
			Status:     swap.StatusPending,
			UpdatedAt:  timeNow(),
		}
		listener(res.States[i])
	}

	for i := range res.States {
		if i > 0 && im.interTokenDelay > 0 {
			sleep(c, im.interTokenDelay)
		}
		if err := im.executeOne(c, &req, slippage, signer, &res.States[i], listener); err != nil {
			return nil, err
		}
		im.metrics.BumpSum("token.count", 1, "status:"+string(res.States[i].Status))
	}

	for _, st := range res.States {
		if st.Status == swap.StatusSuccess {
			res.Succeeded = append(res.Succeeded, st)
			res.TxHash = st.TxHash
		} else {
			res.Failed = append(res.Failed, st)
		}
	}
	im.totals(c, res, slippage)
	res.FinishedAt = timeNow()

	if im.history != nil && len(res.Succeeded) > 0 {
		im.record(c, res)
	}
	return res, nil
}

// executeOne drives one token to a terminal status, only config errors are returned
func (im *orchestrator) executeOne(c ctx.Ctx, req *swap.BatchRequest, slippage float64, signer swap.Signer, st *swap.TokenState, listener swap.StatusListener) error {
	tok := st.Token
	c = ctx.WithFields(c, log.Fields{"token": tok.Address, "symbol": tok.Symbol})
	im.transition(c, st, swap.StatusChecking, listener)

	if st.SellAmount == nil || st.SellAmount.Sign() <= 0 {
		im.fail(c, st, domain.ErrZeroBalance, listener)
		return nil
	}

	q, _, err := im.quote.GetQuote(c, quote.Request{
		ChainId:      req.ChainId,
		SellToken:    tok.Address,
		BuyToken:     req.Target.Address,
		SellAmount:   st.SellAmount,
		SellDecimals: tok.Decimals,
		Taker:        req.Owner,
		Slippage:     slippage,
	})
	if err != nil {
		im.fail(c, st, err, listener)
		if isConfigError(err) {
			return err
		}
		return nil
	}
	if err := q.Sendable(); err != nil {
		im.fail(c, st, err, listener)
		return nil
	}

	if !tok.IsNative && !tok.Address.IsNative() && q.NeedsApproval() {
		approved, err := im.approve(c, req.ChainId, signer, tok.Address, req.Owner, q.AllowanceSpender, st.SellAmount)
		if err != nil {
			im.fail(c, st, err, listener)
			return nil
		}
		if approved != "" {
			st.ApproveTxHash = approved
			im.transition(c, st, swap.StatusApproved, listener)
		}
	}

	im.transition(c, st, swap.StatusSwapping, listener)
	hash, err := signer.SendTransaction(c, swap.TxRequest{
		ChainId: req.ChainId,
		From:    req.Owner,
		To:      q.Transaction.To,
		Data:    q.Transaction.Data,
		Value:   q.Transaction.Value,
		Gas:     im.gasLimit(q.Transaction.Gas),
	})
	if err != nil {
		im.fail(c, st, err, listener)
		return nil
	}
	st.TxHash = hash

	receipt, err := im.chain.WaitReceipt(c, req.ChainId, hash)
	if err != nil {
		im.fail(c, st, err, listener)
		return nil
	}
	if receipt.Reverted() {
		im.fail(c, st, xerrors.Errorf("swap %s: %w", hash, domain.ErrTxReverted), listener)
		return nil
	}

	st.BuyAmount = q.BuyAmount
	im.transition(c, st, swap.StatusSuccess, listener)
	return nil
}

// approve returns the approval tx hash, or "" when the allowance already covers amount
func (im *orchestrator) approve(c ctx.Ctx, chainId domain.ChainId, signer swap.Signer, contract, owner, spender domain.Address, amount *big.Int) (domain.TxHash, error) {
	allowance, err := im.chain.Allowance(c, chainId, contract, owner, spender)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "spender": spender}).Error("chain.Allowance failed")
		return "", err
	}
	if allowance != nil && allowance.Cmp(amount) >= 0 {
		return "", nil
	}

	data, err := im.chain.PackApprove(spender, swap.MaxApproval)
	if err != nil {
		return "", err
	}
	hash, err := signer.SendTransaction(c, swap.TxRequest{
		ChainId: chainId,
		From:    owner,
		To:      contract,
		Data:    data,
		Value:   big.NewInt(0),
	})
	if err != nil {
		return "", err
	}
	receipt, err := im.chain.WaitReceipt(c, chainId, hash)
	if err != nil {
		return "", err
	}
	if receipt.Reverted() {
		return "", xerrors.Errorf("approve %s allowance: %w", hash, domain.ErrTxReverted)
	}
	return hash, nil
}

func (im *orchestrator) gasLimit(estimate uint64) uint64 {
	if estimate == 0 {
		return im.fallbackGasLimit
	}
	return estimate * uint64(im.gasMultiplierPct) / 100
}

func (im *orchestrator) transition(c ctx.Ctx, st *swap.TokenState, to swap.Status, listener swap.StatusListener) {
	if !st.Status.CanTransition(to) {
		c.WithFields(log.Fields{"from": st.Status, "to": to}).Error("invalid swap status transition")
		return
	}
	st.Status = to
	st.UpdatedAt = timeNow()
	listener(*st)
}

func (im *orchestrator) fail(c ctx.Ctx, st *swap.TokenState, err error, listener swap.StatusListener) {
	c.WithFields(log.Fields{"err": err, "status": st.Status}).Warn("token swap failed")
	st.SetErr(err)
	st.Reason = errparse.Message(err)
	im.transition(c, st, swap.StatusFailed, listener)
}

// totals re-quotes every successful leg since the executed quotes are stale once mined
func (im *orchestrator) totals(c ctx.Ctx, res *swap.BatchResult, slippage float64) {
	total := big.NewInt(0)
	for _, st := range res.Succeeded {
		status, err := im.quote.CheckLiquidity(c, quote.Request{
			ChainId:      res.ChainId,
			SellToken:    st.Token.Address,
			BuyToken:     res.Target.Address,
			SellAmount:   st.SellAmount,
			SellDecimals: st.Token.Decimals,
			Slippage:     slippage,
		})
		switch {
		case err == nil && status.Available && status.BuyAmount != nil:
			total.Add(total, status.BuyAmount)
		case st.BuyAmount != nil:
			total.Add(total, st.BuyAmount)
		}
	}
	res.TotalOutput = total
	res.TotalOutputFormatted = units.Format(total, res.Target.Decimals)

	if total.Sign() == 0 {
		return
	}
	prices, err := im.price.PriceTokens(c, res.ChainId, []domain.Address{res.Target.Address})
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Warn("price.PriceTokens failed")
		return
	}
	res.TotalValueUSD, _ = res.TotalOutputFormatted.Mul(decimal.NewFromFloat(prices.Get(res.Target.Address))).Float64()
}

func (im *orchestrator) record(c ctx.Ctx, res *swap.BatchResult) {
	entry := toEntry(res)
	detached := ctx.Detach(c)
	err := im.workerPool.ScheduleWithTimeout(recordTimeout, func() {
		if err := im.history.Record(detached, entry); err != nil {
			detached.WithFields(log.Fields{
				"err":     err,
				"entryId": entry.Id,
			}).Error("failed to history.Record")
		}
	})
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"batchId": res.BatchId,
		}).Error("failed to ScheduleWithTimeout")
	}
}

func toEntry(res *swap.BatchResult) *history.Entry {
	from := make([]history.TokenAmount, 0, len(res.Succeeded))
	for _, st := range res.Succeeded {
		from = append(from, tokenAmount(st.Token, st.SellAmount))
	}
	return &history.Entry{
		Id:         uuid.NewString(),
		ChainId:    res.ChainId,
		Owner:      res.Owner,
		FromTokens: from,
		ToToken: history.TokenAmount{
			Address:  res.Target.Address.ToLower(),
			Symbol:   res.Target.Symbol,
			Amount:   res.TotalOutputFormatted.String(),
			ValueUSD: res.TotalValueUSD,
		},
		TxHash:        res.TxHash,
		TotalValueUSD: res.TotalValueUSD,
		Timestamp:     res.FinishedAt,
	}
}

func tokenAmount(t token.Token, amount *big.Int) history.TokenAmount {
	return history.TokenAmount{
		Address:  t.Address.ToLower(),
		Symbol:   t.Symbol,
		Amount:   units.Format(amount, t.Decimals).String(),
		ValueUSD: t.ValueUSD,
	}
}
