package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/errparse"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/history"
	mHistory "github.com/x-xyz/dustsweep/domain/history/mocks"
	"github.com/x-xyz/dustsweep/domain/price"
	mPrice "github.com/x-xyz/dustsweep/domain/price/mocks"
	"github.com/x-xyz/dustsweep/domain/quote"
	mQuote "github.com/x-xyz/dustsweep/domain/quote/mocks"
	"github.com/x-xyz/dustsweep/domain/swap"
	mSwap "github.com/x-xyz/dustsweep/domain/swap/mocks"
	"github.com/x-xyz/dustsweep/domain/token"
)

const (
	owner   = domain.Address("0x1111111111111111111111111111111111111111")
	router  = domain.Address("0x0000000000001ff3684f28c67538d4d072c22734")
	usdc    = domain.Address("0x833589fcd6edb6e08f4c7c32d4f71b54bda02913")
	tokenA  = domain.Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	tokenB  = domain.Address("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	tokenC  = domain.Address("0xcccccccccccccccccccccccccccccccccccccccc")
	chainId = domain.ChainId(8453)
)

type orchestratorSuite struct {
	suite.Suite

	quote   *mQuote.UseCase
	chain   *mSwap.ChainRepo
	price   *mPrice.UseCase
	history *mHistory.UseCase
	signer  *mSwap.Signer
	im      swap.Orchestrator

	statuses map[domain.Address][]swap.Status
	recorded chan *history.Entry
}

func (s *orchestratorSuite) SetupTest() {
	s.quote = &mQuote.UseCase{}
	s.chain = &mSwap.ChainRepo{}
	s.price = &mPrice.UseCase{}
	s.history = &mHistory.UseCase{}
	s.signer = &mSwap.Signer{}
	s.signer.On("Address").Return(owner).Maybe()

	s.im = NewOrchestrator(&OrchestratorCfg{
		Networks: domain.Networks{chainId: {ChainId: chainId, UsdStable: usdc, UsdStableDecimals: 6}},
		Quote:    s.quote,
		Chain:    s.chain,
		Price:    s.price,
		History:  s.history,
	})
	s.statuses = map[domain.Address][]swap.Status{}
	s.recorded = make(chan *history.Entry, 1)
}

func (s *orchestratorSuite) TearDownTest() {
	s.quote.AssertExpectations(s.T())
	s.chain.AssertExpectations(s.T())
	s.signer.AssertExpectations(s.T())
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(orchestratorSuite))
}

func (s *orchestratorSuite) listener(st swap.TokenState) {
	s.statuses[st.Token.Address] = append(s.statuses[st.Token.Address], st.Status)
}

func dustToken(addr domain.Address, symbol string, raw int64, usd float64) token.Token {
	t := token.Token{ChainId: chainId, Address: addr, Symbol: symbol, Decimals: 18}
	t.SetBalance(big.NewInt(raw))
	t.ValueUSD = usd
	return t
}

func batch(tokens ...token.Token) swap.BatchRequest {
	return swap.BatchRequest{
		ChainId: chainId,
		Owner:   owner,
		Tokens:  tokens,
		Target:  swap.Target{Address: usdc, Symbol: "USDC", Decimals: 6},
	}
}

func sells(addr domain.Address) interface{} {
	return mock.MatchedBy(func(r quote.Request) bool { return r.SellToken == addr })
}

func sendsTo(addr domain.Address) interface{} {
	return mock.MatchedBy(func(tx swap.TxRequest) bool { return tx.To == addr })
}

func routed(sell domain.Address, buy int64, gas uint64) *quote.Quote {
	return &quote.Quote{
		ChainId:            chainId,
		SellToken:          sell,
		BuyToken:           usdc,
		BuyAmount:          big.NewInt(buy),
		MinBuyAmount:       big.NewInt(buy),
		AllowanceSpender:   router,
		LiquidityAvailable: true,
		Transaction:        quote.Transaction{To: router, Data: "0xswap", Value: big.NewInt(0), Gas: gas},
	}
}

func (s *orchestratorSuite) expectSwap(addr domain.Address, buy int64, hash domain.TxHash) {
	s.quote.On("GetQuote", mock.Anything, sells(addr)).Return(routed(addr, buy, 100000), &quote.FeeBreakdown{}, nil).Once()
	s.chain.On("Allowance", mock.Anything, chainId, addr, owner, router).Return(swap.MaxApproval, nil).Once()
	s.signer.On("SendTransaction", mock.Anything, mock.MatchedBy(func(tx swap.TxRequest) bool {
		return tx.To == router && tx.Data == "0xswap" && tx.Gas == 120000
	})).Return(hash, nil).Once()
	s.chain.On("WaitReceipt", mock.Anything, chainId, hash).Return(&swap.Receipt{TxHash: hash, Status: 1}, nil).Once()
}

func (s *orchestratorSuite) expectTotals(buy int64, usdPrice float64) {
	s.quote.On("CheckLiquidity", mock.Anything, mock.Anything).Return(&quote.LiquidityStatus{Available: true, BuyAmount: big.NewInt(buy)}, nil)
	s.price.On("PriceTokens", mock.Anything, chainId, []domain.Address{usdc}).Return(price.Prices{usdc: usdPrice}, nil).Maybe()
}

func (s *orchestratorSuite) expectRecord() {
	s.history.On("Record", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		s.recorded <- args.Get(1).(*history.Entry)
	}).Return(nil).Once()
}

func (s *orchestratorSuite) waitRecorded() *history.Entry {
	select {
	case e := <-s.recorded:
		return e
	case <-time.After(2 * time.Second):
		s.FailNow("history entry not recorded")
		return nil
	}
}

func (s *orchestratorSuite) TestTwoDustTokensSucceed() {
	a := dustToken(tokenA, "A", 5e17, 0.5)
	b := dustToken(tokenB, "B", 8e18, 8)

	// A has no allowance yet
	s.quote.On("GetQuote", mock.Anything, sells(tokenA)).Return(routed(tokenA, 500000, 0), &quote.FeeBreakdown{}, nil).Once()
	s.chain.On("Allowance", mock.Anything, chainId, tokenA, owner, router).Return(big.NewInt(0), nil).Once()
	s.chain.On("PackApprove", router, swap.MaxApproval).Return("0xapprove", nil).Once()
	s.signer.On("SendTransaction", mock.Anything, sendsTo(tokenA)).Return(domain.TxHash("0xa1"), nil).Once()
	s.chain.On("WaitReceipt", mock.Anything, chainId, domain.TxHash("0xa1")).Return(&swap.Receipt{Status: 1}, nil).Once()
	s.signer.On("SendTransaction", mock.Anything, mock.MatchedBy(func(tx swap.TxRequest) bool {
		return tx.To == router && tx.Gas == defaultFallbackGas
	})).Return(domain.TxHash("0xa2"), nil).Once()
	s.chain.On("WaitReceipt", mock.Anything, chainId, domain.TxHash("0xa2")).Return(&swap.Receipt{Status: 1}, nil).Once()

	s.expectSwap(tokenB, 8000000, "0xb2")
	s.expectTotals(4250000, 1)
	s.expectRecord()

	res, err := s.im.ExecuteBatch(ctx.Background(), batch(a, b), s.signer, s.listener)
	s.Require().NoError(err)
	s.Len(res.Succeeded, 2)
	s.Empty(res.Failed)
	s.Equal(domain.TxHash("0xb2"), res.TxHash)
	s.Equal(int64(8500000), res.TotalOutput.Int64())
	s.InDelta(8.5, res.TotalValueUSD, 1e-9)
	s.Equal(domain.TxHash("0xa1"), res.States[0].ApproveTxHash)
	s.Equal(int64(500000), res.States[0].BuyAmount.Int64())

	s.Equal([]swap.Status{swap.StatusPending, swap.StatusChecking, swap.StatusApproved, swap.StatusSwapping, swap.StatusSuccess}, s.statuses[tokenA])
	s.Equal([]swap.Status{swap.StatusPending, swap.StatusChecking, swap.StatusSwapping, swap.StatusSuccess}, s.statuses[tokenB])

	e := s.waitRecorded()
	s.Len(e.FromTokens, 2)
	s.Equal(owner, e.Owner)
	s.Equal(domain.TxHash("0xb2"), e.TxHash)
	s.Equal("8.5", e.ToToken.Amount)
	s.InDelta(8.5, e.TotalValueUSD, 1e-9)
}

func (s *orchestratorSuite) TestNoLiquidityDoesNotAbortBatch() {
	a := dustToken(tokenA, "A", 1e18, 1)
	b := dustToken(tokenB, "B", 1e18, 1)
	c := dustToken(tokenC, "C", 1e18, 1)

	s.expectSwap(tokenA, 100, "0xa")
	s.quote.On("GetQuote", mock.Anything, sells(tokenB)).Return(nil, nil, domain.ErrNoLiquidity).Once()
	s.expectSwap(tokenC, 100, "0xc")
	s.expectTotals(100, 1)
	s.expectRecord()

	res, err := s.im.ExecuteBatch(ctx.Background(), batch(a, b, c), s.signer, s.listener)
	s.Require().NoError(err)
	s.Len(res.States, 3)
	s.Equal(swap.StatusSuccess, res.States[0].Status)
	s.Equal(swap.StatusFailed, res.States[1].Status)
	s.Equal(errparse.MsgNoLiquidity, res.States[1].Reason)
	s.ErrorIs(res.States[1].Err(), domain.ErrNoLiquidity)
	s.Equal(swap.StatusSuccess, res.States[2].Status)
	s.Len(res.Succeeded, 2)
	s.Len(res.Failed, 1)
	s.Equal([]swap.Status{swap.StatusPending, swap.StatusChecking, swap.StatusFailed}, s.statuses[tokenB])

	s.Len(s.waitRecorded().FromTokens, 2)
}

func (s *orchestratorSuite) TestNativeSellSkipsApproval() {
	native := token.Token{ChainId: chainId, Address: domain.NativeAddress, Symbol: "ETH", Decimals: 18, IsNative: true}
	native.SetBalance(big.NewInt(1e16))

	s.quote.On("GetQuote", mock.Anything, sells(domain.NativeAddress)).Return(routed(domain.NativeAddress, 30000000, 50000), &quote.FeeBreakdown{}, nil).Once()
	s.signer.On("SendTransaction", mock.Anything, sendsTo(router)).Return(domain.TxHash("0xn"), nil).Once()
	s.chain.On("WaitReceipt", mock.Anything, chainId, domain.TxHash("0xn")).Return(&swap.Receipt{Status: 1}, nil).Once()
	s.expectTotals(30000000, 1)
	s.expectRecord()

	res, err := s.im.ExecuteBatch(ctx.Background(), batch(native), s.signer, s.listener)
	s.Require().NoError(err)
	s.Equal(swap.StatusSuccess, res.States[0].Status)
	s.chain.AssertNotCalled(s.T(), "Allowance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.chain.AssertNotCalled(s.T(), "PackApprove", mock.Anything, mock.Anything)
	s.waitRecorded()
}

func (s *orchestratorSuite) TestRevertedReceiptFails() {
	a := dustToken(tokenA, "A", 1e18, 1)

	s.quote.On("GetQuote", mock.Anything, sells(tokenA)).Return(routed(tokenA, 100, 100000), &quote.FeeBreakdown{}, nil).Once()
	s.chain.On("Allowance", mock.Anything, chainId, tokenA, owner, router).Return(swap.MaxApproval, nil).Once()
	s.signer.On("SendTransaction", mock.Anything, sendsTo(router)).Return(domain.TxHash("0xr"), nil).Once()
	s.chain.On("WaitReceipt", mock.Anything, chainId, domain.TxHash("0xr")).Return(&swap.Receipt{Status: 0}, nil).Once()

	res, err := s.im.ExecuteBatch(ctx.Background(), batch(a), s.signer, s.listener)
	s.Require().NoError(err)
	s.Equal(swap.StatusFailed, res.States[0].Status)
	s.Equal(domain.TxHash("0xr"), res.States[0].TxHash)
	s.Equal(errparse.MsgReverted, res.States[0].Reason)
	s.Empty(res.Succeeded)
	s.Equal(int64(0), res.TotalOutput.Int64())
	s.history.AssertNotCalled(s.T(), "Record", mock.Anything, mock.Anything)
}

func (s *orchestratorSuite) TestUserRejectionContinues() {
	a := dustToken(tokenA, "A", 1e18, 1)
	b := dustToken(tokenB, "B", 1e18, 1)

	s.quote.On("GetQuote", mock.Anything, sells(tokenA)).Return(routed(tokenA, 100, 100000), &quote.FeeBreakdown{}, nil).Once()
	s.chain.On("Allowance", mock.Anything, chainId, tokenA, owner, router).Return(big.NewInt(1), nil).Once()
	s.chain.On("PackApprove", router, swap.MaxApproval).Return("0xapprove", nil).Once()
	s.signer.On("SendTransaction", mock.Anything, sendsTo(tokenA)).Return(domain.TxHash(""), domain.ErrUserRejected).Once()
	s.expectSwap(tokenB, 100, "0xb")
	s.expectTotals(100, 1)
	s.expectRecord()

	res, err := s.im.ExecuteBatch(ctx.Background(), batch(a, b), s.signer, s.listener)
	s.Require().NoError(err)
	s.Equal(swap.StatusFailed, res.States[0].Status)
	s.Equal(errparse.MsgCancelled, res.States[0].Reason)
	s.Equal([]swap.Status{swap.StatusPending, swap.StatusChecking, swap.StatusFailed}, s.statuses[tokenA])
	s.Equal(swap.StatusSuccess, res.States[1].Status)
	s.waitRecorded()
}

func (s *orchestratorSuite) TestRecordFailureDoesNotFailBatch() {
	a := dustToken(tokenA, "A", 1e18, 1)
	s.expectSwap(tokenA, 100, "0xa")
	s.expectTotals(100, 1)
	s.history.On("Record", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		s.recorded <- args.Get(1).(*history.Entry)
	}).Return(errors.New("redis down")).Once()

	res, err := s.im.ExecuteBatch(ctx.Background(), batch(a), s.signer, s.listener)
	s.Require().NoError(err)
	s.Equal(swap.StatusSuccess, res.States[0].Status)
	s.waitRecorded()
}

func (s *orchestratorSuite) TestTotalsFallBackToExecutedQuote() {
	a := dustToken(tokenA, "A", 1e18, 1)
	s.expectSwap(tokenA, 777, "0xa")
	s.quote.On("CheckLiquidity", mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()
	s.price.On("PriceTokens", mock.Anything, chainId, []domain.Address{usdc}).Return(price.Prices{}, nil).Once()
	s.expectRecord()

	res, err := s.im.ExecuteBatch(ctx.Background(), batch(a), s.signer, s.listener)
	s.Require().NoError(err)
	s.Equal(int64(777), res.TotalOutput.Int64())
	s.Equal(0.0, res.TotalValueUSD)
	s.waitRecorded()
}

func (s *orchestratorSuite) TestConfigErrorAbortsBatch() {
	a := dustToken(tokenA, "A", 1e18, 1)
	b := dustToken(tokenB, "B", 1e18, 1)
	s.quote.On("GetQuote", mock.Anything, sells(tokenA)).Return(nil, nil, domain.ErrMissingApiKey).Once()

	res, err := s.im.ExecuteBatch(ctx.Background(), batch(a, b), s.signer, s.listener)
	s.ErrorIs(err, domain.ErrMissingApiKey)
	s.Nil(res)
	s.Empty(s.statuses[tokenB][1:])
}

func (s *orchestratorSuite) TestQuoteWithoutTransactionFails() {
	a := dustToken(tokenA, "A", 1e18, 1)
	b := dustToken(tokenB, "B", 1e18, 1)

	broken := routed(tokenA, 100, 100000)
	broken.Transaction = quote.Transaction{}
	s.quote.On("GetQuote", mock.Anything, sells(tokenA)).Return(broken, &quote.FeeBreakdown{}, nil).Once()
	s.expectSwap(tokenB, 100, "0xb")
	s.expectTotals(100, 1)
	s.expectRecord()

	res, err := s.im.ExecuteBatch(ctx.Background(), batch(a, b), s.signer, s.listener)
	s.Require().NoError(err)
	s.Equal(swap.StatusFailed, res.States[0].Status)
	s.ErrorIs(res.States[0].Err(), domain.ErrInvalidQuote)
	s.Equal(errparse.MsgInvalidQuote, res.States[0].Reason)
	s.Equal([]swap.Status{swap.StatusPending, swap.StatusChecking, swap.StatusFailed}, s.statuses[tokenA])
	s.signer.AssertNotCalled(s.T(), "SendTransaction", mock.Anything, sendsTo(""))
	s.chain.AssertNotCalled(s.T(), "Allowance", mock.Anything, chainId, tokenA, owner, router)
	s.Equal(swap.StatusSuccess, res.States[1].Status)

	e := s.waitRecorded()
	s.Require().Len(e.FromTokens, 1)
}

func (s *orchestratorSuite) TestZeroBalanceFails() {
	a := dustToken(tokenA, "A", 0, 0)

	res, err := s.im.ExecuteBatch(ctx.Background(), batch(a), s.signer, s.listener)
	s.Require().NoError(err)
	s.Equal(swap.StatusFailed, res.States[0].Status)
	s.ErrorIs(res.States[0].Err(), domain.ErrZeroBalance)
}

func (s *orchestratorSuite) TestPreconditions() {
	a := dustToken(tokenA, "A", 1e18, 1)
	tests := []struct {
		name    string
		mutate  func(r *swap.BatchRequest)
		wantErr error
	}{
		{"unsupported chain", func(r *swap.BatchRequest) { r.ChainId = 137 }, domain.ErrUnsupportedChain},
		{"no tokens", func(r *swap.BatchRequest) { r.Tokens = nil }, domain.ErrBadParamInput},
		{"bad target", func(r *swap.BatchRequest) { r.Target.Address = "0x12" }, domain.ErrInvalidAddress},
		{"slippage", func(r *swap.BatchRequest) { r.Slippage = 1.5 }, domain.ErrBadParamInput},
		{"owner is not signer", func(r *swap.BatchRequest) { r.Owner = tokenC }, domain.ErrBadParamInput},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := batch(a)
			tt.mutate(&req)
			_, err := s.im.ExecuteBatch(ctx.Background(), req, s.signer, s.listener)
			s.ErrorIs(err, tt.wantErr)
			s.True(domain.IsPrecondition(err))
		})
	}
	s.Empty(s.statuses)
}

func (s *orchestratorSuite) TestGasLimit() {
	im := s.im.(*orchestrator)
	s.Equal(uint64(120000), im.gasLimit(100000))
	s.Equal(uint64(defaultFallbackGas), im.gasLimit(0))
}
