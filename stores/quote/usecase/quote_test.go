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
	"github.com/x-xyz/dustsweep/domain/quote"
	mQuote "github.com/x-xyz/dustsweep/domain/quote/mocks"
)

const (
	weth      = domain.Address("0x4200000000000000000000000000000000000006")
	usdc      = domain.Address("0x833589fcd6edb6e08f4c7c32d4f71b54bda02913")
	degen     = domain.Address("0x4ed4e862860bed51a9570b96d89af5e1b0efefed")
	taker     = domain.Address("0x1111111111111111111111111111111111111111")
	recipient = domain.Address("0x2222222222222222222222222222222222222222")
	router    = domain.Address("0x0000000000001ff3684f28c67538d4d072c22734")
)

type quoteSuite struct {
	suite.Suite

	agg *mQuote.Aggregator
	cfg *QuoteCfg
	im  quote.UseCase
}

func (s *quoteSuite) SetupTest() {
	s.agg = &mQuote.Aggregator{}
	s.cfg = &QuoteCfg{
		Networks: domain.Networks{
			8453: {
				ChainId:           8453,
				WrappedNative:     weth,
				UsdStable:         usdc,
				UsdStableDecimals: 6,
			},
		},
		Aggregator: s.agg,
		Fee:        quote.NewFeePolicy(true, recipient, quote.DefaultFeeBps, nil),
		HasApiKey:  true,
	}
	s.im = New(s.cfg)
}

func (s *quoteSuite) TearDownTest() {
	s.agg.AssertExpectations(s.T())
}

func TestQuoteSuite(t *testing.T) {
	suite.Run(t, new(quoteSuite))
}

func baseReq() quote.Request {
	return quote.Request{
		ChainId:      8453,
		SellToken:    degen,
		BuyToken:     usdc,
		SellAmount:   big.NewInt(1e18),
		SellDecimals: 18,
		Taker:        taker,
	}
}

func priceTo(buyToken domain.Address) interface{} {
	return mock.MatchedBy(func(r quote.AggregatorRequest) bool {
		return r.BuyToken == buyToken && r.FeeBps == 0
	})
}

func quoted(buy int64) *quote.Quote {
	return &quote.Quote{
		ChainId:            8453,
		BuyAmount:          big.NewInt(buy),
		MinBuyAmount:       big.NewInt(buy),
		LiquidityAvailable: true,
		Transaction:        quote.Transaction{To: router, Data: "0xd9627aa4"},
	}
}

func (s *quoteSuite) TestGetQuoteSelectsTierFromNotional() {
	tests := []struct {
		name    string
		usdRaw  int64
		wantBps int
	}{
		{"small", 50 * 1e6, 100},
		{"boundary inclusive", 1000 * 1e6, 50},
		{"large", 5000 * 1e6, 30},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			req := baseReq()
			req.BuyToken = weth

			s.agg.On("GetPrice", mock.Anything, priceTo(usdc)).Return(quoted(tt.usdRaw), nil).Once()
			s.agg.On("GetQuote", mock.Anything, mock.MatchedBy(func(r quote.AggregatorRequest) bool {
				return r.FeeBps == tt.wantBps && r.FeeRecipient == recipient && r.FeeToken == weth && r.SlippageBps == 100
			})).Return(quoted(10000), nil).Once()

			q, fee, err := s.im.GetQuote(ctx.Background(), req)
			s.Require().NoError(err)
			s.Require().NotNil(q)
			s.Equal(tt.wantBps, fee.Bps)
			s.True(fee.Enabled)
			s.Require().NotNil(fee.UsdNotional)
			s.InDelta(float64(tt.usdRaw)/1e6, *fee.UsdNotional, 1e-9)
			s.Equal(int64(tt.wantBps), fee.FeeAmount.Int64())
			s.Len(fee.Tiers, 3)
			s.agg.AssertExpectations(s.T())
		})
	}
}

func (s *quoteSuite) TestGetQuoteNotionalUnavailableUsesDefault() {
	s.agg.On("GetPrice", mock.Anything, priceTo(usdc)).Return(nil, errors.New("boom")).Once()
	s.agg.On("GetQuote", mock.Anything, mock.MatchedBy(func(r quote.AggregatorRequest) bool {
		return r.FeeBps == quote.DefaultFeeBps
	})).Return(quoted(2000), nil).Once()

	req := baseReq()
	req.BuyToken = weth
	_, fee, err := s.im.GetQuote(ctx.Background(), req)
	s.Require().NoError(err)
	s.Nil(fee.UsdNotional)
	s.Equal(quote.DefaultFeeBps, fee.Bps)
	s.Equal(int64(10), fee.FeeAmount.Int64())
}

func (s *quoteSuite) TestGetQuoteSellingStableSkipsPriceCall() {
	req := baseReq()
	req.SellToken = usdc
	req.BuyToken = weth
	req.SellAmount = big.NewInt(20 * 1e6)
	req.SellDecimals = 6

	s.agg.On("GetQuote", mock.Anything, mock.MatchedBy(func(r quote.AggregatorRequest) bool {
		return r.FeeBps == 100
	})).Return(quoted(1), nil).Once()

	_, fee, err := s.im.GetQuote(ctx.Background(), req)
	s.Require().NoError(err)
	s.InDelta(20, *fee.UsdNotional, 1e-9)
}

func (s *quoteSuite) TestGetQuoteNativeNormalized() {
	req := baseReq()
	req.SellToken = domain.NativeAddress
	req.BuyToken = domain.Address("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")
	req.DisableFee = true

	s.agg.On("GetQuote", mock.Anything, mock.MatchedBy(func(r quote.AggregatorRequest) bool {
		return r.SellToken == weth && r.BuyToken == weth && !r.HasFee()
	})).Return(quoted(5), nil).Once()

	_, fee, err := s.im.GetQuote(ctx.Background(), req)
	s.Require().NoError(err)
	s.False(fee.Enabled)
	s.Equal(0, fee.Bps)
}

func (s *quoteSuite) TestGetQuoteClampsTinyAmount() {
	req := baseReq()
	req.SellAmount = big.NewInt(1)
	req.DisableFee = true

	s.agg.On("GetQuote", mock.Anything, mock.MatchedBy(func(r quote.AggregatorRequest) bool {
		return r.SellAmount.Cmp(big.NewInt(1e12)) == 0
	})).Return(quoted(5), nil).Once()

	_, _, err := s.im.GetQuote(ctx.Background(), req)
	s.Require().NoError(err)
	s.Equal(int64(1), req.SellAmount.Int64())
}

func (s *quoteSuite) TestGetQuoteNoLiquidity() {
	req := baseReq()
	req.DisableFee = true

	s.agg.On("GetQuote", mock.Anything, mock.Anything).Return(&quote.Quote{LiquidityAvailable: false}, nil).Once()
	_, _, err := s.im.GetQuote(ctx.Background(), req)
	s.ErrorIs(err, domain.ErrNoLiquidity)

	s.agg.On("GetQuote", mock.Anything, mock.Anything).Return(quoted(0), nil).Once()
	_, _, err = s.im.GetQuote(ctx.Background(), req)
	s.ErrorIs(err, domain.ErrNoLiquidity)
}

func (s *quoteSuite) TestGetQuoteUpstreamError() {
	req := baseReq()
	req.DisableFee = true
	errUp := errors.New("upstream 500")

	s.agg.On("GetQuote", mock.Anything, mock.Anything).Return(nil, errUp).Once()
	_, _, err := s.im.GetQuote(ctx.Background(), req)
	s.ErrorIs(err, errUp)
}

func (s *quoteSuite) TestGetQuoteUnsendableTransaction() {
	req := baseReq()
	req.DisableFee = true

	tests := []struct {
		name string
		tx   quote.Transaction
	}{
		{"missing transaction", quote.Transaction{}},
		{"zero address target", quote.Transaction{To: domain.NativeAddress, Data: "0xd9627aa4"}},
		{"malformed target", quote.Transaction{To: "0x12", Data: "0xd9627aa4"}},
		{"empty calldata", quote.Transaction{To: router, Data: "0x"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			q := quoted(100)
			q.Transaction = tt.tx
			s.agg.On("GetQuote", mock.Anything, mock.Anything).Return(q, nil).Once()

			got, fee, err := s.im.GetQuote(ctx.Background(), req)
			s.ErrorIs(err, domain.ErrInvalidQuote)
			s.Nil(got)
			s.Nil(fee)
		})
	}
}

func (s *quoteSuite) TestGetQuotePreconditions() {
	tests := []struct {
		name    string
		mutate  func(r *quote.Request)
		cfg     func(c *QuoteCfg)
		wantErr error
	}{
		{"unsupported chain", func(r *quote.Request) { r.ChainId = 137 }, nil, domain.ErrUnsupportedChain},
		{"bad sell token", func(r *quote.Request) { r.SellToken = "0x12" }, nil, domain.ErrInvalidAddress},
		{"bad taker", func(r *quote.Request) { r.Taker = "nope" }, nil, domain.ErrInvalidAddress},
		{"missing taker", func(r *quote.Request) { r.Taker = "" }, nil, domain.ErrBadParamInput},
		{"zero amount", func(r *quote.Request) { r.SellAmount = big.NewInt(0) }, nil, domain.ErrBadParamInput},
		{"nil amount", func(r *quote.Request) { r.SellAmount = nil }, nil, domain.ErrBadParamInput},
		{"slippage too high", func(r *quote.Request) { r.Slippage = 1 }, nil, domain.ErrBadParamInput},
		{"no api key", nil, func(c *QuoteCfg) { c.HasApiKey = false }, domain.ErrMissingApiKey},
		{"no fee recipient", nil, func(c *QuoteCfg) { c.Fee.Recipient = "" }, domain.ErrMissingFeeRecipient},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.cfg != nil {
				tt.cfg(s.cfg)
				s.im = New(s.cfg)
			}
			req := baseReq()
			if tt.mutate != nil {
				tt.mutate(&req)
			}
			_, _, err := s.im.GetQuote(ctx.Background(), req)
			s.ErrorIs(err, tt.wantErr)
			s.True(domain.IsPrecondition(err))
			s.agg.AssertNotCalled(s.T(), "GetQuote", mock.Anything, mock.Anything)
			s.agg.AssertNotCalled(s.T(), "GetPrice", mock.Anything, mock.Anything)
		})
	}
}

func (s *quoteSuite) TestGetQuoteDisabledFeeSkipsRecipientCheck() {
	s.cfg.Fee.Recipient = ""
	s.im = New(s.cfg)

	req := baseReq()
	req.DisableFee = true
	s.agg.On("GetQuote", mock.Anything, mock.Anything).Return(quoted(5), nil).Once()
	_, _, err := s.im.GetQuote(ctx.Background(), req)
	s.NoError(err)
}

func (s *quoteSuite) TestCheckLiquidity() {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }
	defer func() { timeNow = time.Now }()

	req := baseReq()
	req.Taker = ""

	s.agg.On("GetPrice", mock.Anything, mock.Anything).Return(quoted(42), nil).Once()
	st, err := s.im.CheckLiquidity(ctx.Background(), req)
	s.Require().NoError(err)
	s.True(st.Available)
	s.Equal(int64(42), st.BuyAmount.Int64())
	s.Equal(now, st.CheckedAt)

	s.agg.On("GetPrice", mock.Anything, mock.Anything).Return(&quote.Quote{}, nil).Once()
	st, err = s.im.CheckLiquidity(ctx.Background(), req)
	s.Require().NoError(err)
	s.False(st.Available)
	s.Equal(errparse.MsgNoLiquidity, st.Reason)

	s.agg.On("GetPrice", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: connection refused")).Once()
	st, err = s.im.CheckLiquidity(ctx.Background(), req)
	s.Require().NoError(err)
	s.False(st.Available)
	s.NotEmpty(st.Reason)

	req.ChainId = 1
	_, err = s.im.CheckLiquidity(ctx.Background(), req)
	s.ErrorIs(err, domain.ErrUnsupportedChain)
}

func (s *quoteSuite) TestEstimateNotional() {
	s.agg.On("GetPrice", mock.Anything, priceTo(usdc)).Return(quoted(1500000), nil).Once()
	v, err := s.im.EstimateNotional(ctx.Background(), baseReq())
	s.Require().NoError(err)
	s.InDelta(1.5, *v, 1e-9)

	s.agg.On("GetPrice", mock.Anything, priceTo(usdc)).Return(&quote.Quote{}, nil).Once()
	v, err = s.im.EstimateNotional(ctx.Background(), baseReq())
	s.Require().NoError(err)
	s.Nil(v)
}
