package zeroex

import (
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/quote"
)

type zeroexSuite struct {
	suite.Suite

	handler http.HandlerFunc
	srv     *httptest.Server
	im      Client
}

func (s *zeroexSuite) SetupTest() {
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))
	s.im = NewClient(&ClientCfg{BaseUrl: s.srv.URL, ApiKey: "key"})
}

func (s *zeroexSuite) TearDownTest() {
	s.srv.Close()
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(zeroexSuite))
}

func (s *zeroexSuite) request() quote.AggregatorRequest {
	return quote.AggregatorRequest{
		ChainId:      8453,
		SellToken:    "0xsell",
		BuyToken:     "0xbuy",
		SellAmount:   big.NewInt(1000000),
		Taker:        "0xtaker",
		SlippageBps:  100,
		FeeRecipient: "0xfee",
		FeeBps:       50,
		FeeToken:     "0xbuy",
	}
}

func (s *zeroexSuite) TestGetQuote() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(quotePath, r.URL.Path)
		s.Equal("key", r.Header.Get("0x-api-key"))
		s.Equal("v2", r.Header.Get("0x-version"))
		q := r.URL.Query()
		s.Equal("8453", q.Get("chainId"))
		s.Equal("1000000", q.Get("sellAmount"))
		s.Equal("0xtaker", q.Get("taker"))
		s.Equal("100", q.Get("slippageBps"))
		s.Equal("0xfee", q.Get("swapFeeRecipient"))
		s.Equal("50", q.Get("swapFeeBps"))
		s.Equal("0xbuy", q.Get("swapFeeToken"))
		w.Write([]byte(`{
			"liquidityAvailable": true,
			"buyAmount": "995000",
			"minBuyAmount": "985050",
			"issues": {"allowance": {"actual": "0", "spender": "0xspender"}},
			"transaction": {"to": "0xrouter", "data": "0xdeadbeef", "gas": "180000", "gasPrice": "1000000", "value": "0"}
		}`))
	}

	q, err := s.im.GetQuote(bCtx.Background(), s.request())
	s.Require().NoError(err)
	s.True(q.LiquidityAvailable)
	s.Equal("995000", q.BuyAmount.String())
	s.Equal("985050", q.MinBuyAmount.String())
	s.Equal(domain.Address("0xspender"), q.AllowanceSpender)
	s.Equal(domain.Address("0xrouter"), q.Transaction.To)
	s.Equal("0xdeadbeef", q.Transaction.Data)
	s.Equal(uint64(180000), q.Transaction.Gas)
	s.Equal(int64(0), q.Transaction.Value.Int64())
	s.True(q.NeedsApproval())
}

func (s *zeroexSuite) TestGetPriceNoFeeNoLiquidity() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(pricePath, r.URL.Path)
		q := r.URL.Query()
		s.Empty(q.Get("swapFeeBps"))
		s.Empty(q.Get("taker"))
		w.Write([]byte(`{"liquidityAvailable": false, "zid": "0x1"}`))
	}

	req := s.request()
	req.Taker, req.FeeBps = "", 0
	q, err := s.im.GetPrice(bCtx.Background(), req)
	s.Require().NoError(err)
	s.False(q.LiquidityAvailable)
	s.Equal(int64(0), q.BuyAmount.Int64())
}

func (s *zeroexSuite) TestAPIError() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"name":"INPUT_INVALID","message":"Validation Failed"}`))
	}

	_, err := s.im.GetQuote(bCtx.Background(), s.request())
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusBadRequest, apiErr.StatusCode)
	s.Equal("Validation Failed", apiErr.Message)
	s.Contains(err.Error(), "Validation Failed")
}

func (s *zeroexSuite) TestMissingApiKey() {
	im := NewClient(&ClientCfg{BaseUrl: s.srv.URL})
	_, err := im.GetPrice(bCtx.Background(), s.request())
	s.ErrorIs(err, domain.ErrMissingApiKey)
}

func (s *zeroexSuite) TestQuoteNeedsTaker() {
	req := s.request()
	req.Taker = ""
	_, err := s.im.GetQuote(bCtx.Background(), req)
	s.ErrorIs(err, domain.ErrBadParamInput)
}
