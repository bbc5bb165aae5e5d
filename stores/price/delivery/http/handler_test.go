package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	redigo "github.com/gomodule/redigo/redis"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/metrics"
	bValidator "github.com/x-xyz/dustsweep/base/validator"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/price"
	"github.com/x-xyz/dustsweep/domain/price/mocks"
	"github.com/x-xyz/dustsweep/middleware"
	"github.com/x-xyz/dustsweep/service/redis"
)

const usdc = domain.Address("0x833589fcd6edb6e08f4c7c32d4f71b54bda02913")

type fakeCoin struct {
	calls int
	price decimal.Decimal
	err   error
}

func (f *fakeCoin) GetPrice(_ ctx.Ctx, _ string) (decimal.Decimal, error) {
	f.calls++
	return f.price, f.err
}

type priceHandlerSuite struct {
	suite.Suite

	e     *echo.Echo
	price *mocks.UseCase
	coin  *fakeCoin
}

func TestPriceHandlerSuite(t *testing.T) {
	suite.Run(t, new(priceHandlerSuite))
}

func (s *priceHandlerSuite) SetupSuite() {
	mr := miniredis.RunT(s.T())
	pool := &redigo.Pool{
		Dial: func() (redigo.Conn, error) {
			return redigo.Dial("tcp", mr.Addr())
		},
	}
	middleware.SetupCache(redis.New("cache", metrics.New("cache"), &redis.Pools{Src: pool}))
}

func (s *priceHandlerSuite) SetupTest() {
	s.e = echo.New()
	s.e.Validator = bValidator.NewCustomValidator(validator.New())
	s.e.Use(middleware.InitMiddleware().AddContext())
	s.price = &mocks.UseCase{}
	s.coin = &fakeCoin{price: decimal.RequireFromString("0.9998")}
	New(s.e, s.price, s.coin)
}

func (s *priceHandlerSuite) TearDownTest() {
	s.price.AssertExpectations(s.T())
}

func (s *priceHandlerSuite) do(method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	res := map[string]interface{}{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	return rec, res
}

func (s *priceHandlerSuite) TestPriceTokens() {
	s.price.On("PriceTokens", mock.Anything, domain.ChainId(8453), []domain.Address{usdc}).
		Return(price.Prices{usdc: 1.0}, nil).Once()

	rec, res := s.do(http.MethodPost, "/prices", `{"chainId":8453,"addresses":["`+string(usdc)+`"]}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(1.0, res["data"].(map[string]interface{})[string(usdc)])
}

func (s *priceHandlerSuite) TestPriceTokensUnsupportedChain() {
	s.price.On("PriceTokens", mock.Anything, domain.ChainId(5), mock.Anything).
		Return(nil, xerrors.Errorf("chain 5: %w", domain.ErrUnsupportedChain)).Once()

	rec, res := s.do(http.MethodPost, "/prices", `{"chainId":5,"addresses":[]}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("fail", res["status"])
}

func (s *priceHandlerSuite) TestPriceTokensMissingChain() {
	rec, _ := s.do(http.MethodPost, "/prices", `{"addresses":[]}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *priceHandlerSuite) TestNativeUSD() {
	s.price.On("NativeUSD", mock.Anything, domain.ChainId(1)).Return(3000.5, nil).Once()

	rec, res := s.do(http.MethodGet, "/prices/native?chainId=1", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(3000.5, res["data"].(map[string]interface{})["usd"])
}

func (s *priceHandlerSuite) TestGetCoinCached() {
	rec, res := s.do(http.MethodGet, "/prices/coin/usd-coin", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("0.9998", res["data"])

	rec, _ = s.do(http.MethodGet, "/prices/coin/usd-coin", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(1, s.coin.calls)
}

func (s *priceHandlerSuite) TestGetCoinUpstreamError() {
	s.coin.err = errors.New("coingecko: status 500")

	rec, _ := s.do(http.MethodGet, "/prices/coin/unknown-coin", "")
	s.Equal(http.StatusInternalServerError, rec.Code)
}
