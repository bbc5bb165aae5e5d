package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/ptr"
	"github.com/x-xyz/dustsweep/domain"
	mDomain "github.com/x-xyz/dustsweep/domain/mocks"
	"github.com/x-xyz/dustsweep/domain/price"
	mPrice "github.com/x-xyz/dustsweep/domain/price/mocks"
	"github.com/x-xyz/dustsweep/domain/token"
	mToken "github.com/x-xyz/dustsweep/domain/token/mocks"
	"github.com/x-xyz/dustsweep/service/cache/provider/primitive"
)

const (
	addrA = domain.Address("0xaaaa")
	addrB = domain.Address("0xbbbb")
	addrC = domain.Address("0xcccc")
	addrD = domain.Address("0xdddd")
	addrE = domain.Address("0xeeee")
	feed  = domain.Address("0xfeed")
)

type priceSuite struct {
	suite.Suite

	coingecko *mPrice.ContractPriceSource
	defillama *mPrice.UsdPriceSource
	chainlink *mDomain.ChainlinkUsacase
	registry  *mToken.Registry
	im        *impl
}

func (s *priceSuite) SetupTest() {
	s.coingecko = &mPrice.ContractPriceSource{}
	s.defillama = &mPrice.UsdPriceSource{}
	s.chainlink = &mDomain.ChainlinkUsacase{}
	s.registry = &mToken.Registry{}
	s.im = New(&PriceCfg{
		Networks: domain.Networks{
			8453: {ChainId: 8453, CoinGeckoPlatform: "base", DefiLlamaSlug: "base", NativeUsdFeed: feed},
		},
		CoinGecko: s.coingecko,
		DefiLlama: s.defillama,
		Chainlink: s.chainlink,
		Registry:  s.registry,
		Cache:     primitive.NewPrimitive("price-test", 1),
	}).(*impl)
}

func (s *priceSuite) TearDownTest() {
	s.coingecko.AssertExpectations(s.T())
	s.defillama.AssertExpectations(s.T())
	s.chainlink.AssertExpectations(s.T())
	s.registry.AssertExpectations(s.T())
}

func TestPriceSuite(t *testing.T) {
	suite.Run(t, new(priceSuite))
}

func (s *priceSuite) TestPriceTokensFallbackChain() {
	s.coingecko.On("GetTokenPrices", mock.Anything, "base", []domain.Address{addrA, addrB, addrC, addrD, addrE}).
		Return(map[domain.Address]price.TokenQuote{
			addrA: {Usd: ptr.Float64(2)},
			addrC: {Eth: ptr.Float64(0.001)},
		}, nil).Once()
	s.defillama.On("GetPrices", mock.Anything, "base", []domain.Address{addrB, addrC, addrD, addrE}).
		Return(map[domain.Address]float64{addrB: 0.5}, nil).Once()
	s.chainlink.On("GetLatestAnswer", mock.Anything, domain.ChainId(8453), feed).Return(decimal.NewFromInt(2000), nil).Once()
	s.registry.On("Lookup", domain.ChainId(8453), addrD).Return(token.KnownToken{CoinGeckoId: "dai"}, true).Once()
	s.registry.On("Lookup", domain.ChainId(8453), addrE).Return(token.KnownToken{}, false).Once()
	s.coingecko.On("GetSimplePrices", mock.Anything, []string{"dai"}).Return(map[string]float64{"dai": 1}, nil).Once()

	addrs := []domain.Address{"0xAAAA", addrB, addrC, addrD, addrE, domain.NativeAddress, addrA}
	res, err := s.im.PriceTokens(ctx.Background(), 8453, addrs)
	s.Require().NoError(err)
	s.Equal(float64(2), res.Get(addrA))
	s.Equal(0.5, res.Get(addrB))
	s.InDelta(2, res.Get(addrC), 1e-9)
	s.Equal(float64(1), res.Get(addrD))
	s.Equal(float64(0), res.Get(addrE))
	s.Equal(float64(2000), res.Get(domain.NativeAddress))

	// same set in another order hits the cache
	again, err := s.im.PriceTokens(ctx.Background(), 8453, []domain.Address{domain.NativeAddress, addrE, addrD, addrC, addrB, addrA})
	s.Require().NoError(err)
	s.Equal(res, again)
}

func (s *priceSuite) TestPriceTokensAllSourcesDown() {
	s.coingecko.On("GetTokenPrices", mock.Anything, "base", []domain.Address{addrA}).Return(nil, errors.New("status 429")).Twice()
	s.defillama.On("GetPrices", mock.Anything, "base", []domain.Address{addrA}).Return(nil, errors.New("timeout")).Twice()
	s.registry.On("Lookup", domain.ChainId(8453), addrA).Return(token.KnownToken{}, false).Twice()

	for i := 0; i < 2; i++ {
		res, err := s.im.PriceTokens(ctx.Background(), 8453, []domain.Address{addrA})
		s.Require().NoError(err)
		s.Equal(price.Prices{addrA: 0}, res)
	}
}

func (s *priceSuite) TestPriceTokensEmpty() {
	res, err := s.im.PriceTokens(ctx.Background(), 8453, nil)
	s.Require().NoError(err)
	s.Empty(res)
}

func (s *priceSuite) TestPriceTokensUnsupportedChain() {
	_, err := s.im.PriceTokens(ctx.Background(), 1, []domain.Address{addrA})
	s.ErrorIs(err, domain.ErrUnsupportedChain)
}

func (s *priceSuite) TestNativeUSDFallsBackToCoinGecko() {
	s.chainlink.On("GetLatestAnswer", mock.Anything, domain.ChainId(8453), feed).Return(decimal.Zero, errors.New("stale")).Once()
	s.coingecko.On("GetSimplePrices", mock.Anything, []string{nativeCoinGeckoId}).Return(map[string]float64{nativeCoinGeckoId: 1800}, nil).Once()

	v, err := s.im.NativeUSD(ctx.Background(), 8453)
	s.Require().NoError(err)
	s.Equal(float64(1800), v)

	// cached
	v, err = s.im.NativeUSD(ctx.Background(), 8453)
	s.Require().NoError(err)
	s.Equal(float64(1800), v)
}

func (s *priceSuite) TestNativeUSDUnavailable() {
	s.chainlink.On("GetLatestAnswer", mock.Anything, domain.ChainId(8453), feed).Return(decimal.Zero, errors.New("stale")).Once()
	s.coingecko.On("GetSimplePrices", mock.Anything, []string{nativeCoinGeckoId}).Return(map[string]float64{}, nil).Once()

	_, err := s.im.NativeUSD(ctx.Background(), 8453)
	s.ErrorIs(err, domain.ErrNotFound)
}
