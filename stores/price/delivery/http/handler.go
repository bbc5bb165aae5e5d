package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/delivery"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/price"
	"github.com/x-xyz/dustsweep/middleware"
)

// CoinPricer looks up a usd price by coingecko id
type CoinPricer interface {
	GetPrice(c ctx.Ctx, id string) (decimal.Decimal, error)
}

type handler struct {
	price price.UseCase
	coin  CoinPricer
}

func New(e *echo.Echo, pu price.UseCase, coin CoinPricer) {
	h := &handler{
		price: pu,
		coin:  coin,
	}

	g := e.Group("/prices")
	g.POST("", h.priceTokens)
	g.GET("/native", h.nativeUSD)
	g.GET("/coin/:coinId", h.getCoin, middleware.CacheHttp(1*time.Minute))
}

func (h *handler) priceTokens(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ChainId   domain.ChainId   `json:"chainId" validate:"required"`
		Addresses []domain.Address `json:"addresses" validate:"max=200"`
	}{}
	if err := delivery.BindAndValidate(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	prices, err := h.price.PriceTokens(ctx, p.ChainId, p.Addresses)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, prices)
}

func (h *handler) nativeUSD(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		ChainId domain.ChainId `query:"chainId" validate:"required"`
	}{}
	if err := delivery.BindAndValidate(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	usd, err := h.price.NativeUSD(ctx, p.ChainId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, map[string]float64{"usd": usd})
}

func (h *handler) getCoin(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		CoinId string `param:"coinId" validate:"required"`
	}{}
	if err := delivery.BindAndValidate(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	val, err := h.coin.GetPrice(ctx, p.CoinId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, val)
}
