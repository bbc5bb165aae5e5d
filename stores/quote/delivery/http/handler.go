package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/delivery"
	"github.com/x-xyz/dustsweep/base/units"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/quote"
)

type handler struct {
	quote quote.UseCase
}

func New(e *echo.Echo, qu quote.UseCase) {
	h := &handler{
		quote: qu,
	}

	g := e.Group("/quote")
	g.GET("", h.getQuote)
	g.GET("/liquidity", h.checkLiquidity)
	g.GET("/notional", h.estimateNotional)
}

type quoteParams struct {
	ChainId      domain.ChainId `query:"chainId" validate:"required"`
	SellToken    domain.Address `query:"sellToken" validate:"required"`
	BuyToken     domain.Address `query:"buyToken" validate:"required"`
	SellAmount   string         `query:"sellAmount" validate:"required"`
	SellDecimals int32          `query:"sellDecimals" validate:"gte=0,lte=77"`
	Taker        domain.Address `query:"taker"`
	Recipient    domain.Address `query:"recipient"`
	Slippage     float64        `query:"slippagePercentage" validate:"gte=0,lt=1"`
	DisableFee   bool           `query:"disableFee"`
}

type notionalResp struct {
	// UsdNotional is null when no usd route exists for the sell token
	UsdNotional *float64 `json:"usdNotional"`
}

type quoteResp struct {
	Quote *quote.Quote        `json:"quote"`
	Fee   *quote.FeeBreakdown `json:"fee"`
}

func bindRequest(c echo.Context) (quote.Request, error) {
	p := quoteParams{}
	if err := delivery.BindAndValidate(c, &p); err != nil {
		return quote.Request{}, err
	}
	amount, err := units.ParseBig(p.SellAmount)
	if err != nil {
		return quote.Request{}, xerrors.Errorf("sellAmount: %v: %w", err, domain.ErrBadParamInput)
	}
	return quote.Request{
		ChainId:      p.ChainId,
		SellToken:    p.SellToken,
		BuyToken:     p.BuyToken,
		SellAmount:   amount,
		SellDecimals: p.SellDecimals,
		Taker:        p.Taker,
		Recipient:    p.Recipient,
		Slippage:     p.Slippage,
		DisableFee:   p.DisableFee,
	}, nil
}

func (h *handler) getQuote(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req, err := bindRequest(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	q, fee, err := h.quote.GetQuote(ctx, req)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, quoteResp{Quote: q, Fee: fee})
}

func (h *handler) checkLiquidity(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req, err := bindRequest(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	status, err := h.quote.CheckLiquidity(ctx, req)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, status)
}

func (h *handler) estimateNotional(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	req, err := bindRequest(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	v, err := h.quote.EstimateNotional(ctx, req)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, notionalResp{UsdNotional: v})
}
