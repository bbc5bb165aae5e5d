package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/delivery"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/dust"
	"github.com/x-xyz/dustsweep/domain/token"
)

type handler struct {
	dust dust.UseCase
}

func New(e *echo.Echo, du dust.UseCase) {
	h := &handler{
		dust: du,
	}

	g := e.Group("/dust")
	g.POST("/classify", h.classify)
	g.GET("/:owner", h.scan)
}

func thresholds(ceiling *float64) dust.Thresholds {
	th := dust.DefaultThresholds
	if ceiling != nil {
		th.UsdCeiling = *ceiling
	}
	return th
}

func (h *handler) classify(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Tokens     []token.Token `json:"tokens" validate:"required"`
		UsdCeiling *float64      `json:"usdCeiling" validate:"omitempty,gte=0"`
	}{}
	if err := delivery.BindAndValidate(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	report, err := h.dust.Reclassify(ctx, p.Tokens, thresholds(p.UsdCeiling))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, report)
}

func (h *handler) scan(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Owner      string         `param:"owner" validate:"required"`
		ChainId    domain.ChainId `query:"chainId" validate:"required"`
		UsdCeiling *float64       `query:"usdCeiling" validate:"omitempty,gte=0"`
	}{}
	if err := delivery.BindAndValidate(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	report, err := h.dust.Scan(ctx, p.ChainId, p.Owner, thresholds(p.UsdCeiling))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, report)
}
