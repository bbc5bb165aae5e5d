package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/delivery"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/token"
)

type handler struct {
	discovery token.DiscoveryUseCase
}

func New(e *echo.Echo, discovery token.DiscoveryUseCase) {
	h := &handler{
		discovery: discovery,
	}

	g := e.Group("/tokens")
	g.GET("/:owner", h.discover)
	g.POST("/:owner/custom", h.addCustom)
}

// discover accepts an address or an ens name as owner
func (h *handler) discover(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Owner   string         `param:"owner" validate:"required"`
		ChainId domain.ChainId `query:"chainId" validate:"required"`
	}{}
	if err := delivery.BindAndValidate(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.discovery.Discover(ctx, p.ChainId, p.Owner)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) addCustom(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Owner    string         `param:"owner" validate:"required"`
		ChainId  domain.ChainId `json:"chainId" validate:"required"`
		Contract domain.Address `json:"address" validate:"required"`
	}{}
	if err := delivery.BindAndValidate(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	owner, err := h.discovery.ResolveOwner(ctx, p.Owner)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	t, err := h.discovery.AddCustomToken(ctx, p.ChainId, owner, p.Contract)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, t)
}
