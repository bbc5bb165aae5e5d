package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/delivery"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/history"
	"github.com/x-xyz/dustsweep/middleware"
)

type handler struct {
	history history.UseCase
}

func New(e *echo.Echo, hu history.UseCase) {
	h := &handler{
		history: hu,
	}

	g := e.Group("/history")
	g.GET("/:owner", h.list, middleware.IsValidAddress("owner"))
	g.GET("/:owner/analytics", h.analytics, middleware.IsValidAddress("owner"))
	g.GET("/:owner/archive", h.archive, middleware.IsValidAddress("owner"))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	owner := domain.Address(c.Param("owner"))

	entries, err := h.history.List(ctx, owner)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, entries)
}

func (h *handler) analytics(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	owner := domain.Address(c.Param("owner"))

	res, err := h.history.Analytics(ctx, owner)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

type archiveResp struct {
	Entries []history.Entry `json:"entries"`
	Total   int             `json:"total"`
}

func (h *handler) archive(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Owner  domain.Address `param:"owner"`
		Offset int32          `query:"offset" validate:"gte=0"`
		Limit  int32          `query:"limit" validate:"gte=0"`
	}{}
	if err := delivery.BindAndValidate(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	entries, total, err := h.history.ListArchive(ctx, p.Owner, p.Offset, p.Limit)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, archiveResp{Entries: entries, Total: total})
}
