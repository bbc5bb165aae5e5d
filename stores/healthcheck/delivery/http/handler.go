package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/dustsweep/base/ctx"
	hcdomain "github.com/x-xyz/dustsweep/domain/healthcheck"
)

type healthCheckHandler struct {
	healthCheck hcdomain.UseCase
}

// New will initialize the healthcheck/ resources endpoint
func New(e *echo.Echo, us hcdomain.UseCase) {
	handler := &healthCheckHandler{
		healthCheck: us,
	}
	g := e.Group("/health")
	g.GET("", handler.check)
}

func (h *healthCheckHandler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	report := h.healthCheck.Check(context)
	if !report.Healthy {
		return c.JSON(http.StatusServiceUnavailable, report)
	}
	return c.JSON(http.StatusOK, report)
}
