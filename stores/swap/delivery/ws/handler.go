// Package ws runs batch swaps over a websocket, the connected browser wallet signs every transaction.
package ws

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/domain/swap"
)

type handler struct {
	orchestrator swap.Orchestrator
	validate     *validator.Validate
	upgrader     websocket.Upgrader
}

func New(e *echo.Echo, orchestrator swap.Orchestrator, validate *validator.Validate) {
	h := &handler{
		orchestrator: orchestrator,
		validate:     validate,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	e.GET("/swap/ws", h.serve)
}

// serve blocks until the client goes away
func (h *handler) serve(c echo.Context) error {
	bCtx := c.Get("ctx").(ctx.Ctx)

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		bCtx.WithFields(log.Fields{"err": err}).Warn("websocket upgrade failed")
		return nil
	}

	s := newSession(bCtx, conn, h.orchestrator, h.validate)
	s.run()
	return nil
}
