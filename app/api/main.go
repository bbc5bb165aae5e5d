package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"

	"github.com/x-xyz/dustsweep/app/bootstrap"
	"github.com/x-xyz/dustsweep/base/config"
	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/base/metrics"
	bValidator "github.com/x-xyz/dustsweep/base/validator"
	mmiddleware "github.com/x-xyz/dustsweep/middleware"
	dust_delivery "github.com/x-xyz/dustsweep/stores/dust/delivery/http"
	ens_delivery "github.com/x-xyz/dustsweep/stores/ens/delivery/http"
	hc_delivery "github.com/x-xyz/dustsweep/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/dustsweep/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/dustsweep/stores/healthcheck/usecase"
	history_delivery "github.com/x-xyz/dustsweep/stores/history/delivery/http"
	price_delivery "github.com/x-xyz/dustsweep/stores/price/delivery/http"
	quote_delivery "github.com/x-xyz/dustsweep/stores/quote/delivery/http"
	swap_delivery "github.com/x-xyz/dustsweep/stores/swap/delivery/ws"
	token_delivery "github.com/x-xyz/dustsweep/stores/token/delivery/http"
)

func main() {
	configPath := pflag.String("config", config.DefaultPath, "path to the yaml config")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Log().WithField("err", err).Panic("load config failed")
	}
	if err := log.Init(cfg.Debug, cfg.LogLevel); err != nil {
		log.Log().WithField("err", err).Panic("init logger failed")
	}
	if cfg.Debug {
		log.Log().Info("Service RUN on DEBUG mode")
	}
	metrics.Setup(metrics.Tags{Env: cfg.Env, App: cfg.App, Host: cfg.Datadog.Host})

	context := ctx.Background()
	services, err := bootstrap.Build(context, cfg, true)
	if err != nil {
		context.WithField("err", err).Panic("bootstrap failed")
	}
	defer services.Close(context)

	// init echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Skipper: func(c echo.Context) bool { return c.Path() == "/swap/ws" },
		Timeout: cfg.Server.Timeout,
	}))
	validate := validator.New()
	e.Validator = bValidator.NewCustomValidator(validate)

	mmiddleware.SetupCache(services.Redis)

	var mongoPinger hc_repo.MongoPinger
	if services.Mongo != nil {
		mongoPinger = services.Mongo
	}
	hcRepo := hc_repo.New(mongoPinger, services.Redis, services.Chain, services.Networks.Ids())

	hc_delivery.New(e, hc_usecase.New(hcRepo))
	token_delivery.New(e, services.Discovery)
	price_delivery.New(e, services.Price, services.CoinGecko)
	dust_delivery.New(e, services.Dust)
	quote_delivery.New(e, services.Quote)
	history_delivery.New(e, services.History)
	swap_delivery.New(e, services.Orchestrator, validate)
	if services.Ens != nil {
		ens_delivery.New(e, services.Ens)
	}

	go func() {
		if err := e.Start(cfg.Server.Address); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
