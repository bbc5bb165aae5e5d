package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/x-xyz/dustsweep/app/bootstrap"
	"github.com/x-xyz/dustsweep/base/config"
	"github.com/x-xyz/dustsweep/base/ctx"
	baseeth "github.com/x-xyz/dustsweep/base/ethereum"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/base/metrics"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/dust"
	"github.com/x-xyz/dustsweep/domain/swap"
	"github.com/x-xyz/dustsweep/domain/token"
	"github.com/x-xyz/dustsweep/stores/swap/signer"
)

type options struct {
	configPath string
	chainId    int32
	target     string
	ceiling    float64
	slippage   float64
	maxTokens  int
	dryRun     bool
}

func parseFlags() options {
	o := options{}
	pflag.StringVar(&o.configPath, "config", config.DefaultPath, "path to the yaml config")
	pflag.Int32Var(&o.chainId, "chain", 8453, "chain id to sweep")
	pflag.StringVar(&o.target, "target", "", "token to receive, defaults to the chain's usd stable")
	pflag.Float64Var(&o.ceiling, "ceiling", dust.DefaultCeiling, "usd value at or below which a holding is dust")
	pflag.Float64Var(&o.slippage, "slippage", 0, "slippage fraction, 0 uses the configured default")
	pflag.IntVar(&o.maxTokens, "max", 0, "sweep at most this many tokens, 0 means all")
	pflag.BoolVar(&o.dryRun, "dry-run", false, "only scan and print the dust")
	pflag.Parse()
	return o
}

func main() {
	o := parseFlags()

	cfg, err := config.Load(o.configPath)
	if err != nil {
		log.Log().WithField("err", err).Panic("load config failed")
	}
	if err := log.Init(cfg.Debug, cfg.LogLevel); err != nil {
		log.Log().WithField("err", err).Panic("init logger failed")
	}
	metrics.Setup(metrics.Tags{Env: cfg.Env, App: "sweeper", Host: cfg.Datadog.Host})

	context, cancel := ctx.WithCancel(ctx.Background())
	defer cancel()
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		sig := <-quit
		context.WithField("signal", sig).Warn("received signal, stopping after the current step")
		cancel()
	}()

	rawKey := os.Getenv(cfg.Signer.PrivateKeyEnv)
	if rawKey == "" {
		context.WithField("env", cfg.Signer.PrivateKeyEnv).Panic("signer key is not set")
	}
	key, owner, err := baseeth.KeyFromHex(rawKey)
	if err != nil {
		context.WithField("err", err).Panic("bad signer key")
	}
	context.WithField("owner", owner.Hex()).Info("signer loaded")

	services, err := bootstrap.Build(context, cfg, false)
	if err != nil {
		context.WithField("err", err).Panic("bootstrap failed")
	}
	defer services.Close(context)

	wallet := signer.NewKeyed(key, services.Chain)
	chainId := domain.ChainId(o.chainId)
	network, err := services.Networks.Get(chainId)
	if err != nil {
		context.WithField("chainId", chainId).Panic("chain is not configured")
	}

	target := swap.Target{Address: network.UsdStable, Symbol: "USD", Decimals: network.UsdStableDecimals}
	if o.target != "" {
		target = swap.Target{Address: domain.Address(o.target).ToLower(), Decimals: token.DefaultDecimals}
		if meta, err := services.Erc20.Metadata(context, chainId, target.Address); err == nil && meta.Decimals != nil {
			target.Decimals = *meta.Decimals
			if meta.Symbol != nil {
				target.Symbol = *meta.Symbol
			}
		}
	}

	report, err := services.Dust.Scan(context, chainId, string(wallet.Address()), dust.Thresholds{UsdCeiling: o.ceiling})
	if err != nil {
		context.WithField("err", err).Panic("dust scan failed")
	}
	tokens := sweepable(report.Dust, target.Address, o.maxTokens)

	fmt.Printf("%s on %s: %d tokens, %d dust worth $%.2f\n",
		wallet.Address(), network.Name, report.Summary.TotalTokens, report.Summary.DustTokens, report.Summary.DustValueUSD)
	for _, t := range tokens {
		fmt.Printf("  %-10s %-42s %s ($%.4f)\n", t.Symbol, t.Address, t.FormattedBalance.String(), t.ValueUSD)
	}
	if o.dryRun || len(tokens) == 0 {
		return
	}

	res, err := services.Orchestrator.ExecuteBatch(context, swap.BatchRequest{
		ChainId:  chainId,
		Owner:    wallet.Address(),
		Tokens:   tokens,
		Target:   target,
		Slippage: o.slippage,
	}, wallet, printStatus)
	if err != nil {
		context.WithField("err", err).Panic("batch aborted")
	}

	fmt.Printf("done: %d swapped, %d failed, received %s %s ($%.2f)\n",
		len(res.Succeeded), len(res.Failed), res.TotalOutputFormatted.String(), target.Symbol, res.TotalValueUSD)
}

// sweepable drops the target itself and caps the batch size
func sweepable(tokens []token.Token, target domain.Address, max int) []token.Token {
	res := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Address.Equals(target) || !t.HasBalance() {
			continue
		}
		res = append(res, t)
		if max > 0 && len(res) == max {
			break
		}
	}
	return res
}

func printStatus(st swap.TokenState) {
	line := fmt.Sprintf("  [%-8s] %s", st.Status, st.Token.Symbol)
	switch {
	case st.Reason != "":
		line += " " + st.Reason
	case st.TxHash != "":
		line += " " + string(st.TxHash)
	}
	fmt.Println(line)
}
