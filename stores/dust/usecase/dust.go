package usecase

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/base/metrics"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/dust"
	"github.com/x-xyz/dustsweep/domain/price"
	"github.com/x-xyz/dustsweep/domain/token"
)

type impl struct {
	discovery token.DiscoveryUseCase
	price     price.UseCase
	metrics   metrics.Service
}

func New(discovery token.DiscoveryUseCase, price price.UseCase) dust.UseCase {
	return &impl{
		discovery: discovery,
		price:     price,
		metrics:   metrics.New("dust"),
	}
}

func validate(th dust.Thresholds) error {
	if th.UsdCeiling < 0 {
		return xerrors.Errorf("usd ceiling %v: %w", th.UsdCeiling, domain.ErrBadParamInput)
	}
	return nil
}

func (im *impl) Scan(c ctx.Ctx, chainId domain.ChainId, owner string, th dust.Thresholds) (*dust.Report, error) {
	if err := validate(th); err != nil {
		return nil, err
	}

	found, err := im.discovery.Discover(c, chainId, owner)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "owner": owner}).Error("discovery.Discover failed")
		return nil, err
	}

	addrs := make([]domain.Address, 0, len(found.Tokens))
	for _, t := range found.Tokens {
		addrs = append(addrs, t.Address)
	}
	prices, err := im.price.PriceTokens(c, chainId, addrs)
	if err != nil {
		// unpriced tokens are worth 0 and still classify
		c.WithFields(log.Fields{"err": err, "owner": found.Owner}).Warn("price.PriceTokens failed")
		prices = price.Prices{}
	}

	tokens := make([]token.Token, len(found.Tokens))
	for i, t := range found.Tokens {
		t.ApplyPrice(prices.Get(t.Address))
		tokens[i] = t
	}

	report := makeReport(chainId, found.Owner, tokens, th)
	im.metrics.BumpHistogram("scan.tokens", float64(report.Summary.TotalTokens))
	im.metrics.BumpHistogram("scan.dust", float64(report.Summary.DustTokens))
	return report, nil
}

func (im *impl) Reclassify(c ctx.Ctx, tokens []token.Token, th dust.Thresholds) (*dust.Report, error) {
	if err := validate(th); err != nil {
		return nil, err
	}
	var (
		chainId domain.ChainId
		owner   domain.Address
	)
	if len(tokens) > 0 {
		chainId = tokens[0].ChainId
	}
	return makeReport(chainId, owner, tokens, th), nil
}

func makeReport(chainId domain.ChainId, owner domain.Address, tokens []token.Token, th dust.Thresholds) *dust.Report {
	return &dust.Report{
		ChainId:        chainId,
		Owner:          owner,
		Thresholds:     th,
		Classification: dust.Classify(tokens, th),
		Summary:        dust.Summarize(tokens, th),
	}
}
