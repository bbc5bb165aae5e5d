package dust

import (
	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/token"
)

const (
	baseTxGas      uint64 = 21000
	perTokenGas    uint64 = 65000
	DefaultCeiling        = 10.0
)

type Thresholds struct {
	UsdCeiling float64 `json:"usdCeiling" query:"usdCeiling" validate:"gte=0"`
}

var DefaultThresholds = Thresholds{UsdCeiling: DefaultCeiling}

type Classification struct {
	Dust    []token.Token `json:"dust"`
	NonDust []token.Token `json:"nonDust"`
}

type Summary struct {
	TotalTokens   int     `json:"totalTokens"`
	DustTokens    int     `json:"dustTokens"`
	TotalValueUSD float64 `json:"totalValueUsd"`
	DustValueUSD  float64 `json:"dustValueUsd"`
	EstimatedGas  uint64  `json:"estimatedGas"`
}

func IsDust(t token.Token, th Thresholds) bool {
	return t.ValueUSD <= th.UsdCeiling
}

// Classify copies tokens into the two partitions, input order is kept and the input is not touched
func Classify(tokens []token.Token, th Thresholds) Classification {
	res := Classification{
		Dust:    []token.Token{},
		NonDust: []token.Token{},
	}
	for _, t := range tokens {
		t.IsDust = IsDust(t, th)
		if t.IsDust {
			res.Dust = append(res.Dust, t)
		} else {
			res.NonDust = append(res.NonDust, t)
		}
	}
	return res
}

func Summarize(tokens []token.Token, th Thresholds) Summary {
	s := Summary{TotalTokens: len(tokens)}
	for _, t := range tokens {
		s.TotalValueUSD += t.ValueUSD
		if IsDust(t, th) {
			s.DustTokens++
			s.DustValueUSD += t.ValueUSD
		}
	}
	s.EstimatedGas = baseTxGas + perTokenGas*uint64(s.DustTokens)
	return s
}

type Report struct {
	ChainId    domain.ChainId `json:"chainId"`
	Owner      domain.Address `json:"owner"`
	Thresholds Thresholds     `json:"thresholds"`
	Classification
	Summary Summary `json:"summary"`
}

type UseCase interface {
	// Scan runs discovery, pricing and classification for owner
	Scan(c ctx.Ctx, chainId domain.ChainId, owner string, th Thresholds) (*Report, error)
	// Reclassify reruns classification over tokens the caller already has
	Reclassify(c ctx.Ctx, tokens []token.Token, th Thresholds) (*Report, error)
}
