package quote

import (
	"math/big"
	"sort"

	"github.com/x-xyz/dustsweep/domain"
)

const bpsDenominator = 10000

// FeeTier matches notionals below MaxUsd, or up to and including it when Inclusive is set.
// A zero MaxUsd matches everything.
type FeeTier struct {
	MaxUsd    float64 `json:"maxUsd"`
	Inclusive bool    `json:"inclusive"`
	Bps       int     `json:"bps"`
}

func (t FeeTier) matches(usd float64) bool {
	if t.MaxUsd == 0 {
		return true
	}
	if t.Inclusive {
		return usd <= t.MaxUsd
	}
	return usd < t.MaxUsd
}

// DefaultTiers charges small swaps a higher rate so the absolute fee stays meaningful
var DefaultTiers = []FeeTier{
	{MaxUsd: 100, Bps: 100},
	{MaxUsd: 1000, Inclusive: true, Bps: 50},
	{Bps: 30},
}

const DefaultFeeBps = 50

type FeePolicy struct {
	Enabled    bool
	Recipient  domain.Address
	DefaultBps int
	Tiers      []FeeTier
}

// NewFeePolicy sorts tiers ascending with the unbounded tier last
func NewFeePolicy(enabled bool, recipient domain.Address, defaultBps int, tiers []FeeTier) FeePolicy {
	if len(tiers) == 0 {
		tiers = DefaultTiers
	}
	sorted := make([]FeeTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].MaxUsd, sorted[j].MaxUsd
		if a == 0 || b == 0 {
			return b == 0 && a != 0
		}
		return a < b
	})
	return FeePolicy{
		Enabled:    enabled,
		Recipient:  recipient,
		DefaultBps: defaultBps,
		Tiers:      sorted,
	}
}

// Select picks the bps for a usd notional, nil means the notional could not be estimated
func (p FeePolicy) Select(notional *float64) int {
	if notional == nil || *notional < 0 {
		return p.DefaultBps
	}
	for _, t := range p.Tiers {
		if t.matches(*notional) {
			return t.Bps
		}
	}
	return p.DefaultBps
}

// Validate fails when fees are on but nobody would receive them
func (p FeePolicy) Validate() error {
	if p.Enabled && p.Recipient.IsEmpty() {
		return domain.ErrMissingFeeRecipient
	}
	return nil
}

// FeeAmount is buyAmount * bps / 10000
func FeeAmount(buyAmount *big.Int, bps int) *big.Int {
	if buyAmount == nil || bps <= 0 {
		return big.NewInt(0)
	}
	res := new(big.Int).Mul(buyAmount, big.NewInt(int64(bps)))
	return res.Quo(res, big.NewInt(bpsDenominator))
}
