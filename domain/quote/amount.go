package quote

import (
	"math/big"

	"github.com/x-xyz/dustsweep/base/units"
)

// MinSellAmount is the smallest raw amount worth quoting: 1000 units of a
// 6 decimal token and 10^(decimals-6) for anything with more decimals.
func MinSellAmount(decimals int32) *big.Int {
	if decimals <= 6 {
		exp := decimals - 3
		if exp < 0 {
			exp = 0
		}
		return units.Pow10(exp)
	}
	return units.Pow10(decimals - 6)
}

// ClampSellAmount raises amount to the minimum, the input is not modified
func ClampSellAmount(amount *big.Int, decimals int32) *big.Int {
	min := MinSellAmount(decimals)
	if amount == nil || amount.Cmp(min) < 0 {
		return min
	}
	return new(big.Int).Set(amount)
}

// SlippageBps converts a fraction into basis points, 0.01 is 100
func SlippageBps(slippage float64) int {
	return int(slippage*bpsDenominator + 0.5)
}
