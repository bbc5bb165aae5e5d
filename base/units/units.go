// Package units converts between raw token integers and human decimals.
package units

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"
)

var ErrInvalidAmount = xerrors.New("invalid amount")

// Format shifts raw by decimals, 1500000 with 6 decimals is 1.5
func Format(raw *big.Int, decimals int32) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -decimals)
}

// Parse is the inverse of Format, extra fractional digits are truncated
func Parse(amount string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, xerrors.Errorf("parse %q: %w", amount, ErrInvalidAmount)
	}
	if d.IsNegative() {
		return nil, xerrors.Errorf("negative %q: %w", amount, ErrInvalidAmount)
	}
	return d.Shift(decimals).Truncate(0).BigInt(), nil
}

// ParseBig reads a base 10 or 0x-prefixed hex integer
func ParseBig(s string) (*big.Int, error) {
	if s == "" {
		return nil, xerrors.Errorf("empty integer: %w", ErrInvalidAmount)
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, xerrors.Errorf("parse %q: %w", s, ErrInvalidAmount)
	}
	return n, nil
}

// Pow10 returns 10^n as a big.Int
func Pow10(n int32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// MulDiv computes a*b/c with integer truncation
func MulDiv(a *big.Int, b, c int64) *big.Int {
	res := new(big.Int).Mul(a, big.NewInt(b))
	return res.Quo(res, big.NewInt(c))
}
