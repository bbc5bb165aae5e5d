package domain

import (
	"github.com/shopspring/decimal"
	"github.com/x-xyz/dustsweep/base/ctx"
)

type ChainlinkUsacase interface {
	// GetLatestAnswer returns the feed answer scaled by the feed decimals
	GetLatestAnswer(c ctx.Ctx, chain ChainId, feed Address) (decimal.Decimal, error)
}
