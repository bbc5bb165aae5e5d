package chainlink

import (
	"math/big"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain"
)

// Answer is a raw feed reading
type Answer struct {
	Value    *big.Int `json:"value"`
	Decimals uint8    `json:"decimals"`
}

type Chainlink interface {
	GetLatestAnswer(c ctx.Ctx, chainId domain.ChainId, feedAddress domain.Address) (*Answer, error)
}
