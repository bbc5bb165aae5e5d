package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/service/chainlink"
)

type impl struct {
	chainlink chainlink.Chainlink
}

func New(chainlink chainlink.Chainlink) domain.ChainlinkUsacase {
	return &impl{chainlink: chainlink}
}

func (im *impl) GetLatestAnswer(c ctx.Ctx, chainId domain.ChainId, feed domain.Address) (decimal.Decimal, error) {
	if feed.IsEmpty() {
		return decimal.Zero, domain.ErrNoPriceFeed
	}

	answer, err := im.chainlink.GetLatestAnswer(c, chainId, feed)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"feed":    feed,
		}).Error("chainlink.GetLatestAnswer failed")
		return decimal.Zero, err
	}

	return decimal.NewFromBigInt(answer.Value, -int32(answer.Decimals)), nil
}
