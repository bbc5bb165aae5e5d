package chainlink

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/abi"
	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/keys"
	"github.com/x-xyz/dustsweep/service/cache"
	"github.com/x-xyz/dustsweep/service/cache/provider"
	"github.com/x-xyz/dustsweep/service/chain"
)

var ErrStaleAnswer = xerrors.New("non positive feed answer")

type impl struct {
	chainClient chain.Client
	cache       cache.Service
}

func New(chainClient chain.Client, cacheProvider provider.Provider, ttl time.Duration) Chainlink {
	return &impl{
		chainClient: chainClient,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   keys.PfxChainlink,
			Cache: cacheProvider,
		}),
	}
}

func (im *impl) GetLatestAnswer(c ctx.Ctx, chainId domain.ChainId, address domain.Address) (*Answer, error) {
	res := Answer{}
	key := keys.RedisKey(chainId.String(), address.ToLowerStr(), "latest")

	if err := im.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		return im.getLatestAnswer(c, chainId, address)
	}); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("cache.GetByFunc failed")
		return nil, err
	}

	return &res, nil
}

func (im *impl) getLatestAnswer(c ctx.Ctx, chainId domain.ChainId, address domain.Address) (*Answer, error) {
	feedAddr := common.HexToAddress(string(address))

	res, err := im.chainClient.Call(c, int32(chainId), feedAddr, nil, abi.ChainlinkFeedABI, "latestRoundData")
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("chainClient.Call latestRoundData failed")
		return nil, err
	}
	answer := res[1].(*big.Int)
	if answer.Sign() <= 0 {
		return nil, ErrStaleAnswer
	}

	dec, err := im.chainClient.Call(c, int32(chainId), feedAddr, nil, abi.ChainlinkFeedABI, "decimals")
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"address": address,
		}).Error("chainClient.Call decimals failed")
		return nil, err
	}

	return &Answer{Value: answer, Decimals: dec[0].(uint8)}, nil
}
