package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/domain"
	hcdomain "github.com/x-xyz/dustsweep/domain/healthcheck"
	"github.com/x-xyz/dustsweep/domain/keys"
	"github.com/x-xyz/dustsweep/service/chain"
	"github.com/x-xyz/dustsweep/service/redis"
)

const pingTimeout = 2 * time.Second

// MongoPinger is satisfied by *mongoclient.Client
type MongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type impl struct {
	mgoClient    MongoPinger
	redisCache   redis.Service
	chainService chain.Client
	chainIds     []domain.ChainId
}

// New builds the health repo, a nil mgoClient means the archive is disabled
func New(
	mgoClient MongoPinger,
	redisCache redis.Service,
	chainService chain.Client,
	chainIds []domain.ChainId,
) hcdomain.Repo {
	return &impl{
		mgoClient:    mgoClient,
		redisCache:   redisCache,
		chainService: chainService,
		chainIds:     chainIds,
	}
}

func (im *impl) PingDB(c ctx.Ctx) map[string]error {
	tctx, cancel := ctx.WithTimeout(c, pingTimeout)
	defer cancel()

	res := map[string]error{}
	if im.mgoClient != nil {
		res["mongo"] = im.mgoClient.Ping(tctx, readpref.Primary())
		if res["mongo"] != nil {
			c.WithField("err", res["mongo"]).Error("ping mongo error")
		}
	}

	res["redis"] = im.redisCache.Set(tctx, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second)
	if res["redis"] != nil {
		c.WithField("err", res["redis"]).Error("test redis set failed")
	}
	return res
}

func (im *impl) PingChains(c ctx.Ctx) map[domain.ChainId]error {
	res := make(map[domain.ChainId]error, len(im.chainIds))
	for _, id := range im.chainIds {
		res[id] = im.pingChain(c, id)
	}
	return res
}

func (im *impl) pingChain(c ctx.Ctx, id domain.ChainId) error {
	client, err := im.chainService.Eth(int32(id))
	if err != nil {
		return err
	}
	tctx, cancel := ctx.WithTimeout(c, pingTimeout)
	defer cancel()
	if _, err := client.BlockNumber(tctx); err != nil {
		c.WithFields(log.Fields{"err": err, "chainId": id}).Warn("rpc BlockNumber failed")
		return err
	}
	return nil
}
