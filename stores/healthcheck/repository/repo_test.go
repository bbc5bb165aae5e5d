package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redigo "github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/metrics"
	"github.com/x-xyz/dustsweep/domain"
	domainMocks "github.com/x-xyz/dustsweep/domain/mocks"
	chainMocks "github.com/x-xyz/dustsweep/service/chain/mocks"
	"github.com/x-xyz/dustsweep/service/redis"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context, *readpref.ReadPref) error { return p.err }

func newRedis(t *testing.T) (redis.Service, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	pool := &redigo.Pool{
		Dial: func() (redigo.Conn, error) {
			return redigo.Dial("tcp", addr)
		},
	}
	return redis.New("test", metrics.New("redis"), &redis.Pools{Src: pool}), mr
}

func TestPingDB(t *testing.T) {
	req := require.New(t)
	r, mr := newRedis(t)

	res := New(fakePinger{}, r, nil, nil).PingDB(ctx.Background())
	req.NoError(res["mongo"])
	req.NoError(res["redis"])
	req.True(mr.Exists("healthcheck:testset"))

	errDown := errors.New("no primary")
	res = New(fakePinger{err: errDown}, r, nil, nil).PingDB(ctx.Background())
	req.ErrorIs(res["mongo"], errDown)

	res = New(nil, r, nil, nil).PingDB(ctx.Background())
	_, ok := res["mongo"]
	req.False(ok)

	mr.Close()
	res = New(nil, r, nil, nil).PingDB(ctx.Background())
	req.Error(res["redis"])
}

func TestPingChains(t *testing.T) {
	req := require.New(t)
	chainSvc := &chainMocks.Client{}
	eth := &domainMocks.EthClientRepo{}
	chainSvc.On("Eth", int32(8453)).Return(eth, nil)
	chainSvc.On("Eth", int32(1)).Return(nil, domain.ErrUnsupportedChain)
	eth.On("BlockNumber", mock.Anything).Return(uint64(100), nil)

	res := New(nil, nil, chainSvc, []domain.ChainId{1, 8453}).PingChains(ctx.Background())
	req.NoError(res[8453])
	req.ErrorIs(res[1], domain.ErrUnsupportedChain)
}
