package compound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/service/cache/provider"
	"github.com/x-xyz/dustsweep/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type clock struct {
	now uint32
}

func (c *clock) Now() uint32 {
	return c.now
}

type testsuite struct {
	suite.Suite
	clock *clock
	lyr0  provider.Provider
	lyr1  provider.Provider
	im    *impl
}

func (ts *testsuite) SetupTest() {
	ts.clock = &clock{now: 1700000000}
	ts.lyr0 = primitive.NewPrimitive("layer 0", 1, primitive.WithTimer(ts.clock))
	ts.lyr1 = primitive.NewPrimitive("layer 1", 1, primitive.WithTimer(ts.clock))
	ts.im = NewCompound(ts.lyr0, ts.lyr1).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSet() {
	k := "key"
	v := []byte("value")

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Second))
	r0, _, e := ts.lyr0.Get(mockCtx, k)
	ts.NoError(e)
	ts.Equal(v, r0)
	r1, _, e := ts.lyr1.Get(mockCtx, k)
	ts.NoError(e)
	ts.Equal(v, r1)

	ts.clock.now++
	_, _, e = ts.im.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, e)
}

func (ts *testsuite) TestGet() {
	cases := []struct {
		Desc  string
		Key   string
		Val   string
		Err   error
		Cache provider.Provider
	}{
		{
			Desc:  "Success from layer 0",
			Key:   "key 0",
			Val:   "value 0",
			Cache: ts.lyr0,
		},
		{
			Desc:  "Success from layer 1",
			Key:   "key 1",
			Val:   "value 1",
			Cache: ts.lyr1,
		},
		{
			Desc: "Not found",
			Key:  "key 2",
			Err:  provider.ErrNotFound,
		},
	}

	for _, c := range cases {
		if c.Cache != nil {
			ts.NoError(c.Cache.Set(mockCtx, c.Key, []byte(c.Val), 10*time.Second), c.Desc)
		}

		v, _, e := ts.im.Get(mockCtx, c.Key)
		ts.Equal(c.Val, string(v), c.Desc)
		ts.Equal(c.Err, e, c.Desc)
	}
}

func (ts *testsuite) TestBackfill() {
	ts.NoError(ts.lyr1.Set(mockCtx, "key", []byte("value"), 10*time.Second))
	ts.clock.now += 4

	_, _, err := ts.im.Get(mockCtx, "key")
	ts.NoError(err)

	v, ttl, err := ts.lyr0.Get(mockCtx, "key")
	ts.NoError(err)
	ts.Equal("value", string(v))
	ts.Equal(6*time.Second, ttl)
}
