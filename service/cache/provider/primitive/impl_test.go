package primitive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/service/cache/provider"
)

var (
	mockCtx = ctx.Background()
)

type fakeTimer struct {
	now uint32
}

func (f *fakeTimer) Now() uint32 {
	return f.now
}

type testsuite struct {
	suite.Suite
	timer *fakeTimer
	im    *impl
}

func (ts *testsuite) SetupTest() {
	ts.timer = &fakeTimer{now: 1700000000}
	ts.im = NewPrimitive("test", 1, WithTimer(ts.timer)).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSetExpires() {
	k := "key"
	v := []byte("value")

	ts.NoError(ts.im.Set(mockCtx, k, v, 10*time.Second))

	r, ttl, err := ts.im.Get(mockCtx, k)
	ts.NoError(err)
	ts.Equal(v, r)
	ts.Equal(10*time.Second, ttl)

	ts.timer.now += 4
	_, ttl, err = ts.im.Get(mockCtx, k)
	ts.NoError(err)
	ts.Equal(6*time.Second, ttl)

	ts.timer.now += 6
	_, _, err = ts.im.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestGet() {
	cases := []struct {
		Desc string
		Key  string
		Val  string
		TTL  time.Duration
		Err  error
	}{
		{
			Desc: "Success",
			Key:  "key",
			Val:  "value",
			TTL:  time.Minute,
		},
		{
			Desc: "No expiry",
			Key:  "forever",
			Val:  "value",
		},
		{
			Desc: "Not found",
			Key:  "missing",
			Err:  provider.ErrNotFound,
		},
	}

	for _, c := range cases {
		if len(c.Val) > 0 {
			ts.NoError(ts.im.Set(mockCtx, c.Key, []byte(c.Val), c.TTL), c.Desc)
		}

		v, ttl, e := ts.im.Get(mockCtx, c.Key)
		ts.Equal(c.Val, string(v), c.Desc)
		ts.Equal(c.TTL, ttl, c.Desc)
		ts.Equal(c.Err, e, c.Desc)
	}
}

func (ts *testsuite) TestDel() {
	ts.NoError(ts.im.Set(mockCtx, "key", []byte("value"), time.Minute))
	ts.NoError(ts.im.Del(mockCtx, "key"))
	_, _, err := ts.im.Get(mockCtx, "key")
	ts.Equal(provider.ErrNotFound, err)
}
