package coingecko

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&ClientCfg{
		BaseUrl:   srv.URL,
		ApiKey:    "demo-key",
		Timeout:   time.Second,
		BatchSize: 2,
	})
}

func TestGetTokenPrices(t *testing.T) {
	req := require.New(t)
	var calls int32

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		req.Equal("/simple/token_price/base", r.URL.Path)
		req.Equal("demo-key", r.Header.Get("x-cg-demo-api-key"))
		req.Equal("usd,eth", r.URL.Query().Get("vs_currencies"))
		addrs := strings.Split(r.URL.Query().Get("contract_addresses"), ",")
		req.LessOrEqual(len(addrs), 2)
		if n == 1 {
			w.Write([]byte(`{"0xaaaa":{"usd":1.5,"eth":0.0005},"0xbbbb":{"eth":0.001}}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	})

	res, err := c.GetTokenPrices(bCtx.Background(), "base", []domain.Address{"0xAAAA", "0xbbbb", "0xcccc"})
	req.NoError(err)
	req.Equal(int32(2), atomic.LoadInt32(&calls))
	req.Len(res, 2)
	req.Equal(1.5, *res["0xaaaa"].Usd)
	req.Nil(res["0xbbbb"].Usd)
	req.Equal(0.001, *res["0xbbbb"].Eth)
}

func TestGetTokenPricesAllBatchesFail(t *testing.T) {
	req := require.New(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.GetTokenPrices(bCtx.Background(), "base", []domain.Address{"0xaaaa"})
	var serr *StatusError
	req.ErrorAs(err, &serr)
	req.Equal(http.StatusUnauthorized, serr.StatusCode)
}

func TestGetSimplePricesRetriesRateLimit(t *testing.T) {
	req := require.New(t)
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		req.Equal("/simple/price", r.URL.Path)
		req.Equal("ethereum", r.URL.Query().Get("ids"))
		w.Write([]byte(`{"ethereum":{"usd":3000.5}}`))
	})

	res, err := c.GetSimplePrices(bCtx.Background(), []string{"ethereum"})
	req.NoError(err)
	req.Equal(3000.5, res["ethereum"])
	req.Equal(int32(2), atomic.LoadInt32(&calls))

	// cached
	res, err = c.GetSimplePrices(bCtx.Background(), []string{"ethereum"})
	req.NoError(err)
	req.Equal(3000.5, res["ethereum"])
	req.Equal(int32(2), atomic.LoadInt32(&calls))
}

func TestGetPrice(t *testing.T) {
	req := require.New(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/coins/markets", r.URL.Path)
		w.Write([]byte(`[{"id":"aerodrome-finance","symbol":"aero","name":"Aerodrome","current_price":1.25}]`))
	})

	price, err := c.GetPrice(bCtx.Background(), "aerodrome-finance")
	req.NoError(err)
	req.Equal("1.25", price.String())
}

func TestProKeyHeader(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("pro-key", r.Header.Get("x-cg-pro-api-key"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(&ClientCfg{BaseUrl: srv.URL, ApiKey: "pro-key", Pro: true})
	res, err := c.GetSimplePrices(bCtx.Background(), []string{"usd-coin"})
	req.NoError(err)
	req.Empty(res)
}
