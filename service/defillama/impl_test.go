package defillama

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain"
)

func TestGetPrices(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/prices/current/base:0xaaaa,base:0xbbbb", r.URL.Path)
		w.Write([]byte(`{"coins":{"base:0xaaaa":{"price":0.42,"symbol":"AAA","decimals":18,"confidence":0.99},"base:0xbbbb":{"symbol":"BBB"}}}`))
	}))
	defer srv.Close()

	c := NewClient(&ClientCfg{BaseUrl: srv.URL})
	res, err := c.GetPrices(bCtx.Background(), "base", []domain.Address{"0xAAAA", "0xaaaa", "0xbbbb", ""})
	req.NoError(err)
	req.Equal(map[domain.Address]float64{"0xaaaa": 0.42}, res)
}

func TestGetPricesEmpty(t *testing.T) {
	req := require.New(t)
	c := NewClient(&ClientCfg{BaseUrl: "http://127.0.0.1:1"})
	res, err := c.GetPrices(bCtx.Background(), "base", nil)
	req.NoError(err)
	req.Empty(res)
}

func TestGetPricesStatus(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(&ClientCfg{BaseUrl: srv.URL})
	_, err := c.GetPrices(bCtx.Background(), "base", []domain.Address{"0xaaaa"})
	var serr *StatusError
	req.ErrorAs(err, &serr)
	req.Equal(http.StatusNotFound, serr.StatusCode)
}
