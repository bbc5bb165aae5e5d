package defillama

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/x-xyz/dustsweep/base/backoff"
	bCtx "github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/domain"
)

type client struct {
	client *http.Client
	base   string
	cfg    *ClientCfg
}

func NewClient(cfg *ClientCfg) Client {
	base := cfg.BaseUrl
	if base == "" {
		base = api
	}
	httpClient := cfg.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &client{
		client: httpClient,
		base:   strings.TrimRight(base, "/"),
		cfg:    cfg,
	}
}

// GetPrices returns lowercase address -> usd, addresses without a finite price are absent
func (c *client) GetPrices(ctx bCtx.Ctx, slug string, addrs []domain.Address) (map[domain.Address]float64, error) {
	res := map[domain.Address]float64{}

	seen := map[domain.Address]bool{}
	coinKeys := make([]string, 0, len(addrs))
	for _, a := range addrs {
		l := a.ToLower()
		if l.IsEmpty() || seen[l] {
			continue
		}
		seen[l] = true
		coinKeys = append(coinKeys, fmt.Sprintf("%s:%s", slug, l))
	}
	if len(coinKeys) == 0 {
		return res, nil
	}

	u := fmt.Sprintf("%s/prices/current/%s", c.base, strings.Join(coinKeys, ","))
	body, err := backoff.Retry(ctx, backoff.DefaultPolicy, func() ([]byte, error) {
		return c.get(ctx, u)
	})
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "slug": slug}).Error("defillama prices failed")
		return nil, err
	}

	resp := currentResp{}
	if err := json.Unmarshal(body, &resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	for key, coin := range resp.Coins {
		if coin.Price == nil || math.IsNaN(*coin.Price) || math.IsInf(*coin.Price, 0) {
			continue
		}
		addr := strings.TrimPrefix(strings.ToLower(key), strings.ToLower(slug)+":")
		res[domain.Address(addr)] = *coin.Price
	}
	return res, nil
}

func (c *client) get(ctx bCtx.Ctx, u string) ([]byte, error) {
	if c.cfg.Timeout > 0 {
		var cancel func()
		ctx, cancel = bCtx.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		serr := &StatusError{StatusCode: resp.StatusCode}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, backoff.Transient(serr)
		}
		return nil, serr
	}
	return io.ReadAll(resp.Body)
}
