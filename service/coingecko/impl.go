package coingecko

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/dustsweep/base/backoff"
	bCtx "github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/keys"
	"github.com/x-xyz/dustsweep/domain/price"
	"github.com/x-xyz/dustsweep/service/cache"
	"github.com/x-xyz/dustsweep/service/cache/provider/primitive"
)

func NewClient(cfg *ClientCfg) Client {
	base := cfg.BaseUrl
	if base == "" {
		base = publicApi
		if cfg.Pro {
			base = proApi
		}
	}
	keyHeader := "x-cg-demo-api-key"
	if cfg.Pro {
		keyHeader = "x-cg-pro-api-key"
	}
	httpClient := cfg.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	cacheProvider := cfg.Cache
	if cacheProvider == nil {
		cacheProvider = primitive.NewPrimitive(keys.PfxCoinGecko, 4)
	}
	ttl := cfg.CacheTtl
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &client{
		client:    httpClient,
		base:      strings.TrimRight(base, "/"),
		apiKey:    cfg.ApiKey,
		keyHeader: keyHeader,
		cfg:       cfg,
		batchSize: batch,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   ttl,
			Pfx:   keys.PfxCoinGecko,
			Cache: cacheProvider,
		}),
	}
}

type client struct {
	client    *http.Client
	base      string
	apiKey    string
	keyHeader string
	cfg       *ClientCfg
	batchSize int
	cache     cache.Service
}

func (c *client) GetPrice(ctx bCtx.Ctx, id string) (decimal.Decimal, error) {
	key := keys.RedisKey("markets", id)
	var price decimal.Decimal
	if err := c.cache.GetByFunc(ctx, key, &price, func() (interface{}, error) {
		return c.getPrice(ctx, id)
	}); err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

func (c *client) getPrice(ctx bCtx.Ctx, id string) (*decimal.Decimal, error) {
	params := url.Values{
		"vs_currency": {"usd"},
		"ids":         {id},
	}
	resp := Markets{}
	if err := c.get(ctx, "/coins/markets", params, &resp); err != nil {
		return nil, err
	}
	if len(resp) != 1 {
		ctx.WithField("id", id).Warn(ErrMarketsLen)
		return nil, ErrMarketsLen
	}
	price := decimal.NewFromFloat(resp[0].CurrentPrice)
	return &price, nil
}

func (c *client) GetSimplePrices(ctx bCtx.Ctx, ids []string) (map[string]float64, error) {
	res := map[string]float64{}
	if len(ids) == 0 {
		return res, nil
	}
	sorted := append([]string{}, ids...)
	sort.Strings(sorted)

	key := keys.RedisKey("simple", keys.SetKey(sorted...))
	if err := c.cache.GetByFunc(ctx, key, &res, func() (interface{}, error) {
		params := url.Values{
			"ids":           {strings.Join(sorted, ",")},
			"vs_currencies": {"usd"},
		}
		resp := simplePrice{}
		if err := c.get(ctx, "/simple/price", params, &resp); err != nil {
			return nil, err
		}
		out := map[string]float64{}
		for id, row := range resp {
			if usd := row["usd"]; usd != nil {
				out[id] = *usd
			}
		}
		return &out, nil
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// GetTokenPrices queries in batches, a failed batch only loses its own addresses
func (c *client) GetTokenPrices(ctx bCtx.Ctx, platform string, addrs []domain.Address) (map[domain.Address]price.TokenQuote, error) {
	res := map[domain.Address]price.TokenQuote{}
	if len(addrs) == 0 {
		return res, nil
	}

	var lastErr error
	failed := 0
	batches := 0
	for start := 0; start < len(addrs); start += c.batchSize {
		end := start + c.batchSize
		if end > len(addrs) {
			end = len(addrs)
		}
		batches++

		batch := make([]string, 0, end-start)
		for _, a := range addrs[start:end] {
			batch = append(batch, a.ToLowerStr())
		}
		params := url.Values{
			"contract_addresses": {strings.Join(batch, ",")},
			"vs_currencies":      {"usd,eth"},
		}
		resp := simplePrice{}
		if err := c.get(ctx, "/simple/token_price/"+platform, params, &resp); err != nil {
			ctx.WithFields(log.Fields{
				"err":      err,
				"platform": platform,
				"batch":    start / c.batchSize,
			}).Warn("token_price batch failed")
			lastErr = err
			failed++
			continue
		}
		for addr, row := range resp {
			res[domain.Address(addr).ToLower()] = price.TokenQuote{Usd: row["usd"], Eth: row["eth"]}
		}
	}

	if failed == batches {
		return nil, lastErr
	}
	return res, nil
}

func (c *client) get(ctx bCtx.Ctx, path string, params url.Values, out interface{}) error {
	u := fmt.Sprintf("%s%s?%s", c.base, path, params.Encode())

	body, err := backoff.Retry(ctx, backoff.DefaultPolicy, func() ([]byte, error) {
		return c.do(ctx, u)
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"path": path,
			"err":  err,
		}).Error("c.get failed")
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		ctx.WithFields(log.Fields{"err": err, "path": path}).Error("json.Unmarshal failed")
		return err
	}
	return nil
}

func (c *client) do(ctx bCtx.Ctx, u string) ([]byte, error) {
	if c.cfg.Timeout > 0 {
		var cancel func()
		ctx, cancel = bCtx.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(c.keyHeader, c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		serr := &StatusError{StatusCode: resp.StatusCode, Url: u}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, backoff.Transient(serr)
		}
		return nil, serr
	}
	return body, nil
}
