package alchemy

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/backoff"
	bCtx "github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/base/units"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/token"
)

type client struct {
	client *http.Client
	cfg    *ClientCfg
}

func NewClient(cfg *ClientCfg) Client {
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = defaultMaxCount
	}
	httpClient := cfg.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &client{
		client: httpClient,
		cfg:    cfg,
	}
}

func (c *client) GetTokenBalances(ctx bCtx.Ctx, chainId domain.ChainId, owner domain.Address, cursor string) (*token.BalancePage, error) {
	res := balancesResult{}
	opts := pageOpts{PageKey: cursor, MaxCount: c.cfg.MaxCount}
	if err := c.call(ctx, chainId, "alchemy_getTokenBalances", []interface{}{owner.ToLowerStr(), "erc20", opts}, &res); err != nil {
		ctx.WithFields(log.Fields{"err": err, "owner": owner, "chainId": chainId}).Error("alchemy_getTokenBalances failed")
		return nil, err
	}

	page := &token.BalancePage{
		Balances:   make([]token.Balance, 0, len(res.TokenBalances)),
		NextCursor: res.PageKey,
	}
	for _, b := range res.TokenBalances {
		if b.Error != nil || b.TokenBalance == nil {
			continue
		}
		raw, err := units.ParseBig(*b.TokenBalance)
		if err != nil {
			ctx.WithFields(log.Fields{"err": err, "contract": b.ContractAddress}).Warn("bad token balance")
			continue
		}
		page.Balances = append(page.Balances, token.Balance{
			Contract: domain.Address(b.ContractAddress).ToLower(),
			Raw:      raw,
		})
	}
	return page, nil
}

func (c *client) GetTokenMetadata(ctx bCtx.Ctx, chainId domain.ChainId, contract domain.Address) (*token.Metadata, error) {
	res := metadataResult{}
	if err := c.call(ctx, chainId, "alchemy_getTokenMetadata", []interface{}{contract.ToLowerStr()}, &res); err != nil {
		ctx.WithFields(log.Fields{"err": err, "contract": contract, "chainId": chainId}).Error("alchemy_getTokenMetadata failed")
		return nil, err
	}
	meta := &token.Metadata{Decimals: res.Decimals}
	if res.Symbol != nil && *res.Symbol != "" {
		meta.Symbol = res.Symbol
	}
	if res.Name != nil && *res.Name != "" {
		meta.Name = res.Name
	}
	return meta, nil
}

func (c *client) call(ctx bCtx.Ctx, chainId domain.ChainId, method string, params []interface{}, out interface{}) error {
	url, ok := c.cfg.Endpoints[chainId]
	if !ok {
		return xerrors.Errorf("alchemy chain %d: %w", chainId, domain.ErrUnsupportedChain)
	}
	body, err := json.Marshal(rpcRequest{JsonRpc: "2.0", Id: 1, Method: method, Params: params})
	if err != nil {
		return err
	}

	raw, err := backoff.Retry(ctx, backoff.DefaultPolicy, func() (json.RawMessage, error) {
		return c.post(ctx, url, body)
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (c *client) post(ctx bCtx.Ctx, url string, body []byte) (json.RawMessage, error) {
	if c.cfg.Timeout > 0 {
		var cancel func()
		ctx, cancel = bCtx.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
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

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	rpcResp := rpcResponse{}
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return nil, err
	}
	if rpcResp.Error != nil {
		if rpcResp.Error.Code == 429 {
			return nil, backoff.Transient(rpcResp.Error)
		}
		return nil, rpcResp.Error
	}
	return rpcResp.Result, nil
}
