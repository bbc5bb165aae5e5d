package explorer

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/backoff"
	bCtx "github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/token"
)

type client struct {
	client *http.Client
	cfg    *ClientCfg
}

func NewClient(cfg *ClientCfg) Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
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

// GetTransferContracts returns each distinct contract once, in first seen order
func (c *client) GetTransferContracts(ctx bCtx.Ctx, chainId domain.ChainId, owner domain.Address) ([]token.TransferContract, error) {
	base, ok := c.cfg.Endpoints[chainId]
	if !ok {
		return nil, xerrors.Errorf("explorer chain %d: %w", chainId, domain.ErrUnsupportedChain)
	}

	seen := map[domain.Address]bool{}
	res := []token.TransferContract{}
	for page := 1; page <= c.cfg.MaxPages; page++ {
		txs, err := c.tokenTx(ctx, base, owner, page)
		if err != nil {
			if page == 1 {
				ctx.WithFields(log.Fields{"err": err, "owner": owner}).Error("explorer tokentx failed")
				return nil, err
			}
			// earlier pages are kept
			ctx.WithFields(log.Fields{"err": err, "owner": owner, "page": page}).Warn("explorer paging stopped")
			return res, nil
		}
		for _, tx := range txs {
			addr := domain.Address(tx.ContractAddress).ToLower()
			if addr.IsEmpty() || seen[addr] {
				continue
			}
			seen[addr] = true
			res = append(res, token.TransferContract{
				Contract: addr,
				Metadata: toMetadata(tx),
			})
		}
		if len(txs) < c.cfg.PageSize {
			break
		}
	}
	return res, nil
}

func toMetadata(tx tokenTx) *token.Metadata {
	meta := &token.Metadata{}
	if tx.TokenSymbol != "" {
		s := tx.TokenSymbol
		meta.Symbol = &s
	}
	if tx.TokenName != "" {
		n := tx.TokenName
		meta.Name = &n
	}
	if d, err := strconv.ParseInt(tx.TokenDecimal, 10, 32); err == nil {
		dec := int32(d)
		meta.Decimals = &dec
	}
	return meta
}

func (c *client) tokenTx(ctx bCtx.Ctx, base string, owner domain.Address, page int) ([]tokenTx, error) {
	q := url.Values{}
	q.Set("module", "account")
	q.Set("action", "tokentx")
	q.Set("address", owner.ToLowerStr())
	q.Set("page", strconv.Itoa(page))
	q.Set("offset", strconv.Itoa(c.cfg.PageSize))
	q.Set("sort", "desc")
	if c.cfg.ApiKey != "" {
		q.Set("apikey", c.cfg.ApiKey)
	}
	u := base + "?" + q.Encode()
	if strings.Contains(base, "?") {
		u = base + "&" + q.Encode()
	}

	return backoff.Retry(ctx, backoff.DefaultPolicy, func() ([]tokenTx, error) {
		body, err := c.get(ctx, u)
		if err != nil {
			return nil, err
		}
		resp := response{}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, err
		}
		if resp.Status != statusOk {
			if strings.HasPrefix(resp.Message, msgNoTx) {
				return []tokenTx{}, nil
			}
			result := ""
			_ = json.Unmarshal(resp.Result, &result)
			apiErr := &APIError{Message: resp.Message, Result: result}
			if strings.Contains(result, msgRateLimited) {
				return nil, backoff.Transient(apiErr)
			}
			return nil, apiErr
		}
		txs := []tokenTx{}
		if err := json.Unmarshal(resp.Result, &txs); err != nil {
			return nil, err
		}
		return txs, nil
	})
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
