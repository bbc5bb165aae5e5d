package zeroex

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/backoff"
	bCtx "github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/base/units"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/quote"
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

func (c *client) GetPrice(ctx bCtx.Ctx, req quote.AggregatorRequest) (*quote.Quote, error) {
	return c.swap(ctx, pricePath, req)
}

func (c *client) GetQuote(ctx bCtx.Ctx, req quote.AggregatorRequest) (*quote.Quote, error) {
	if req.Taker.IsEmpty() {
		return nil, xerrors.Errorf("taker is required: %w", domain.ErrBadParamInput)
	}
	return c.swap(ctx, quotePath, req)
}

func (c *client) swap(ctx bCtx.Ctx, path string, req quote.AggregatorRequest) (*quote.Quote, error) {
	if c.cfg.ApiKey == "" {
		return nil, domain.ErrMissingApiKey
	}
	u := c.base + path + "?" + params(req).Encode()
	body, err := backoff.Retry(ctx, backoff.DefaultPolicy, func() ([]byte, error) {
		return c.get(ctx, u)
	})
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "path": path, "sellToken": req.SellToken}).Error("0x request failed")
		return nil, err
	}

	resp := swapResponse{}
	if err := json.Unmarshal(body, &resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return toQuote(req, &resp)
}

func params(req quote.AggregatorRequest) url.Values {
	q := url.Values{}
	q.Set("chainId", req.ChainId.String())
	q.Set("sellToken", string(req.SellToken))
	q.Set("buyToken", string(req.BuyToken))
	q.Set("sellAmount", req.SellAmount.String())
	if !req.Taker.IsEmpty() {
		q.Set("taker", string(req.Taker))
	}
	if !req.Recipient.IsEmpty() {
		q.Set("recipient", string(req.Recipient))
	}
	if req.SlippageBps > 0 {
		q.Set("slippageBps", strconv.Itoa(req.SlippageBps))
	}
	if req.HasFee() {
		q.Set("swapFeeRecipient", string(req.FeeRecipient))
		q.Set("swapFeeBps", strconv.Itoa(req.FeeBps))
		q.Set("swapFeeToken", string(req.FeeToken))
	}
	return q
}

func toQuote(req quote.AggregatorRequest, resp *swapResponse) (*quote.Quote, error) {
	q := &quote.Quote{
		ChainId:            req.ChainId,
		SellToken:          req.SellToken,
		BuyToken:           req.BuyToken,
		SellAmount:         req.SellAmount,
		BuyAmount:          big.NewInt(0),
		MinBuyAmount:       big.NewInt(0),
		LiquidityAvailable: resp.LiquidityAvailable,
	}
	if !resp.LiquidityAvailable {
		return q, nil
	}

	var err error
	if q.BuyAmount, err = units.ParseBig(resp.BuyAmount); err != nil {
		return nil, xerrors.Errorf("buyAmount: %w", err)
	}
	if resp.MinBuyAmount != "" {
		if q.MinBuyAmount, err = units.ParseBig(resp.MinBuyAmount); err != nil {
			return nil, xerrors.Errorf("minBuyAmount: %w", err)
		}
	}
	if resp.Issues.Allowance != nil {
		q.AllowanceSpender = domain.Address(resp.Issues.Allowance.Spender)
	}

	q.Transaction.Value = big.NewInt(0)
	if tx := resp.Transaction; tx != nil {
		q.Transaction.To = domain.Address(tx.To)
		q.Transaction.Data = tx.Data
		if tx.Value != "" {
			if q.Transaction.Value, err = units.ParseBig(tx.Value); err != nil {
				return nil, xerrors.Errorf("value: %w", err)
			}
		}
		if gas, err := strconv.ParseUint(tx.Gas, 10, 64); err == nil {
			q.Transaction.Gas = gas
		}
		if gp, err := units.ParseBig(tx.GasPrice); err == nil {
			q.Transaction.GasPrice = gp
		}
	} else if gas, err := strconv.ParseUint(resp.Gas, 10, 64); err == nil {
		q.Transaction.Gas = gas
	}
	return q, nil
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
	req.Header.Set("0x-api-key", c.cfg.ApiKey)
	req.Header.Set("0x-version", apiVersion)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil || (apiErr.Message == "" && apiErr.Reason == "") {
			apiErr.Body = string(body)
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, backoff.Transient(apiErr)
		}
		return nil, apiErr
	}
	return body, nil
}
