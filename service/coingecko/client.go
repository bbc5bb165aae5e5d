package coingecko

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	bCtx "github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain/price"
	"github.com/x-xyz/dustsweep/service/cache/provider"
)

const (
	publicApi = "https://api.coingecko.com/api/v3"
	proApi    = "https://pro-api.coingecko.com/api/v3"

	defaultBatchSize = 50
)

var (
	ErrMarketsLen = errors.New("len(markets) != 1")
)

// StatusError is a non 200 reply
type StatusError struct {
	StatusCode int
	Url        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("coingecko: status %d", e.StatusCode)
}

type Client interface {
	price.ContractPriceSource
	// GetPrice returns the usd price of a coingecko id
	GetPrice(ctx bCtx.Ctx, id string) (decimal.Decimal, error)
}

type ClientCfg struct {
	HttpClient *http.Client
	// BaseUrl overrides the public or pro endpoint
	BaseUrl string
	ApiKey  string
	Pro     bool
	Timeout time.Duration
	// BatchSize is the contract_addresses limit per request
	BatchSize int
	CacheTtl  time.Duration
	Cache     provider.Provider
}

type Markets []Market

type Market struct {
	Id           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"current_price"`
}

// simplePrice is keyed by id or contract address, then by currency
type simplePrice map[string]map[string]*float64
