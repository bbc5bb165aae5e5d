package explorer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/token"
)

const (
	defaultPageSize = 1000
	defaultMaxPages = 10

	statusOk       = "1"
	msgNoTx        = "No transactions found"
	msgRateLimited = "Max rate limit reached"
)

type Client interface {
	token.TransferHistory
}

type ClientCfg struct {
	HttpClient *http.Client
	// Endpoints is the etherscan compatible api url per chain
	Endpoints map[domain.ChainId]string
	ApiKey    string
	PageSize  int
	MaxPages  int
	Timeout   time.Duration
}

type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("explorer: status %d", e.StatusCode)
}

type APIError struct {
	Message string
	Result  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("explorer: %s: %s", e.Message, e.Result)
}

type tokenTx struct {
	ContractAddress string `json:"contractAddress"`
	TokenName       string `json:"tokenName"`
	TokenSymbol     string `json:"tokenSymbol"`
	TokenDecimal    string `json:"tokenDecimal"`
}

type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}
