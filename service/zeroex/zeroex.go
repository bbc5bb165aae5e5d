package zeroex

import (
	"fmt"
	"net/http"
	"time"

	"github.com/x-xyz/dustsweep/domain/quote"
)

const (
	api        = "https://api.0x.org"
	pricePath  = "/swap/allowance-holder/price"
	quotePath  = "/swap/allowance-holder/quote"
	apiVersion = "v2"
)

type Client interface {
	quote.Aggregator
}

type ClientCfg struct {
	HttpClient *http.Client
	BaseUrl    string
	ApiKey     string
	Timeout    time.Duration
}

// APIError carries the upstream reply of a non 2xx response
type APIError struct {
	StatusCode int    `json:"-"`
	Name       string `json:"name"`
	Message    string `json:"message"`
	Reason     string `json:"reason"`
	Body       string `json:"-"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Reason
	}
	if msg == "" {
		msg = e.Body
	}
	return fmt.Sprintf("0x: status %d: %s", e.StatusCode, msg)
}

type allowanceIssue struct {
	Actual  string `json:"actual"`
	Spender string `json:"spender"`
}

type issues struct {
	Allowance *allowanceIssue `json:"allowance"`
}

type transaction struct {
	To       string `json:"to"`
	Data     string `json:"data"`
	Gas      string `json:"gas"`
	GasPrice string `json:"gasPrice"`
	Value    string `json:"value"`
}

type swapResponse struct {
	LiquidityAvailable bool         `json:"liquidityAvailable"`
	BuyAmount          string       `json:"buyAmount"`
	MinBuyAmount       string       `json:"minBuyAmount"`
	SellAmount         string       `json:"sellAmount"`
	Gas                string       `json:"gas"`
	GasPrice           string       `json:"gasPrice"`
	Issues             issues       `json:"issues"`
	Transaction        *transaction `json:"transaction"`
}
