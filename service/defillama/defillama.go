package defillama

import (
	"fmt"
	"net/http"
	"time"

	"github.com/x-xyz/dustsweep/domain/price"
)

const api = "https://coins.llama.fi"

type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("defillama: status %d", e.StatusCode)
}

type Client interface {
	price.UsdPriceSource
}

type ClientCfg struct {
	HttpClient *http.Client
	BaseUrl    string
	Timeout    time.Duration
}

type coin struct {
	Price      *float64 `json:"price"`
	Symbol     string   `json:"symbol"`
	Decimals   int32    `json:"decimals"`
	Confidence float64  `json:"confidence"`
}

type currentResp struct {
	Coins map[string]coin `json:"coins"`
}
