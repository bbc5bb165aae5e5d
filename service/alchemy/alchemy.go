package alchemy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/token"
)

const defaultMaxCount = 100

type Client interface {
	token.BalanceIndexer
}

type ClientCfg struct {
	HttpClient *http.Client
	// Endpoints holds the full rpc url per chain, api key included
	Endpoints map[domain.ChainId]string
	MaxCount  int
	Timeout   time.Duration
}

type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("alchemy: status %d", e.StatusCode)
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("alchemy: rpc error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	JsonRpc string        `json:"jsonrpc"`
	Id      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

type pageOpts struct {
	PageKey  string `json:"pageKey,omitempty"`
	MaxCount int    `json:"maxCount"`
}

type tokenBalance struct {
	ContractAddress string  `json:"contractAddress"`
	TokenBalance    *string `json:"tokenBalance"`
	Error           *string `json:"error"`
}

type balancesResult struct {
	Address       string         `json:"address"`
	TokenBalances []tokenBalance `json:"tokenBalances"`
	PageKey       string         `json:"pageKey"`
}

type metadataResult struct {
	Decimals *int32  `json:"decimals"`
	Name     *string `json:"name"`
	Symbol   *string `json:"symbol"`
	Logo     *string `json:"logo"`
}
