package swap

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/token"
)

// MaxApproval is the unlimited allowance granted once per token and spender
var MaxApproval = new(big.Int).Set(math.MaxBig256)

type Target struct {
	Address  domain.Address `json:"address" validate:"required"`
	Symbol   string         `json:"symbol"`
	Decimals int32          `json:"decimals"`
}

type TokenState struct {
	Token         token.Token   `json:"token"`
	SellAmount    *big.Int      `json:"sellAmount"`
	Status        Status        `json:"status"`
	Reason        string        `json:"reason,omitempty"`
	ApproveTxHash domain.TxHash `json:"approveTxHash,omitempty"`
	TxHash        domain.TxHash `json:"txHash,omitempty"`
	BuyAmount     *big.Int      `json:"buyAmount,omitempty"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	err           error
}

func (s *TokenState) Err() error {
	return s.err
}

func (s *TokenState) SetErr(err error) {
	s.err = err
}

type BatchRequest struct {
	ChainId domain.ChainId `json:"chainId" validate:"required"`
	Owner   domain.Address `json:"owner"`
	Tokens  []token.Token  `json:"tokens" validate:"required,min=1"`
	Target  Target         `json:"target" validate:"required"`
	// Slippage is a fraction, 0.01 means 1%
	Slippage float64 `json:"slippage" validate:"gte=0,lt=1"`
}

type BatchResult struct {
	BatchId              string          `json:"batchId"`
	ChainId              domain.ChainId  `json:"chainId"`
	Owner                domain.Address  `json:"owner"`
	Target               Target          `json:"target"`
	States               []TokenState    `json:"states"`
	Succeeded            []TokenState    `json:"succeeded"`
	Failed               []TokenState    `json:"failed"`
	TotalOutput          *big.Int        `json:"totalOutput"`
	TotalOutputFormatted decimal.Decimal `json:"totalOutputFormatted"`
	TotalValueUSD        float64         `json:"totalValueUsd"`
	TxHash               domain.TxHash   `json:"txHash,omitempty"`
	StartedAt            time.Time       `json:"startedAt"`
	FinishedAt           time.Time       `json:"finishedAt"`
}

type TxRequest struct {
	ChainId domain.ChainId `json:"chainId"`
	From    domain.Address `json:"from"`
	To      domain.Address `json:"to"`
	Data    string         `json:"data"`
	Value   *big.Int       `json:"value"`
	Gas     uint64         `json:"gas"`
}

// Signer asks a wallet to sign and submit a transaction.
// Waits on user interaction and carries no timeout of its own.
type Signer interface {
	Address() domain.Address
	SendTransaction(c ctx.Ctx, tx TxRequest) (domain.TxHash, error)
}

// StatusListener sees every transition in order
type StatusListener func(state TokenState)

type Receipt struct {
	TxHash      domain.TxHash `json:"txHash"`
	Status      uint64        `json:"status"`
	BlockNumber uint64        `json:"blockNumber"`
	GasUsed     uint64        `json:"gasUsed"`
}

func (r *Receipt) Reverted() bool {
	return r.Status == 0
}

type ChainRepo interface {
	Allowance(c ctx.Ctx, chainId domain.ChainId, contract, owner, spender domain.Address) (*big.Int, error)
	WaitReceipt(c ctx.Ctx, chainId domain.ChainId, hash domain.TxHash) (*Receipt, error)
	PackApprove(spender domain.Address, amount *big.Int) (string, error)
}

type Orchestrator interface {
	// ExecuteBatch fails only on precondition errors, per token failures are in the result
	ExecuteBatch(c ctx.Ctx, req BatchRequest, signer Signer, listener StatusListener) (*BatchResult, error)
}
