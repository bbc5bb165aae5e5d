package history

import (
	"time"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain"
)

const DefaultCap = 20

type TokenAmount struct {
	Address  domain.Address `json:"address" bson:"address"`
	Symbol   string         `json:"symbol" bson:"symbol"`
	Amount   string         `json:"amount" bson:"amount"`
	ValueUSD float64        `json:"valueUsd" bson:"valueUsd"`
}

// Entry is written once per finished batch and never updated
type Entry struct {
	Id            string         `json:"id" bson:"id"`
	ChainId       domain.ChainId `json:"chainId" bson:"chainId"`
	Owner         domain.Address `json:"owner" bson:"owner"`
	FromTokens    []TokenAmount  `json:"fromTokens" bson:"fromTokens"`
	ToToken       TokenAmount    `json:"toToken" bson:"toToken"`
	TxHash        domain.TxHash  `json:"txHash" bson:"txHash"`
	TotalValueUSD float64        `json:"totalValueUsd" bson:"totalValueUsd"`
	Timestamp     time.Time      `json:"timestamp" bson:"timestamp"`
}

type Analytics struct {
	TotalVolumeUSD  float64 `json:"totalVolumeUsd"`
	TotalSwaps      int     `json:"totalSwaps"`
	AvgSwapValueUSD float64 `json:"avgSwapValueUsd"`
}

func Analyze(entries []Entry) Analytics {
	a := Analytics{TotalSwaps: len(entries)}
	for _, e := range entries {
		a.TotalVolumeUSD += e.TotalValueUSD
	}
	if a.TotalSwaps > 0 {
		a.AvgSwapValueUSD = a.TotalVolumeUSD / float64(a.TotalSwaps)
	}
	return a
}

// Repo keeps the most recent entries per owner, newest first
type Repo interface {
	Append(c ctx.Ctx, e *Entry) error
	List(c ctx.Ctx, owner domain.Address) ([]Entry, error)
}

// Archive keeps every entry
type Archive interface {
	Insert(c ctx.Ctx, e *Entry) error
	List(c ctx.Ctx, owner domain.Address, offset, limit int32) ([]Entry, error)
	Count(c ctx.Ctx, owner domain.Address) (int, error)
}

type Publisher interface {
	Publish(c ctx.Ctx, e *Entry) error
}

type UseCase interface {
	Record(c ctx.Ctx, e *Entry) error
	List(c ctx.Ctx, owner domain.Address) ([]Entry, error)
	ListArchive(c ctx.Ctx, owner domain.Address, offset, limit int32) ([]Entry, int, error)
	Analytics(c ctx.Ctx, owner domain.Address) (*Analytics, error)
}
