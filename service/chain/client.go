package chain

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/dustsweep/base/ctx"
	baseeth "github.com/x-xyz/dustsweep/base/ethereum"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/domain"
)

const defaultReceiptPoll = 2 * time.Second

type Endpoint struct {
	Url         string
	Concurrency int
}

type ClientCfg struct {
	Endpoints map[int32]Endpoint
	// ReceiptPoll is the TransactionReceipt polling period of WaitMined
	ReceiptPoll time.Duration
}

type Client interface {
	Call(bCtx.Ctx, int32, common.Address, *big.Int, abi.ABI, string, ...interface{}) ([]interface{}, error)
	Eth(chainId int32) (domain.EthClientRepo, error)
	// WaitMined polls until the receipt exists or ctx is done
	WaitMined(ctx bCtx.Ctx, chainId int32, hash common.Hash) (*types.Receipt, error)
}

type clientImpl struct {
	clients     map[int32]domain.EthClientRepo
	receiptPoll time.Duration
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var (
		anyerr error
	)
	clients := make(map[int32]domain.EthClientRepo)
	for chainId, ep := range cfg.Endpoints {
		client, err := ethclient.DialContext(ctx, ep.Url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		clients[chainId] = baseeth.NewThrottledClient(client, domain.ChainId(chainId).String(), ep.Concurrency)
	}
	return NewClientWith(clients, cfg.ReceiptPoll), anyerr
}

// NewClientWith wraps already dialed clients
func NewClientWith(clients map[int32]domain.EthClientRepo, receiptPoll time.Duration) Client {
	if receiptPoll <= 0 {
		receiptPoll = defaultReceiptPoll
	}
	return &clientImpl{
		clients:     clients,
		receiptPoll: receiptPoll,
	}
}

func (c *clientImpl) Eth(chainId int32) (domain.EthClientRepo, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, xerrors.Errorf("chain %d: %w", chainId, domain.ErrUnsupportedChain)
	}
	return client, nil
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId int32, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client, err := c.Eth(chainId)
	if err != nil {
		return nil, err
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := client.CallContract(ctx, msg, blk)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"method":  method,
			"address": addr.Hex(),
		}).Warn("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"method":  method,
			"address": addr.Hex(),
		}).Warn("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) WaitMined(ctx bCtx.Ctx, chainId int32, hash common.Hash) (*types.Receipt, error) {
	client, err := c.Eth(chainId)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(c.receiptPoll)
	defer ticker.Stop()
	for {
		receipt, err := client.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			ctx.WithFields(log.Fields{"err": err, "hash": hash.Hex()}).Warn("TransactionReceipt failed, retrying")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
