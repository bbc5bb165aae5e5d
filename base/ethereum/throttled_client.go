package ethereum

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/x-xyz/dustsweep/base/metrics"
)

// ThrottledClient caps the number of in-flight rpc calls per endpoint.
// Public rpc providers rate limit aggressively, so every call waits for a token.
type ThrottledClient struct {
	*ethclient.Client
	tokens chan int
	met    metrics.Service
	name   string
}

func NewThrottledClient(client *ethclient.Client, name string, n int) *ThrottledClient {
	if n <= 0 {
		n = 1
	}
	tokens := make(chan int, n)
	for i := 0; i < n; i++ {
		tokens <- i + 1
	}
	return &ThrottledClient{
		Client: client,
		tokens: tokens,
		met:    metrics.New("rpc"),
		name:   name,
	}
}

func (c *ThrottledClient) ChainID(ctx context.Context) (*big.Int, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Client.ChainID(ctx)
}

func (c *ThrottledClient) BlockNumber(ctx context.Context) (uint64, error) {
	token, err := c.before(ctx)
	if err != nil {
		return 0, err
	}
	defer c.after(token)
	return c.Client.BlockNumber(ctx)
}

func (c *ThrottledClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Client.HeaderByNumber(ctx, number)
}

func (c *ThrottledClient) BalanceAt(ctx context.Context, account common.Address, number *big.Int) (*big.Int, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Client.BalanceAt(ctx, account, number)
}

func (c *ThrottledClient) CodeAt(ctx context.Context, address common.Address, number *big.Int) ([]byte, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Client.CodeAt(ctx, address, number)
}

func (c *ThrottledClient) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Client.CallContract(ctx, msg, number)
}

func (c *ThrottledClient) PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Client.PendingCodeAt(ctx, account)
}

func (c *ThrottledClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	token, err := c.before(ctx)
	if err != nil {
		return 0, err
	}
	defer c.after(token)
	return c.Client.PendingNonceAt(ctx, account)
}

func (c *ThrottledClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Client.SuggestGasPrice(ctx)
}

func (c *ThrottledClient) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Client.SuggestGasTipCap(ctx)
}

func (c *ThrottledClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	token, err := c.before(ctx)
	if err != nil {
		return 0, err
	}
	defer c.after(token)
	return c.Client.EstimateGas(ctx, msg)
}

func (c *ThrottledClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	token, err := c.before(ctx)
	if err != nil {
		return err
	}
	defer c.after(token)
	return c.Client.SendTransaction(ctx, tx)
}

func (c *ThrottledClient) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.Client.TransactionReceipt(ctx, hash)
}

func (c *ThrottledClient) before(ctx context.Context) (int, error) {
	now := time.Now()
	select {
	case <-ctx.Done():
		c.met.BumpSum("throttle.cancel", 1, "endpoint", c.name)
		return 0, ctx.Err()
	case token := <-c.tokens:
		c.met.BumpHistogram("throttle.wait", float64(time.Since(now).Milliseconds()), "endpoint", c.name)
		return token, nil
	}
}

func (c *ThrottledClient) after(token int) {
	if token != 0 {
		c.tokens <- token
	}
}
