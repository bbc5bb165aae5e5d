package contract

import (
	"bytes"
	"math/big"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/xerrors"

	baseabi "github.com/x-xyz/dustsweep/base/abi"
	bCtx "github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/swap"
	"github.com/x-xyz/dustsweep/domain/token"
	"github.com/x-xyz/dustsweep/service/chain"
)

// Erc20 reads token state over rpc and builds approve calldata
type Erc20 struct {
	chainService chain.Client
	abi          ethabi.ABI
	bytes32      ethabi.ABI
}

func NewErc20(chainService chain.Client) *Erc20 {
	return &Erc20{
		chainService: chainService,
		abi:          baseabi.ERC20ABI,
		bytes32:      baseabi.ERC20Bytes32ABI,
	}
}

var (
	_ token.ChainReader = (*Erc20)(nil)
	_ swap.ChainRepo    = (*Erc20)(nil)
)

func (e *Erc20) BalanceOf(ctx bCtx.Ctx, chainId domain.ChainId, contract, owner domain.Address) (*big.Int, error) {
	unpacked, err := e.chainService.Call(ctx, int32(chainId), common.HexToAddress(string(contract)), nil, e.abi, "balanceOf", common.HexToAddress(string(owner)))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) NativeBalance(ctx bCtx.Ctx, chainId domain.ChainId, owner domain.Address) (*big.Int, error) {
	client, err := e.chainService.Eth(int32(chainId))
	if err != nil {
		return nil, err
	}
	return client.BalanceAt(ctx, common.HexToAddress(string(owner)), nil)
}

// Metadata never fails on a single missing field, the field stays nil instead
func (e *Erc20) Metadata(ctx bCtx.Ctx, chainId domain.ChainId, contract domain.Address) (*token.Metadata, error) {
	if _, err := e.chainService.Eth(int32(chainId)); err != nil {
		return nil, err
	}

	addr := common.HexToAddress(string(contract))
	res := &token.Metadata{
		Symbol: e.text(ctx, chainId, addr, "symbol"),
		Name:   e.text(ctx, chainId, addr, "name"),
	}
	if unpacked, err := e.chainService.Call(ctx, int32(chainId), addr, nil, e.abi, "decimals"); err == nil {
		d := int32(unpacked[0].(uint8))
		res.Decimals = &d
	}
	return res, nil
}

func (e *Erc20) text(ctx bCtx.Ctx, chainId domain.ChainId, addr common.Address, method string) *string {
	if unpacked, err := e.chainService.Call(ctx, int32(chainId), addr, nil, e.abi, method); err == nil {
		s := strings.TrimSpace(unpacked[0].(string))
		return &s
	}
	unpacked, err := e.chainService.Call(ctx, int32(chainId), addr, nil, e.bytes32, method)
	if err != nil {
		ctx.WithFields(log.Fields{"contract": addr.Hex(), "method": method}).Debug("erc20 text field unavailable")
		return nil
	}
	raw := unpacked[0].([32]byte)
	s := string(bytes.TrimRight(raw[:], "\x00"))
	return &s
}

func (e *Erc20) Allowance(ctx bCtx.Ctx, chainId domain.ChainId, contract, owner, spender domain.Address) (*big.Int, error) {
	unpacked, err := e.chainService.Call(ctx, int32(chainId), common.HexToAddress(string(contract)), nil, e.abi, "allowance",
		common.HexToAddress(string(owner)), common.HexToAddress(string(spender)))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) PackApprove(spender domain.Address, amount *big.Int) (string, error) {
	if !common.IsHexAddress(string(spender)) {
		return "", xerrors.Errorf("spender %s: %w", spender, domain.ErrInvalidAddress)
	}
	data, err := e.abi.Pack("approve", common.HexToAddress(string(spender)), amount)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(data), nil
}

func (e *Erc20) WaitReceipt(ctx bCtx.Ctx, chainId domain.ChainId, hash domain.TxHash) (*swap.Receipt, error) {
	receipt, err := e.chainService.WaitMined(ctx, int32(chainId), common.HexToHash(string(hash)))
	if err != nil {
		return nil, err
	}
	res := &swap.Receipt{
		TxHash:  hash,
		Status:  receipt.Status,
		GasUsed: receipt.GasUsed,
	}
	if receipt.BlockNumber != nil {
		res.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return res, nil
}
