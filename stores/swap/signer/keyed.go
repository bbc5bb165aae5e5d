// Package signer holds swap.Signer implementations that own a private key.
package signer

import (
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/swap"
	"github.com/x-xyz/dustsweep/service/chain"
)

type keyed struct {
	key          *ecdsa.PrivateKey
	from         common.Address
	chainService chain.Client
}

// NewKeyed signs and submits eip-1559 transactions with a local key
func NewKeyed(key *ecdsa.PrivateKey, chainService chain.Client) swap.Signer {
	return &keyed{
		key:          key,
		from:         crypto.PubkeyToAddress(key.PublicKey),
		chainService: chainService,
	}
}

func (k *keyed) Address() domain.Address {
	return domain.Address(k.from.Hex()).ToLower()
}

func (k *keyed) SendTransaction(c ctx.Ctx, req swap.TxRequest) (domain.TxHash, error) {
	client, err := k.chainService.Eth(int32(req.ChainId))
	if err != nil {
		return "", err
	}
	data, err := hexutil.Decode(req.Data)
	if err != nil {
		return "", xerrors.Errorf("calldata: %w", domain.ErrBadParamInput)
	}
	to := common.HexToAddress(string(req.To))
	value := req.Value
	if value == nil {
		value = big.NewInt(0)
	}

	nonce, err := client.PendingNonceAt(c, k.from)
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("client.PendingNonceAt failed")
		return "", err
	}
	tip, err := client.SuggestGasTipCap(c)
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("client.SuggestGasTipCap failed")
		return "", err
	}
	head, err := client.HeaderByNumber(c, nil)
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("client.HeaderByNumber failed")
		return "", err
	}
	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	gas := req.Gas
	if gas == 0 {
		gas, err = client.EstimateGas(c, ethereum.CallMsg{From: k.from, To: &to, Value: value, Data: data})
		if err != nil {
			c.WithFields(log.Fields{"err": err, "to": to.Hex()}).Warn("client.EstimateGas failed")
			return "", classify(err)
		}
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   big.NewInt(int64(req.ChainId)),
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Value:     value,
		Data:      data,
	})
	opts, err := bind.NewKeyedTransactorWithChainID(k.key, big.NewInt(int64(req.ChainId)))
	if err != nil {
		return "", err
	}
	signed, err := opts.Signer(k.from, tx)
	if err != nil {
		return "", err
	}
	if err := client.SendTransaction(c, signed); err != nil {
		c.WithFields(log.Fields{"err": err, "nonce": nonce}).Error("client.SendTransaction failed")
		return "", classify(err)
	}
	return domain.TxHash(signed.Hash().Hex()).ToLower(), nil
}

func classify(err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "insufficient funds") {
		return xerrors.Errorf("%v: %w", err, domain.ErrInsufficientFunds)
	}
	return err
}
