package ethereum

import (
	"bytes"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/xerrors"
)

var ErrInvalidSignature = xerrors.New("invalid signature")

// ValidateMsgSignature checks a personal_sign signature of message against signer
func ValidateMsgSignature(message []byte, signature, signer string) (bool, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false, xerrors.Errorf("decode signature: %w", ErrInvalidSignature)
	}
	recovered, err := ecRecover(accounts.TextHash(message), sig)
	if err != nil {
		return false, err
	}
	return bytes.Equal(common.HexToAddress(signer).Bytes(), recovered.Bytes()), nil
}

// SignMessage produces the personal_sign signature a browser wallet would return
func SignMessage(key *ecdsa.PrivateKey, message []byte) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash(message), key)
	if err != nil {
		return "", err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

// ecRecover returns the address for the account that was used to create the signature.
// Wallets answer with V in either 0/1 or 27/28.
func ecRecover(hash []byte, signature []byte) (common.Address, error) {
	if len(signature) != crypto.SignatureLength {
		return common.Address{}, xerrors.Errorf("signature must be %d bytes long: %w", crypto.SignatureLength, ErrInvalidSignature)
	}

	sig := make([]byte, len(signature))
	copy(sig, signature)
	if sig[crypto.RecoveryIDOffset] < 27 {
		sig[crypto.RecoveryIDOffset] += 27
	}
	if sig[crypto.RecoveryIDOffset] != 27 && sig[crypto.RecoveryIDOffset] != 28 {
		return common.Address{}, xerrors.Errorf("V is not 27 or 28: %w", ErrInvalidSignature)
	}
	sig[crypto.RecoveryIDOffset] -= 27

	rpk, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*rpk), nil
}
