package errparse

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/x-xyz/dustsweep/domain"
	"golang.org/x/xerrors"
)

func TestParse(t *testing.T) {
	long := strings.Repeat("x", 190)

	tests := []struct {
		name     string
		err      error
		category Category
		msg      string
	}{
		{"nil", nil, CategoryUnknown, MsgUnknown},
		{"rejected sentinel", xerrors.Errorf("approve: %w", domain.ErrUserRejected), CategoryCancelled, MsgCancelled},
		{"rejected text", errors.New("MetaMask Tx Signature: User denied transaction signature."), CategoryCancelled, MsgCancelled},
		{"no liquidity sentinel", domain.ErrNoLiquidity, CategoryNoLiquidity, MsgNoLiquidity},
		{"invalid quote", xerrors.Errorf("transaction to \"\": %w", domain.ErrInvalidQuote), CategoryGeneric, MsgInvalidQuote},
		{"deadline", xerrors.Errorf("call: %w", context.DeadlineExceeded), CategoryTimeout, MsgTimeout},
		{"network", errors.New("network changed"), CategoryNetwork, MsgNetwork},
		{"gas", errors.New("intrinsic gas too low"), CategoryGas, MsgGas},
		{"revert insufficient", errors.New("execution reverted: Insufficient balance"), CategoryInsufficientFunds, MsgInsufficientFunds},
		{"revert allowance", errors.New("execution reverted: ERC20: transfer amount exceeds allowance"), CategoryAllowance, MsgAllowance},
		{"revert plain", errors.New("execution reverted"), CategoryReverted, MsgReverted},
		{"reverted sentinel", xerrors.Errorf("tx 0xabc: %w", domain.ErrTxReverted), CategoryReverted, MsgReverted},
		{"cors", errors.New("blocked by CORS policy"), CategoryNetwork, MsgRequestFailed},
		{"timeout text", errors.New("request timeout"), CategoryTimeout, MsgTimeout},
		{"liquidity text", errors.New("Liquidity not found"), CategoryNoLiquidity, MsgNoLiquidity},
		{"long with reason", errors.New(long + ` {reason: TRANSFER_FROM_FAILED, x: 1}`), CategoryGeneric, "Transaction failed: TRANSFER_FROM_FAILED"},
		{"long with code", errors.New(long + ` code: UNPREDICTABLE, more`), CategoryGeneric, "Error: UNPREDICTABLE"},
		{"long without hints", errors.New(strings.Repeat("y", 250)), CategoryGeneric, MsgLongFallback},
		{"short passthrough", errors.New("token not supported"), CategoryGeneric, "token not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			p := Parse(tt.err)
			req.Equal(tt.category, p.Category)
			req.Equal(tt.msg, p.Message)
		})
	}
}
