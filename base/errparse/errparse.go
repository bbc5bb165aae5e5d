// Package errparse turns wallet, rpc and upstream errors into messages a user can act on.
package errparse

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/x-xyz/dustsweep/domain"
)

type Category string

const (
	CategoryCancelled         Category = "cancelled"
	CategoryNetwork           Category = "network"
	CategoryGas               Category = "gas"
	CategoryInsufficientFunds Category = "insufficient_funds"
	CategoryAllowance         Category = "allowance"
	CategoryReverted          Category = "reverted"
	CategoryTimeout           Category = "timeout"
	CategoryNoLiquidity       Category = "no_liquidity"
	CategoryGeneric           Category = "generic"
	CategoryUnknown           Category = "unknown"
)

const (
	MsgCancelled         = "Transaction was cancelled. Please try again when ready."
	MsgNetwork           = "Network error. Please check your connection and try again."
	MsgGas               = "Insufficient gas. Please ensure you have enough ETH for gas fees."
	MsgInsufficientFunds = "Insufficient funds for this transaction."
	MsgAllowance         = "Token approval failed. Please try approving again."
	MsgReverted          = "Transaction failed. Please try again or check if you have sufficient balance."
	MsgRequestFailed     = "Network request failed. Please try again."
	MsgTimeout           = "Request timed out. Please try again."
	MsgNoLiquidity       = "No liquidity available for this token pair."
	MsgInvalidQuote      = "Invalid quote: missing transaction fields."
	MsgLongFallback      = "Transaction failed. Please check your wallet and try again."
	MsgUnknown           = "An unknown error occurred"

	maxRawLen = 200
)

var (
	reasonRe = regexp.MustCompile(`(?i)reason[:\s]+([^,\n}]+)`)
	codeRe   = regexp.MustCompile(`(?i)code[:\s]+([^,\n}]+)`)
)

type Parsed struct {
	Category Category `json:"category"`
	Message  string   `json:"message"`
}

// Message is Parse(err).Message
func Message(err error) string {
	return Parse(err).Message
}

func Parse(err error) Parsed {
	if err == nil {
		return Parsed{CategoryUnknown, MsgUnknown}
	}

	switch {
	case errors.Is(err, domain.ErrUserRejected):
		return Parsed{CategoryCancelled, MsgCancelled}
	case errors.Is(err, domain.ErrNoLiquidity):
		return Parsed{CategoryNoLiquidity, MsgNoLiquidity}
	case errors.Is(err, domain.ErrInvalidQuote):
		return Parsed{CategoryGeneric, MsgInvalidQuote}
	case errors.Is(err, domain.ErrInsufficientFunds):
		return Parsed{CategoryInsufficientFunds, MsgInsufficientFunds}
	case errors.Is(err, context.DeadlineExceeded):
		return Parsed{CategoryTimeout, MsgTimeout}
	}

	return parseMessage(err.Error(), errors.Is(err, domain.ErrTxReverted))
}

func parseMessage(raw string, reverted bool) Parsed {
	msg := strings.ToLower(raw)
	has := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(msg, s) {
				return true
			}
		}
		return false
	}

	switch {
	case has("user rejected", "user denied"):
		return Parsed{CategoryCancelled, MsgCancelled}
	case has("network"):
		return Parsed{CategoryNetwork, MsgNetwork}
	case has("gas"):
		return Parsed{CategoryGas, MsgGas}
	case reverted || has("revert"):
		if has("insufficient") {
			return Parsed{CategoryInsufficientFunds, MsgInsufficientFunds}
		}
		if has("allowance") {
			return Parsed{CategoryAllowance, MsgAllowance}
		}
		return Parsed{CategoryReverted, MsgReverted}
	case has("cors"):
		return Parsed{CategoryNetwork, MsgRequestFailed}
	case has("timeout", "timed out"):
		return Parsed{CategoryTimeout, MsgTimeout}
	case has("liquidity"):
		return Parsed{CategoryNoLiquidity, MsgNoLiquidity}
	}

	if len(raw) > maxRawLen {
		if m := reasonRe.FindStringSubmatch(raw); m != nil {
			return Parsed{CategoryGeneric, "Transaction failed: " + strings.TrimSpace(m[1])}
		}
		if m := codeRe.FindStringSubmatch(raw); m != nil && !strings.Contains(m[1], "{") {
			return Parsed{CategoryGeneric, "Error: " + strings.TrimSpace(m[1])}
		}
		return Parsed{CategoryGeneric, MsgLongFallback}
	}

	return Parsed{CategoryGeneric, raw}
}
