package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrNotImplemented      = errors.New("not implemented")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrUnsupportedChain = errors.New("unsupported chain")

	// configuration error
	ErrMissingFeeRecipient = errors.New("fee recipient is not configured")
	ErrMissingApiKey       = errors.New("api key is not configured")

	// swap outcome
	ErrNoLiquidity       = errors.New("no liquidity available")
	ErrUserRejected      = errors.New("user rejected the request")
	ErrTxReverted        = errors.New("transaction reverted")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrZeroBalance       = errors.New("token balance is zero")
	ErrNoPriceFeed       = errors.New("no price feed")
	ErrInvalidQuote      = errors.New("invalid quote: missing transaction fields")
)

// IsPrecondition reports errors that fail a whole operation before any upstream call
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrBadParamInput) ||
		errors.Is(err, ErrInvalidAddress) ||
		errors.Is(err, ErrUnsupportedChain) ||
		errors.Is(err, ErrMissingFeeRecipient) ||
		errors.Is(err, ErrMissingApiKey)
}
