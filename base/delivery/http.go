package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/x-xyz/dustsweep/base/errparse"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/service/query"
	"golang.org/x/xerrors"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// ErrorStatus maps domain errors to http status codes, fallback is used for anything else
func ErrorStatus(err error, fallback int) int {
	switch {
	case errors.Is(err, domain.ErrNotFound) || errors.Is(err, query.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBadParamInput),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrUnsupportedChain),
		errors.Is(err, domain.ErrZeroBalance):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoLiquidity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrMissingFeeRecipient), errors.Is(err, domain.ErrMissingApiKey):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrInvalidQuote):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented
	}
	return fallback
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = ErrorStatus(err, status)
		if domain.IsPrecondition(err) || errors.Is(err, domain.ErrNotFound) {
			data = err.Error()
		} else {
			data = errparse.Message(err)
		}
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

// BindAndValidate binds p and runs the echo validator, failures wrap ErrBadParamInput
func BindAndValidate(c echo.Context, p interface{}) error {
	if err := c.Bind(p); err != nil {
		return xerrors.Errorf("bind: %v: %w", err, domain.ErrBadParamInput)
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(p); err != nil {
		return xerrors.Errorf("%v: %w", err, domain.ErrBadParamInput)
	}
	return nil
}
