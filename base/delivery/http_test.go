package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/dustsweep/base/errparse"
	"github.com/x-xyz/dustsweep/domain"
	"golang.org/x/xerrors"
)

func TestMakeJsonResp(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		data       interface{}
		wantStatus int
		wantBody   JsonResponse
	}{
		{"success", http.StatusOK, "ok", http.StatusOK, JsonResponse{"ok", JsonResponseStatusSuccess}},
		{"bad param", http.StatusInternalServerError, xerrors.Errorf("chainId: %w", domain.ErrBadParamInput), http.StatusBadRequest, JsonResponse{"chainId: Given Param is not valid", JsonResponseStatusFail}},
		{"unsupported chain", http.StatusInternalServerError, domain.ErrUnsupportedChain, http.StatusBadRequest, JsonResponse{"unsupported chain", JsonResponseStatusFail}},
		{"not found", http.StatusInternalServerError, domain.ErrNotFound, http.StatusNotFound, JsonResponse{domain.ErrNotFound.Error(), JsonResponseStatusFail}},
		{"no liquidity", http.StatusInternalServerError, domain.ErrNoLiquidity, http.StatusUnprocessableEntity, JsonResponse{errparse.MsgNoLiquidity, JsonResponseStatusFail}},
		{"missing recipient", http.StatusBadRequest, domain.ErrMissingFeeRecipient, http.StatusInternalServerError, JsonResponse{domain.ErrMissingFeeRecipient.Error(), JsonResponseStatusFail}},
		{"unsendable quote", http.StatusInternalServerError, domain.ErrInvalidQuote, http.StatusBadGateway, JsonResponse{errparse.MsgInvalidQuote, JsonResponseStatusFail}},
		{"archive off", http.StatusInternalServerError, domain.ErrNotImplemented, http.StatusNotImplemented, JsonResponse{errparse.Message(domain.ErrNotImplemented), JsonResponseStatusFail}},
		{"upstream", http.StatusInternalServerError, errors.New("execution reverted"), http.StatusInternalServerError, JsonResponse{errparse.MsgReverted, JsonResponseStatusFail}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			req.NoError(MakeJsonResp(c, tt.status, tt.data))
			req.Equal(tt.wantStatus, rec.Code)

			var body JsonResponse
			req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
			req.Equal(tt.wantBody, body)
		})
	}
}
