package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/middleware"
)

const vitalik = domain.Address("0xd8da6bf26964af9d7eed9e03e53415d37aa96045")

type fakeEns struct{}

func (fakeEns) Resolve(_ ctx.Ctx, name string) (domain.Address, error) {
	if name == "vitalik.eth" {
		return vitalik, nil
	}
	return "", xerrors.Errorf("ens name %q: %w", name, domain.ErrNotFound)
}

func (fakeEns) ReverseResolve(_ ctx.Ctx, address domain.Address) (string, error) {
	if address.Equals(vitalik) {
		return "vitalik.eth", nil
	}
	return "", nil
}

func TestEnsHandler(t *testing.T) {
	e := echo.New()
	e.Use(middleware.InitMiddleware().AddContext())
	New(e, fakeEns{})

	tests := []struct {
		name     string
		target   string
		wantCode int
		wantData string
	}{
		{"resolve", "/ens/resolve/vitalik.eth", http.StatusOK, string(vitalik)},
		{"unregistered", "/ens/resolve/nobody.eth", http.StatusNotFound, ""},
		{"reverse", "/ens/reverse-resolve/" + string(vitalik), http.StatusOK, "vitalik.eth"},
		{"reverse bad address", "/ens/reverse-resolve/0x12", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			req.Equal(tt.wantCode, rec.Code)
			if tt.wantData == "" {
				return
			}
			body := map[string]interface{}{}
			req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
			req.Equal(tt.wantData, body["data"])
		})
	}
}
