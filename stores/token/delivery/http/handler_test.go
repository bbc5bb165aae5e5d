package http

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	bValidator "github.com/x-xyz/dustsweep/base/validator"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/token"
	"github.com/x-xyz/dustsweep/domain/token/mocks"
	"github.com/x-xyz/dustsweep/middleware"
)

const (
	owner    = domain.Address("0xab5801a7d398351b8be11c439e05c5b3259aec9b")
	contract = domain.Address("0x833589fcd6edb6e08f4c7c32d4f71b54bda02913")
)

type tokenHandlerSuite struct {
	suite.Suite

	e         *echo.Echo
	discovery *mocks.DiscoveryUseCase
}

func TestTokenHandlerSuite(t *testing.T) {
	suite.Run(t, new(tokenHandlerSuite))
}

func (s *tokenHandlerSuite) SetupTest() {
	s.e = echo.New()
	s.e.Validator = bValidator.NewCustomValidator(validator.New())
	s.e.Use(middleware.InitMiddleware().AddContext())
	s.discovery = &mocks.DiscoveryUseCase{}
	New(s.e, s.discovery)
}

func (s *tokenHandlerSuite) TearDownTest() {
	s.discovery.AssertExpectations(s.T())
}

func (s *tokenHandlerSuite) do(method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	res := map[string]interface{}{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	return rec, res
}

func (s *tokenHandlerSuite) TestDiscover() {
	s.discovery.On("Discover", mock.Anything, domain.ChainId(8453), "vitalik.eth").Return(&token.Discovery{
		ChainId: 8453,
		Owner:   owner,
		Tokens:  []token.Token{{ChainId: 8453, Address: contract, Symbol: "USDC", Decimals: 6, RawBalance: big.NewInt(1)}},
		Sources: map[token.Source]int{token.SourceIndexer: 1},
	}, nil).Once()

	rec, res := s.do(http.MethodGet, "/tokens/vitalik.eth?chainId=8453", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("success", res["status"])
	data := res["data"].(map[string]interface{})
	s.Equal(string(owner), data["owner"])
	s.Len(data["tokens"], 1)
}

func (s *tokenHandlerSuite) TestDiscoverMissingChain() {
	rec, res := s.do(http.MethodGet, "/tokens/"+string(owner), "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("fail", res["status"])
}

func (s *tokenHandlerSuite) TestDiscoverUnsupportedChain() {
	s.discovery.On("Discover", mock.Anything, domain.ChainId(5), string(owner)).
		Return(nil, xerrors.Errorf("chain 5: %w", domain.ErrUnsupportedChain)).Once()

	rec, _ := s.do(http.MethodGet, "/tokens/"+string(owner)+"?chainId=5", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *tokenHandlerSuite) TestAddCustom() {
	s.discovery.On("ResolveOwner", mock.Anything, string(owner)).Return(owner, nil).Once()
	s.discovery.On("AddCustomToken", mock.Anything, domain.ChainId(8453), owner, contract).
		Return(&token.Token{ChainId: 8453, Address: contract, Symbol: "USDC", Source: token.SourceCustom}, nil).Once()

	rec, res := s.do(http.MethodPost, "/tokens/"+string(owner)+"/custom", `{"chainId":8453,"address":"`+string(contract)+`"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("custom", res["data"].(map[string]interface{})["source"])
}

func (s *tokenHandlerSuite) TestAddCustomZeroBalance() {
	s.discovery.On("ResolveOwner", mock.Anything, string(owner)).Return(owner, nil).Once()
	s.discovery.On("AddCustomToken", mock.Anything, domain.ChainId(8453), owner, contract).
		Return(nil, xerrors.Errorf("contract: %w", domain.ErrZeroBalance)).Once()

	rec, _ := s.do(http.MethodPost, "/tokens/"+string(owner)+"/custom", `{"chainId":8453,"address":"`+string(contract)+`"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *tokenHandlerSuite) TestAddCustomBadOwner() {
	s.discovery.On("ResolveOwner", mock.Anything, "nobody.eth").
		Return(domain.Address(""), xerrors.Errorf("resolve: %w", domain.ErrInvalidAddress)).Once()

	rec, _ := s.do(http.MethodPost, "/tokens/nobody.eth/custom", `{"chainId":8453,"address":"`+string(contract)+`"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}
