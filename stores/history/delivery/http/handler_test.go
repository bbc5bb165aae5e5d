package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	bValidator "github.com/x-xyz/dustsweep/base/validator"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/history"
	"github.com/x-xyz/dustsweep/domain/history/mocks"
	"github.com/x-xyz/dustsweep/middleware"
)

const owner = domain.Address("0xab5801a7d398351b8be11c439e05c5b3259aec9b")

type historyHandlerSuite struct {
	suite.Suite

	e       *echo.Echo
	history *mocks.UseCase
}

func TestHistoryHandlerSuite(t *testing.T) {
	suite.Run(t, new(historyHandlerSuite))
}

func (s *historyHandlerSuite) SetupTest() {
	s.e = echo.New()
	s.e.Validator = bValidator.NewCustomValidator(validator.New())
	s.e.Use(middleware.InitMiddleware().AddContext())
	s.history = &mocks.UseCase{}
	New(s.e, s.history)
}

func (s *historyHandlerSuite) TearDownTest() {
	s.history.AssertExpectations(s.T())
}

func (s *historyHandlerSuite) get(target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	res := map[string]interface{}{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	return rec, res
}

func (s *historyHandlerSuite) TestList() {
	s.history.On("List", mock.Anything, owner).Return([]history.Entry{
		{Id: "b", Owner: owner, TotalValueUSD: 3, Timestamp: time.Unix(200, 0)},
		{Id: "a", Owner: owner, TotalValueUSD: 1, Timestamp: time.Unix(100, 0)},
	}, nil).Once()

	rec, res := s.get("/history/" + string(owner))
	s.Equal(http.StatusOK, rec.Code)
	data := res["data"].([]interface{})
	s.Len(data, 2)
	s.Equal("b", data[0].(map[string]interface{})["id"])
}

func (s *historyHandlerSuite) TestListInvalidOwner() {
	rec, res := s.get("/history/not-an-address")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("fail", res["status"])
}

func (s *historyHandlerSuite) TestAnalytics() {
	s.history.On("Analytics", mock.Anything, owner).
		Return(&history.Analytics{TotalVolumeUSD: 4, TotalSwaps: 2, AvgSwapValueUSD: 2}, nil).Once()

	rec, res := s.get("/history/" + string(owner) + "/analytics")
	s.Equal(http.StatusOK, rec.Code)
	data := res["data"].(map[string]interface{})
	s.Equal(float64(2), data["totalSwaps"])
	s.Equal(float64(2), data["avgSwapValueUsd"])
}

func (s *historyHandlerSuite) TestArchive() {
	s.history.On("ListArchive", mock.Anything, owner, int32(20), int32(10)).
		Return([]history.Entry{{Id: "x"}}, 31, nil).Once()

	rec, res := s.get("/history/" + string(owner) + "/archive?offset=20&limit=10")
	s.Equal(http.StatusOK, rec.Code)
	data := res["data"].(map[string]interface{})
	s.Equal(float64(31), data["total"])
	s.Len(data["entries"], 1)
}

func (s *historyHandlerSuite) TestArchiveDisabled() {
	s.history.On("ListArchive", mock.Anything, owner, int32(0), int32(0)).
		Return(nil, 0, xerrors.Errorf("history archive: %w", domain.ErrNotImplemented)).Once()

	rec, _ := s.get("/history/" + string(owner) + "/archive")
	s.Equal(http.StatusNotImplemented, rec.Code)
}

func (s *historyHandlerSuite) TestArchiveNegativeOffset() {
	rec, _ := s.get("/history/" + string(owner) + "/archive?offset=-1")
	s.Equal(http.StatusBadRequest, rec.Code)
}
