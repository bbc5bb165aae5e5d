package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/history"
	"github.com/x-xyz/dustsweep/service/query"
	mQuery "github.com/x-xyz/dustsweep/service/query/mocks"
)

type archiveSuite struct {
	suite.Suite

	q    *mQuery.Mongo
	repo history.Archive
}

func TestArchiveSuite(t *testing.T) {
	suite.Run(t, new(archiveSuite))
}

func (s *archiveSuite) SetupTest() {
	s.q = &mQuery.Mongo{}
	s.repo = NewArchiveRepo(s.q)
}

func (s *archiveSuite) TearDownTest() {
	s.q.AssertExpectations(s.T())
}

func (s *archiveSuite) TestInsert() {
	e := entry(1)
	s.q.On("Insert", mock.Anything, domain.TableSwapHistory, e).Return(nil).Once()
	s.NoError(s.repo.Insert(ctx.Background(), e))

	s.q.On("Insert", mock.Anything, domain.TableSwapHistory, e).Return(query.ErrDuplicateKey).Once()
	s.NoError(s.repo.Insert(ctx.Background(), e))

	errDown := errors.New("down")
	s.q.On("Insert", mock.Anything, domain.TableSwapHistory, e).Return(errDown).Once()
	s.ErrorIs(s.repo.Insert(ctx.Background(), e), errDown)
}

func (s *archiveSuite) TestList() {
	want := bson.M{"owner": owner.ToLower()}
	s.q.On("Search", mock.Anything, domain.TableSwapHistory, 20, 10, "-timestamp", want, mock.Anything).
		Run(func(args mock.Arguments) {
			res := args.Get(6).(*[]history.Entry)
			*res = append(*res, *entry(2), *entry(1))
		}).Return(nil).Once()

	res, err := s.repo.List(ctx.Background(), owner, 20, 10)
	s.Require().NoError(err)
	s.Len(res, 2)
	s.Equal("e2", res[0].Id)
}

func (s *archiveSuite) TestCount() {
	s.q.On("Count", mock.Anything, domain.TableSwapHistory, bson.M{"owner": owner.ToLower()}).Return(7, nil).Once()
	n, err := s.repo.Count(ctx.Background(), owner)
	s.Require().NoError(err)
	s.Equal(7, n)
}

func (s *archiveSuite) TestEnsureIndexes() {
	s.q.On("EnsureIndexes", mock.Anything, domain.TableSwapHistory, archiveIndexes).Return(nil).Once()
	s.NoError(EnsureIndexes(ctx.Background(), s.q))
}
