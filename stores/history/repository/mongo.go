package repository

import (
	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/database/mongoclient"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/history"
	"github.com/x-xyz/dustsweep/service/query"
)

type archiveFilter struct {
	Owner domain.Address `bson:"owner"`
}

var archiveIndexes = []query.Index{
	{Keys: []string{"id"}, Unique: true},
	{Keys: []string{"owner", "-timestamp"}},
}

type archiveRepo struct {
	q query.Mongo
}

func NewArchiveRepo(q query.Mongo) history.Archive {
	return &archiveRepo{q: q}
}

// EnsureIndexes is run once at startup, listing by owner would otherwise scan
func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TableSwapHistory, archiveIndexes)
}

func (r *archiveRepo) Insert(c ctx.Ctx, e *history.Entry) error {
	err := r.q.Insert(c, domain.TableSwapHistory, e)
	if err == query.ErrDuplicateKey {
		// the same batch was already archived
		return nil
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "entryId": e.Id}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *archiveRepo) List(c ctx.Ctx, owner domain.Address, offset, limit int32) ([]history.Entry, error) {
	qry, err := mongoclient.MakeBsonM(archiveFilter{Owner: owner.ToLower()})
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}
	res := []history.Entry{}
	if err := r.q.Search(c, domain.TableSwapHistory, int(offset), int(limit), "-timestamp", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *archiveRepo) Count(c ctx.Ctx, owner domain.Address) (int, error) {
	qry, err := mongoclient.MakeBsonM(archiveFilter{Owner: owner.ToLower()})
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return 0, err
	}
	n, err := r.q.Count(c, domain.TableSwapHistory, qry)
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, err
	}
	return n, nil
}
