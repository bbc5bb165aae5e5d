package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/base/metrics"
	"github.com/x-xyz/dustsweep/base/validator"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/history"
)

const (
	defaultArchiveLimit = 20
	maxArchiveLimit     = 100
)

var timeNow = time.Now

type HistoryCfg struct {
	Repo history.Repo
	// Archive and Publisher are optional
	Archive   history.Archive
	Publisher history.Publisher
}

type impl struct {
	repo      history.Repo
	archive   history.Archive
	publisher history.Publisher
	metrics   metrics.Service
}

func New(cfg *HistoryCfg) history.UseCase {
	return &impl{
		repo:      cfg.Repo,
		archive:   cfg.Archive,
		publisher: cfg.Publisher,
		metrics:   metrics.New("history"),
	}
}

func checkOwner(owner domain.Address) error {
	if !validator.IsValidAddress(string(owner)) {
		return xerrors.Errorf("owner %q: %w", owner, domain.ErrInvalidAddress)
	}
	return nil
}

// Record only fails when the recent window could not be written, archive and stream are best effort
func (im *impl) Record(c ctx.Ctx, e *history.Entry) error {
	if err := checkOwner(e.Owner); err != nil {
		return err
	}
	e.Owner = e.Owner.ToLower()
	if e.Id == "" {
		e.Id = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = timeNow()
	}
	c = ctx.WithFields(c, log.Fields{"entryId": e.Id, "owner": e.Owner})

	if err := im.repo.Append(c, e); err != nil {
		c.WithFields(log.Fields{"err": err}).Error("repo.Append failed")
		return err
	}
	im.metrics.BumpSum("record.count", 1)
	im.metrics.BumpHistogram("record.usd", e.TotalValueUSD)

	if im.archive != nil {
		if err := im.archive.Insert(c, e); err != nil {
			c.WithFields(log.Fields{"err": err}).Warn("archive.Insert failed")
		}
	}
	if im.publisher != nil {
		if err := im.publisher.Publish(c, e); err != nil {
			c.WithFields(log.Fields{"err": err}).Warn("publisher.Publish failed")
		}
	}
	return nil
}

func (im *impl) List(c ctx.Ctx, owner domain.Address) ([]history.Entry, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	return im.repo.List(c, owner.ToLower())
}

func (im *impl) ListArchive(c ctx.Ctx, owner domain.Address, offset, limit int32) ([]history.Entry, int, error) {
	if err := checkOwner(owner); err != nil {
		return nil, 0, err
	}
	if im.archive == nil {
		return nil, 0, xerrors.Errorf("history archive: %w", domain.ErrNotImplemented)
	}
	if offset < 0 {
		return nil, 0, xerrors.Errorf("offset %d: %w", offset, domain.ErrBadParamInput)
	}
	if limit <= 0 {
		limit = defaultArchiveLimit
	} else if limit > maxArchiveLimit {
		limit = maxArchiveLimit
	}

	total, err := im.archive.Count(c, owner)
	if err != nil {
		return nil, 0, err
	}
	entries, err := im.archive.List(c, owner, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Analytics covers the recent window only
func (im *impl) Analytics(c ctx.Ctx, owner domain.Address) (*history.Analytics, error) {
	entries, err := im.List(c, owner)
	if err != nil {
		return nil, err
	}
	a := history.Analyze(entries)
	return &a, nil
}
