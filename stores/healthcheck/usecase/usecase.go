package usecase

import (
	"fmt"

	"github.com/x-xyz/dustsweep/base/ctx"
	hcdomain "github.com/x-xyz/dustsweep/domain/healthcheck"
)

type impl struct {
	repo hcdomain.Repo
}

// New creates a healthcheck usecase over repo
func New(repo hcdomain.Repo) hcdomain.UseCase {
	return &impl{
		repo: repo,
	}
}

// Check is healthy when every store answers and at least one chain rpc does
func (im *impl) Check(c ctx.Ctx) *hcdomain.Report {
	report := &hcdomain.Report{
		Healthy:    true,
		Components: map[string]string{},
	}

	for name, err := range im.repo.PingDB(c) {
		report.Components[name] = status(err)
		if err != nil {
			report.Healthy = false
		}
	}

	chains := im.repo.PingChains(c)
	anyChain := len(chains) == 0
	for id, err := range chains {
		report.Components[fmt.Sprintf("chain:%d", id)] = status(err)
		if err == nil {
			anyChain = true
		}
	}
	if !anyChain {
		report.Healthy = false
	}
	return report
}

func status(err error) string {
	if err != nil {
		return err.Error()
	}
	return hcdomain.StatusOk
}
