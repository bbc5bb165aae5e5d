package healthcheck

import (
	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain"
)

const StatusOk = "ok"

// Report maps each dependency to "ok" or the reason it failed
type Report struct {
	Healthy    bool              `json:"healthy"`
	Components map[string]string `json:"components"`
}

// UseCase represents the healthCheck's usecases
type UseCase interface {
	Check(c ctx.Ctx) *Report
}

// Repo is repository layer of healthCheck
type Repo interface {
	PingDB(c ctx.Ctx) map[string]error
	PingChains(c ctx.Ctx) map[domain.ChainId]error
}
