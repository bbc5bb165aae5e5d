package ens

import (
	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain"
)

type ENS interface {
	// Resolve returns domain.ErrNotFound for unregistered names
	Resolve(ctx ctx.Ctx, name string) (domain.Address, error)
	ReverseResolve(ctx ctx.Ctx, address domain.Address) (string, error)
}
