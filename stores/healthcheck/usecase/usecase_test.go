package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/domain"
	hcdomain "github.com/x-xyz/dustsweep/domain/healthcheck"
	"github.com/x-xyz/dustsweep/domain/healthcheck/mocks"
)

func TestCheck(t *testing.T) {
	errDown := errors.New("down")

	tests := []struct {
		name    string
		db      map[string]error
		chains  map[domain.ChainId]error
		healthy bool
	}{
		{
			name:    "all up",
			db:      map[string]error{"redis": nil, "mongo": nil},
			chains:  map[domain.ChainId]error{1: nil, 8453: nil},
			healthy: true,
		},
		{
			name:    "store down",
			db:      map[string]error{"redis": errDown},
			chains:  map[domain.ChainId]error{1: nil},
			healthy: false,
		},
		{
			name:    "one chain down",
			db:      map[string]error{"redis": nil},
			chains:  map[domain.ChainId]error{1: errDown, 8453: nil},
			healthy: true,
		},
		{
			name:    "every chain down",
			db:      map[string]error{"redis": nil},
			chains:  map[domain.ChainId]error{1: errDown},
			healthy: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			repo := &mocks.Repo{}
			repo.On("PingDB", mock.Anything).Return(tt.db)
			repo.On("PingChains", mock.Anything).Return(tt.chains)

			report := New(repo).Check(ctx.Background())
			req.Equal(tt.healthy, report.Healthy)
			req.Len(report.Components, len(tt.db)+len(tt.chains))
			if err, ok := tt.chains[1]; ok {
				want := hcdomain.StatusOk
				if err != nil {
					want = err.Error()
				}
				req.Equal(want, report.Components["chain:1"])
			}
		})
	}
}
