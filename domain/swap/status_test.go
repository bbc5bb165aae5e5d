package swap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusChecking, true},
		{StatusPending, StatusSwapping, false},
		{StatusChecking, StatusApproved, true},
		{StatusChecking, StatusSwapping, true},
		{StatusChecking, StatusFailed, true},
		{StatusChecking, StatusSuccess, false},
		{StatusApproved, StatusSwapping, true},
		{StatusSwapping, StatusSuccess, true},
		{StatusSwapping, StatusFailed, true},
		{StatusSuccess, StatusFailed, false},
		{StatusFailed, StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			require.Equal(t, tt.ok, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	req := require.New(t)
	req.True(StatusSuccess.IsTerminal())
	req.True(StatusFailed.IsTerminal())
	req.False(StatusSwapping.IsTerminal())
	req.False(StatusPending.IsTerminal())
}
