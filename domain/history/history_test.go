package history

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	req := require.New(t)

	a := Analyze(nil)
	req.Equal(Analytics{}, a)

	a = Analyze([]Entry{{TotalValueUSD: 10}, {TotalValueUSD: 20}, {TotalValueUSD: 0}})
	req.Equal(3, a.TotalSwaps)
	req.InDelta(30, a.TotalVolumeUSD, 1e-9)
	req.InDelta(10, a.AvgSwapValueUSD, 1e-9)
}
