package quote

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinSellAmount(t *testing.T) {
	tests := []struct {
		decimals int32
		want     string
	}{
		{0, "1"},
		{2, "1"},
		{6, "1000"},
		{8, "100"},
		{18, "1000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, MinSellAmount(tt.decimals).String())
		})
	}
}

func TestClampSellAmount(t *testing.T) {
	req := require.New(t)
	in := big.NewInt(10)
	req.Equal("1000", ClampSellAmount(in, 6).String())
	req.Equal("10", in.String())
	req.Equal("5000", ClampSellAmount(big.NewInt(5000), 6).String())
	req.Equal("1000000000000", ClampSellAmount(nil, 18).String())
}

func TestSlippageBps(t *testing.T) {
	req := require.New(t)
	req.Equal(100, SlippageBps(0.01))
	req.Equal(50, SlippageBps(0.005))
	req.Equal(0, SlippageBps(0))
}
