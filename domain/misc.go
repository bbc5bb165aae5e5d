package domain

import (
	"math/big"
	"strconv"
	"strings"
)

var (
	Big1  = big.NewInt(1)
	Big10 = big.NewInt(10)
)

type ChainId int32

func (c ChainId) String() string {
	return strconv.Itoa(int(c))
}

type Address string

// NativeAddress stands for the chain's native asset, which is not an erc20 contract
const NativeAddress = Address("0x0000000000000000000000000000000000000000")

// EmptyAddress is kept as an alias for code that reads better with it
const EmptyAddress = NativeAddress

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// IsNative also accepts the 0xeeee... placeholder some aggregators use
func (a Address) IsNative() bool {
	l := a.ToLowerStr()
	return l == string(NativeAddress) || l == "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"
}

type TxHash string

func (h TxHash) ToLower() TxHash {
	return TxHash(strings.ToLower(string(h)))
}

// Network is the per chain constants every component needs
type Network struct {
	ChainId           ChainId
	Name              string
	WrappedNative     Address
	UsdStable         Address
	UsdStableDecimals int32
	NativeSymbol      string
	NativeUsdFeed     Address
	CoinGeckoPlatform string
	DefiLlamaSlug     string
}

type Networks map[ChainId]Network

func (n Networks) Get(chainId ChainId) (Network, error) {
	net, ok := n[chainId]
	if !ok {
		return Network{}, ErrUnsupportedChain
	}
	return net, nil
}

func (n Networks) Ids() []ChainId {
	ids := make([]ChainId, 0, len(n))
	for id := range n {
		ids = append(ids, id)
	}
	return ids
}
