package keys

import (
	"crypto/md5"
	"fmt"
	"sort"
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxHistory is used for prefixing the per owner swap history list
	PfxHistory = "history"
	// PfxPrice is used for prefixing price lookups by address set
	PfxPrice = "price"
	// PfxNativePrice is used for prefixing native asset usd prices
	PfxNativePrice = "nativePrice"
	// PfxTokenMetadata is used for prefixing erc20 metadata
	PfxTokenMetadata = "tokenMetadata"
	// PfxEns is used for prefixing ens lookups
	PfxEns = "ens"
	// PfxChainlink is used for prefixing chainlink answers
	PfxChainlink = "chainlink"
	// PfxCoinGecko is used for prefixing coingecko responses
	PfxCoinGecko = "coingecko"
)

// MD5 hashes the data with md5
func MD5(data string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(data)))
}

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// SetKey hashes a set of members into one key component, member order does not matter
func SetKey(members ...string) string {
	sorted := make([]string, len(members))
	for i, m := range members {
		sorted[i] = strings.ToLower(m)
	}
	sort.Strings(sorted)
	return MD5(strings.Join(sorted, ","))
}

// GetPrefix extracts the prefix of a key.
// will take more than one prefix. And if prefix start with capital
// letter, which means it's a table, a `Table:` prefix will be added.
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join([]string{s[0], s[1]}, ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
