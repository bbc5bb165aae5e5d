package repository

import (
	_ "embed"
	"os"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/token"
)

//go:embed allowlist.yaml
var defaultAllowList []byte

type registry struct {
	known map[domain.ChainId][]token.KnownToken
	index map[domain.ChainId]map[domain.Address]token.KnownToken
}

// NewRegistry loads the allow list at path, or the built in one when path is empty
func NewRegistry(path string) (token.Registry, error) {
	data := defaultAllowList
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, xerrors.Errorf("read allow list %s: %w", path, err)
		}
	}
	return ParseRegistry(data)
}

func ParseRegistry(data []byte) (token.Registry, error) {
	known := map[domain.ChainId][]token.KnownToken{}
	if err := yaml.Unmarshal(data, &known); err != nil {
		return nil, xerrors.Errorf("parse allow list: %w", err)
	}

	r := &registry{
		known: map[domain.ChainId][]token.KnownToken{},
		index: map[domain.ChainId]map[domain.Address]token.KnownToken{},
	}
	for chainId, tokens := range known {
		r.index[chainId] = map[domain.Address]token.KnownToken{}
		for _, t := range tokens {
			t.Address = t.Address.ToLower()
			if _, dup := r.index[chainId][t.Address]; dup {
				continue
			}
			r.index[chainId][t.Address] = t
			r.known[chainId] = append(r.known[chainId], t)
		}
	}
	return r, nil
}

func (r *registry) Known(chainId domain.ChainId) []token.KnownToken {
	return r.known[chainId]
}

func (r *registry) Lookup(chainId domain.ChainId, addr domain.Address) (token.KnownToken, bool) {
	t, ok := r.index[chainId][addr.ToLower()]
	return t, ok
}
