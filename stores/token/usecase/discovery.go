package usecase

import (
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/viney-shih/goroutines"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/base/metrics"
	"github.com/x-xyz/dustsweep/base/validator"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/keys"
	"github.com/x-xyz/dustsweep/domain/token"
	"github.com/x-xyz/dustsweep/service/cache"
	"github.com/x-xyz/dustsweep/service/cache/provider"
	"github.com/x-xyz/dustsweep/service/cache/provider/primitive"
)

const (
	defaultMaxPages      = 5
	defaultConcurrency   = 12
	defaultCallTimeout   = 5 * time.Second
	defaultSourceTimeout = 30 * time.Second
	metadataTtl          = 24 * time.Hour
)

type DiscoveryCfg struct {
	Networks domain.Networks
	// Indexer, Transfers, Registry and Resolver are optional
	Indexer       token.BalanceIndexer
	Transfers     token.TransferHistory
	Chain         token.ChainReader
	Registry      token.Registry
	Resolver      token.NameResolver
	MetadataCache provider.Provider
	MaxPages      int
	Concurrency   int
	CallTimeout   time.Duration
	SourceTimeout time.Duration
}

type impl struct {
	networks      domain.Networks
	indexer       token.BalanceIndexer
	transfers     token.TransferHistory
	chain         token.ChainReader
	registry      token.Registry
	resolver      token.NameResolver
	metaCache     cache.Service
	maxPages      int
	concurrency   int
	callTimeout   time.Duration
	sourceTimeout time.Duration
	metrics       metrics.Service
}

func NewDiscovery(cfg *DiscoveryCfg) token.DiscoveryUseCase {
	im := &impl{
		networks:      cfg.Networks,
		indexer:       cfg.Indexer,
		transfers:     cfg.Transfers,
		chain:         cfg.Chain,
		registry:      cfg.Registry,
		resolver:      cfg.Resolver,
		maxPages:      cfg.MaxPages,
		concurrency:   cfg.Concurrency,
		callTimeout:   cfg.CallTimeout,
		sourceTimeout: cfg.SourceTimeout,
		metrics:       metrics.New("discovery"),
	}
	if im.maxPages <= 0 {
		im.maxPages = defaultMaxPages
	}
	if im.concurrency <= 0 {
		im.concurrency = defaultConcurrency
	}
	if im.callTimeout <= 0 {
		im.callTimeout = defaultCallTimeout
	}
	if im.sourceTimeout <= 0 {
		im.sourceTimeout = defaultSourceTimeout
	}
	metaProvider := cfg.MetadataCache
	if metaProvider == nil {
		metaProvider = primitive.NewPrimitive("tokenMetadata", 16)
	}
	im.metaCache = cache.New(cache.ServiceConfig{
		Ttl:   metadataTtl,
		Pfx:   keys.PfxTokenMetadata,
		Cache: metaProvider,
	})
	return im
}

// candidate is one contract reported by at least one source
type candidate struct {
	addr    domain.Address
	sources []token.Source
	// raw is the balance a source reported, nil when the source only knows the contract
	raw    *big.Int
	meta   *token.Metadata
	native bool
}

func (cand *candidate) hasSource(s token.Source) bool {
	for _, src := range cand.sources {
		if src == s {
			return true
		}
	}
	return false
}

type sourceResult struct {
	candidates []candidate
	err        error
}

type sourceFunc func(c bCtx.Ctx) ([]candidate, error)

func (im *impl) ResolveOwner(c bCtx.Ctx, input string) (domain.Address, error) {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "0x") || strings.HasPrefix(input, "0X") {
		if !validator.IsValidAddress(input) {
			return "", xerrors.Errorf("owner %q: %w", input, domain.ErrInvalidAddress)
		}
		return domain.Address(input).ToLower(), nil
	}
	if im.resolver == nil || !strings.Contains(input, ".") {
		return "", xerrors.Errorf("owner %q: %w", input, domain.ErrInvalidAddress)
	}

	addr, err := im.resolver.Resolve(c, input)
	if errors.Is(err, domain.ErrNotFound) {
		return "", xerrors.Errorf("unregistered name %q: %w", input, domain.ErrInvalidAddress)
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "name": input}).Error("resolver.Resolve failed")
		return "", err
	}
	return addr.ToLower(), nil
}

func (im *impl) Discover(c bCtx.Ctx, chainId domain.ChainId, input string) (*token.Discovery, error) {
	network, err := im.networks.Get(chainId)
	if err != nil {
		return nil, xerrors.Errorf("chain %d: %w", chainId, err)
	}
	owner, err := im.ResolveOwner(c, input)
	if err != nil {
		return nil, err
	}

	c = bCtx.WithFields(c, log.Fields{"chainId": chainId, "owner": owner})
	defer im.metrics.BumpTime("discover.time").End()

	results := im.runSources(c, network, owner)
	tokens := im.resolveCandidates(c, chainId, owner, merge(results))

	res := &token.Discovery{
		ChainId: chainId,
		Owner:   owner,
		Tokens:  tokens,
		Sources: map[token.Source]int{},
	}
	for s, r := range results {
		if r.err != nil {
			if res.Failed == nil {
				res.Failed = map[token.Source]string{}
			}
			res.Failed[s] = r.err.Error()
			im.metrics.BumpSum("source.err", 1, "source", string(s))
		}
	}
	for _, t := range tokens {
		res.Sources[t.Source]++
	}
	for s, n := range res.Sources {
		im.metrics.BumpSum("source.tokens", float64(n), "source", string(s))
	}
	return res, nil
}

func (im *impl) AddCustomToken(c bCtx.Ctx, chainId domain.ChainId, owner, contract domain.Address) (*token.Token, error) {
	if _, err := im.networks.Get(chainId); err != nil {
		return nil, xerrors.Errorf("chain %d: %w", chainId, err)
	}
	if !validator.IsValidAddress(string(owner)) {
		return nil, xerrors.Errorf("owner %q: %w", owner, domain.ErrInvalidAddress)
	}
	if !validator.IsValidAddress(string(contract)) || contract.IsNative() {
		return nil, xerrors.Errorf("contract %q: %w", contract, domain.ErrInvalidAddress)
	}
	owner, contract = owner.ToLower(), contract.ToLower()

	raw, err := im.balanceOf(c, chainId, contract, owner)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "contract": contract}).Error("balanceOf failed")
		return nil, err
	}
	if raw.Sign() <= 0 {
		return nil, xerrors.Errorf("contract %s: %w", contract, domain.ErrZeroBalance)
	}

	var meta *token.Metadata
	if im.registry != nil {
		if known, ok := im.registry.Lookup(chainId, contract); ok {
			meta = known.Metadata()
		}
	}
	if meta == nil {
		meta = im.metadata(c, chainId, contract)
	}

	tok := &token.Token{
		ChainId: chainId,
		Address: contract,
		Source:  token.SourceCustom,
	}
	meta.Apply(tok)
	tok.SetBalance(raw)
	return tok, nil
}

func (im *impl) sources(network domain.Network, owner domain.Address) map[token.Source]sourceFunc {
	chainId := network.ChainId
	fns := map[token.Source]sourceFunc{
		token.SourceNative: func(c bCtx.Ctx) ([]candidate, error) {
			return im.fromNative(c, network, owner)
		},
	}
	if im.indexer != nil {
		fns[token.SourceIndexer] = func(c bCtx.Ctx) ([]candidate, error) {
			return im.fromIndexer(c, chainId, owner)
		}
	}
	if im.transfers != nil {
		fns[token.SourceTransfers] = func(c bCtx.Ctx) ([]candidate, error) {
			return im.fromTransfers(c, chainId, owner)
		}
	}
	if im.registry != nil {
		fns[token.SourceAllowList] = func(c bCtx.Ctx) ([]candidate, error) {
			return im.fromAllowList(chainId), nil
		}
	}
	return fns
}

// runSources never fails, a failed source only carries its error
func (im *impl) runSources(c bCtx.Ctx, network domain.Network, owner domain.Address) map[token.Source]*sourceResult {
	fns := im.sources(network, owner)
	results := make(map[token.Source]*sourceResult, len(fns))
	for s := range fns {
		results[s] = &sourceResult{}
	}

	g, gctx := errgroup.WithContext(c)
	for s, fn := range fns {
		res := results[s]
		g.Go(func() error {
			defer im.metrics.BumpTime("source.time", "source", string(s)).End()
			sc, cancel := bCtx.WithTimeout(bCtx.Ctx{Context: gctx, Logger: c.Logger}, im.sourceTimeout)
			defer cancel()

			res.candidates, res.err = fn(sc)
			if res.err != nil {
				c.WithFields(log.Fields{"err": res.err, "source": s}).Warn("discovery source failed")
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (im *impl) fromIndexer(c bCtx.Ctx, chainId domain.ChainId, owner domain.Address) ([]candidate, error) {
	res := []candidate{}
	cursor := ""
	for page := 0; page < im.maxPages; page++ {
		p, err := im.indexer.GetTokenBalances(c, chainId, owner, cursor)
		if err != nil {
			if page == 0 {
				return nil, err
			}
			// earlier pages are still good
			c.WithFields(log.Fields{"err": err, "page": page}).Warn("indexer paging stopped")
			return res, nil
		}
		for _, b := range p.Balances {
			if b.Raw == nil || b.Raw.Sign() <= 0 {
				continue
			}
			res = append(res, candidate{addr: b.Contract.ToLower(), raw: b.Raw})
		}
		if p.NextCursor == "" {
			break
		}
		cursor = p.NextCursor
	}
	return res, nil
}

func (im *impl) fromTransfers(c bCtx.Ctx, chainId domain.ChainId, owner domain.Address) ([]candidate, error) {
	contracts, err := im.transfers.GetTransferContracts(c, chainId, owner)
	if err != nil {
		return nil, err
	}
	res := make([]candidate, 0, len(contracts))
	for _, tc := range contracts {
		res = append(res, candidate{addr: tc.Contract.ToLower(), meta: tc.Metadata})
	}
	return res, nil
}

func (im *impl) fromAllowList(chainId domain.ChainId) []candidate {
	known := im.registry.Known(chainId)
	res := make([]candidate, 0, len(known))
	for _, k := range known {
		res = append(res, candidate{addr: k.Address.ToLower(), meta: k.Metadata()})
	}
	return res
}

func (im *impl) fromNative(c bCtx.Ctx, network domain.Network, owner domain.Address) ([]candidate, error) {
	tc, cancel := bCtx.WithTimeout(c, im.callTimeout)
	defer cancel()
	raw, err := im.chain.NativeBalance(tc, network.ChainId, owner)
	if err != nil {
		return nil, err
	}
	if raw == nil || raw.Sign() <= 0 {
		return []candidate{}, nil
	}
	symbol, name, decimals := network.NativeSymbol, network.NativeSymbol, token.DefaultDecimals
	return []candidate{{
		addr:   domain.NativeAddress,
		raw:    raw,
		native: true,
		meta:   &token.Metadata{Symbol: &symbol, Name: &name, Decimals: &decimals},
	}}, nil
}

// merge dedups by lowercase address. Sources are visited in token.SourceOrder so
// the first source wins the position and the first metadata wins each field.
func merge(results map[token.Source]*sourceResult) []*candidate {
	byAddr := map[domain.Address]*candidate{}
	ordered := []*candidate{}
	for _, s := range token.SourceOrder {
		res, ok := results[s]
		if !ok {
			continue
		}
		for _, cand := range res.candidates {
			if cand.addr.IsEmpty() {
				continue
			}
			existing, ok := byAddr[cand.addr]
			if !ok {
				merged := cand
				merged.sources = []token.Source{s}
				merged.meta = &token.Metadata{}
				merged.meta.Merge(cand.meta)
				byAddr[cand.addr] = &merged
				ordered = append(ordered, &merged)
				continue
			}
			if !existing.hasSource(s) {
				existing.sources = append(existing.sources, s)
			}
			existing.meta.Merge(cand.meta)
			if existing.raw == nil {
				existing.raw = cand.raw
			}
		}
	}
	return ordered
}

func (im *impl) resolveCandidates(c bCtx.Ctx, chainId domain.ChainId, owner domain.Address, cands []*candidate) []token.Token {
	tokens := []token.Token{}
	if len(cands) == 0 {
		return tokens
	}

	resolved := make([]*token.Token, len(cands))
	b := goroutines.NewBatch(im.concurrency, goroutines.WithBatchSize(len(cands)))
	defer b.Close()
	for i := 0; i < len(cands); i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			tok, err := im.resolveCandidate(c, chainId, owner, cands[idx])
			resolved[idx] = tok
			return tok, err
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithField("err", ret.Error()).Warn("candidate dropped")
		}
	}

	for _, tok := range resolved {
		if tok != nil {
			tokens = append(tokens, *tok)
		}
	}
	return tokens
}

// resolveCandidate returns nil for a zero balance. A contract seen by more than
// one source, or by a source that carries no balance, is re-read on chain.
func (im *impl) resolveCandidate(c bCtx.Ctx, chainId domain.ChainId, owner domain.Address, cand *candidate) (*token.Token, error) {
	raw := cand.raw
	if !cand.native && (raw == nil || len(cand.sources) > 1) {
		bal, err := im.balanceOf(c, chainId, cand.addr, owner)
		switch {
		case err == nil:
			raw = bal
		case raw == nil:
			return nil, xerrors.Errorf("balance of %s: %w", cand.addr, err)
		}
	}
	if raw == nil || raw.Sign() <= 0 {
		return nil, nil
	}

	meta := &token.Metadata{}
	meta.Merge(cand.meta)
	if !cand.native && !meta.Complete() {
		meta.Merge(im.metadata(c, chainId, cand.addr))
	}

	tok := &token.Token{
		ChainId:  chainId,
		Address:  cand.addr,
		IsNative: cand.native,
		Source:   cand.sources[0],
	}
	meta.Apply(tok)
	tok.SetBalance(raw)
	return tok, nil
}

func (im *impl) balanceOf(c bCtx.Ctx, chainId domain.ChainId, contract, owner domain.Address) (*big.Int, error) {
	tc, cancel := bCtx.WithTimeout(c, im.callTimeout)
	defer cancel()
	return im.chain.BalanceOf(tc, chainId, contract, owner)
}

// metadata never fails, missing fields stay nil and become placeholders later
func (im *impl) metadata(c bCtx.Ctx, chainId domain.ChainId, contract domain.Address) *token.Metadata {
	res := token.Metadata{}
	key := keys.RedisKey(chainId.String(), contract.ToLowerStr())
	err := im.metaCache.GetByFunc(c, key, &res, func() (interface{}, error) {
		return im.fetchMetadata(c, chainId, contract)
	})
	if err != nil {
		c.WithFields(log.Fields{"err": err, "contract": contract}).Warn("metadata unavailable")
		return &token.Metadata{}
	}
	return &res
}

func (im *impl) fetchMetadata(c bCtx.Ctx, chainId domain.ChainId, contract domain.Address) (*token.Metadata, error) {
	meta := &token.Metadata{}
	var errs []error

	if im.indexer != nil {
		tc, cancel := bCtx.WithTimeout(c, im.callTimeout)
		m, err := im.indexer.GetTokenMetadata(tc, chainId, contract)
		cancel()
		if err != nil {
			errs = append(errs, err)
		}
		meta.Merge(m)
	}

	if !meta.Complete() {
		tc, cancel := bCtx.WithTimeout(c, im.callTimeout)
		m, err := im.chain.Metadata(tc, chainId, contract)
		cancel()
		if err != nil {
			errs = append(errs, err)
		}
		meta.Merge(m)
	}

	if meta.Symbol == nil && meta.Name == nil && meta.Decimals == nil && len(errs) > 0 {
		// nothing learned, keep it out of the cache
		return nil, errors.Join(errs...)
	}
	return meta, nil
}
