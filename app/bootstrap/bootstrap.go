// Package bootstrap builds the service graph shared by the api server and the sweeper cli.
package bootstrap

import (
	"net/http"

	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/config"
	"github.com/x-xyz/dustsweep/base/ctx"
	"github.com/x-xyz/dustsweep/base/database/mongoclient"
	"github.com/x-xyz/dustsweep/base/database/redisclient"
	"github.com/x-xyz/dustsweep/base/log"
	"github.com/x-xyz/dustsweep/base/metrics"
	"github.com/x-xyz/dustsweep/domain"
	"github.com/x-xyz/dustsweep/domain/dust"
	"github.com/x-xyz/dustsweep/domain/history"
	"github.com/x-xyz/dustsweep/domain/price"
	"github.com/x-xyz/dustsweep/domain/quote"
	"github.com/x-xyz/dustsweep/domain/swap"
	"github.com/x-xyz/dustsweep/domain/token"
	"github.com/x-xyz/dustsweep/service/alchemy"
	"github.com/x-xyz/dustsweep/service/cache/provider"
	"github.com/x-xyz/dustsweep/service/cache/provider/compound"
	"github.com/x-xyz/dustsweep/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/dustsweep/service/cache/provider/redis"
	"github.com/x-xyz/dustsweep/service/chain"
	"github.com/x-xyz/dustsweep/service/chain/contract"
	chainlinkService "github.com/x-xyz/dustsweep/service/chainlink"
	"github.com/x-xyz/dustsweep/service/coingecko"
	"github.com/x-xyz/dustsweep/service/defillama"
	"github.com/x-xyz/dustsweep/service/ens"
	"github.com/x-xyz/dustsweep/service/explorer"
	"github.com/x-xyz/dustsweep/service/query"
	"github.com/x-xyz/dustsweep/service/redis"
	"github.com/x-xyz/dustsweep/service/zeroex"
	chainlinkUsecase "github.com/x-xyz/dustsweep/stores/chainlink/usecase"
	dustUsecase "github.com/x-xyz/dustsweep/stores/dust/usecase"
	historyRepository "github.com/x-xyz/dustsweep/stores/history/repository"
	historyUsecase "github.com/x-xyz/dustsweep/stores/history/usecase"
	priceUsecase "github.com/x-xyz/dustsweep/stores/price/usecase"
	quoteUsecase "github.com/x-xyz/dustsweep/stores/quote/usecase"
	swapUsecase "github.com/x-xyz/dustsweep/stores/swap/usecase"
	tokenRepository "github.com/x-xyz/dustsweep/stores/token/repository"
	tokenUsecase "github.com/x-xyz/dustsweep/stores/token/usecase"
)

const mainnet = domain.ChainId(1)

// Services is the wired graph, optional stores are nil when not configured
type Services struct {
	Networks domain.Networks
	Chain    chain.Client
	Erc20    *contract.Erc20

	Redis     redis.Service
	Mongo     *mongoclient.Client
	Publisher *historyRepository.KafkaPublisher

	CoinGecko    coingecko.Client
	Ens          ens.ENS
	Discovery    token.DiscoveryUseCase
	Price        price.UseCase
	Dust         dust.UseCase
	Quote        quote.UseCase
	History      history.UseCase
	Orchestrator swap.Orchestrator
}

// Build dials every configured backend. A missing redis is fatal only when requireRedis is set.
func Build(c ctx.Ctx, cfg *config.Config, requireRedis bool) (*Services, error) {
	s := &Services{Networks: cfg.DomainNetworks()}

	if cfg.Redis.URI != "" {
		c.Info("init redis cache")
		pool, err := redisclient.ConnectRedis(cfg.Redis.URI, redisclient.RedisParam{
			Password:       cfg.Redis.Password,
			PoolMultiplier: cfg.Redis.PoolMultiplier,
			Retry:          true,
		})
		if err != nil {
			return nil, xerrors.Errorf("connect redis: %w", err)
		}
		s.Redis = redis.New(cfg.Redis.Name, metrics.New(cfg.Redis.Name), &redis.Pools{Src: pool})
	} else if requireRedis {
		return nil, xerrors.New("redis.uri is not configured")
	}

	if cfg.Mongo.Enabled {
		c.Info("init mongo")
		client, err := mongoclient.ConnectMongoClient(mongoclient.Param{
			URI:                cfg.Mongo.URI,
			AuthDBName:         cfg.Mongo.AuthDBName,
			DBName:             cfg.Mongo.DBName,
			SSL:                cfg.Mongo.EnableSSL,
			SetSafe:            true,
			PoolSizeMultiplier: 2,
		})
		if err != nil {
			return nil, xerrors.Errorf("connect mongo: %w", err)
		}
		s.Mongo = client
	}

	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.Topic != "" {
		s.Publisher = historyRepository.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	endpoints := map[int32]chain.Endpoint{}
	for _, n := range cfg.Networks {
		endpoints[n.ChainId] = chain.Endpoint{Url: n.RpcUrl, Concurrency: n.RpcConcurrency}
	}
	chainClient, err := chain.NewClient(c, &chain.ClientCfg{
		Endpoints:   endpoints,
		ReceiptPoll: cfg.Swap.ReceiptPollPeriod,
	})
	if err != nil {
		c.WithField("err", err).Warn("chainService started with error")
	}
	s.Chain = chainClient
	s.Erc20 = contract.NewErc20(chainClient)

	s.buildUseCases(c, cfg)
	return s, nil
}

// cacheProvider layers the process cache over redis when redis is available
func (s *Services) cacheProvider(name string, sizeMB int) provider.Provider {
	local := primitive.NewPrimitive(name, sizeMB)
	if s.Redis == nil {
		return local
	}
	return compound.NewCompound(local, redisCache.NewRedis(s.Redis))
}

func (s *Services) buildUseCases(c ctx.Ctx, cfg *config.Config) {
	httpClient := &http.Client{}

	registry, err := tokenRepository.NewRegistry(cfg.Discovery.AllowListPath)
	if err != nil {
		c.WithField("err", err).Warn("allow list unavailable, using the built in one")
		registry, _ = tokenRepository.NewRegistry("")
	}

	alchemyEndpoints := cfg.Endpoints(func(n config.Network) string {
		if n.AlchemyUrl == "" || cfg.Alchemy.ApiKey == "" {
			return ""
		}
		return n.AlchemyUrl + cfg.Alchemy.ApiKey
	})
	explorerEndpoints := cfg.Endpoints(func(n config.Network) string { return n.ExplorerUrl })

	discoveryCfg := &tokenUsecase.DiscoveryCfg{
		Networks:      s.Networks,
		Chain:         s.Erc20,
		Registry:      registry,
		MetadataCache: s.cacheProvider("tokenMetadata", 16),
		MaxPages:      cfg.Discovery.IndexerMaxPages,
		Concurrency:   cfg.Discovery.Concurrency,
		CallTimeout:   cfg.Discovery.CallTimeout,
		SourceTimeout: cfg.Discovery.SourceTimeout,
	}
	if len(alchemyEndpoints) > 0 {
		discoveryCfg.Indexer = alchemy.NewClient(&alchemy.ClientCfg{
			HttpClient: httpClient,
			Endpoints:  alchemyEndpoints,
			MaxCount:   cfg.Alchemy.MaxCount,
			Timeout:    cfg.Alchemy.Timeout,
		})
	}
	if len(explorerEndpoints) > 0 {
		discoveryCfg.Transfers = explorer.NewClient(&explorer.ClientCfg{
			HttpClient: httpClient,
			Endpoints:  explorerEndpoints,
			ApiKey:     cfg.Explorer.ApiKey,
			PageSize:   cfg.Discovery.ExplorerPageSize,
			MaxPages:   cfg.Discovery.ExplorerMaxPages,
			Timeout:    cfg.Explorer.Timeout,
		})
	}
	if n, ok := cfg.NetworkByChainId(int32(mainnet)); ok {
		// go-ens needs a full contract backend, the throttled client only covers calls
		backend, err := ethclient.DialContext(c, n.RpcUrl)
		if err != nil {
			c.WithField("err", err).Warn("ens backend unavailable")
		} else {
			s.Ens = ens.New(backend, s.Redis)
			discoveryCfg.Resolver = s.Ens
		}
	}
	s.Discovery = tokenUsecase.NewDiscovery(discoveryCfg)

	s.CoinGecko = coingecko.NewClient(&coingecko.ClientCfg{
		HttpClient: httpClient,
		ApiKey:     cfg.CoinGecko.ApiKey,
		Pro:        cfg.CoinGecko.Pro,
		Timeout:    cfg.CoinGecko.Timeout,
		BatchSize:  cfg.Price.BatchSize,
		CacheTtl:   cfg.Price.CacheTtl,
		Cache:      s.cacheProvider("coingecko", 16),
	})
	priceCfg := &priceUsecase.PriceCfg{
		Networks:  s.Networks,
		CoinGecko: s.CoinGecko,
		Chainlink: chainlinkUsecase.New(chainlinkService.New(s.Chain, s.cacheProvider("chainlink", 4), cfg.Price.CacheTtl)),
		Registry:  registry,
		Cache:     s.cacheProvider("price", 32),
		CacheTtl:  cfg.Price.CacheTtl,
	}
	if cfg.DefiLlama.Enabled {
		priceCfg.DefiLlama = defillama.NewClient(&defillama.ClientCfg{
			HttpClient: httpClient,
			Timeout:    cfg.DefiLlama.Timeout,
		})
	}
	s.Price = priceUsecase.New(priceCfg)
	s.Dust = dustUsecase.New(s.Discovery, s.Price)

	s.Quote = quoteUsecase.New(&quoteUsecase.QuoteCfg{
		Networks: s.Networks,
		Aggregator: zeroex.NewClient(&zeroex.ClientCfg{
			HttpClient: httpClient,
			BaseUrl:    cfg.ZeroEx.ApiUrl,
			ApiKey:     cfg.ZeroEx.ApiKey,
			Timeout:    cfg.ZeroEx.Timeout,
		}),
		Fee:             cfg.FeePolicy(),
		HasApiKey:       cfg.ZeroEx.ApiKey != "",
		DefaultSlippage: cfg.Swap.DefaultSlippage,
	})

	if s.Redis != nil {
		historyCfg := &historyUsecase.HistoryCfg{
			Repo: historyRepository.NewRedisRepo(s.Redis, cfg.History.Cap),
		}
		if s.Mongo != nil {
			q := query.New(s.Mongo, true)
			if err := historyRepository.EnsureIndexes(c, q); err != nil {
				c.WithField("err", err).Warn("history archive indexes not ensured")
			}
			historyCfg.Archive = historyRepository.NewArchiveRepo(q)
		}
		if s.Publisher != nil {
			historyCfg.Publisher = s.Publisher
		}
		s.History = historyUsecase.New(historyCfg)
	}

	orchestratorCfg := &swapUsecase.OrchestratorCfg{
		Networks:         s.Networks,
		Quote:            s.Quote,
		Chain:            s.Erc20,
		Price:            s.Price,
		InterTokenDelay:  cfg.Swap.InterTokenDelay,
		GasMultiplierPct: cfg.Swap.GasMultiplierPct,
		FallbackGasLimit: cfg.Swap.FallbackGasLimit,
		DefaultSlippage:  cfg.Swap.DefaultSlippage,
	}
	if s.History != nil {
		orchestratorCfg.History = s.History
	}
	s.Orchestrator = swapUsecase.NewOrchestrator(orchestratorCfg)
}

// Close flushes the publisher and drops the mongo connection
func (s *Services) Close(c ctx.Ctx) {
	if s.Publisher != nil {
		if err := s.Publisher.Close(); err != nil {
			c.WithField("err", err).Error("kafka publisher close failed")
		}
	}
	if s.Mongo != nil {
		if err := s.Mongo.Disconnect(c); err != nil {
			c.WithField("err", err).Error("mongo disconnect failed")
		}
	}
	log.Sync()
}
