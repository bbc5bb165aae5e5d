package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/x-xyz/dustsweep/base/log"
)

const DefaultPath = "infra/configs/config.yaml"

type Config struct {
	Env       string             `mapstructure:"env_name"`
	App       string             `mapstructure:"app_name"`
	Debug     bool               `mapstructure:"debug"`
	LogLevel  string             `mapstructure:"log_level"`
	Server    Server             `mapstructure:"server"`
	Datadog   Datadog            `mapstructure:"datadog"`
	Mongo     Mongo              `mapstructure:"mongo"`
	Redis     Redis              `mapstructure:"redis"`
	Kafka     Kafka              `mapstructure:"kafka"`
	Networks  map[string]Network `mapstructure:"networks"`
	Alchemy   Alchemy            `mapstructure:"alchemy"`
	Explorer  Explorer           `mapstructure:"explorer"`
	CoinGecko CoinGecko          `mapstructure:"coingecko"`
	DefiLlama DefiLlama          `mapstructure:"defillama"`
	ZeroEx    ZeroEx             `mapstructure:"zeroex"`
	Fee       Fee                `mapstructure:"fee"`
	Discovery Discovery          `mapstructure:"discovery"`
	Price     Price              `mapstructure:"price"`
	Swap      Swap               `mapstructure:"swap"`
	History   History            `mapstructure:"history"`
	Signer    Signer             `mapstructure:"signer"`
}

type Server struct {
	Address string        `mapstructure:"address"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Datadog struct {
	Host string `mapstructure:"host"`
}

type Mongo struct {
	Enabled    bool   `mapstructure:"enabled"`
	URI        string `mapstructure:"uri"`
	AuthDBName string `mapstructure:"authDBName"`
	DBName     string `mapstructure:"dbName"`
	EnableSSL  bool   `mapstructure:"enableSSL"`
}

type Redis struct {
	Name           string  `mapstructure:"name"`
	URI            string  `mapstructure:"uri"`
	Password       string  `mapstructure:"password"`
	PoolMultiplier float64 `mapstructure:"poolMultiplier"`
}

type Kafka struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// Network is one supported chain
type Network struct {
	ChainId           int32  `mapstructure:"chainId"`
	RpcUrl            string `mapstructure:"rpcUrl"`
	RpcConcurrency    int    `mapstructure:"rpcConcurrency"`
	WrappedNative     string `mapstructure:"wrappedNative"`
	UsdStable         string `mapstructure:"usdStable"`
	UsdStableDecimals int32  `mapstructure:"usdStableDecimals"`
	NativeSymbol      string `mapstructure:"nativeSymbol"`
	NativeUsdFeed     string `mapstructure:"nativeUsdFeed"`
	CoinGeckoPlatform string `mapstructure:"coingeckoPlatform"`
	DefiLlamaSlug     string `mapstructure:"defillamaSlug"`
	AlchemyUrl        string `mapstructure:"alchemyUrl"`
	ExplorerUrl       string `mapstructure:"explorerUrl"`
}

type Alchemy struct {
	ApiKey   string        `mapstructure:"apiKey"`
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxCount int           `mapstructure:"maxCount"`
}

type Explorer struct {
	ApiKey  string        `mapstructure:"apiKey"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CoinGecko struct {
	ApiKey  string        `mapstructure:"apiKey"`
	Pro     bool          `mapstructure:"pro"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DefiLlama struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ZeroEx struct {
	ApiUrl  string        `mapstructure:"apiUrl"`
	ApiKey  string        `mapstructure:"apiKey"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type FeeTier struct {
	// upper bound of the usd notional, 0 means unbounded
	MaxUsd    float64 `mapstructure:"maxUsd"`
	Inclusive bool    `mapstructure:"inclusive"`
	Bps       int     `mapstructure:"bps"`
}

type Fee struct {
	Enabled    bool      `mapstructure:"enabled"`
	Recipient  string    `mapstructure:"recipient"`
	DefaultBps int       `mapstructure:"defaultBps"`
	Tiers      []FeeTier `mapstructure:"tiers"`
}

type Discovery struct {
	IndexerMaxPages  int           `mapstructure:"indexerMaxPages"`
	ExplorerMaxPages int           `mapstructure:"explorerMaxPages"`
	ExplorerPageSize int           `mapstructure:"explorerPageSize"`
	Concurrency      int           `mapstructure:"concurrency"`
	CallTimeout      time.Duration `mapstructure:"callTimeout"`
	SourceTimeout    time.Duration `mapstructure:"sourceTimeout"`
	AllowListPath    string        `mapstructure:"allowListPath"`
}

type Price struct {
	CacheTtl  time.Duration `mapstructure:"cacheTtl"`
	BatchSize int           `mapstructure:"batchSize"`
}

type Swap struct {
	InterTokenDelay   time.Duration `mapstructure:"interTokenDelay"`
	DefaultSlippage   float64       `mapstructure:"defaultSlippage"`
	GasMultiplierPct  int64         `mapstructure:"gasMultiplierPct"`
	FallbackGasLimit  uint64        `mapstructure:"fallbackGasLimit"`
	ReceiptPollPeriod time.Duration `mapstructure:"receiptPollPeriod"`
}

type History struct {
	Cap int `mapstructure:"cap"`
}

type Signer struct {
	PrivateKeyEnv string `mapstructure:"privateKeyEnv"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("redis.name", "dustsweep")
	v.SetDefault("redis.poolMultiplier", 4.0)
	v.SetDefault("alchemy.timeout", 10*time.Second)
	v.SetDefault("alchemy.maxCount", 100)
	v.SetDefault("explorer.timeout", 10*time.Second)
	v.SetDefault("coingecko.timeout", 10*time.Second)
	v.SetDefault("defillama.timeout", 10*time.Second)
	v.SetDefault("zeroex.apiUrl", "https://api.0x.org")
	v.SetDefault("zeroex.timeout", 15*time.Second)
	v.SetDefault("fee.defaultBps", 50)
	v.SetDefault("discovery.indexerMaxPages", 5)
	v.SetDefault("discovery.explorerMaxPages", 10)
	v.SetDefault("discovery.explorerPageSize", 1000)
	v.SetDefault("discovery.concurrency", 12)
	v.SetDefault("discovery.callTimeout", 5*time.Second)
	v.SetDefault("discovery.sourceTimeout", 30*time.Second)
	v.SetDefault("price.cacheTtl", 5*time.Minute)
	v.SetDefault("price.batchSize", 50)
	v.SetDefault("swap.interTokenDelay", time.Second)
	v.SetDefault("swap.defaultSlippage", 0.01)
	v.SetDefault("swap.gasMultiplierPct", 120)
	v.SetDefault("swap.fallbackGasLimit", 500000)
	v.SetDefault("swap.receiptPollPeriod", 2*time.Second)
	v.SetDefault("history.cap", 20)
	v.SetDefault("signer.privateKeyEnv", "SWEEPER_PRIVATE_KEY")
}

// Load reads .env files, then the yaml at path, then env overrides (fee.recipient -> FEE_RECIPIENT)
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Log().Debug("no .env file loaded")
	}
	_ = godotenv.Overload(".env.local")

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, xerrors.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, xerrors.Errorf("unmarshal config: %w", err)
	}

	// Unmarshal only sees env values for keys viper already knows about
	for _, key := range []string{"alchemy.apiKey", "explorer.apiKey", "coingecko.apiKey", "zeroex.apiKey", "fee.recipient"} {
		if val := v.GetString(key); val != "" {
			setString(cfg, key, val)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setString(cfg *Config, key, val string) {
	switch key {
	case "alchemy.apiKey":
		cfg.Alchemy.ApiKey = val
	case "explorer.apiKey":
		cfg.Explorer.ApiKey = val
	case "coingecko.apiKey":
		cfg.CoinGecko.ApiKey = val
	case "zeroex.apiKey":
		cfg.ZeroEx.ApiKey = val
	case "fee.recipient":
		cfg.Fee.Recipient = val
	}
}

// Validate checks startup preconditions that do not depend on a request
func (c *Config) Validate() error {
	if len(c.Networks) == 0 {
		return xerrors.New("config: no networks configured")
	}
	for name, n := range c.Networks {
		if n.ChainId == 0 {
			return xerrors.Errorf("config: network %s has no chainId", name)
		}
		if n.RpcUrl == "" {
			return xerrors.Errorf("config: network %s has no rpcUrl", name)
		}
	}
	for i, t := range c.Fee.Tiers {
		if t.Bps < 0 || t.Bps > 10000 {
			return xerrors.Errorf("config: fee tier %d bps out of range", i)
		}
	}
	return nil
}

// NetworkByChainId returns the configured network for chainId
func (c *Config) NetworkByChainId(chainId int32) (Network, bool) {
	for _, n := range c.Networks {
		if n.ChainId == chainId {
			return n, true
		}
	}
	return Network{}, false
}
