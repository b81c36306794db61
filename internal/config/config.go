package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/merkledrop/claim-gateway/common"
	"github.com/merkledrop/claim-gateway/pkg/logger"
	"github.com/merkledrop/claim-gateway/pkg/logger/slogx"
	"github.com/merkledrop/claim-gateway/pkg/middleware/requestlogger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configOnce sync.Once
	config     = &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		Network: common.NetworkMainnet,
		HTTPServer: HTTPServer{
			Port: 8080,
		},
		Cache: Cache{
			Size: 1024,
			TTL:  5 * time.Minute,
		},
	}
)

type Config struct {
	Logger     logger.Config  `mapstructure:"logger"`
	Network    common.Network `mapstructure:"network"`
	HTTPServer HTTPServer     `mapstructure:"http_server"`
	Endpoints  Endpoints      `mapstructure:"endpoints"`
	Wallet     Wallet         `mapstructure:"wallet"`
	Cache      Cache          `mapstructure:"cache"`
}

type HTTPServer struct {
	Port   int                  `mapstructure:"port"`
	Logger requestlogger.Config `mapstructure:"logger"`
}

// NetworkEndpoints are the remote collaborators for one network.
type NetworkEndpoints struct {
	// DistributorAPI is the base URL of the distributor REST backend.
	DistributorAPI string `mapstructure:"distributor_api"`

	// RPC is the Solana RPC endpoint used for claim submission and token
	// metadata lookups.
	RPC string `mapstructure:"rpc"`
}

type Endpoints struct {
	Mainnet NetworkEndpoints `mapstructure:"mainnet"`
	Devnet  NetworkEndpoints `mapstructure:"devnet"`

	// PriceAPI is network-independent (price feeds only cover mainnet mints).
	PriceAPI string `mapstructure:"price_api"`
}

type Wallet struct {
	// KeypairFile is the path to a Solana keypair JSON file used as the
	// claiming wallet by the `claim` command and the claim API endpoint.
	KeypairFile string `mapstructure:"keypair_file"`
}

type Cache struct {
	// Size bounds each in-memory cache (entries), evicting least-recently-used.
	Size int `mapstructure:"size"`

	// TTL is the freshness window for cached remote records.
	TTL time.Duration `mapstructure:"ttl"`
}

var defaultEndpoints = map[common.Network]NetworkEndpoints{
	common.NetworkMainnet: {
		DistributorAPI: "https://api-public.streamflow.finance/v2/api",
		RPC:            "https://api.mainnet-beta.solana.com",
	},
	common.NetworkDevnet: {
		DistributorAPI: "https://staging-api.streamflow.finance/v2/api",
		RPC:            "https://api.devnet.solana.com",
	},
}

const defaultPriceAPI = "https://api.coingecko.com/api/v3"

// ForNetwork returns the endpoints for the given network, falling back to the
// well-known defaults for any value left empty in the config.
func (e Endpoints) ForNetwork(network common.Network) NetworkEndpoints {
	var configured NetworkEndpoints
	switch network {
	case common.NetworkMainnet:
		configured = e.Mainnet
	case common.NetworkDevnet:
		configured = e.Devnet
	}
	defaults := defaultEndpoints[network]
	if configured.DistributorAPI == "" {
		configured.DistributorAPI = defaults.DistributorAPI
	}
	if configured.RPC == "" {
		configured.RPC = defaults.RPC
	}
	return configured
}

func (e Endpoints) PriceAPIURL() string {
	if e.PriceAPI == "" {
		return defaultPriceAPI
	}
	return e.PriceAPI
}

// BindPFlag binds a config key to a command-line flag.
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("failed to bind flag to config", slogx.Error(err), slogx.String("key", key))
	}
}

// Parse loads the configuration from the given file (or ./config.yaml),
// environment variables, and bound flags. Subsequent calls return the first
// result.
func Parse(configFile string) Config {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))
	configOnce.Do(func() {
		if configFile != "" {
			viper.SetConfigFile(configFile)
		} else {
			viper.AddConfigPath("./")
			viper.SetConfigName("config")
		}

		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		if err := viper.ReadInConfig(); err != nil {
			var errNotfound viper.ConfigFileNotFoundError
			if errors.As(err, &errNotfound) {
				logger.WarnContext(ctx, "config file not found, use default value", slogx.Error(err))
			} else {
				logger.PanicContext(ctx, "invalid config file", slogx.Error(err))
			}
		}

		if err := viper.Unmarshal(&config); err != nil {
			logger.PanicContext(ctx, "failed to unmarshal config", slogx.Error(err))
		}
	})

	return *config
}

// Load returns the parsed configuration. Parse must have been called first;
// otherwise defaults are returned.
func Load() Config {
	return *config
}
