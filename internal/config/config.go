package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the decoder process.
type Config struct {
	RPC     RPCConfig
	Decode  DecodeConfig
	Logging LoggingConfig
}

// RPCConfig holds Ethereum RPC configuration.
type RPCConfig struct {
	URL            string
	RetryAttempts  int
	RetryDelay     time.Duration
	RequestTimeout time.Duration
}

// DecodeConfig holds reconstruction-pipeline bounds.
type DecodeConfig struct {
	MaxChainLength int // MAX_CHAIN, spec §3
	MaxCallDepth   int // loaded but not read by the decoder; its walker uses a fixed depth of 6
	MaxConcurrency int // loaded but not read by the decoder
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load reads configuration from environment, an optional .env file, and
// an optional config.yaml.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	v := viper.New()

	v.SetDefault("rpc.url", "")
	v.SetDefault("rpc.retry_attempts", 3)
	v.SetDefault("rpc.retry_delay", "1s")
	v.SetDefault("rpc.request_timeout", "30s")

	v.SetDefault("decode.max_chain_length", 8)
	v.SetDefault("decode.max_call_depth", 6)
	v.SetDefault("decode.max_concurrency", 8)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetEnvPrefix("DECODETX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.decodetx")

	_ = v.ReadInConfig()

	// RPC_URL is the spec-mandated environment variable (spec §6); bind
	// it explicitly since AutomaticEnv alone only sees DECODETX_RPC_URL
	// once a prefix is set. It takes precedence over DECODETX_RPC_URL
	// when both are set.
	_ = v.BindEnv("rpc_url", "RPC_URL")
	if url := v.GetString("rpc_url"); url != "" {
		v.Set("rpc.url", url)
	}

	retryDelay, _ := time.ParseDuration(v.GetString("rpc.retry_delay"))
	requestTimeout, _ := time.ParseDuration(v.GetString("rpc.request_timeout"))

	cfg := &Config{
		RPC: RPCConfig{
			URL:            v.GetString("rpc.url"),
			RetryAttempts:  v.GetInt("rpc.retry_attempts"),
			RetryDelay:     retryDelay,
			RequestTimeout: requestTimeout,
		},
		Decode: DecodeConfig{
			MaxChainLength: v.GetInt("decode.max_chain_length"),
			MaxCallDepth:   v.GetInt("decode.max_call_depth"),
			MaxConcurrency: v.GetInt("decode.max_concurrency"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	return cfg, nil
}
