package transactions

import (
	"github.com/caarlos0/env/v6"
)

type Config struct {
	ExplorerURL       string `env:"EXPLORER_URL" envDefault:"https://api.etherscan.io"`
	ExplorerAPIKey    string `env:"EXPLORER_API_KEY"`
	ExplorerRateLimit int    `env:"EXPLORER_RATE_LIMIT" envDefault:"5"`
	MaxBlocksPerFetch uint64 `env:"EXPLORER_MAX_BLOCKS_PER_FETCH" envDefault:"100000"`
}

func ParseConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg, env.Options{Prefix: "WALLET_"}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
