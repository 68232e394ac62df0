package rates

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	APIURL       string        `env:"RATES_API_URL" envDefault:"https://min-api.cryptocompare.com"`
	Currency     string        `env:"RATES_CURRENCY" envDefault:"usd"`
	Symbols      []string      `env:"RATES_SYMBOLS" envSeparator:"," envDefault:"ETH"`
	PollInterval time.Duration `env:"RATES_POLL_INTERVAL" envDefault:"60s"`
}

func ParseConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg, env.Options{Prefix: "WALLET_"}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
