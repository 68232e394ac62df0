package phishing

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	ListURL         string        `env:"PHISHING_LIST_URL" envDefault:"https://phishing-detection.api.cx.metamask.io/v1/config"`
	RefreshInterval time.Duration `env:"PHISHING_REFRESH_INTERVAL" envDefault:"1h"`
}

func ParseConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg, env.Options{Prefix: "WALLET_"}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
