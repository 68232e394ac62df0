package phishing

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

type systemService interface {
	IsHalted() bool
}

// Refresher re-fetches the phishing lists on a fixed interval.
type Refresher struct {
	ticker   *time.Ticker
	done     chan bool
	service  *Service
	system   systemService
	interval time.Duration
}

func NewRefresher(service *Service, system systemService, interval time.Duration) *Refresher {
	return &Refresher{nil, make(chan bool), service, system, interval}
}

func (r *Refresher) Start() *Refresher {
	if r.ticker != nil {
		return r
	}

	r.ticker = time.NewTicker(r.interval)

	go func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Load the lists once at startup instead of waiting a full interval.
		if err := r.service.Refresh(ctx); err != nil {
			log.WithFields(log.Fields{"error": err}).Warn("Initial phishing list fetch failed")
		}

		for {
			select {
			case <-r.done:
				return
			case <-r.ticker.C:
				if r.system != nil && r.system.IsHalted() {
					continue
				}
				if err := r.service.Refresh(ctx); err != nil {
					log.WithFields(log.Fields{"error": err}).Warn("Phishing list refresh failed")
				}
			}
		}
	}()

	return r
}

func (r *Refresher) Stop() {
	r.ticker.Stop()
	r.done <- true
	r.ticker = nil
}
