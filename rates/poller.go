package rates

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
	log "github.com/sirupsen/logrus"
)

// systemService gates polling while maintenance mode or a pause is active.
type systemService interface {
	IsHalted() bool
}

// Poller fetches rates on a fixed interval. Consecutive failures back off
// exponentially instead of hammering the price API on every tick.
type Poller struct {
	ticker   *time.Ticker
	done     chan bool
	service  *Service
	system   systemService
	interval time.Duration
}

func NewPoller(service *Service, system systemService, interval time.Duration) *Poller {
	return &Poller{nil, make(chan bool), service, system, interval}
}

func (p *Poller) Start() *Poller {
	if p.ticker != nil {
		return p
	}

	p.ticker = time.NewTicker(p.interval)

	go func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		b := &backoff.Backoff{
			Min:    p.interval,
			Max:    10 * p.interval,
			Factor: 2,
			Jitter: true,
		}

		for {
			select {
			case <-p.done:
				return
			case <-p.ticker.C:
				if p.system != nil && p.system.IsHalted() {
					continue
				}
				if err := p.service.FetchRates(ctx); err != nil {
					d := b.Duration()
					log.WithFields(log.Fields{"error": err, "retryIn": d}).Warn("Rate fetch failed")
					p.ticker.Reset(d)
					continue
				}
				b.Reset()
				p.ticker.Reset(p.interval)
			}
		}
	}()

	return p
}

func (p *Poller) Stop() {
	p.ticker.Stop()
	p.done <- true
	p.ticker = nil
}
