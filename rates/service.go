package rates

import (
	"context"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Service keeps the latest quote per symbol in memory, persists fetched
// quotes through the store and publishes RatesUpdated after every successful
// fetch.
type Service struct {
	mu      sync.RWMutex
	latest  map[string]Rate
	store   Store
	client  *Client
	symbols []string
}

func NewService(store Store, client *Client, symbols []string) *Service {
	svc := &Service{
		latest:  make(map[string]Rate),
		store:   store,
		client:  client,
		symbols: symbols,
	}

	// Warm the in-memory cache from the last persisted quotes.
	if stored, err := store.Rates(); err == nil {
		for _, r := range stored {
			svc.latest[r.Symbol] = r
		}
	} else {
		log.WithFields(log.Fields{"error": err}).Warn("Failed to restore rates from store")
	}

	return svc
}

// FetchRates pulls fresh quotes for all configured symbols and stores them.
func (svc *Service) FetchRates(ctx context.Context) error {
	quotes, err := svc.client.Spot(ctx, svc.symbols)
	if err != nil {
		return err
	}

	updated := make([]Rate, 0, len(quotes))

	svc.mu.Lock()
	for symbol, price := range quotes {
		r := svc.latest[symbol]
		r.Symbol = symbol
		r.Price = price
		svc.latest[symbol] = r
		updated = append(updated, r)
	}
	svc.mu.Unlock()

	sort.Slice(updated, func(i, j int) bool { return updated[i].Symbol < updated[j].Symbol })

	for i := range updated {
		if err := svc.store.UpsertRate(&updated[i]); err != nil {
			log.WithFields(log.Fields{"symbol": updated[i].Symbol, "error": err}).Warn("Failed to persist rate")
		}
	}

	RatesUpdated.Trigger(RatesUpdatedPayload{Rates: updated})

	return nil
}

// LatestRates returns the cached quotes sorted by symbol.
func (svc *Service) LatestRates() []Rate {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	rr := make([]Rate, 0, len(svc.latest))
	for _, r := range svc.latest {
		rr = append(rr, r)
	}
	sort.Slice(rr, func(i, j int) bool { return rr[i].Symbol < rr[j].Symbol })

	return rr
}

// LatestRate returns the cached quote for one symbol.
func (svc *Service) LatestRate(symbol string) (Rate, bool) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	r, ok := svc.latest[symbol]
	return r, ok
}
