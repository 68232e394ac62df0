package phishing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Service answers hostname checks against the current detector and refreshes
// the lists from the upstream URL. The detector is replaced atomically so
// checks never observe a half-updated list.
type Service struct {
	mu       sync.RWMutex
	detector *Detector
	config   ListConfig
	listURL  string
	http     *http.Client
	limiter  *rate.Limiter
}

func NewService(listURL string) *Service {
	return &Service{
		detector: NewDetector(ListConfig{}),
		listURL:  listURL,
		http:     &http.Client{Timeout: 30 * time.Second},
		// Upstream asks clients to stay under a handful of requests per
		// minute regardless of the refresh interval.
		limiter: rate.NewLimiter(rate.Every(time.Minute), 5),
	}
}

// CheckHostname reports whether a hostname is a known or lookalike phishing
// domain.
func (svc *Service) CheckHostname(hostname string) Result {
	svc.mu.RLock()
	d := svc.detector
	svc.mu.RUnlock()
	return d.Check(hostname)
}

// ListConfig returns the currently loaded list configuration.
func (svc *Service) ListConfig() ListConfig {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.config
}

// Refresh fetches the upstream lists and swaps in a new detector. Keeps the
// previous lists when the version has not advanced.
func (svc *Service) Refresh(ctx context.Context) error {
	if err := svc.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc.listURL, nil)
	if err != nil {
		return err
	}

	res, err := svc.http.Do(req)
	if err != nil {
		return fmt.Errorf("error while fetching phishing lists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("phishing list endpoint responded with status %d", res.StatusCode)
	}

	var cfg ListConfig
	if err := json.NewDecoder(res.Body).Decode(&cfg); err != nil {
		return fmt.Errorf("error while decoding phishing lists: %w", err)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.config.Version != 0 && cfg.Version <= svc.config.Version {
		log.WithFields(log.Fields{"version": cfg.Version}).Trace("Phishing lists unchanged")
		return nil
	}

	svc.detector = NewDetector(cfg)
	svc.config = cfg

	log.WithFields(log.Fields{
		"version":   cfg.Version,
		"blocklist": len(cfg.Blocklist),
		"fuzzylist": len(cfg.Fuzzylist),
	}).Debug("Phishing lists refreshed")

	return nil
}
