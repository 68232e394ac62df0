package accounts

import "github.com/lightningnetwork/lnd/clock"

type ServiceOption func(*Service)

// WithClock overrides the wall clock used for LastSelectedAt stamps, mainly
// for tests.
func WithClock(c clock.Clock) ServiceOption {
	return func(svc *Service) {
		svc.clock = c
	}
}
