package accounts

import (
	"context"
	"fmt"
	"sync"

	"github.com/MajorLift/metamask-core/keyring"
	"github.com/lightningnetwork/lnd/clock"
	log "github.com/sirupsen/logrus"
)

// Service owns the wallet's account registry and reconciles it against live
// keyring state. All mutations happen within one logical turn: the registry
// is replaced atomically at the end of a pass, never observable mid-pass.
// Two overlapping UpdateAccounts calls race against the same snapshot and
// the last writer wins; callers needing serialization must not overlap them.
type Service struct {
	mu       sync.Mutex
	registry *Registry
	store    Store
	bridge   keyring.Bridge
	clock    clock.Clock
}

// NewService initiates a new account service, restoring the registry from
// the store when a snapshot exists.
func NewService(store Store, bridge keyring.Bridge, opts ...ServiceOption) (*Service, error) {
	svc := &Service{
		store:  store,
		bridge: bridge,
		clock:  clock.NewDefaultClock(),
	}

	for _, opt := range opts {
		opt(svc)
	}

	svc.registry = NewRegistry()
	if store != nil {
		saved, selectedID, ok, err := store.LoadSnapshot()
		if err != nil {
			return nil, err
		}
		if ok {
			for i := range saved {
				svc.registry.add(saved[i].clone())
			}
			svc.registry.Select(selectedID)
		}
	}

	return svc, nil
}

// ListAccounts returns all accounts in registry insertion order.
func (s *Service) ListAccounts() []Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.List()
}

// GetAccount looks up an account by id.
func (s *Service) GetAccount(id string) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Get(id)
}

// GetAccountExpect looks up an account by id, failing when it is absent. See
// Registry.GetExpected for the empty id special case.
func (s *Service) GetAccountExpect(id string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.GetExpected(id)
}

// GetAccountByAddress finds the account for an address, compared exactly as
// stored.
func (s *Service) GetAccountByAddress(address string) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.FindByAddress(address)
}

// GetSelectedAccount returns the selected account, or the onboarding
// placeholder when no selection exists.
func (s *Service) GetSelectedAccount() (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Selected()
}

// SetSelectedAccount selects an account and stamps its LastSelectedAt.
// Unknown ids clear the selection; this operation never fails.
func (s *Service) SetSelectedAccount(id string) {
	s.mu.Lock()
	s.registry.Select(id)
	if a, ok := s.registry.accounts[s.registry.selected]; ok {
		now := s.clock.Now()
		a.LastSelectedAt = &now
	}
	accounts, selectedID := s.registry.List(), s.registry.SelectedID()
	s.mu.Unlock()

	s.persistAndPublish(accounts, selectedID)
}

// SetAccountName renames an account.
func (s *Service) SetAccountName(id, name string) error {
	s.mu.Lock()
	err := s.registry.Rename(id, name)
	accounts, selectedID := s.registry.List(), s.registry.SelectedID()
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.persistAndPublish(accounts, selectedID)
	return nil
}

// UpdateAccounts pulls the current keyring state through the bridge and runs
// a reconciliation pass against it. This is the explicit pull-based trigger;
// the push-based path goes through the event handlers in events.go.
func (s *Service) UpdateAccounts(ctx context.Context) error {
	if s.bridge == nil {
		return fmt.Errorf("no keyring bridge configured")
	}

	addresses, err := s.bridge.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("error while listing keyring accounts: %w", err)
	}

	// Group the flat address list by owning keyring kind, preserving first
	// occurrence order for both groups and the addresses within them.
	kindOrder := make([]keyring.Kind, 0)
	byKind := make(map[keyring.Kind][]string)
	for _, address := range addresses {
		kind, err := s.bridge.GetKeyringForAccount(ctx, address)
		if err != nil {
			return fmt.Errorf("error while classifying address %s: %w", address, err)
		}
		if _, ok := byKind[kind]; !ok {
			kindOrder = append(kindOrder, kind)
		}
		byKind[kind] = append(byKind[kind], address)
	}

	groups := make([]keyring.Group, 0, len(kindOrder))
	for _, kind := range kindOrder {
		groups = append(groups, keyring.Group{Kind: kind, Addresses: byKind[kind]})
	}

	return s.ReconcileGroups(ctx, groups)
}

// ReconcileGroups runs one reconciliation pass against the given keyring
// snapshot and replaces the registry with the result. A failed pass leaves
// the previous registry untouched and reports the error to the caller.
func (s *Service) ReconcileGroups(ctx context.Context, groups []keyring.Group) error {
	s.mu.Lock()
	prev := s.registry.Clone()
	s.mu.Unlock()

	rec := NewReconciler(s.snapLookup(), s.clock)
	next, err := rec.Reconcile(ctx, prev, groups)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.registry = next
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"accounts": next.Len(),
		"selected": next.SelectedID(),
	}).Debug("Account registry reconciled")

	s.persistAndPublish(next.List(), next.SelectedID())
	return nil
}

// ApplySnapState projects snap liveness onto the enabled flag of existing
// snap-provided accounts. No accounts are created or removed on this path.
func (s *Service) ApplySnapState(snaps map[string]keyring.SnapStatus) {
	s.mu.Lock()
	changed := false
	for _, id := range s.registry.order {
		a := s.registry.accounts[id]
		if a.Snap == nil {
			continue
		}
		status, ok := snaps[a.Snap.ID]
		if !ok {
			continue
		}
		if live := status.Live(); a.Snap.Enabled != live {
			a.Snap.Enabled = live
			changed = true
		}
	}
	accounts, selectedID := s.registry.List(), s.registry.SelectedID()
	s.mu.Unlock()

	if changed {
		s.persistAndPublish(accounts, selectedID)
	}
}

// Backup is the serialized form of a registry used for state restore.
type Backup struct {
	Accounts   []Account `json:"accounts"`
	SelectedID string    `json:"selectedId"`
}

// LoadBackup replaces the registry wholesale with a previously exported
// snapshot. Malformed or absent input is silently ignored; no validation
// happens beyond the data being well formed.
func (s *Service) LoadBackup(b *Backup) {
	if b == nil || b.Accounts == nil {
		return
	}

	next := NewRegistry()
	for i := range b.Accounts {
		a := b.Accounts[i]
		if a.ID == "" {
			return
		}
		if _, ok := next.accounts[a.ID]; ok {
			return
		}
		next.add(a.clone())
	}
	next.Select(b.SelectedID)

	s.mu.Lock()
	s.registry = next
	s.mu.Unlock()

	s.persistAndPublish(next.List(), next.SelectedID())
}

// snapLookup resolves snap records through the snap keyrings the bridge
// reports at lookup time.
func (s *Service) snapLookup() SnapLookup {
	if s.bridge == nil {
		return nil
	}
	return SnapLookupFunc(func(ctx context.Context, address string) (*keyring.SnapAccount, error) {
		keyrings, err := s.bridge.GetKeyringsByType(ctx, keyring.KindSnap)
		if err != nil {
			return nil, err
		}
		for _, kr := range keyrings {
			rec, err := kr.GetAccountByAddress(ctx, address)
			if err != nil {
				return nil, err
			}
			if rec != nil {
				return rec, nil
			}
		}
		return nil, nil
	})
}

func (s *Service) persistAndPublish(accounts []Account, selectedID string) {
	if s.store != nil {
		if err := s.store.SaveSnapshot(accounts, selectedID); err != nil {
			log.WithFields(log.Fields{"error": err}).Warn("Failed to persist account registry")
		}
	}

	AccountsChanged.Trigger(AccountsChangedPayload{
		Accounts:   accounts,
		SelectedID: selectedID,
	})
}
