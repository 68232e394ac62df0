package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/MajorLift/metamask-core/keyring"
	"github.com/google/uuid"
	"github.com/lightningnetwork/lnd/clock"
	log "github.com/sirupsen/logrus"
)

// SnapLookup fetches the full record a snap keyring holds for an address.
// A nil record with a nil error means the snap no longer knows the address.
type SnapLookup interface {
	GetAccountByAddress(ctx context.Context, address string) (*keyring.SnapAccount, error)
}

// SnapLookupFunc adapts a plain function to the SnapLookup interface.
type SnapLookupFunc func(ctx context.Context, address string) (*keyring.SnapAccount, error)

func (f SnapLookupFunc) GetAccountByAddress(ctx context.Context, address string) (*keyring.SnapAccount, error) {
	return f(ctx, address)
}

// Reconciler computes new registry states from keyring group snapshots. It
// never mutates the previous registry; a failed pass leaves the caller's
// state untouched.
type Reconciler struct {
	snaps SnapLookup
	clock clock.Clock
}

func NewReconciler(snaps SnapLookup, c clock.Clock) *Reconciler {
	if c == nil {
		c = clock.NewDefaultClock()
	}
	return &Reconciler{snaps: snaps, clock: c}
}

type targetPair struct {
	address string
	kind    keyring.Kind
}

// Reconcile merges the reported keyring groups into a new registry derived
// from prev.
//
// Accounts whose (address, kind) pair is still reported are retained as-is,
// keeping their id, display name and relative order. Pairs with no matching
// account get a freshly created one, appended in reported order. Everything
// else is dropped. Running the same snapshot against the resulting registry
// is a no-op: no new ids, no renumbering, no selection change.
func (r *Reconciler) Reconcile(ctx context.Context, prev *Registry, groups []keyring.Group) (*Registry, error) {
	// Flatten the groups into the target pairs. The first group to report an
	// address wins; later occurrences of the same address are dropped. This
	// covers migrations where a snap-backed address transiently also shows
	// up in a legacy group.
	seen := make(map[string]bool)
	targets := make([]targetPair, 0)
	for _, g := range groups {
		for _, address := range g.Addresses {
			if seen[address] {
				continue
			}
			seen[address] = true
			targets = append(targets, targetPair{address: address, kind: g.Kind})
		}
	}

	targetSet := make(map[targetPair]bool, len(targets))
	for _, p := range targets {
		targetSet[p] = true
	}

	// Retain existing accounts still backed by a reported pair, in their
	// original relative order.
	next := NewRegistry()
	matched := make(map[targetPair]bool, len(targets))
	for _, id := range prev.order {
		a := prev.accounts[id]
		p := targetPair{address: a.Address, kind: a.Kind}
		if targetSet[p] {
			next.add(a.clone())
			matched[p] = true
		}
	}

	// Create accounts for the unmatched pairs, in flattening order.
	created := make([]*Account, 0)
	for _, p := range targets {
		if matched[p] {
			continue
		}
		a, err := r.newAccount(ctx, next, p)
		if err != nil {
			return nil, err
		}
		if a == nil {
			continue
		}
		next.add(a)
		created = append(created, a)
	}

	r.recomputeSelection(prev, next, created)

	return next, nil
}

// newAccount builds the account for a pair no retained account matched. A
// nil account with a nil error means the pair should be skipped entirely:
// the owning snap removed the address between enumeration and now.
func (r *Reconciler) newAccount(ctx context.Context, next *Registry, p targetPair) (*Account, error) {
	if p.kind == keyring.KindSnap {
		return r.newSnapAccount(ctx, next, p.address)
	}

	name, err := nextDefaultName(next, p.kind)
	if err != nil {
		return nil, err
	}

	return &Account{
		ID:          uuid.NewString(),
		Address:     p.address,
		Kind:        p.kind,
		DisplayName: name,
		Methods:     methodsFor(p.kind),
	}, nil
}

func (r *Reconciler) newSnapAccount(ctx context.Context, next *Registry, address string) (*Account, error) {
	var rec *keyring.SnapAccount
	if r.snaps != nil {
		var err error
		rec, err = r.snaps.GetAccountByAddress(ctx, address)
		if err != nil {
			return nil, fmt.Errorf("error while looking up snap account %s: %w", address, err)
		}
	}
	if rec == nil {
		log.WithFields(log.Fields{"address": address}).Debug("Snap account vanished before reconciliation, skipping")
		return nil, nil
	}

	name := rec.Name
	if name == "" {
		var err error
		if name, err = nextDefaultName(next, keyring.KindSnap); err != nil {
			return nil, err
		}
	} else {
		name = uniqueSnapName(next, name)
	}

	methods := append([]string(nil), rec.Methods...)
	if len(methods) == 0 {
		methods = methodsFor(keyring.KindSnap)
	}

	return &Account{
		ID:          uuid.NewString(),
		Address:     address,
		Kind:        keyring.KindSnap,
		DisplayName: name,
		Methods:     methods,
		Snap: &SnapMetadata{
			ID:      rec.SnapID,
			Name:    rec.SnapName,
			Enabled: rec.Enabled,
		},
	}, nil
}

// nextDefaultName numbers default names from the count of same-kind accounts
// already present, then bumps past any name still in use so that display
// names stay unique even after earlier accounts have been dropped.
func nextDefaultName(reg *Registry, kind keyring.Kind) (string, error) {
	label, err := keyring.DisplayLabel(kind)
	if err != nil {
		return "", err
	}

	n := reg.countByKind(kind) + 1
	name := fmt.Sprintf("%s %d", label, n)
	for reg.nameTaken(name, "") {
		n++
		name = fmt.Sprintf("%s %d", label, n)
	}
	return name, nil
}

// uniqueSnapName keeps a snap-provided name as reported unless some account
// already uses it. On a collision a numeric suffix is bumped past the taken
// names, keeping display names unique within the pass.
func uniqueSnapName(reg *Registry, name string) string {
	if !reg.nameTaken(name, "") {
		return name
	}

	n := 2
	candidate := fmt.Sprintf("%s %d", name, n)
	for reg.nameTaken(candidate, "") {
		n++
		candidate = fmt.Sprintf("%s %d", name, n)
	}
	return candidate
}

// recomputeSelection keeps the previous selection when it survived the pass.
// Otherwise a single newly created account is selected outright; failing
// that, the account selected most recently wins, with ties going to the
// later insertion position.
func (r *Reconciler) recomputeSelection(prev, next *Registry, created []*Account) {
	if prev.selected != "" {
		if _, ok := next.accounts[prev.selected]; ok {
			next.selected = prev.selected
			return
		}
	}

	if len(created) == 1 {
		now := r.clock.Now()
		created[0].LastSelectedAt = &now
		next.selected = created[0].ID
		return
	}

	// Accounts never selected count as the zero time, so when nothing has a
	// stamp the last account in insertion order wins. Selection stays unset
	// only for an empty registry.
	best := ""
	var bestAt time.Time
	for _, id := range next.order {
		a := next.accounts[id]
		at := time.Time{}
		if a.LastSelectedAt != nil {
			at = *a.LastSelectedAt
		}
		if best == "" || !at.Before(bestAt) {
			best = id
			bestAt = at
		}
	}
	next.selected = best
}
