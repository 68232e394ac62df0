package keyring

import (
	"context"
	"fmt"
	"sync"
)

// StateBridge is a Bridge backed by the most recently reported keyring
// state. Deployments without an in-process keyring feed it through the
// keyring state endpoint; the pull-based account update path then
// re-reconciles against the same snapshot.
//
// StateBridge also acts as the snap keyring for snap accounts carried in the
// reported state.
type StateBridge struct {
	mu           sync.RWMutex
	groups       []Group
	snapAccounts []SnapAccount
}

func NewStateBridge() *StateBridge {
	return &StateBridge{}
}

// SetState replaces the stored keyring snapshot.
func (b *StateBridge) SetState(groups []Group, snapAccounts []SnapAccount) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.groups = groups
	b.snapAccounts = snapAccounts
}

// Groups returns the stored keyring groups.
func (b *StateBridge) Groups() []Group {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Group, len(b.groups))
	copy(out, b.groups)
	return out
}

func (b *StateBridge) GetAccounts(ctx context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	addresses := make([]string, 0)
	for _, g := range b.groups {
		addresses = append(addresses, g.Addresses...)
	}
	return addresses, nil
}

func (b *StateBridge) GetKeyringForAccount(ctx context.Context, address string) (Kind, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, g := range b.groups {
		for _, a := range g.Addresses {
			if a == address {
				return g.Kind, nil
			}
		}
	}
	return "", fmt.Errorf("no keyring found for account %s", address)
}

func (b *StateBridge) GetKeyringsByType(ctx context.Context, kind Kind) ([]SnapKeyring, error) {
	if kind != KindSnap {
		return nil, nil
	}
	return []SnapKeyring{b}, nil
}

func (b *StateBridge) ListAccounts(ctx context.Context) ([]SnapAccount, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]SnapAccount, len(b.snapAccounts))
	copy(out, b.snapAccounts)
	return out, nil
}

func (b *StateBridge) GetAccountByAddress(ctx context.Context, address string) (*SnapAccount, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i := range b.snapAccounts {
		if b.snapAccounts[i].Address == address {
			rec := b.snapAccounts[i]
			return &rec, nil
		}
	}
	return nil, nil
}
