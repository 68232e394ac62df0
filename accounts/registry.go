package accounts

import (
	"github.com/MajorLift/metamask-core/errors"
	"github.com/MajorLift/metamask-core/keyring"
)

// Registry holds the wallet's accounts keyed by id, in insertion order,
// together with the id of the currently selected account. Insertion order is
// significant: it determines listing order and default name numbering.
type Registry struct {
	order    []string
	accounts map[string]*Account
	selected string
}

func NewRegistry() *Registry {
	return &Registry{accounts: make(map[string]*Account)}
}

// Get looks up an account by id.
func (r *Registry) Get(id string) (Account, bool) {
	a, ok := r.accounts[id]
	if !ok {
		return Account{}, false
	}
	return *a.clone(), true
}

// GetExpected looks up an account by id and fails with AccountNotFoundError
// if it is absent. The empty id is special cased to return a zero value
// placeholder account so that callers have something to render during
// onboarding, before any account exists.
func (r *Registry) GetExpected(id string) (Account, error) {
	if id == "" {
		return Account{}, nil
	}
	a, ok := r.accounts[id]
	if !ok {
		return Account{}, &errors.AccountNotFoundError{ID: id}
	}
	return *a.clone(), nil
}

// List returns all accounts in insertion order.
func (r *Registry) List() []Account {
	out := make([]Account, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.accounts[id].clone())
	}
	return out
}

// FindByAddress scans for an account with the given address, compared
// exactly as stored. No normalization happens at this layer.
func (r *Registry) FindByAddress(address string) (Account, bool) {
	for _, id := range r.order {
		if r.accounts[id].Address == address {
			return *r.accounts[id].clone(), true
		}
	}
	return Account{}, false
}

// Rename sets the display name of an account. Fails with
// AccountNotFoundError for unknown ids and with DuplicateNameError when the
// name is already used by a different account.
func (r *Registry) Rename(id, newName string) error {
	a, ok := r.accounts[id]
	if !ok {
		return &errors.AccountNotFoundError{ID: id}
	}
	if r.nameTaken(newName, id) {
		return &errors.DuplicateNameError{Name: newName}
	}
	a.DisplayName = newName
	return nil
}

// Select marks the account as selected. Unknown ids clear the selection
// instead of failing, keeping the invariant that a set selection always
// refers to a present account.
func (r *Registry) Select(id string) {
	if _, ok := r.accounts[id]; ok {
		r.selected = id
		return
	}
	r.selected = ""
}

// Selected returns the currently selected account, or the onboarding
// placeholder when nothing is selected.
func (r *Registry) Selected() (Account, error) {
	return r.GetExpected(r.selected)
}

func (r *Registry) SelectedID() string {
	return r.selected
}

func (r *Registry) Len() int {
	return len(r.order)
}

// add appends an account. The caller guarantees a unique id.
func (r *Registry) add(a *Account) {
	r.order = append(r.order, a.ID)
	r.accounts[a.ID] = a
}

func (r *Registry) countByKind(kind keyring.Kind) int {
	n := 0
	for _, id := range r.order {
		if r.accounts[id].Kind == kind {
			n++
		}
	}
	return n
}

// nameTaken reports whether another account (any account when excludeID is
// empty) already uses the name. Case sensitive.
func (r *Registry) nameTaken(name, excludeID string) bool {
	for _, id := range r.order {
		if id == excludeID {
			continue
		}
		if r.accounts[id].DisplayName == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Reconciliation passes work on a clone so that
// concurrent mutating calls can never observe a half built registry.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for _, id := range r.order {
		c.add(r.accounts[id].clone())
	}
	c.selected = r.selected
	return c
}
