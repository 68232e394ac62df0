// Package keyring defines the signer abstractions the wallet consumes.
// Keyrings are external collaborators (hardware wallets, software HD
// wallets, snap-provided signers); this package only models the state they
// report and the capabilities the accounts controller pulls from.
package keyring

import (
	"context"

	"github.com/MajorLift/metamask-core/errors"
)

// Kind identifies the type of keyring an address belongs to.
type Kind string

const (
	KindHD      Kind = "hd"
	KindSimple  Kind = "simple"
	KindLedger  Kind = "ledger"
	KindTrezor  Kind = "trezor"
	KindLattice Kind = "lattice"
	KindQR      Kind = "qr"
	KindSnap    Kind = "snap"
)

var displayLabels = map[Kind]string{
	KindHD:      "Account",
	KindSimple:  "Imported Account",
	KindLedger:  "Ledger",
	KindTrezor:  "Trezor",
	KindLattice: "Lattice",
	KindQR:      "QR Hardware",
	KindSnap:    "Snap Account",
}

// DisplayLabel returns the human label used as the prefix of default account
// names for the given kind.
func DisplayLabel(k Kind) (string, error) {
	label, ok := displayLabels[k]
	if !ok {
		return "", &errors.UnknownKeyringKindError{Kind: string(k)}
	}
	return label, nil
}

// Group is one keyring's reported state: its kind and the ordered addresses
// it currently controls.
type Group struct {
	Kind      Kind     `json:"kind"`
	Addresses []string `json:"addresses"`
}

// SnapStatus mirrors a snap's lifecycle flags as reported by the snap
// runtime.
type SnapStatus struct {
	Enabled bool `json:"enabled"`
	Blocked bool `json:"blocked"`
	Running bool `json:"running"`
}

// Live reports whether accounts provided by the snap should be treated as
// enabled.
func (s SnapStatus) Live() bool {
	return s.Enabled && s.Running && !s.Blocked
}

// SnapAccount is the full record a snap keyring reports for one of its
// addresses.
type SnapAccount struct {
	Address  string   `json:"address"`
	Name     string   `json:"name"`
	SnapID   string   `json:"snapId"`
	SnapName string   `json:"snapName"`
	Enabled  bool     `json:"enabled"`
	Methods  []string `json:"methods"`
}

// SnapKeyring is the lookup capability a snap-backed keyring exposes.
// GetAccountByAddress returns nil when the snap no longer knows the address.
type SnapKeyring interface {
	ListAccounts(ctx context.Context) ([]SnapAccount, error)
	GetAccountByAddress(ctx context.Context, address string) (*SnapAccount, error)
}

// Bridge is the capability surface the accounts controller consumes to pull
// keyring state on demand.
type Bridge interface {
	// GetAccounts lists the addresses currently under direct keyring control.
	GetAccounts(ctx context.Context) ([]string, error)

	// GetKeyringForAccount classifies an address's owning keyring. Fails if
	// the address is unknown to every keyring.
	GetKeyringForAccount(ctx context.Context, address string) (Kind, error)

	// GetKeyringsByType returns the keyrings of the given kind. Used for
	// snap-kind enumeration and lookup.
	GetKeyringsByType(ctx context.Context, kind Kind) ([]SnapKeyring, error)
}
