// Package accounts implements the wallet's account registry and the
// reconciliation of that registry against the live state reported by the
// underlying keyrings.
package accounts

import (
	"time"

	"github.com/MajorLift/metamask-core/keyring"
)

// Account represents one managed address under wallet control.
type Account struct {
	ID             string        `json:"id"`
	Address        string        `json:"address"`
	Kind           keyring.Kind  `json:"kind"`
	DisplayName    string        `json:"displayName"`
	Snap           *SnapMetadata `json:"snap,omitempty"`
	LastSelectedAt *time.Time    `json:"lastSelectedAt,omitempty"`
	Methods        []string      `json:"methods"`
}

// SnapMetadata is present on snap-provided accounts only and mirrors the
// owning snap's identity and liveness.
type SnapMetadata struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// The static signing capability set per keyring kind. Determined by account
// type at creation time; reconciliation never mutates it.
var signingMethods = map[keyring.Kind][]string{
	keyring.KindHD:      {"personal_sign", "eth_signTransaction", "eth_signTypedData_v1", "eth_signTypedData_v3", "eth_signTypedData_v4"},
	keyring.KindSimple:  {"personal_sign", "eth_signTransaction", "eth_signTypedData_v1", "eth_signTypedData_v3", "eth_signTypedData_v4"},
	keyring.KindLedger:  {"personal_sign", "eth_signTransaction", "eth_signTypedData_v4"},
	keyring.KindTrezor:  {"personal_sign", "eth_signTransaction", "eth_signTypedData_v4"},
	keyring.KindLattice: {"personal_sign", "eth_signTransaction", "eth_signTypedData_v4"},
	keyring.KindQR:      {"personal_sign", "eth_signTransaction", "eth_signTypedData_v4"},
	keyring.KindSnap:    {"personal_sign", "eth_signTransaction", "eth_signTypedData_v4"},
}

func methodsFor(kind keyring.Kind) []string {
	return append([]string(nil), signingMethods[kind]...)
}

func (a *Account) clone() *Account {
	c := *a
	if a.Snap != nil {
		snap := *a.Snap
		c.Snap = &snap
	}
	if a.LastSelectedAt != nil {
		at := *a.LastSelectedAt
		c.LastSelectedAt = &at
	}
	c.Methods = append([]string(nil), a.Methods...)
	return &c
}
