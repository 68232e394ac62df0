package accounts

import (
	"context"

	"github.com/MajorLift/metamask-core/events"
	log "github.com/sirupsen/logrus"
)

// KeyringStateChangedHandler reconciles the registry whenever the keyring
// subsystem pushes a new state onto the bus. Reconciliation only runs while
// the wallet is unlocked.
type KeyringStateChangedHandler struct {
	Service *Service
}

func (h *KeyringStateChangedHandler) Handle(p events.KeyringStateChangedPayload) {
	if !p.Unlocked {
		return
	}

	if err := h.Service.ReconcileGroups(context.Background(), p.Keyrings); err != nil {
		log.WithFields(log.Fields{"error": err}).Error("Keyring state reconciliation failed")
	}
}

// SnapStateChangedHandler mirrors snap liveness onto the metadata of
// existing snap accounts.
type SnapStateChangedHandler struct {
	Service *Service
}

func (h *SnapStateChangedHandler) Handle(p events.SnapStateChangedPayload) {
	h.Service.ApplySnapState(p.Snaps)
}
