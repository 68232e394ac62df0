package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MajorLift/metamask-core/events"
	"github.com/MajorLift/metamask-core/keyring"
)

// Keyring is a HTTP server for keyring state ingestion. Deployments without
// an in-process keyring push state changes through these endpoints; the
// registered event handlers take it from there.
type Keyring struct {
	bridge *keyring.StateBridge
}

// KeyringStateRequest represents a JSON payload for a HTTP request
type KeyringStateRequest struct {
	Unlocked     bool                  `json:"unlocked"`
	Keyrings     []keyring.Group       `json:"keyrings"`
	SnapAccounts []keyring.SnapAccount `json:"snapAccounts"`
}

// SnapStateRequest represents a JSON payload for a HTTP request
type SnapStateRequest struct {
	Snaps map[string]keyring.SnapStatus `json:"snaps"`
}

func NewKeyring(bridge *keyring.StateBridge) *Keyring {
	return &Keyring{bridge}
}

// State ingests a full keyring state snapshot and triggers the state-changed
// event. Event handlers run synchronously, so a reconciliation pass has
// finished by the time the response is written.
func (s *Keyring) State() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, r, err)
			return
		}

		var body KeyringStateRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			handleError(rw, r, InvalidBodyError)
			return
		}

		if s.bridge != nil {
			s.bridge.SetState(body.Keyrings, body.SnapAccounts)
		}

		events.KeyringStateChanged.Trigger(events.KeyringStateChangedPayload{
			Unlocked: body.Unlocked,
			Keyrings: body.Keyrings,
		})

		rw.WriteHeader(http.StatusNoContent)
	})
}

// SnapState ingests snap lifecycle states and triggers the snap-state-changed
// event.
func (s *Keyring) SnapState() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, r, err)
			return
		}

		var body SnapStateRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			handleError(rw, r, InvalidBodyError)
			return
		}

		events.SnapStateChanged.Trigger(events.SnapStateChangedPayload{
			Snaps: body.Snaps,
		})

		rw.WriteHeader(http.StatusNoContent)
	})
}
