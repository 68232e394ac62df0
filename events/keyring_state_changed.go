// Package events implements the in-process publish/subscribe bus shared by
// the wallet controllers. Each event type is a package level singleton with
// Register/Trigger semantics.
package events

import (
	"github.com/MajorLift/metamask-core/keyring"
)

// KeyringStateChangedPayload is the data for when the keyring subsystem
// reports a new state.
type KeyringStateChangedPayload struct {
	Unlocked bool
	Keyrings []keyring.Group
}

type keyringStateChangedHandler interface {
	Handle(KeyringStateChangedPayload)
}

type keyringStateChanged struct {
	handlers []keyringStateChangedHandler
}

var KeyringStateChanged keyringStateChanged // singleton of type keyringStateChanged

// Register adds an event handler for this event
func (e *keyringStateChanged) Register(handler keyringStateChangedHandler) {
	e.handlers = append(e.handlers, handler)
}

// Trigger sends out an event with the payload. Handlers run synchronously in
// the caller's goroutine so that state updates never overlap; the next event
// is dispatched only once every handler has returned.
func (e *keyringStateChanged) Trigger(payload KeyringStateChangedPayload) {
	for _, handler := range e.handlers {
		handler.Handle(payload)
	}
}
