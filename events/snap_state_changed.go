package events

import (
	"github.com/MajorLift/metamask-core/keyring"
)

// SnapStateChangedPayload is the data for when the snap runtime reports new
// lifecycle flags for one or more snaps.
type SnapStateChangedPayload struct {
	Snaps map[string]keyring.SnapStatus
}

type snapStateChangedHandler interface {
	Handle(SnapStateChangedPayload)
}

type snapStateChanged struct {
	handlers []snapStateChangedHandler
}

var SnapStateChanged snapStateChanged // singleton of type snapStateChanged

// Register adds an event handler for this event
func (e *snapStateChanged) Register(handler snapStateChangedHandler) {
	e.handlers = append(e.handlers, handler)
}

// Trigger sends out an event with the payload. Synchronous for the same
// reason as KeyringStateChanged.
func (e *snapStateChanged) Trigger(payload SnapStateChangedPayload) {
	for _, handler := range e.handlers {
		handler.Handle(payload)
	}
}
