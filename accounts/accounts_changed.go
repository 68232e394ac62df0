package accounts

import (
	log "github.com/sirupsen/logrus"
)

// AccountsChangedPayload carries the new registry snapshot published after
// every completed pass or direct mutation.
type AccountsChangedPayload struct {
	Accounts   []Account
	SelectedID string
}

type accountsChangedHandler interface {
	Handle(AccountsChangedPayload)
}

type accountsChanged struct {
	handlers []accountsChangedHandler
}

var AccountsChanged accountsChanged // singleton of type accountsChanged

// Register adds an event handler for this event
func (e *accountsChanged) Register(handler accountsChangedHandler) {
	log.Debug("Registering AccountsChanged event handler")
	e.handlers = append(e.handlers, handler)
}

// Trigger sends out an event with the payload
func (e *accountsChanged) Trigger(payload AccountsChangedPayload) {
	log.
		WithFields(log.Fields{"accounts": len(payload.Accounts)}).
		Trace("Handling AccountsChanged event")

	for _, handler := range e.handlers {
		go handler.Handle(payload)
	}
}
