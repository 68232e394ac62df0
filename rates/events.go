package rates

import (
	log "github.com/sirupsen/logrus"
)

// RatesUpdatedPayload carries the full set of quotes from a completed fetch.
type RatesUpdatedPayload struct {
	Rates []Rate
}

type ratesUpdatedHandler interface {
	Handle(RatesUpdatedPayload)
}

type ratesUpdated struct {
	handlers []ratesUpdatedHandler
}

var RatesUpdated ratesUpdated // singleton of type ratesUpdated

// Register adds an event handler for this event
func (e *ratesUpdated) Register(handler ratesUpdatedHandler) {
	log.Debug("Registering RatesUpdated event handler")
	e.handlers = append(e.handlers, handler)
}

// Trigger sends out an event with the payload
func (e *ratesUpdated) Trigger(payload RatesUpdatedPayload) {
	log.
		WithFields(log.Fields{"rates": len(payload.Rates)}).
		Trace("Handling RatesUpdated event")

	for _, handler := range e.handlers {
		go handler.Handle(payload)
	}
}
