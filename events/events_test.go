package events

import (
	"testing"

	"github.com/MajorLift/metamask-core/keyring"
)

type recordingHandler struct {
	payloads []KeyringStateChangedPayload
}

func (h *recordingHandler) Handle(p KeyringStateChangedPayload) {
	h.payloads = append(h.payloads, p)
}

func TestKeyringStateChangedDispatch(t *testing.T) {
	var bus keyringStateChanged

	first := &recordingHandler{}
	second := &recordingHandler{}
	bus.Register(first)
	bus.Register(second)

	bus.Trigger(KeyringStateChangedPayload{
		Unlocked: true,
		Keyrings: []keyring.Group{{Kind: keyring.KindHD, Addresses: []string{"0xAAA"}}},
	})
	bus.Trigger(KeyringStateChangedPayload{Unlocked: false})

	for _, h := range []*recordingHandler{first, second} {
		if len(h.payloads) != 2 {
			t.Fatalf("expected 2 payloads, got %d", len(h.payloads))
		}
		if !h.payloads[0].Unlocked || h.payloads[1].Unlocked {
			t.Error("payloads delivered out of order")
		}
	}
}
