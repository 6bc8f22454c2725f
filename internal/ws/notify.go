package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DossierReadyEvent is pushed to the owner's sessions once a contact's
// summary has been persisted.
type DossierReadyEvent struct {
	Type      string `json:"type"`
	ContactID string `json:"contact_id"`
	Timestamp string `json:"timestamp"`
}

func (h *Hub) DossierReady(ownerID uuid.UUID, contactID uuid.UUID) {
	if h == nil {
		return
	}
	evt := DossierReadyEvent{
		Type:      "dossier_ready",
		ContactID: contactID.String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(ownerID, b)
}
