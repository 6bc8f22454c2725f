package dto

import (
	"time"

	"github.com/google/uuid"
)

type NoteResponse struct {
	ID              uuid.UUID  `json:"id"`
	ContactID       uuid.UUID  `json:"contact_id"`
	Content         string     `json:"content"`
	ContextLabel    string     `json:"context_label"`
	EntryDate       time.Time  `json:"entry_date"`
	ActionText      string     `json:"action_text"`
	ActionDueDate   *time.Time `json:"action_due_date"`
	ActionCompleted bool       `json:"action_completed"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
