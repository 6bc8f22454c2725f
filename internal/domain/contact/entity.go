package contact

import (
	"time"

	"github.com/google/uuid"
)

const (
	FollowUpNone      = "none"
	FollowUpPending   = "pending"
	FollowUpScheduled = "scheduled"
	FollowUpDone      = "done"
)

type Contact struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	FullName         string
	Email            string
	Phone            string
	Company          string
	Role             string
	Location         string
	RelationshipType string
	HowWeMet         string
	FollowUpStatus   string
	LastContactDate  *time.Time
	NextActionDate   *time.Time
	NextActionNote   string
	AISummary        string
	MiniSummary      string
	LinkedProfileID  *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Note struct {
	ID              uuid.UUID
	ContactID       uuid.UUID
	OwnerID         uuid.UUID
	Content         string
	ContextLabel    string
	EntryDate       time.Time
	ActionText      string
	ActionDueDate   *time.Time
	ActionCompleted bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasAction reports whether the note carries an open follow-up action.
func (n Note) HasAction() bool {
	return n.ActionText != "" && !n.ActionCompleted
}
