package dto

import (
	"time"

	"github.com/google/uuid"
)

type ContactResponse struct {
	ID               uuid.UUID  `json:"id"`
	FullName         string     `json:"full_name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Company          string     `json:"company"`
	Role             string     `json:"role"`
	Location         string     `json:"location"`
	RelationshipType string     `json:"relationship_type"`
	HowWeMet         string     `json:"how_we_met"`
	FollowUpStatus   string     `json:"follow_up_status"`
	LastContactDate  *time.Time `json:"last_contact_date"`
	NextActionDate   *time.Time `json:"next_action_date"`
	NextActionNote   string     `json:"next_action_note"`
	AISummary        string     `json:"ai_summary"`
	MiniSummary      string     `json:"mini_summary"`
	LinkedProfileID  *uuid.UUID `json:"linked_profile_id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
