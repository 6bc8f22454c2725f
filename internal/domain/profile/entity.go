package profile

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChronicleKindMilestone   = "milestone"
	ChronicleKindProject     = "project"
	ChronicleKindTalk        = "talk"
	ChronicleKindPublication = "publication"
	ChronicleKindAward       = "award"
	ChronicleKindOther       = "other"
)

type Profile struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	FullName  string
	Headline  string
	Bio       string
	Location  string
	Website   string
	AvatarURL string
	Skills    []string
	KeyLinks  []KeyLink
	CreatedAt time.Time
	UpdatedAt time.Time
}

// KeyLink is one curated link on a profile. Only visible links are shared
// outside the owner's own resume view.
type KeyLink struct {
	Label   string `json:"label"`
	URL     string `json:"url"`
	Visible bool   `json:"visible"`
}

type WorkEntry struct {
	ID        uuid.UUID
	ProfileID uuid.UUID
	Company   string
	Title     string
	Location  string
	StartDate *time.Time
	EndDate   *time.Time
	IsCurrent bool
	Summary   string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type EducationEntry struct {
	ID        uuid.UUID
	ProfileID uuid.UUID
	School    string
	Degree    string
	Field     string
	StartYear *int
	EndYear   *int
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ChronicleEntry struct {
	ID           uuid.UUID
	ProfileID    uuid.UUID
	Title        string
	Kind         string
	HappenedOn   *time.Time
	Description  string
	LinkURL      string
	ShowOnResume bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
