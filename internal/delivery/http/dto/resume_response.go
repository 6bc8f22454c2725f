package dto

import (
	"time"

	"github.com/google/uuid"
)

type WorkEntryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Company   string     `json:"company"`
	Title     string     `json:"title"`
	Location  string     `json:"location"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IsCurrent bool       `json:"is_current"`
	Summary   string     `json:"summary"`
	Position  int        `json:"position"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type EducationEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	School    string    `json:"school"`
	Degree    string    `json:"degree"`
	Field     string    `json:"field"`
	StartYear *int      `json:"start_year"`
	EndYear   *int      `json:"end_year"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChronicleEntryResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Kind         string     `json:"kind"`
	HappenedOn   *time.Time `json:"happened_on"`
	Description  string     `json:"description"`
	LinkURL      string     `json:"link_url"`
	ShowOnResume bool       `json:"show_on_resume"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
