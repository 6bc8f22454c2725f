package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID        uuid.UUID         `json:"id"`
	FullName  string            `json:"full_name"`
	Headline  string            `json:"headline"`
	Bio       string            `json:"bio"`
	Location  string            `json:"location"`
	Website   string            `json:"website"`
	AvatarURL string            `json:"avatar_url"`
	Skills    []string          `json:"skills"`
	KeyLinks  []KeyLinkResponse `json:"key_links"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type KeyLinkResponse struct {
	Label   string `json:"label"`
	URL     string `json:"url"`
	Visible bool   `json:"visible"`
}

type ProfileLookupResponse struct {
	ProfileID uuid.UUID `json:"profile_id"`
	FullName  string    `json:"full_name"`
	Headline  string    `json:"headline"`
}
