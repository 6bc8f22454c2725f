package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/postmodernjester/rolodex/internal/domain/profile"
	"github.com/postmodernjester/rolodex/internal/repository"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

const profileLookupTTL = 10 * time.Minute

type ProfileInput struct {
	FullName  string
	Headline  string
	Bio       string
	Location  string
	Website   string
	AvatarURL string
	Skills    []string
	KeyLinks  []profile.KeyLink
}

// ProfileRef is the lookup result used to link a contact to a profile.
// The payload is cached, hence the json tags.
type ProfileRef struct {
	ProfileID uuid.UUID `json:"profile_id"`
	FullName  string    `json:"full_name"`
	Headline  string    `json:"headline"`
}

type ProfileUsecase interface {
	GetMine(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	UpsertMine(ctx context.Context, userID uuid.UUID, in ProfileInput) (profile.Profile, error)
	Lookup(ctx context.Context, email string) (ProfileRef, error)
}

type Profile struct {
	profiles repository.ProfileRepository
	cache    Cache
}

func NewProfileUsecase(profiles repository.ProfileRepository, cache Cache) *Profile {
	return &Profile{profiles: profiles, cache: cache}
}

func (u *Profile) GetMine(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Profile) UpsertMine(ctx context.Context, userID uuid.UUID, in ProfileInput) (profile.Profile, error) {
	in, err := normalizeProfileInput(in)
	if err != nil {
		return profile.Profile{}, err
	}

	saved, err := u.profiles.Upsert(ctx, profile.Profile{
		ID:        uuid.New(),
		UserID:    userID,
		FullName:  in.FullName,
		Headline:  in.Headline,
		Bio:       in.Bio,
		Location:  in.Location,
		Website:   in.Website,
		AvatarURL: in.AvatarURL,
		Skills:    in.Skills,
		KeyLinks:  in.KeyLinks,
	})
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	return saved, nil
}

func (u *Profile) Lookup(ctx context.Context, email string) (ProfileRef, error) {
	email = normalizeLookupEmail(email)
	if email == "" {
		return ProfileRef{}, ErrInvalidInput
	}

	key := ProfileLookupCacheKey(email)
	if u.cache != nil {
		var cached ProfileRef
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	p, err := u.profiles.LookupByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ProfileRef{}, ErrProfileNotFound
		}
		return ProfileRef{}, ErrInternal
	}

	ref := ProfileRef{ProfileID: p.ID, FullName: p.FullName, Headline: p.Headline}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, ref, profileLookupTTL)
	}
	return ref, nil
}

func normalizeProfileInput(in ProfileInput) (ProfileInput, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	if in.FullName == "" {
		return in, ErrInvalidInput
	}
	in.Headline = strings.TrimSpace(in.Headline)
	in.Bio = strings.TrimSpace(in.Bio)
	in.Location = strings.TrimSpace(in.Location)
	in.Website = strings.TrimSpace(in.Website)
	in.AvatarURL = strings.TrimSpace(in.AvatarURL)

	skills := make([]string, 0, len(in.Skills))
	for _, s := range in.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}
	in.Skills = skills

	links := make([]profile.KeyLink, 0, len(in.KeyLinks))
	for _, l := range in.KeyLinks {
		l.Label = strings.TrimSpace(l.Label)
		l.URL = strings.TrimSpace(l.URL)
		if l.URL == "" {
			return in, ErrInvalidInput
		}
		links = append(links, l)
	}
	in.KeyLinks = links

	return in, nil
}
